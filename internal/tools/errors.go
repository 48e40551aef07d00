package tools

import "errors"

// ErrUnknownTool - инструмент с таким именем не зарегистрирован
var ErrUnknownTool = errors.New("unknown tool")

package tools

import (
	"fmt"
	"math"
)

func floatParam(params map[string]interface{}, name string, required bool) (float64, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		if required {
			return 0, fmt.Errorf("invalid parameter: %s is required", name)
		}
		return 0, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("invalid parameter: %s must be a number", name)
	}
}

func intParam(params map[string]interface{}, name string, required bool) (int, error) {
	v, err := floatParam(params, name, required)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("invalid parameter: %s must be an integer", name)
	}
	return int(v), nil
}

func stringParam(params map[string]interface{}, name, defaultValue string) (string, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return defaultValue, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("invalid parameter: %s must be a string", name)
	}
	if s == "" {
		return defaultValue, nil
	}
	return s, nil
}

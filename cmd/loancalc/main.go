package main

import (
	"os"

	"github.com/cloud-ru/loan-amortization-go/cmd/loancalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/wonny/forensic-wacc/cmd/wacc/commands"
)

// main is the entry point for the WACC CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/wacc [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

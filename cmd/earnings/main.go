package main

import (
	"os"

	"github.com/Krishiv14/EarningsAgent/cmd/earnings/commands"
)

// main is the entry point for the EarningsAgent CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/earnings [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

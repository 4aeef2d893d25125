package main

import (
	"os"

	"github.com/wonny/restock/cmd/restock/commands"
)

// main is the entry point for the restock CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/restock [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

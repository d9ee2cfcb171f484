package main

import (
	"os"

	"github.com/dportela/procura/backend/cmd/procura/commands"
)

// main is the entry point for the procura CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

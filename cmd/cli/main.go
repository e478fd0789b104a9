// Package main is the entry point for the informe CLI.
package main

import (
	"os"

	"esocial-informe/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

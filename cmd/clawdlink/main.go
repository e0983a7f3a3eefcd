package main

import (
	"os"

	"clawdlink/cmd/clawdlink/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

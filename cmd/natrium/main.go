package main

import (
	"os"

	"natrium/cmd/natrium/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

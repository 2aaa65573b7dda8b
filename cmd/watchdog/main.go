package main

import (
	"os"

	"github.com/watchdog/watchdog/cmd/watchdog/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

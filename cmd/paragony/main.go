package main

import (
	"os"

	"github.com/tillberg/autorestart"

	"github.com/lukaszlap/paragonyOSA/internal/cli"
)

func main() {
	// Restart in place when a new binary is deployed over this one.
	go autorestart.RestartOnChange()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"

	"tasktracker/internal/cli"
)

// version is overridden by the release build's linker flags.
var version = "dev"

func main() {
	if err := cli.Execute(context.Background(), version); err != nil {
		// The error has already been rendered by the command runner.
		os.Exit(1)
	}
}

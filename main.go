package main

import (
	"fmt"
	"os"

	"github.com/solvik/daybook/cmd"
	"github.com/solvik/daybook/internal/storage"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc is swapped out in tests
var exitFunc = os.Exit

func run() int {
	// Fail fast if the storage location cannot be resolved; every
	// command needs it.
	if _, err := storage.GetStorePath(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	exitFunc(run())
}

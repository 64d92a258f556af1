// Command alloyance is the CLI entry point for Alloyance-Intelligence.
package main

import (
	"os"

	"github.com/turtacn/Alloyance-Intelligence/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	// Execute prints the failure to stderr before returning it; main only
	// converts it into the exit code.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

//Personal.AI order the ending

// Command edgar is a CLI for looking up SEC filings by ticker symbol.
package main

import (
	"os"

	"github.com/custodia-labs/edgar-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

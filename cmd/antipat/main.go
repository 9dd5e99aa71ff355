// Command antipat builds and serves a validated anti-pattern catalog.
package main

import (
	"os"

	"github.com/custodia-labs/antipat/internal/adapters/driving/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}

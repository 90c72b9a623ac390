// Package main provides the CLI for the ForgeCC toolchain
// configuration resolver.
package main

import (
	"os"

	"github.com/leapstack-labs/forgecc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

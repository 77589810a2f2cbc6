// Package main provides the rowql command.
package main

import (
	"os"

	"github.com/leapstack-labs/rowql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

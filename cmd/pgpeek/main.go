// Package main is the pgpeek entry point.
package main

import (
	"os"

	"github.com/nhath/pgpeek/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the mockingbird CLI.
package main

import (
	"os"

	"github.com/roach88/mockingbird/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}

package main

import (
	"os"

	"github.com/mark-chris/tmgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

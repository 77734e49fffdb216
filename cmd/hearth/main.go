package main

import (
	"os"

	"github.com/oddhouse/hearth/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

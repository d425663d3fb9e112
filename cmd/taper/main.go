package main

import (
	"os"

	"github.com/fennor/taper/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

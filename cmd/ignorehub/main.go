package main

import (
	"os"

	"github.com/ignorehub/ignorehub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

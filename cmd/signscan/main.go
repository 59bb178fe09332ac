package main

import (
	"os"

	"github.com/Brownie44l1/signscan/internal/cli"
)

func main() {
	if err := cli.Execute(os.Stdout, os.Args[1:]); err != nil {
		cli.PrintError(os.Stderr, err, cli.NoColorRequested(os.Args[1:]))
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/arthur-debert/fast/internal/cli"
)

func main() {
	rootCmd := cli.NewFdCmd(cli.DefaultEnv())
	os.Exit(cli.Execute(rootCmd, os.Args[1:], "go"))
}

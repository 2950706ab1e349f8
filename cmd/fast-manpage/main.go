// Command fast-manpage writes the man page of fd or fl to stdout.
//
//	fast-manpage fd > fd.1
//	fast-manpage fl > fl.1
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/fast/internal/cli"
	"github.com/arthur-debert/fast/internal/version"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: fast-manpage fd|fl")
		os.Exit(2)
	}

	var rootCmd *cobra.Command
	switch os.Args[1] {
	case "fd":
		rootCmd = cli.NewFdCmd(cli.DefaultEnv())
	case "fl":
		rootCmd = cli.NewFlCmd(cli.DefaultEnv())
	default:
		fmt.Fprintf(os.Stderr, "unknown tool %q, expected fd or fl\n", os.Args[1])
		os.Exit(2)
	}

	header := &doc.GenManHeader{
		Title:   strings.ToUpper(rootCmd.Name()),
		Section: "1",
		Source:  "fast " + version.Version,
		Manual:  "fast manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}

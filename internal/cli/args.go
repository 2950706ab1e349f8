package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// ImproveArgs applies the shortcuts both tools accept:
//
//	fd            -> fd list
//	fd <name>     -> fd go <name>     (implicit = "go")
//	fl <text>     -> fl view <text>   (implicit = "view")
//
// A single token is rewritten only when it is neither a command, an alias
// nor a flag.
func ImproveArgs(known []string, args []string, implicit string) []string {
	switch len(args) {
	case 0:
		return []string{"list"}
	case 1:
		token := args[0]
		if strings.HasPrefix(token, "-") {
			return args
		}
		if slices.Contains(known, token) {
			return args
		}
		return []string{implicit, token}
	}
	return args
}

// commandNames returns the names and aliases of root's subcommands,
// including the help and completion commands cobra adds on execution.
func commandNames(root *cobra.Command) []string {
	names := []string{"help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
		names = append(names, c.Aliases...)
	}
	return names
}

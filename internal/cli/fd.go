package cli

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/fast/pkg/errors"
	"github.com/arthur-debert/fast/pkg/paths"
	"github.com/arthur-debert/fast/pkg/shell"
	"github.com/arthur-debert/fast/pkg/store"
	"github.com/spf13/cobra"
)

// NewFdCmd creates the fd command tree.
func NewFdCmd(env Env) *cobra.Command {
	a := newApp(env, fdTool)
	rootCmd := newRootCmd(a, MsgFdShort, MsgFdLong, MsgFdExample)

	listCmd := newListCmd(a)
	rootCmd.RunE = listCmd.RunE

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(newFdAddCmd(a))
	rootCmd.AddCommand(newGoCmd(a))
	rootCmd.AddCommand(newRmCmd(a, MsgDirRemoved, MsgDirNotFound))
	rootCmd.AddCommand(newSnippetCmd())

	initTopics(rootCmd)
	return rootCmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			records, err := a.load()
			if err != nil {
				return err
			}
			a.printer.All(records)
			return nil
		}),
	}
}

func newFdAddCmd(a *app) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:     "add <name> <dir>",
		Short:   MsgFdAddShort,
		GroupID: "core",
		Args:    cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			name, dir := args[0], args[1]
			if err := store.CheckName(name); err != nil {
				return err
			}

			abs, err := filepath.Abs(paths.ExpandHome(dir))
			if err != nil {
				return errors.Wrapf(err, errors.ErrInvalidDirectory, MsgDirMissing, dir, name)
			}
			if !store.DirExists(a.env.Fs, abs) {
				return errors.Newf(errors.ErrInvalidDirectory, MsgDirMissing, dir, name)
			}

			records, err := a.load()
			if err != nil {
				return err
			}
			records, outcome, err := store.SetSimple(records, name, abs, replace)
			if err != nil {
				return err
			}
			if err := a.save(records); err != nil {
				return err
			}

			if outcome == store.OutcomeReplaced {
				a.printer.Success(MsgDirReplaced, name, abs)
			} else {
				a.printer.Success(MsgDirAdded, name, abs)
			}
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&replace, "replace", "r", false, MsgFlagReplace)
	cmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 1 {
			return nil, cobra.ShellCompDirectiveFilterDirs
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return cmd
}

func newGoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "go <name>",
		Short:             MsgGoShort,
		Long:              MsgGoLong,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeNames,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			name := args[0]
			records, err := a.load()
			if err != nil {
				return err
			}

			entry, ok := records[name]
			if !ok {
				return errors.Newf(errors.ErrKeyNotFound, MsgDirNotFound, name)
			}

			dir := entry.Value()
			if store.DirExists(a.env.Fs, dir) {
				a.printer.Raw(shell.CdCommand(dir))
				return nil
			}

			a.logger.Info().Str("name", name).Str("dir", dir).Msg("Removing stale fast dir")
			records, _ = store.Remove(records, name)
			if err := a.save(records); err != nil {
				return err
			}
			a.printer.Warning(MsgDirStale, dir, name)
			return nil
		}),
	}
}

// newRmCmd is shared by both tools; removed and notFound are the messages
// naming the tool's entries.
func newRmCmd(a *app, removed, notFound string) *cobra.Command {
	return &cobra.Command{
		Use:               "rm <name>",
		Short:             MsgRmShort,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeNames,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			name := args[0]
			records, err := a.load()
			if err != nil {
				return err
			}

			// The store is written even when nothing was removed, which
			// resets a malformed file.
			records, ok := store.Remove(records, name)
			if err := a.save(records); err != nil {
				return err
			}
			if !ok {
				return errors.Newf(errors.ErrKeyNotFound, notFound, name)
			}
			a.printer.Success(removed, name)
			return nil
		}),
	}
}

func newSnippetCmd() *cobra.Command {
	var shellName string

	cmd := &cobra.Command{
		Use:     "snippet",
		Short:   MsgSnippetShort,
		Long:    MsgSnippetLong,
		Example: "  eval \"$(fd snippet --shell bash)\"\n  fd snippet --shell fish | source",
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if shellName == "" {
				shellName = detectShell()
			}
			snippet, err := shell.GetShellIntegrationSnippet(shellName, cmd.Root().Name())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte(snippet + "\n"))
			return err
		},
	}
	cmd.Flags().StringVarP(&shellName, "shell", "s", "", MsgFlagShell)
	_ = cmd.RegisterFlagCompletionFunc("shell", cobra.FixedCompletions(shell.Shells, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

// detectShell guesses the user's shell from $SHELL, defaulting to bash.
func detectShell() string {
	name := filepath.Base(os.Getenv("SHELL"))
	for _, s := range shell.Shells {
		if s == name {
			return s
		}
	}
	return shell.Bash
}

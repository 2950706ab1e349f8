package cli

import (
	"embed"
	"fmt"
	"strings"

	"github.com/arthur-debert/fast/internal/version"
	"github.com/arthur-debert/fast/pkg/config"
	"github.com/arthur-debert/fast/pkg/output"
	"github.com/arthur-debert/fast/pkg/store"
	"github.com/arthur-debert/fast/pkg/topics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicsFS embed.FS

// newRootCmd builds the parts fd and fl share: global flags, command
// groups, help topics and the misc commands.
func newRootCmd(a *app, short, long, example string) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     a.tool.name,
		Short:   short,
		Long:    long,
		Example: example,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setupLogging(cmd)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.SetOut(a.env.Out)
	rootCmd.SetErr(a.env.Err)

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.color, "color", "", MsgFlagColor)
	_ = rootCmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		[]string{output.ColorAuto, output.ColorAlways, output.ColorNever}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))
	rootCmd.AddCommand(newCompletionCmd(a))

	return rootCmd
}

// initTopics replaces the help command once every subcommand is registered.
func initTopics(rootCmd *cobra.Command) {
	opts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if _, err := topics.Initialize(rootCmd, topicsFS, "topics", opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")
}

// Execute runs rootCmd with args after applying ImproveArgs and returns the
// process exit code. Errors are printed to the command's error stream.
func Execute(rootCmd *cobra.Command, args []string, implicit string) int {
	rootCmd.SetArgs(ImproveArgs(commandNames(rootCmd), args, implicit))

	if err := rootCmd.Execute(); err != nil {
		printer := output.NewPrinter(rootCmd.ErrOrStderr(), output.ColorAuto, store.DefaultLayout())
		printer.Error("%s %s", MsgErrorPrefix, err.Error())
		return 1
	}
	return 0
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, a.tool.name, version.Version, version.Commit, version.Date)
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), config.GenerateConfigContent())
				return nil
			}
			if err := a.setup(cmd); err != nil {
				return err
			}
			content, err := config.Dump(a.cfg)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newCompletionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  strings.ReplaceAll(MsgCompletionLong, "{{.Root}}", a.tool.name),
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

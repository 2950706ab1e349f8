package cli

import (
	"io"
	"os"

	"github.com/arthur-debert/fast/pkg/config"
	"github.com/arthur-debert/fast/pkg/errors"
	"github.com/arthur-debert/fast/pkg/logging"
	"github.com/arthur-debert/fast/pkg/output"
	"github.com/arthur-debert/fast/pkg/store"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Env holds what a command tree reads from and writes to. Tests replace it
// to run commands in process.
type Env struct {
	Out     io.Writer
	Err     io.Writer
	Fs      afero.Fs
	Sources config.Sources
}

// DefaultEnv returns the environment of a real invocation.
func DefaultEnv() Env {
	return Env{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Fs:      afero.NewOsFs(),
		Sources: config.DefaultSources(),
	}
}

// tool describes what differs between fd and fl.
type tool struct {
	name    string
	storage func(cfg *config.Config) string
}

var (
	fdTool = tool{name: "fd", storage: func(cfg *config.Config) string { return cfg.FD.Storage }}
	flTool = tool{name: "fl", storage: func(cfg *config.Config) string { return cfg.FL.Storage }}
)

// app is the state shared by the commands of one tree. Configuration and
// the store are set up on first use so that commands which do not need them
// (help, completion, snippet) work with a broken config.
type app struct {
	env       Env
	tool      tool
	verbosity int
	color     string

	cfg     *config.Config
	store   *store.Store
	printer *output.Printer
	logger  zerolog.Logger
}

func newApp(env Env, t tool) *app {
	if env.Out == nil {
		env.Out = os.Stdout
	}
	if env.Err == nil {
		env.Err = os.Stderr
	}
	if env.Fs == nil {
		env.Fs = afero.NewOsFs()
	}
	return &app{env: env, tool: t, logger: zerolog.Nop()}
}

// setupLogging runs before every command.
func (a *app) setupLogging(cmd *cobra.Command) {
	logging.SetupLoggerWithOutput(a.verbosity, a.env.Err)
	a.logger = logging.GetLogger("cli." + a.tool.name)
	logging.LogCommand(cmd.CommandPath(), os.Args)
}

// setup loads the configuration and opens the store.
func (a *app) setup(cmd *cobra.Command) error {
	if a.store != nil {
		return nil
	}

	cfg, err := config.LoadFrom(a.env.Sources)
	if err != nil {
		return err
	}

	colorMode := cfg.Output.Color
	if a.color != "" {
		switch a.color {
		case output.ColorAuto, output.ColorAlways, output.ColorNever:
			colorMode = a.color
		default:
			return errors.Newf(errors.ErrInvalidInput, MsgInvalidColor, a.color)
		}
	}

	layout := store.Layout{NameWidth: cfg.List.NameWidth, TagsWidth: cfg.List.TagsWidth}
	a.cfg = cfg
	a.store = store.New(a.tool.storage(cfg),
		store.WithFs(a.env.Fs),
		store.WithBackup(cfg.Store.BackupMalformed),
		store.WithLayout(layout),
		store.WithLogger(logging.GetLogger("store."+a.tool.name)),
	)
	a.printer = output.NewPrinter(cmd.OutOrStdout(), colorMode, layout)

	a.logger.Debug().
		Str("storage", a.store.Path()).
		Str("color", colorMode).
		Msg("Store ready")
	return nil
}

// load reads the store. A malformed store is reported and read as empty.
func (a *app) load() (store.Records, error) {
	records, err := a.store.Load()
	if errors.IsErrorCode(err, errors.ErrMalformedStore) {
		a.printer.Warning("%s", errors.UserMessage(err))
		return records, nil
	}
	return records, err
}

func (a *app) save(records store.Records) error {
	return a.store.Save(records)
}

// run wraps a command body: it sets up the app, then prints business
// errors as plain messages and lets everything else fail the command.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.setup(cmd); err != nil {
			return err
		}
		done := logging.LogOperationStart(a.logger, cmd.Name())
		defer done()

		err := fn(cmd, args)
		if err != nil && errors.IsBusiness(err) {
			a.logger.Info().Str("code", string(errors.GetErrorCode(err))).Msg(errors.UserMessage(err))
			a.printer.Warning("%s", errors.UserMessage(err))
			return nil
		}
		return err
	}
}

// completeNames offers entry names for the first argument.
func (a *app) completeNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if err := a.setup(cmd); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	records, err := a.store.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for name, entry := range records.All() {
		names = append(names, name+"\t"+entry.Value())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

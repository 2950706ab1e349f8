package cli

import (
	"bytes"
	"fmt"

	"github.com/arthur-debert/fast/pkg/errors"
	"github.com/arthur-debert/fast/pkg/export"
	"github.com/arthur-debert/fast/pkg/store"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewFlCmd creates the fl command tree.
func NewFlCmd(env Env) *cobra.Command {
	a := newApp(env, flTool)
	rootCmd := newRootCmd(a, MsgFlShort, MsgFlLong, MsgFlExample)

	listCmd := newListCmd(a)
	rootCmd.RunE = listCmd.RunE

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(newFlAddCmd(a))
	rootCmd.AddCommand(newUpdateCmd(a))
	rootCmd.AddCommand(newViewCmd(a))
	rootCmd.AddCommand(newRmCmd(a, MsgLinkRemoved, MsgLinkNotFound))
	rootCmd.AddCommand(newExportCmd(a))

	initTopics(rootCmd)
	return rootCmd
}

func newFlAddCmd(a *app) *cobra.Command {
	var tags string

	cmd := &cobra.Command{
		Use:     "add <name> <link>",
		Short:   MsgFlAddShort,
		GroupID: "core",
		Args:    cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			name, link := args[0], args[1]
			records, err := a.load()
			if err != nil {
				return err
			}

			records, err = store.CreateRich(records, name, link, tags)
			if err != nil {
				return err
			}
			if err := a.save(records); err != nil {
				return err
			}
			a.printer.Success(MsgLinkAdded, name, link)
			return nil
		}),
	}
	cmd.Flags().StringVar(&tags, "tags", "", MsgFlagTags)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var link, tags string

	cmd := &cobra.Command{
		Use:               "update <name>",
		Short:             MsgUpdateShort,
		Long:              MsgUpdateLong,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeNames,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			name := args[0]
			records, err := a.load()
			if err != nil {
				return err
			}

			updated, err := store.UpdateRich(records, name, link, tags)
			if err != nil {
				return err
			}
			if updated[name].Equal(records[name]) {
				a.printer.Message(MsgNothingToUpdate, name)
				return nil
			}
			if err := a.save(updated); err != nil {
				return err
			}
			a.printer.Success(MsgLinkUpdated, name)
			a.printer.Records([]store.Record{{Name: name, Entry: updated[name]}})
			return nil
		}),
	}
	cmd.Flags().StringVar(&link, "link", "", MsgFlagLink)
	cmd.Flags().StringVar(&tags, "tags", "", MsgFlagTags)
	return cmd
}

func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "view <substring>",
		Short:             MsgViewShort,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeNames,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			records, err := a.load()
			if err != nil {
				return err
			}

			matches := store.View(records, args[0])
			if len(matches) == 0 {
				a.logger.Debug().Str("substring", args[0]).Msg(fmt.Sprintf(MsgNoMatch, args[0]))
				return nil
			}
			a.printer.Records(matches)
			return nil
		}),
	}
}

func newExportCmd(a *app) *cobra.Command {
	var format, outPath string

	cmd := &cobra.Command{
		Use:     "export",
		Short:   MsgExportShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := export.ParseFormat(format)
			return err
		},
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			records, err := a.load()
			if err != nil {
				return err
			}

			if outPath == "" {
				return export.Write(cmd.OutOrStdout(), f, records, MsgExportTitle)
			}

			var buf bytes.Buffer
			if err := export.Write(&buf, f, records, MsgExportTitle); err != nil {
				return err
			}
			if err := afero.WriteFile(a.env.Fs, outPath, buf.Bytes(), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", outPath)
			}
			a.printer.Success(MsgExportWritten, len(records), outPath)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), MsgFlagFormat)
	cmd.Flags().StringVarP(&outPath, "output", "o", "", MsgFlagOutput)
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(export.Formats))
		for _, f := range export.Formats {
			names = append(names, string(f))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

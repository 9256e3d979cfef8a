// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/storage"
)

func newHistoryCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"h"},
		Short:   "List, show, export and delete saved comparisons",
		Long: `Work with comparisons saved by "textdiff --save" or POST /api/comparisons.

IDs may be shortened to any unique prefix. History must be enabled with
storage.enabled = true.`,
	}

	cmd.AddCommand(
		newHistoryListCommand(app),
		newHistoryShowCommand(app),
		newHistoryDeleteCommand(app),
		newHistoryExportCommand(app),
		newHistoryPruneCommand(app),
	)
	return cmd
}

func newHistoryListCommand(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved comparisons, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return &UsageError{Flag: "--limit", Value: fmt.Sprint(limit), Reason: "must not be negative"}
			}
			store, err := app.requireStore()
			if err != nil {
				return err
			}
			defer store.Close()

			metas, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(app.Out, storage.FormatList(metas))
			if len(metas) == 0 {
				fmt.Fprintln(app.Out)
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of comparisons (0 for all)")
	return cmd
}

func newHistoryShowCommand(app *App) *cobra.Command {
	cf := &compareFlags{}
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved comparison",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.requireStore()
			if err != nil {
				return err
			}
			defer store.Close()

			c, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			format, err := cf.resolveFormat(cmd, app.cfg)
			if err != nil {
				return err
			}
			colorMode, err := cf.resolveRendering(cmd, app.cfg)
			if err != nil {
				return err
			}
			if cf.title == "" {
				cf.title = c.DisplayTitle()
			}

			fmt.Fprintf(app.ErrOut, "%s  %s  %s\n", c.ID, c.CreatedAt.Local().Format("2006-01-02 15:04"), c.DisplayTitle())
			_, err = app.showComparison(cmd, cf, comparisonInput{
				leftName:  orDefault(c.LeftName, "left"),
				rightName: orDefault(c.RightName, "right"),
				leftText:  c.LeftText,
				rightText: c.RightText,
				opts:      c.Options,
				format:    format,
				color:     colorMode,
			})
			return err
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&cf.format, "format", "f", "", "output format: inline, split, unified, json, summary (default ui.mode)")
	fs.IntVarP(&cf.context, "context", "U", diff.DefaultContext, "unchanged lines around each change (negative for all)")
	fs.BoolVar(&cf.noLineNumbers, "no-line-numbers", false, "hide the line number gutter")
	fs.StringVar(&cf.color, "color", "", "colour output: auto, always, never (default ui.color)")
	fs.StringVar(&cf.language, "language", "", "syntax highlight unchanged lines as this language or file name")
	fs.BoolVar(&cf.copy, "copy", false, "copy the unified diff to the clipboard")
	return cmd
}

func newHistoryDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved comparison",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.requireStore()
			if err != nil {
				return err
			}
			defer store.Close()

			// Resolve a prefix first so the full ID is reported.
			c, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), c.ID); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Deleted %s\n", c.ID)
			return nil
		},
	}
}

func newHistoryExportCommand(app *App) *cobra.Command {
	ef := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a saved comparison",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.requireStore()
			if err != nil {
				return err
			}
			defer store.Close()

			c, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.exportComparison(cmd, c, ef)
		},
	}
	ef.register(cmd)
	return cmd
}

func newHistoryPruneCommand(app *App) *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest comparisons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep < 1 {
				return &UsageError{Flag: "--keep", Value: fmt.Sprint(keep), Reason: "must be at least 1"}
			}
			store, err := app.requireStore()
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Prune(cmd.Context(), keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Deleted %d comparison(s)\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 100, "number of newest comparisons to keep")
	return cmd
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

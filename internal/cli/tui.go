// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/textdiff/internal/ui/components"
	"github.com/jeranaias/textdiff/internal/ui/viewer"
	"github.com/jeranaias/textdiff/internal/watch"
)

func newTUICommand(app *App) *cobra.Command {
	cf := &compareFlags{}
	var (
		split     bool
		watchMode bool
	)

	cmd := &cobra.Command{
		Use:   "tui <left> <right>",
		Short: "Browse a comparison in the interactive viewer",
		Long: `Open two files in a scrollable, full-screen diff viewer.

Keys: j/k scroll, ] and [ jump between changes, s toggles split view, w and c
toggle the comparison options, u switches between hunks and all lines, y
copies the unified diff, ? shows all keys, q quits.

With --watch the view refreshes whenever either file changes on disk.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" || args[1] == "-" {
				return &UsageError{Flag: "arguments", Value: "-", Reason: "the viewer reads keys from standard input; pass files"}
			}

			cfg := app.cfg
			opts := diffOptions(cmd, cfg, cf)
			left, right, leftName, rightName, err := app.readPair(args[0], args[1], opts)
			if err != nil {
				return err
			}

			colorMode, err := cf.resolveRendering(cmd, cfg)
			if err != nil {
				return err
			}

			mode, err := components.ParseMode(cfg.UI.Mode)
			if err != nil {
				return err
			}
			if split {
				mode = components.ModeSplit
			}

			m := viewer.New(left, right, viewer.Options{
				LeftName:  leftName,
				RightName: rightName,
				Diff:      opts,
				Viewer: components.ViewerOptions{
					Mode:        mode,
					LineNumbers: cfg.UI.LineNumbers && !cf.noLineNumbers,
					Context:     contextFor(cmd, cfg, cf, formatInline),
					Language:    app.language(cf.language, rightName),
					TabWidth:    cfg.UI.TabWidth,
				},
				DefaultContext: cfg.Diff.Context,
				Theme:          app.theme(colorMode),
				Clipboard:      app.Clipboard,
			})

			if !watchMode {
				return app.RunTUI(cmd.Context(), m, nil)
			}
			return app.runWatchedTUI(cmd.Context(), m, args[0], args[1], cf, cmd)
		},
	}

	cf.registerDiff(cmd)
	fs := cmd.Flags()
	fs.IntVarP(&cf.context, "context", "U", 3, "unchanged lines around each change (default all lines)")
	fs.BoolVar(&cf.noLineNumbers, "no-line-numbers", false, "hide the line number gutter")
	fs.StringVar(&cf.color, "color", "", "colour output: auto, always, never (default ui.color)")
	fs.StringVar(&cf.language, "language", "", "syntax highlight unchanged lines as this language or file name")
	fs.BoolVar(&split, "split", false, "start in side-by-side view")
	fs.BoolVar(&watchMode, "watch", false, "reload when either file changes")
	return cmd
}

// runWatchedTUI runs the viewer while a watcher feeds it file changes.
func (a *App) runWatchedTUI(ctx context.Context, m viewer.Model, left, right string, cf *compareFlags, cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates := make(chan tea.Msg)
	send := func(msg tea.Msg) {
		select {
		case updates <- msg:
		case <-ctx.Done():
		}
	}

	w, err := watch.New(left, right, watch.Options{
		Diff:   diffOptions(cmd, a.cfg, cf),
		Limits: a.limits(),
		Logger: a.logger,
		OnReload: func(l, r string) {
			send(viewer.TextsChangedMsg{Left: l, Right: r})
		},
		OnError: func(err error) {
			send(viewer.ErrorMsg{Err: err})
		},
	})
	if err != nil {
		return err
	}
	defer w.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = w.Run(ctx)
	}()

	err = a.RunTUI(ctx, m, updates)
	cancel()
	wg.Wait()
	return err
}

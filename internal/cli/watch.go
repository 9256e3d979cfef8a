// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/watch"
)

func newWatchCommand(app *App) *cobra.Command {
	cf := &compareFlags{}
	var (
		debounce time.Duration
		noClear  bool
	)

	cmd := &cobra.Command{
		Use:   "watch <left> <right>",
		Short: "Re-print the comparison whenever either file changes",
		Long: `Compare two files, then keep watching them and print the comparison
again after every change. Stop with Ctrl+C.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" || args[1] == "-" {
				return &UsageError{Flag: "arguments", Value: "-", Reason: "watch needs two files"}
			}

			cfg := app.cfg
			format, err := cf.resolveFormat(cmd, cfg)
			if err != nil {
				return err
			}
			if format == formatJSON {
				return &UsageError{Flag: "--format", Value: format, Reason: "watch prints inline, split, unified or summary"}
			}
			colorMode, err := cf.resolveRendering(cmd, cfg)
			if err != nil {
				return err
			}
			opts := diffOptions(cmd, cfg, cf)
			clearScreen := !noClear && isTerminal(app.Out)

			show := func(left, right string) {
				if clearScreen {
					termenv.NewOutput(app.Out).ClearScreen()
				}
				_, err := app.showComparison(cmd, cf, comparisonInput{
					leftName:  args[0],
					rightName: args[1],
					leftText:  left,
					rightText: right,
					opts:      opts,
					format:    format,
					color:     colorMode,
				})
				if err != nil {
					fmt.Fprintf(app.ErrOut, "Error: %v\n", err)
				}
				fmt.Fprintf(app.ErrOut, "[%s] watching %s and %s\n",
					time.Now().Format("15:04:05"), args[0], args[1])
			}

			w, err := watch.New(args[0], args[1], watch.Options{
				Diff:     opts,
				Limits:   app.limits(),
				Debounce: debounce,
				Logger:   app.logger,
				OnReload: show,
				OnError: func(err error) {
					fmt.Fprintf(app.ErrOut, "Error: %v\n", err)
				},
			})
			if err != nil {
				return err
			}
			defer w.Close()

			left, right, err := w.Read()
			if err != nil {
				return err
			}
			show(left, right)

			return w.Run(cmd.Context())
		},
	}

	cf.registerDiff(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&cf.format, "format", "f", "", "output format: inline, split, unified, summary (default ui.mode)")
	fs.IntVarP(&cf.context, "context", "U", diff.DefaultContext, "unchanged lines around each change (negative for all)")
	fs.BoolVar(&cf.noLineNumbers, "no-line-numbers", false, "hide the line number gutter")
	fs.StringVar(&cf.color, "color", "", "colour output: auto, always, never (default ui.color)")
	fs.StringVar(&cf.language, "language", "", "syntax highlight unchanged lines as this language or file name")
	fs.DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-reading")
	fs.BoolVar(&noClear, "no-clear", false, "do not clear the terminal between updates")
	return cmd
}

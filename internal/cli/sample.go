// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/spf13/cobra"

	"github.com/jeranaias/textdiff/internal/diff"
)

func newSampleCommand(app *App) *cobra.Command {
	cf := &compareFlags{}
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Compare the built-in sample web page pair",
		Long: `Compare two versions of a small HTML page. Useful for trying the output
formats and options without preparing files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cf.resolveFormat(cmd, app.cfg)
			if err != nil {
				return err
			}
			colorMode, err := cf.resolveRendering(cmd, app.cfg)
			if err != nil {
				return err
			}
			if cf.language == "" {
				cf.language = "html"
			}
			_, err = app.showComparison(cmd, cf, comparisonInput{
				leftName:  "original.html",
				rightName: "modified.html",
				leftText:  diff.SampleLeft,
				rightText: diff.SampleRight,
				opts:      diffOptions(cmd, app.cfg, cf),
				format:    format,
				color:     colorMode,
			})
			return err
		},
	}
	cf.register(cmd)
	return cmd
}

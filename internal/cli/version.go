// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCommand(app *App) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version needs no config; a broken config file must not hide it.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(app.Out, Version)
				return nil
			}
			fmt.Fprintf(app.Out, "textdiff %s\n", Version)
			fmt.Fprintf(app.Out, "  commit:  %s\n", GitCommit)
			fmt.Fprintf(app.Out, "  built:   %s\n", BuildDate)
			fmt.Fprintf(app.Out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}

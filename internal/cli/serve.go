// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/textdiff/internal/server"
)

func newServeCommand(app *App) *cobra.Command {
	var (
		addr      string
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the comparison form and JSON API over HTTP",
		Long: `Start the HTTP service.

GET / serves a form for pasting two texts; POST /api/diff and
POST /api/diff/unified compare JSON bodies. When storage.enabled is set the
/api/comparisons routes expose the saved history.

The server stops gracefully on Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg.Clone()
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			var srv *server.Server
			if noHistory {
				srv = server.New(cfg, app.logger, nil)
			} else {
				store, err := app.openStore()
				if err != nil {
					return err
				}
				if store != nil {
					defer store.Close()
					srv = server.New(cfg, app.logger, store)
				} else {
					srv = server.New(cfg, app.logger, nil)
				}
			}

			server.Version = Version
			app.logger.Info("starting server",
				zap.String("addr", cfg.Server.Addr),
				zap.String("version", Version),
			)
			fmt.Fprintf(app.ErrOut, "Listening on http://%s (Ctrl+C to stop)\n", cfg.Server.Addr)
			return app.Serve(cmd.Context(), srv)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "disable the history routes")
	return cmd
}

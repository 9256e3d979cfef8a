// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/textdiff/internal/config"
	"github.com/jeranaias/textdiff/internal/logging"
	"github.com/jeranaias/textdiff/internal/server"
	"github.com/jeranaias/textdiff/internal/storage"
	"github.com/jeranaias/textdiff/internal/ui/components"
	"github.com/jeranaias/textdiff/internal/ui/viewer"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// APP
// =============================================================================

// App holds the state shared by all commands of one invocation.
type App struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// Set by the persistent flags and PersistentPreRunE.
	configPath string
	verbose    bool
	cfg        *config.Config
	logger     *zap.Logger

	// Replaceable for tests.
	Getenv    func(string) string
	Clipboard func(string) error
	RunTUI    func(ctx context.Context, m viewer.Model, updates <-chan tea.Msg) error
	Serve     func(ctx context.Context, srv *server.Server) error
	Now       func() time.Time
}

// NewApp returns an App wired to the given streams and the real clipboard,
// terminal and network.
func NewApp(in io.Reader, out, errOut io.Writer) *App {
	return &App{
		In:        in,
		Out:       out,
		ErrOut:    errOut,
		Getenv:    osGetenv,
		Clipboard: clipboard.WriteAll,
		RunTUI: func(ctx context.Context, m viewer.Model, updates <-chan tea.Msg) error {
			return viewer.Run(ctx, m, updates)
		},
		Serve: func(ctx context.Context, srv *server.Server) error {
			return srv.Start(ctx)
		},
		Now: time.Now,
	}
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// load reads the configuration and builds the logger. An explicit --config
// path must exist.
func (a *App) load() error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFromPath(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.NewWithWriter(cfg.Log, a.verbose, zapWriter(a.ErrOut))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

// openStore opens the history database. It returns nil, nil when history is
// disabled.
func (a *App) openStore() (*storage.Store, error) {
	if !a.cfg.Storage.Enabled {
		return nil, nil
	}
	path, err := a.cfg.HistoryPath()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	store.MaxComparisons = a.cfg.Storage.MaxComparisons
	a.logger.Debug("history opened", zap.String("path", path))
	return store, nil
}

// requireStore opens the history database or explains that it is off.
func (a *App) requireStore() (*storage.Store, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("history is disabled (set storage.enabled = true)")
	}
	return store, nil
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCommand builds the textdiff command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	cf := &compareFlags{}

	root := &cobra.Command{
		Use:   "textdiff [flags] <left> <right>",
		Short: "Compare two texts line by line",
		Long: `textdiff compares two texts line by line using a longest common subsequence
and reports every line as added, removed or unchanged.

Sources are file paths; "-" reads one side from standard input.

Exit status is 0 when the inputs are identical, 1 when they differ and 2 on
error, like diff(1).`,
		Example: `  textdiff old.txt new.txt
  textdiff -w -i --format unified old.txt new.txt
  git show HEAD:main.go | textdiff --language go - main.go`,
		Args:          cobra.RangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if len(args) != 2 {
				return &UsageError{Flag: "arguments", Reason: "need a left and a right source"}
			}
			return runCompare(cmd, app, cf, args)
		},
	}
	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.ErrOut)
	root.SetVersionTemplate("textdiff {{.Version}}\n")

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default ~/.textdiff/config.toml)")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "debug logging to stderr")
	cf.register(root)

	root.AddCommand(
		newCompareCommand(app),
		newTUICommand(app),
		newServeCommand(app),
		newWatchCommand(app),
		newExportCommand(app),
		newHistoryCommand(app),
		newConfigCommand(app),
		newSampleCommand(app),
		newVersionCommand(app),
	)
	return root
}

// Execute runs the command line in args and returns the process exit status.
// Errors are printed once, here.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	return ExecuteApp(ctx, NewApp(in, out, errOut), args)
}

// ExecuteApp is Execute for a prepared App.
func ExecuteApp(ctx context.Context, app *App, args []string) int {
	root := NewRootCommand(app)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil && !silent(err) {
		fmt.Fprintf(app.ErrOut, "Error: %v\n", err)
		if isUsage(err) {
			fmt.Fprintln(app.ErrOut, "Run 'textdiff --help' for usage.")
		}
		for _, hint := range components.SuggestionsFor(err) {
			fmt.Fprintf(app.ErrOut, "  - %s\n", hint)
		}
	}
	return ExitCode(err)
}

// zapWriter adapts an io.Writer for zap, using the file directly when it is
// one.
func zapWriter(w io.Writer) *zapSyncWriter {
	return &zapSyncWriter{w: w}
}

type zapSyncWriter struct {
	w io.Writer
}

func (z *zapSyncWriter) Write(p []byte) (int, error) {
	return z.w.Write(p)
}

func (z *zapSyncWriter) Sync() error {
	if f, ok := z.w.(*os.File); ok {
		// Syncing a terminal or pipe fails on some platforms.
		_ = f.Sync()
	}
	return nil
}

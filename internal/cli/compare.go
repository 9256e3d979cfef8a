// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/textdiff/internal/config"
	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/export"
	"github.com/jeranaias/textdiff/internal/storage"
	"github.com/jeranaias/textdiff/internal/ui/components"
	"github.com/jeranaias/textdiff/internal/ui/styles"
)

// stdinName labels a side read from standard input.
const stdinName = "stdin"

// Output formats of the compare command.
const (
	formatInline  = "inline"
	formatSplit   = "split"
	formatUnified = "unified"
	formatJSON    = "json"
	formatSummary = "summary"
)

var compareFormats = []string{formatInline, formatSplit, formatUnified, formatJSON, formatSummary}

// =============================================================================
// FLAGS
// =============================================================================

// compareFlags are the comparison flags shared by the root and compare
// commands. Unset flags fall back to the config file.
type compareFlags struct {
	ignoreWhitespace bool
	ignoreCase       bool
	format           string
	context          int
	noLineNumbers    bool
	color            string
	language         string
	title            string
	copy             bool
	save             bool
}

func (f *compareFlags) register(cmd *cobra.Command) {
	f.registerDiff(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&f.format, "format", "f", "", "output format: "+strings.Join(compareFormats, ", ")+" (default ui.mode)")
	fs.IntVarP(&f.context, "context", "U", diff.DefaultContext, "unchanged lines around each change (negative for all)")
	fs.BoolVar(&f.noLineNumbers, "no-line-numbers", false, "hide the line number gutter")
	fs.StringVar(&f.color, "color", "", "colour output: auto, always, never (default ui.color)")
	fs.StringVar(&f.language, "language", "", "syntax highlight unchanged lines as this language or file name")
	fs.StringVar(&f.title, "title", "", "title for the header and saved comparison")
	fs.BoolVar(&f.copy, "copy", false, "copy the unified diff to the clipboard")
	fs.BoolVar(&f.save, "save", false, "save the comparison to history")
}

// registerDiff adds only the comparison option flags.
func (f *compareFlags) registerDiff(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVarP(&f.ignoreWhitespace, "ignore-whitespace", "w", false, "ignore leading/trailing whitespace and blank lines")
	fs.BoolVarP(&f.ignoreCase, "ignore-case", "i", false, "compare lines case-insensitively")
}

// diffOptions merges the flags over the [diff] config section.
func diffOptions(cmd *cobra.Command, cfg *config.Config, f *compareFlags) diff.Options {
	opts := diff.Options{
		IgnoreWhitespace: cfg.Diff.IgnoreWhitespace,
		IgnoreCase:       cfg.Diff.IgnoreCase,
	}
	if cmd.Flags().Changed("ignore-whitespace") {
		opts.IgnoreWhitespace = f.ignoreWhitespace
	}
	if cmd.Flags().Changed("ignore-case") {
		opts.IgnoreCase = f.ignoreCase
	}
	return opts
}

// contextFor returns the context for a format. Terminal views show every
// line unless -U is given; unified output uses diff.context.
func contextFor(cmd *cobra.Command, cfg *config.Config, f *compareFlags, format string) int {
	if cmd.Flags().Changed("context") {
		return f.context
	}
	if format == formatUnified || format == formatJSON {
		return cfg.Diff.Context
	}
	return -1
}

func (f *compareFlags) resolveFormat(cmd *cobra.Command, cfg *config.Config) (string, error) {
	format := cfg.UI.Mode
	if cmd.Flags().Changed("format") {
		format = f.format
	}
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case formatInline, formatSplit, formatUnified, formatJSON, formatSummary:
		return format, nil
	case "side-by-side":
		return formatSplit, nil
	}
	return "", &UsageError{Flag: "--format", Value: format, Reason: "want one of " + strings.Join(compareFormats, ", ")}
}

func (f *compareFlags) resolveColor(cmd *cobra.Command, cfg *config.Config) (string, error) {
	mode := cfg.UI.Color
	if cmd.Flags().Changed("color") {
		mode = f.color
	}
	mode = strings.ToLower(mode)
	switch mode {
	case "auto", "always", "never":
		return mode, nil
	}
	return "", &UsageError{Flag: "--color", Value: mode, Reason: "want auto, always or never"}
}

// =============================================================================
// COMMAND
// =============================================================================

func newCompareCommand(app *App) *cobra.Command {
	cf := &compareFlags{}
	cmd := &cobra.Command{
		Use:   "compare <left> <right>",
		Short: "Compare two files (the default command)",
		Long: `Compare two files line by line and print the differences.

Use "-" for one side to read it from standard input. Exit status is 0 when the
inputs are identical, 1 when they differ and 2 on error.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, app, cf, args)
		},
	}
	cf.register(cmd)
	return cmd
}

func runCompare(cmd *cobra.Command, app *App, cf *compareFlags, args []string) error {
	cfg := app.cfg
	format, err := cf.resolveFormat(cmd, cfg)
	if err != nil {
		return err
	}
	colorMode, err := cf.resolveRendering(cmd, cfg)
	if err != nil {
		return err
	}
	opts := diffOptions(cmd, cfg, cf)

	leftText, rightText, leftName, rightName, err := app.readPair(args[0], args[1], opts)
	if err != nil {
		return err
	}

	res, err := app.showComparison(cmd, cf, comparisonInput{
		leftName:  leftName,
		rightName: rightName,
		leftText:  leftText,
		rightText: rightText,
		opts:      opts,
		format:    format,
		color:     colorMode,
	})
	if err != nil {
		return err
	}
	if !res.Identical() {
		return ErrDifferent
	}
	return nil
}

// comparisonInput is a read, limit-checked pair ready to show.
type comparisonInput struct {
	leftName, rightName string
	leftText, rightText string
	opts                diff.Options
	format              string
	color               string
}

// showComparison computes the diff, writes it in the chosen format and
// handles --copy and --save.
func (a *App) showComparison(cmd *cobra.Command, cf *compareFlags, in comparisonInput) (diff.Result, error) {
	cfg := a.cfg
	res := diff.Compute(in.leftText, in.rightText, in.opts)
	ctxLines := contextFor(cmd, cfg, cf, in.format)
	a.logger.Debug("compared",
		zap.String("left", in.leftName),
		zap.String("right", in.rightName),
		zap.String("summary", res.Summary.String()),
	)

	var err error
	out := a.Out
	switch in.format {
	case formatUnified:
		_, err = io.WriteString(out, diff.FormatUnified(res, in.leftName, in.rightName, ctxLines))
	case formatSummary:
		_, err = fmt.Fprintf(out, "%s -> %s: %s\n", in.leftName, in.rightName, res.Summary)
	case formatJSON:
		c := storage.NewComparison(in.leftName, in.rightName, in.leftText, in.rightText, in.opts)
		c.Title = cf.title
		eopts := export.DefaultOptions()
		eopts.Context = ctxLines
		var data []byte
		data, err = export.NewJSONExporter(eopts).Export(c)
		if err != nil {
			return res, err
		}
		_, err = out.Write(data)
	default:
		_, err = fmt.Fprintln(out, a.renderDiff(res, renderOptions{
			format:      in.format,
			color:       in.color,
			context:     ctxLines,
			lineNumbers: cfg.UI.LineNumbers && !cf.noLineNumbers,
			language:    a.language(cf.language, in.rightName),
			title:       titleOr(cf.title, in.leftName, in.rightName),
		}))
	}
	if err != nil {
		return res, fmt.Errorf("write output: %w", err)
	}

	if cf.copy {
		if err := a.copyUnified(res, in.leftName, in.rightName, cfg.Diff.Context); err != nil {
			return res, err
		}
	}
	if cf.save {
		if err := a.saveComparison(cmd.Context(), cf.title, in.leftName, in.rightName, in.leftText, in.rightText, in.opts); err != nil {
			return res, err
		}
	}
	return res, nil
}

// =============================================================================
// INPUT
// =============================================================================

// readPair reads both sources and checks them against the configured limits.
func (a *App) readPair(left, right string, opts diff.Options) (string, string, string, string, error) {
	if left == "-" && right == "-" {
		return "", "", "", "", &UsageError{Flag: "arguments", Value: "- -", Reason: "only one side can read standard input"}
	}

	leftText, leftName, err := a.readSource(left)
	if err != nil {
		return "", "", "", "", err
	}
	rightText, rightName, err := a.readSource(right)
	if err != nil {
		return "", "", "", "", err
	}

	if err := a.limits().Check(leftText, rightText, opts); err != nil {
		return "", "", "", "", err
	}
	return leftText, rightText, leftName, rightName, nil
}

// readSource reads a file, or standard input for "-", and returns its text and
// display name. Reads stop one byte past limits.max_input_bytes.
func (a *App) readSource(path string) (string, string, error) {
	var (
		r    io.Reader
		name = path
	)
	if path == "-" {
		r = a.In
		name = stdinName
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", "", fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		if info, err := f.Stat(); err == nil && info.IsDir() {
			return "", "", fmt.Errorf("%s is a directory", path)
		}
		r = f
	}

	maxBytes := a.cfg.Limits.MaxInputBytes
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", name, err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", "", fmt.Errorf("%w: %s is over %d bytes", ErrInputTooLarge, name, maxBytes)
	}
	return string(data), name, nil
}

func (a *App) limits() diff.Limits {
	return diff.Limits{
		MaxInputBytes: a.cfg.Limits.MaxInputBytes,
		MaxTableCells: a.cfg.Limits.MaxTableCells,
	}
}

// =============================================================================
// RENDERING
// =============================================================================

type renderOptions struct {
	format      string
	color       string
	context     int
	lineNumbers bool
	language    string
	title       string
}

// theme builds the terminal theme for the output stream.
func (a *App) theme(colorMode string) *styles.Theme {
	profile := colorProfile(a.Out, colorMode, a.Getenv)
	return styles.NewTheme(styles.ThemeOptions{
		Output:  a.Out,
		Profile: &profile,
		Mode:    themeMode(a.cfg.UI.Theme, profile, a.Out),
	})
}

func (a *App) renderDiff(res diff.Result, ro renderOptions) string {
	mode := components.ModeInline
	if ro.format == formatSplit {
		mode = components.ModeSplit
	}
	width, _ := terminalSize(a.Out)

	theme := a.theme(ro.color)
	if theme.ColorProfile == termenv.Ascii {
		// Plain output is for pipes and files; highlighting would be lost.
		ro.language = ""
	}

	dv := components.NewDiffViewer(res, theme, components.ViewerOptions{
		Mode:        mode,
		LineNumbers: ro.lineNumbers,
		Context:     ro.context,
		Width:       width,
		Language:    ro.language,
		Title:       ro.title,
		TabWidth:    a.cfg.UI.TabWidth,
	})
	return dv.View()
}

// language picks the highlight language: the flag, else the right file name
// when ui.highlight is on.
func (a *App) language(flag, rightName string) string {
	if flag != "" {
		return flag
	}
	if a.cfg.UI.Highlight && rightName != stdinName {
		return rightName
	}
	return ""
}

func titleOr(title, left, right string) string {
	if title != "" {
		return title
	}
	return left + " -> " + right
}

// =============================================================================
// SIDE EFFECTS
// =============================================================================

func (a *App) copyUnified(res diff.Result, leftName, rightName string, context int) error {
	if res.Identical() {
		fmt.Fprintln(a.ErrOut, "Nothing to copy: inputs are identical")
		return nil
	}
	if err := a.Clipboard(diff.FormatUnified(res, leftName, rightName, context)); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	fmt.Fprintln(a.ErrOut, "Copied unified diff to clipboard")
	return nil
}

func (a *App) saveComparison(ctx context.Context, title, leftName, rightName, leftText, rightText string, opts diff.Options) error {
	store, err := a.requireStore()
	if err != nil {
		return err
	}
	defer store.Close()

	c := storage.NewComparison(leftName, rightName, leftText, rightText, opts)
	c.Title = title
	id, err := store.Save(ctx, c)
	if err != nil {
		return fmt.Errorf("save comparison: %w", err)
	}
	a.logger.Debug("comparison saved", zap.String("id", id))
	fmt.Fprintf(a.ErrOut, "Saved comparison %s\n", id)
	return nil
}

// isUsage reports whether err is a usage problem.
func isUsage(err error) bool {
	var u *UsageError
	return errors.As(err, &u)
}

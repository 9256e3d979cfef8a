// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/jeranaias/textdiff/internal/export"
	"github.com/jeranaias/textdiff/internal/storage"
)

// previewWidth is the word wrap for --preview when the width is unknown.
const previewWidth = 100

// exportFlags are shared by "export" and "history export".
type exportFlags struct {
	format       string
	out          string
	preview      bool
	includeTexts bool
	context      int
}

func (f *exportFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.format, "format", "f", "markdown", "export format: "+strings.Join(export.Formats(), ", "))
	fs.StringVarP(&f.out, "out", "o", ".", `output directory, or "-" for standard output`)
	fs.BoolVar(&f.preview, "preview", false, "render the markdown export in the terminal instead of writing a file")
	fs.BoolVar(&f.includeTexts, "include-texts", false, "embed both input texts in JSON and YAML exports")
	fs.IntVarP(&f.context, "context", "U", 0, "unchanged lines around each change (default diff.context, negative for all)")
}

func newExportCommand(app *App) *cobra.Command {
	cf := &compareFlags{}
	ef := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export <left> <right>",
		Short: "Write a comparison as JSON, YAML, Markdown or HTML",
		Long: `Compare two files and write the result to a file named after the
comparison in the output directory, or to standard output with --out -.

--preview renders the Markdown export in the terminal.`,
		Example: `  textdiff export old.txt new.txt --format html --out reports
  textdiff export -w old.txt new.txt --format json --out -
  textdiff export old.md new.md --preview`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := diffOptions(cmd, app.cfg, cf)
			left, right, leftName, rightName, err := app.readPair(args[0], args[1], opts)
			if err != nil {
				return err
			}
			c := storage.NewComparison(leftName, rightName, left, right, opts)
			c.CreatedAt = app.now()
			c.Title = cf.title
			return app.exportComparison(cmd, c, ef)
		},
	}

	cf.registerDiff(cmd)
	cmd.Flags().StringVar(&cf.title, "title", "", "title of the exported comparison")
	ef.register(cmd)
	return cmd
}

// exportComparison writes c in the requested format, or previews it.
func (a *App) exportComparison(cmd *cobra.Command, c *storage.Comparison, ef *exportFlags) error {
	opts := export.DefaultOptions()
	opts.OutputDir = ef.out
	opts.IncludeTexts = ef.includeTexts
	opts.Context = a.cfg.Diff.Context
	if cmd.Flags().Changed("context") {
		opts.Context = ef.context
	}
	if theme := strings.ToLower(a.cfg.UI.Theme); theme == "light" || theme == "dark" {
		opts.Theme = theme
	}
	opts.Now = a.now

	if ef.preview {
		md, err := export.NewMarkdownExporter(opts).Export(c)
		if err != nil {
			return err
		}
		rendered, err := a.renderMarkdown(string(md))
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(a.Out, rendered)
		return err
	}

	exporter, err := export.ForFormat(ef.format, opts)
	if err != nil {
		return &UsageError{Flag: "--format", Value: ef.format, Reason: err.Error()}
	}

	if ef.out == "-" {
		data, err := exporter.Export(c)
		if err != nil {
			return err
		}
		_, err = a.Out.Write(data)
		return err
	}

	path, err := export.ExportToFile(c, exporter, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Out, path)
	return nil
}

// renderMarkdown renders markdown for the output stream with glamour. The
// style follows the colour profile so pipes get plain text.
func (a *App) renderMarkdown(md string) (string, error) {
	profile := colorProfile(a.Out, a.cfg.UI.Color, a.Getenv)

	style := "notty"
	if profile != termenv.Ascii {
		style = themeMode(a.cfg.UI.Theme, profile, a.Out)
	}

	width, _ := terminalSize(a.Out)
	if width == 0 {
		width = previewWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

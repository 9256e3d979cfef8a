// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/storage"
	"github.com/jeranaias/textdiff/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for comparison exporters.
type Exporter interface {
	// Export converts a comparison to the target format and returns the content.
	Export(c *storage.Comparison) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md", ".html").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool

	// Context is the number of unchanged lines around each change in the
	// unified diff sections. Negative includes every line.
	Context int

	// IncludeTexts embeds both input texts in JSON and YAML exports.
	IncludeTexts bool

	// Theme for HTML export ("light" or "dark").
	// Default: "dark"
	Theme string

	// Now stamps exports and file names. Defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir: ".",
		Context:   diff.DefaultContext,
		Theme:     "dark",
	}
}

func (o *Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// =============================================================================
// FORMAT REGISTRY
// =============================================================================

var constructors = map[string]func(*Options) Exporter{
	"json":     func(o *Options) Exporter { return NewJSONExporter(o) },
	"yaml":     func(o *Options) Exporter { return NewYAMLExporter(o) },
	"markdown": func(o *Options) Exporter { return NewMarkdownExporter(o) },
	"html":     func(o *Options) Exporter { return NewHTMLExporter(o) },
}

var aliases = map[string]string{
	"yml": "yaml",
	"md":  "markdown",
	"htm": "html",
}

// Formats returns the supported format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForFormat returns the exporter for a format name or common alias.
func ForFormat(name string, opts *Options) (Exporter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	ctor, ok := constructors[key]
	if !ok {
		return nil, fmt.Errorf("unknown export format %q (supported: %s)", name, strings.Join(Formats(), ", "))
	}
	return ctor(opts), nil
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile exports a comparison to a new file in opts.OutputDir and
// returns its path. The file is written atomically.
func ExportToFile(c *storage.Comparison, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(c)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	timestamp := opts.now().Format("20060102_150405")
	filename := fmt.Sprintf("diff_%s_%s%s",
		sanitizeFilename(c.DisplayTitle()),
		timestamp,
		exporter.FileExtension(),
	)

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	outputPath := filepath.Join(dir, filename)
	if err := util.AtomicWriteFileWithDir(outputPath, content, 0644, 0755); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if opts.OpenAfterExport {
		if err := openFile(outputPath); err != nil {
			return outputPath, fmt.Errorf("open %s: %w", outputPath, err)
		}
	}

	return outputPath, nil
}

// validate rejects comparisons that cannot be exported.
func validate(c *storage.Comparison) error {
	if c == nil {
		return fmt.Errorf("comparison is nil")
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	const maxLen = 50
	runes := []rune(s)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}

	result := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			result = append(result, '-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			result = append(result, '_')
		case r < 32 || r == 127:
			result = append(result, '-')
		default:
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "comparison"
	}
	return string(result)
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// optionsLabel describes the comparison options in words.
func optionsLabel(o diff.Options) string {
	var parts []string
	if o.IgnoreWhitespace {
		parts = append(parts, "ignore whitespace")
	}
	if o.IgnoreCase {
		parts = append(parts, "ignore case")
	}
	if len(parts) == 0 {
		return "exact"
	}
	return strings.Join(parts, ", ")
}

// sideNames returns display names for both sides, with fallbacks.
func sideNames(c *storage.Comparison) (string, string) {
	left, right := c.LeftName, c.RightName
	if left == "" {
		left = "left"
	}
	if right == "" {
		right = "right"
	}
	return left, right
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/storage"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports comparisons to Markdown with a fenced diff block.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a comparison to Markdown format.
func (e *MarkdownExporter) Export(c *storage.Comparison) ([]byte, error) {
	if err := validate(c); err != nil {
		return nil, err
	}

	res := c.Result()
	left, right := sideNames(c)
	title := c.DisplayTitle()
	now := e.options.now()

	var sb strings.Builder

	// YAML frontmatter with metadata
	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(title)))
	sb.WriteString(fmt.Sprintf("left: %s\n", escapeYAML(left)))
	sb.WriteString(fmt.Sprintf("right: %s\n", escapeYAML(right)))
	if !c.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("date: %s\n", c.CreatedAt.Format(time.RFC3339)))
	}
	sb.WriteString(fmt.Sprintf("exported: %s\n", now.Format(time.RFC3339)))
	sb.WriteString("generator: " + Generator + "\n")
	sb.WriteString("---\n\n")

	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(title)))

	sb.WriteString(fmt.Sprintf("- **Left**: `%s`\n", escapeCode(left)))
	sb.WriteString(fmt.Sprintf("- **Right**: `%s`\n", escapeCode(right)))
	sb.WriteString(fmt.Sprintf("- **Options**: %s\n\n", optionsLabel(c.Options)))

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Added | Removed | Unchanged |\n")
	sb.WriteString("|------:|--------:|----------:|\n")
	sb.WriteString(fmt.Sprintf("| %d | %d | %d |\n\n",
		res.Summary.Added, res.Summary.Removed, res.Summary.Unchanged))

	sb.WriteString("## Changes\n\n")
	if res.Identical() {
		sb.WriteString("No differences.\n")
	} else {
		sb.WriteString(fencedDiff(res, left, right, e.options.Context))
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from %s on %s*\n",
		Generator, now.Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// fencedDiff renders the unified diff in a ```diff block. The fence grows
// when the content itself contains backtick runs.
func fencedDiff(res diff.Result, left, right string, context int) string {
	if context < 0 {
		context = len(res.Lines)
	}
	body := diff.FormatUnified(res, left, right, context)

	fence := "```"
	for strings.Contains(body, fence) {
		fence += "`"
	}

	var sb strings.Builder
	sb.WriteString(fence + "diff\n")
	sb.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(fence + "\n")
	return sb.String()
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	// Only escape characters that would break formatting in titles/headings
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// escapeCode makes s safe inside an inline code span.
func escapeCode(s string) string {
	return strings.NewReplacer("`", "'", "\r", " ", "\n", " ").Replace(s)
}

// escapeYAML quotes YAML scalar values that contain special characters.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}

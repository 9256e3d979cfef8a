// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/storage"
)

var fixedNow = time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

func testOptions() *Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return fixedNow }
	return opts
}

func sampleComparison() *storage.Comparison {
	c := storage.NewComparison("old.txt", "new.txt",
		"alpha\nbeta\ngamma", "alpha\nBETA\ngamma\ndelta", diff.Options{})
	c.ID = "c0ffee00-0000-0000-0000-000000000000"
	c.CreatedAt = time.Date(2025, 5, 31, 8, 0, 0, 0, time.UTC)
	return c
}

// =============================================================================
// FORMAT REGISTRY
// =============================================================================

func TestForFormat(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		mime string
	}{
		{"json", ".json", "application/json"},
		{"YAML", ".yaml", "application/yaml"},
		{"yml", ".yaml", "application/yaml"},
		{"markdown", ".md", "text/markdown"},
		{"md", ".md", "text/markdown"},
		{" html ", ".html", "text/html"},
	}
	for _, tt := range tests {
		exp, err := ForFormat(tt.name, nil)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.ext, exp.FileExtension(), tt.name)
		assert.Equal(t, tt.mime, exp.MimeType(), tt.name)
	}

	_, err := ForFormat("pdf", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "html, json, markdown, yaml")
}

func TestExporters_RejectNil(t *testing.T) {
	for _, name := range Formats() {
		exp, err := ForFormat(name, nil)
		require.NoError(t, err)
		_, err = exp.Export(nil)
		assert.Error(t, err, name)
	}
}

// =============================================================================
// JSON AND YAML
// =============================================================================

func TestJSONExporter(t *testing.T) {
	out, err := NewJSONExporter(testOptions()).Export(sampleComparison())
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(out, &doc))

	assert.Equal(t, "old.txt vs new.txt", doc.Title)
	assert.Equal(t, Generator, doc.Generator)
	assert.Equal(t, diff.Summary{Added: 2, Removed: 1, Unchanged: 2}, doc.Summary)
	require.Len(t, doc.Lines, 5)
	assert.Equal(t, diff.KindRemoved, doc.Lines[1].Kind)
	assert.True(t, strings.HasPrefix(doc.Unified, "--- old.txt\n+++ new.txt\n@@ "))
	assert.Empty(t, doc.LeftText, "texts are excluded by default")
	assert.True(t, fixedNow.Equal(doc.Exported))
}

func TestJSONExporter_IncludeTexts(t *testing.T) {
	opts := testOptions()
	opts.IncludeTexts = true
	out, err := NewJSONExporter(opts).Export(sampleComparison())
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "alpha\nbeta\ngamma", doc.LeftText)
	assert.Equal(t, "alpha\nBETA\ngamma\ndelta", doc.RightText)
}

func TestJSONExporter_EmptyLinesArray(t *testing.T) {
	c := storage.NewComparison("a", "b", "  ", "", diff.Options{IgnoreWhitespace: true})
	out, err := NewJSONExporter(testOptions()).Export(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"lines": []`)
}

func TestYAMLExporter(t *testing.T) {
	out, err := NewYAMLExporter(testOptions()).Export(sampleComparison())
	require.NoError(t, err)

	var doc Document
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, diff.Summary{Added: 2, Removed: 1, Unchanged: 2}, doc.Summary)
	require.Len(t, doc.Lines, 5)
	assert.Equal(t, diff.KindAdded, doc.Lines[2].Kind)
	assert.Contains(t, string(out), "kind: removed")
}

// =============================================================================
// MARKDOWN
// =============================================================================

func TestMarkdownExporter(t *testing.T) {
	out, err := NewMarkdownExporter(testOptions()).Export(sampleComparison())
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "---\ntitle: old.txt vs new.txt\n"))
	assert.Contains(t, md, "| 2 | 1 | 2 |")
	assert.Contains(t, md, "```diff\n--- old.txt\n+++ new.txt\n")
	assert.Contains(t, md, "\n-beta\n+BETA\n")
	assert.Contains(t, md, "June 1, 2025 at 10:30 AM")
}

func TestMarkdownExporter_Identical(t *testing.T) {
	c := storage.NewComparison("a", "b", "same", "same", diff.Options{})
	out, err := NewMarkdownExporter(testOptions()).Export(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), "No differences.")
	assert.NotContains(t, string(out), "```diff")
}

func TestMarkdownExporter_FenceGrows(t *testing.T) {
	c := storage.NewComparison("a", "b", "```go", "```python", diff.Options{})
	out, err := NewMarkdownExporter(testOptions()).Export(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), "````diff\n")
}

func TestMarkdownExporter_EscapesTitle(t *testing.T) {
	c := sampleComparison()
	c.Title = "Test\nInjection: malicious"
	out, err := NewMarkdownExporter(testOptions()).Export(c)
	require.NoError(t, err)

	for _, line := range strings.Split(string(out), "\n")[:8] {
		assert.False(t, strings.HasPrefix(line, "Injection:"), "frontmatter injection: %q", line)
	}
	assert.Contains(t, string(out), `title: "Test\nInjection: malicious"`)
}

// =============================================================================
// HTML
// =============================================================================

func TestHTMLExporter(t *testing.T) {
	out, err := NewHTMLExporter(testOptions()).Export(sampleComparison())
	require.NoError(t, err)
	page := string(out)

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, `<body class="dark-theme">`)
	assert.Contains(t, page, `<tr class="line-removed">`)
	assert.Contains(t, page, `<tr class="line-added">`)
	assert.Contains(t, page, "Added: 2")
	// beta/BETA are paired and highlighted.
	assert.Contains(t, page, "<del>beta</del>")
	assert.Contains(t, page, "<ins>BETA</ins>")
}

func TestHTMLExporter_EscapesContent(t *testing.T) {
	c := storage.NewComparison("<b>left</b>", "right", "<script>alert('x')</script>", "ok", diff.Options{})
	out, err := NewHTMLExporter(testOptions()).Export(c)
	require.NoError(t, err)
	page := string(out)

	assert.NotContains(t, page, "<script>alert")
	assert.Contains(t, page, "&lt;script&gt;")
	assert.NotContains(t, page, "<b>left</b>")
}

func TestHTMLExporter_LightTheme(t *testing.T) {
	opts := testOptions()
	opts.Theme = "light"
	out, err := NewHTMLExporter(opts).Export(sampleComparison())
	require.NoError(t, err)
	assert.Contains(t, string(out), `<body class="light-theme">`)
}

func TestRenderTable(t *testing.T) {
	res := diff.Compute("a\nb", "a\nc", diff.Options{})

	withNumbers := RenderTable(res, true)
	assert.Contains(t, withNumbers, `<td class="num">1</td><td class="num">1</td>`)
	assert.Contains(t, withNumbers, `<td class="num">2</td><td class="num"></td>`)

	without := RenderTable(res, false)
	assert.NotContains(t, without, `class="num"`)

	empty := RenderTable(diff.Result{}, true)
	assert.Contains(t, empty, "No lines to compare.")
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

func TestExportToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	opts := testOptions()
	opts.OutputDir = dir

	c := sampleComparison()
	c.Title = "a/b: c?"
	path, err := ExportToFile(c, NewMarkdownExporter(opts), opts)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "diff_a-b-_c-_20250601_103000.md"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "```diff")
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"simple", "simple"},
		{"with space", "with_space"},
		{`a/b\c:d*e?f"g<h>i|j`, "a-b-c-d-e-f-g-h-i-j"},
		{"tab\there", "tab_here"},
		{"bell\a", "bell-"},
		{"", "comparison"},
		{strings.Repeat("x", 80), strings.Repeat("x", 50)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), "sanitizeFilename(%q)", tt.in)
	}
}

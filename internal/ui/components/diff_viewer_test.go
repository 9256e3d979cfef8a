// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/ui/styles"
	"github.com/jeranaias/textdiff/internal/util"
)

func plainViewer(text1, text2 string, opts ViewerOptions) *DiffViewer {
	res := diff.Compute(text1, text2, diff.Options{})
	return NewDiffViewer(res, styles.PlainTheme(), opts)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"inline", ModeInline, false},
		{"", ModeInline, false},
		{"SPLIT", ModeSplit, false},
		{"side-by-side", ModeSplit, false},
		{"columns", ModeInline, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDiffViewer_Inline(t *testing.T) {
	dv := plainViewer("a\nb", "a\nX\nb", DefaultViewerOptions())

	want := []string{
		"  1   1   a",
		"      2 + X",
		"  2   3   b",
	}
	got := dv.Rows()
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d:\n%s", len(got), len(want), dv.Body())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiffViewer_InlineNoLineNumbers(t *testing.T) {
	opts := DefaultViewerOptions()
	opts.LineNumbers = false
	dv := plainViewer("a\nX\nb", "a\nb", opts)

	if got, want := dv.Body(), "  a\n- X\n  b"; got != want {
		t.Errorf("Body() = %q, want %q", got, want)
	}
}

func TestDiffViewer_Summary(t *testing.T) {
	dv := plainViewer("a\nb", "a\nc\nd", DefaultViewerOptions())

	summary := dv.Summary()
	for _, want := range []string{"Added: 2", "Removed: 1", "Unchanged: 1"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary() = %q, missing %q", summary, want)
		}
	}
	if strings.Contains(summary, "No differences") {
		t.Error("differing texts reported as identical")
	}

	same := plainViewer("x", "x", DefaultViewerOptions())
	if !strings.Contains(same.Summary(), "No differences") {
		t.Errorf("identical Summary() = %q", same.Summary())
	}
}

func TestDiffViewer_TitleInHeader(t *testing.T) {
	opts := DefaultViewerOptions()
	opts.Title = "old.txt -> new.txt"
	dv := plainViewer("a", "b", opts)

	lines := strings.Split(dv.View(), "\n")
	if lines[0] != "old.txt -> new.txt" {
		t.Errorf("first line = %q, want title", lines[0])
	}

	opts.HideSummary = true
	opts.Title = ""
	dv.SetOptions(opts)
	if strings.Contains(dv.View(), "Added:") {
		t.Error("HideSummary still rendered the summary")
	}
}

func TestDiffViewer_ContextHunks(t *testing.T) {
	old := strings.Join([]string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}, "\n")
	changed := strings.Replace(old, "5", "five", 1)

	opts := DefaultViewerOptions()
	opts.Context = 1
	dv := plainViewer(old, changed, opts)
	rows := dv.Rows()

	if !strings.HasPrefix(rows[0], "@@ -4,3 +4,3 @@") {
		t.Errorf("first row = %q, want hunk header", rows[0])
	}
	// Header, one context line, removed, added, one context line.
	if len(rows) != 5 {
		t.Errorf("got %d rows, want 5:\n%s", len(rows), dv.Body())
	}
}

func TestDiffViewer_IdenticalWithContext(t *testing.T) {
	opts := DefaultViewerOptions()
	opts.Context = 3
	dv := plainViewer("same\ntext", "same\ntext", opts)

	if got := dv.Body(); got != "No differences" {
		t.Errorf("Body() = %q, want %q", got, "No differences")
	}
	if len(dv.ChangeStarts()) != 0 {
		t.Error("identical diff should have no change starts")
	}
}

func TestDiffViewer_ChangeStarts(t *testing.T) {
	dv := plainViewer("a\nb\nc\nd\ne", "a\nB\nc\nd\nE", DefaultViewerOptions())

	// Rows: a, -b, +B, c, d, -e, +E
	got := dv.ChangeStarts()
	want := []int{1, 5}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ChangeStarts() = %v, want %v", got, want)
	}
}

func TestDiffViewer_Split(t *testing.T) {
	opts := DefaultViewerOptions()
	opts.Mode = ModeSplit
	opts.Width = 40
	dv := plainViewer("same\nold\nonly-left", "same\nnew", opts)

	rows := dv.Rows()
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3:\n%s", len(rows), dv.Body())
	}

	// Every row has the same display width.
	width := util.StringWidth(rows[0])
	for i, row := range rows {
		if w := util.StringWidth(row); w != width {
			t.Errorf("row %d width = %d, want %d: %q", i, w, width, row)
		}
	}

	left, right, ok := strings.Cut(rows[1], "│")
	if !ok {
		t.Fatalf("row %q has no separator", rows[1])
	}
	if !strings.Contains(left, "- old") || !strings.Contains(right, "+ new") {
		t.Errorf("changed row = %q, want old on the left and new on the right", rows[1])
	}

	left, right, _ = strings.Cut(rows[2], "│")
	if !strings.Contains(left, "- only-left") || strings.TrimSpace(right) != "" {
		t.Errorf("unpaired row = %q", rows[2])
	}
}

func TestDiffViewer_SplitTruncatesLongLines(t *testing.T) {
	opts := DefaultViewerOptions()
	opts.Mode = ModeSplit
	opts.Width = 30
	long := strings.Repeat("x", 100)
	dv := plainViewer(long, long+"y", opts)

	for _, row := range dv.Rows() {
		if w := util.StringWidth(row); w > 30 {
			t.Errorf("row is %d columns wide, want at most 30: %q", w, row)
		}
	}
}

func TestDiffViewer_ColouredSpans(t *testing.T) {
	profile := termenv.TrueColor
	theme := styles.NewTheme(styles.ThemeOptions{Output: &bytes.Buffer{}, Profile: &profile, Mode: "dark"})
	opts := DefaultViewerOptions()
	opts.Mode = ModeSplit

	res := diff.Compute("hello world", "hello there", diff.Options{})
	dv := NewDiffViewer(res, theme, opts)

	body := dv.Body()
	if !strings.Contains(body, "\x1b[") {
		t.Fatal("expected ANSI sequences in coloured output")
	}
	if !strings.Contains(body, "world") || !strings.Contains(body, "there") {
		t.Errorf("body lost line content: %q", body)
	}
}

func TestDiffViewer_SetResultRerenders(t *testing.T) {
	dv := plainViewer("a", "a", DefaultViewerOptions())
	before := dv.Body()

	dv.SetResult(diff.Compute("a", "b", diff.Options{}))
	if dv.Body() == before {
		t.Error("Body() did not change after SetResult")
	}
}

func TestHighlighter(t *testing.T) {
	if h := newHighlighter("go", termenv.Ascii, true); h != nil {
		t.Error("Ascii profile should disable highlighting")
	}
	if h := newHighlighter("no-such-language-xyz", termenv.TrueColor, true); h != nil {
		t.Error("unknown language should disable highlighting")
	}

	h := newHighlighter("go", termenv.TrueColor, true)
	if h == nil {
		t.Fatal("expected a Go highlighter")
	}
	out := h.Line("func main() {}")
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("Line() = %q, want ANSI colour", out)
	}
	if strings.Contains(out, "\n") {
		t.Error("Line() must not contain newlines")
	}

	var nilHL *highlighter
	if got := nilHL.Line("x"); got != "x" {
		t.Errorf("nil highlighter Line() = %q", got)
	}
}

func TestLanguageName(t *testing.T) {
	if got := LanguageName("main.go"); got != "Go" {
		t.Errorf("LanguageName(main.go) = %q, want Go", got)
	}
	if got := LanguageName("no-such-language-xyz"); got != "" {
		t.Errorf("LanguageName(unknown) = %q, want empty", got)
	}
}

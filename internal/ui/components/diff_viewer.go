// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/ui/styles"
	"github.com/jeranaias/textdiff/internal/util"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Mode selects the diff layout.
type Mode int

const (
	// ModeInline shows one line per row with +/- markers.
	ModeInline Mode = iota
	// ModeSplit shows the old text on the left and the new text on the right.
	ModeSplit
)

// String returns the mode name used in config and flags.
func (m Mode) String() string {
	if m == ModeSplit {
		return "split"
	}
	return "inline"
}

// ParseMode parses "inline" or "split".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inline", "unified":
		return ModeInline, nil
	case "split", "side-by-side":
		return ModeSplit, nil
	default:
		return ModeInline, fmt.Errorf("unknown view mode %q (want inline or split)", s)
	}
}

// ViewerOptions controls how a DiffViewer renders.
type ViewerOptions struct {
	Mode        Mode
	LineNumbers bool

	// Context is the number of unchanged lines kept around each change.
	// Negative shows every line.
	Context int

	// Width is the total width in columns. Zero means unbounded in inline mode
	// and 120 columns in split mode.
	Width int

	// Language enables syntax highlighting of unchanged lines. Accepts a
	// chroma lexer name or a file name.
	Language string

	Title       string
	TabWidth    int
	HideSummary bool
}

// DefaultViewerOptions returns inline mode with line numbers and every line
// shown.
func DefaultViewerOptions() ViewerOptions {
	return ViewerOptions{
		Mode:        ModeInline,
		LineNumbers: true,
		Context:     -1,
		TabWidth:    4,
	}
}

const defaultSplitWidth = 120

// =============================================================================
// DIFF VIEWER
// =============================================================================

// DiffViewer renders a diff.Result as styled terminal text.
type DiffViewer struct {
	result diff.Result
	theme  *styles.Theme
	opts   ViewerOptions
	hl     *highlighter

	// Rendered body, rebuilt lazily.
	rows         []string
	changeStarts []int
	dirty        bool
}

// NewDiffViewer creates a viewer for res. A nil theme renders plain text.
func NewDiffViewer(res diff.Result, theme *styles.Theme, opts ViewerOptions) *DiffViewer {
	if theme == nil {
		theme = styles.PlainTheme()
	}
	dv := &DiffViewer{result: res, theme: theme}
	dv.SetOptions(opts)
	return dv
}

// SetResult replaces the displayed result.
func (dv *DiffViewer) SetResult(res diff.Result) {
	dv.result = res
	dv.dirty = true
}

// Result returns the displayed result.
func (dv *DiffViewer) Result() diff.Result {
	return dv.result
}

// SetOptions replaces the rendering options.
func (dv *DiffViewer) SetOptions(opts ViewerOptions) {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	if opts.Language != dv.opts.Language || dv.hl == nil {
		dv.hl = newHighlighter(opts.Language, dv.theme.ColorProfile, dv.theme.IsDark)
	}
	dv.opts = opts
	dv.dirty = true
}

// Options returns the rendering options.
func (dv *DiffViewer) Options() ViewerOptions {
	return dv.opts
}

// SetWidth changes the total width.
func (dv *DiffViewer) SetWidth(width int) {
	if dv.opts.Width != width {
		dv.opts.Width = width
		dv.dirty = true
	}
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the header followed by the body.
func (dv *DiffViewer) View() string {
	var sb strings.Builder
	if header := dv.Header(); header != "" {
		sb.WriteString(header)
		sb.WriteString("\n")
	}
	sb.WriteString(dv.Body())
	return sb.String()
}

// Header renders the title and summary lines.
func (dv *DiffViewer) Header() string {
	var lines []string
	if dv.opts.Title != "" {
		lines = append(lines, dv.theme.Title.Render(dv.opts.Title))
	}
	if !dv.opts.HideSummary {
		lines = append(lines, dv.Summary())
	}
	return strings.Join(lines, "\n")
}

// Summary renders the added/removed/unchanged counts.
func (dv *DiffViewer) Summary() string {
	s := dv.result.Summary
	t := dv.theme

	counts := strings.Join([]string{
		t.CountAdded.Render("Added: " + strconv.Itoa(s.Added)),
		t.CountRemoved.Render("Removed: " + strconv.Itoa(s.Removed)),
		t.CountUnchanged.Render("Unchanged: " + strconv.Itoa(s.Unchanged)),
	}, "  ")

	if dv.result.Identical() {
		return counts + "  " + t.RenderSuccess("No differences")
	}
	return counts
}

// Body renders the diff rows.
func (dv *DiffViewer) Body() string {
	return strings.Join(dv.Rows(), "\n")
}

// Rows returns the rendered body, one string per terminal row.
func (dv *DiffViewer) Rows() []string {
	dv.render()
	return dv.rows
}

// ChangeStarts returns the indices into Rows of the first row of every run of
// changed lines, in order.
func (dv *DiffViewer) ChangeStarts() []int {
	dv.render()
	return dv.changeStarts
}

func (dv *DiffViewer) render() {
	if !dv.dirty && dv.rows != nil {
		return
	}
	dv.rows = dv.rows[:0]
	dv.changeStarts = dv.changeStarts[:0]
	dv.dirty = false

	if len(dv.result.Lines) == 0 || (dv.result.Identical() && dv.opts.Context >= 0) {
		dv.rows = append(dv.rows, dv.theme.Empty.Render("No differences"))
		return
	}

	g := newGutter(dv.result, dv.opts.LineNumbers)

	if dv.opts.Context < 0 {
		dv.renderLines(dv.result.Lines, g)
		return
	}
	for _, h := range dv.result.Hunks(dv.opts.Context) {
		dv.rows = append(dv.rows, dv.theme.HunkHeader.Render(h.Header()))
		dv.renderLines(h.Lines, g)
	}
}

func (dv *DiffViewer) renderLines(lines []diff.Line, g gutter) {
	if dv.opts.Mode == ModeSplit {
		dv.renderSplit(diff.Result{Lines: lines}.Pairs(), g)
		return
	}
	dv.renderInline(lines, g)
}

// markChange records a change-run start when row follows an unchanged row.
func (dv *DiffViewer) markChange(changed, prevChanged bool) {
	if changed && !prevChanged {
		dv.changeStarts = append(dv.changeStarts, len(dv.rows))
	}
}

// -----------------------------------------------------------------------------
// Inline
// -----------------------------------------------------------------------------

func (dv *DiffViewer) renderInline(lines []diff.Line, g gutter) {
	contentWidth := 0
	if dv.opts.Width > 0 {
		contentWidth = max(1, dv.opts.Width-g.inlineWidth()-2)
	}

	prevChanged := false
	for _, line := range lines {
		changed := line.Kind != diff.KindUnchanged
		dv.markChange(changed, prevChanged)
		prevChanged = changed

		var sb strings.Builder
		sb.WriteString(g.inline(dv.theme, line))

		text := util.ExpandTabs(line.Content, dv.opts.TabWidth)
		if contentWidth > 0 {
			text = util.TruncateWidth(text, contentWidth)
		}
		sb.WriteString(dv.styleLine(line.Kind, line.Kind.Prefix()+" "+text, text))
		dv.rows = append(dv.rows, sb.String())
	}
}

// styleLine renders a marker-prefixed line in the colour of its kind.
// Unchanged lines are syntax highlighted when a highlighter is set.
func (dv *DiffViewer) styleLine(kind diff.Kind, full, text string) string {
	switch kind {
	case diff.KindAdded:
		return dv.theme.Added.Render(full)
	case diff.KindRemoved:
		return dv.theme.Removed.Render(full)
	default:
		if dv.hl != nil {
			return "  " + dv.hl.Line(text)
		}
		return dv.theme.Unchanged.Render(full)
	}
}

// -----------------------------------------------------------------------------
// Split
// -----------------------------------------------------------------------------

func (dv *DiffViewer) renderSplit(pairs []diff.Pair, g gutter) {
	width := dv.opts.Width
	if width <= 0 {
		width = defaultSplitWidth
	}
	sep := dv.theme.Separator.Render(" │ ")
	// Each side: gutter, marker and space, then content.
	colWidth := max(4, (width-3)/2-g.sideWidth()-2)

	prevChanged := false
	for _, p := range pairs {
		changed := p.Changed()
		dv.markChange(changed, prevChanged)
		prevChanged = changed

		var spans []diff.Span
		if p.Left != nil && p.Right != nil && p.Left.Kind == diff.KindRemoved {
			spans = diff.Spans(p.Left.Content, p.Right.Content)
		}

		left := dv.splitCell(p.Left, g.side(dv.theme, p.Left, true), colWidth, diff.OldSide(spans))
		right := dv.splitCell(p.Right, g.side(dv.theme, p.Right, false), colWidth, diff.NewSide(spans))
		dv.rows = append(dv.rows, left+sep+right)
	}
}

// splitCell renders one side of a split row, padded to exactly colWidth
// content columns.
func (dv *DiffViewer) splitCell(line *diff.Line, gutterText string, colWidth int, spans []diff.Span) string {
	if line == nil {
		return gutterText + strings.Repeat(" ", colWidth+2)
	}

	text := util.ExpandTabs(line.Content, dv.opts.TabWidth)
	prefix := line.Kind.Prefix() + " "

	// Fragment highlighting only when the whole line fits.
	if len(spans) > 0 && util.StringWidth(text) <= colWidth && dv.theme.HasColor() {
		lineStyle, spanStyle := dv.theme.Removed, dv.theme.SpanDeleted
		if line.Kind == diff.KindAdded {
			lineStyle, spanStyle = dv.theme.Added, dv.theme.SpanInserted
		}

		var sb strings.Builder
		sb.WriteString(lineStyle.Render(prefix))
		for _, s := range spans {
			frag := util.ExpandTabs(s.Text, dv.opts.TabWidth)
			if s.Op == diff.SpanEqual {
				sb.WriteString(lineStyle.Render(frag))
			} else {
				sb.WriteString(spanStyle.Render(frag))
			}
		}
		pad := colWidth - util.StringWidth(text)
		return gutterText + sb.String() + strings.Repeat(" ", pad)
	}

	text = util.PadWidth(text, colWidth)
	return gutterText + dv.styleLine(line.Kind, prefix+text, text)
}

// =============================================================================
// GUTTER
// =============================================================================

// gutter formats line number columns sized to the largest number shown.
type gutter struct {
	enabled bool
	digits  int
}

func newGutter(res diff.Result, enabled bool) gutter {
	maxNum := 0
	for _, l := range res.Lines {
		maxNum = max(maxNum, l.OldLine, l.NewLine)
	}
	return gutter{enabled: enabled, digits: max(3, len(strconv.Itoa(maxNum)))}
}

// inlineWidth is the width of the inline gutter: two number columns.
func (g gutter) inlineWidth() int {
	if !g.enabled {
		return 0
	}
	return 2*g.digits + 2
}

// sideWidth is the width of one split-side gutter.
func (g gutter) sideWidth() int {
	if !g.enabled {
		return 0
	}
	return g.digits + 1
}

func (g gutter) number(n int) string {
	if n == 0 {
		return strings.Repeat(" ", g.digits)
	}
	return fmt.Sprintf("%*d", g.digits, n)
}

func (g gutter) inline(t *styles.Theme, line diff.Line) string {
	if !g.enabled {
		return ""
	}
	return t.Gutter.Render(g.number(line.OldLine) + " " + g.number(line.NewLine) + " ")
}

func (g gutter) side(t *styles.Theme, line *diff.Line, left bool) string {
	if !g.enabled {
		return ""
	}
	n := 0
	if line != nil {
		n = line.NewLine
		if left {
			n = line.OldLine
		}
	}
	return t.Gutter.Render(g.number(n) + " ")
}

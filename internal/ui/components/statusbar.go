// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar is the bottom line of the interactive viewer.
type StatusBar struct {
	Mode             Mode
	IgnoreWhitespace bool
	IgnoreCase       bool
	Context          int // negative means every line is shown
	Summary          diff.Summary

	// Scroll position in rows.
	Offset int
	Total  int

	// Message is a transient note such as "Copied to clipboard".
	Message      string
	MessageError bool

	Width         int
	ShowShortcuts bool
	theme         *styles.Theme
}

// NewStatusBar creates a status bar. A nil theme renders plain text.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	if theme == nil {
		theme = styles.PlainTheme()
	}
	return &StatusBar{
		Mode:          ModeInline,
		Context:       -1,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetMessage shows a transient message until ClearMessage is called.
func (s *StatusBar) SetMessage(msg string, isError bool) {
	s.Message = msg
	s.MessageError = isError
}

// ClearMessage removes the transient message.
func (s *StatusBar) ClearMessage() {
	s.Message = ""
	s.MessageError = false
}

// SetPosition updates the scroll position.
func (s *StatusBar) SetPosition(offset, total int) {
	s.Offset = offset
	s.Total = total
}

// View renders the status bar at the configured width.
func (s *StatusBar) View() string {
	var content string
	switch {
	case s.Width < 60:
		content = s.viewNarrow()
	case s.Width < 100:
		content = s.viewMedium()
	default:
		content = s.viewWide()
	}

	style := s.theme.StatusBar
	if s.Width > 0 {
		style = style.Width(s.Width).MaxWidth(s.Width)
	}
	return style.Render(content)
}

// viewNarrow shows the mode letter, the counts and the position.
func (s *StatusBar) viewNarrow() string {
	parts := []string{
		strings.ToUpper(s.Mode.String()[:1]),
		s.renderCounts(),
		s.renderPosition(),
	}
	if s.Message != "" {
		parts = append(parts, s.renderMessage())
	}
	return strings.Join(parts, " ")
}

func (s *StatusBar) viewMedium() string {
	sep := s.separator()
	parts := []string{
		strings.ToUpper(s.Mode.String()),
		s.renderOptions(),
		s.renderCounts(),
		s.renderPosition(),
	}
	if s.Message != "" {
		parts = append(parts, s.renderMessage())
	}
	return strings.Join(parts, sep)
}

// viewWide adds shortcuts on the right.
func (s *StatusBar) viewWide() string {
	left := s.viewMedium()
	if !s.ShowShortcuts {
		return left
	}

	right := s.renderShortcuts()
	inner := s.Width - s.theme.StatusBar.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (s *StatusBar) separator() string {
	return " | "
}

// renderOptions lists the active comparison options.
func (s *StatusBar) renderOptions() string {
	var flags []string
	if s.IgnoreWhitespace {
		flags = append(flags, "-w")
	}
	if s.IgnoreCase {
		flags = append(flags, "-i")
	}
	if s.Context >= 0 {
		flags = append(flags, "U"+strconv.Itoa(s.Context))
	} else {
		flags = append(flags, "all")
	}
	return strings.Join(flags, " ")
}

func (s *StatusBar) renderCounts() string {
	return "+" + fmtNumber(s.Summary.Added) + " -" + fmtNumber(s.Summary.Removed)
}

func (s *StatusBar) renderPosition() string {
	if s.Total <= 0 {
		return "0/0"
	}
	line := min(s.Offset+1, s.Total)
	var frac float64
	if s.Total > 1 {
		frac = float64(s.Offset) / float64(s.Total-1)
	}
	return fmtNumber(line) + "/" + fmtNumber(s.Total) + " " + fmtPercent(frac)
}

func (s *StatusBar) renderMessage() string {
	if s.MessageError {
		return styles.StatusIndicators.Error + " " + s.Message
	}
	return styles.StatusIndicators.Success + " " + s.Message
}

func (s *StatusBar) renderShortcuts() string {
	t := s.theme
	shortcuts := []string{
		t.ShortcutKey.Render("]/[") + t.ShortcutDesc.Render(" next/prev"),
		t.ShortcutKey.Render("s") + t.ShortcutDesc.Render(" split"),
		t.ShortcutKey.Render("y") + t.ShortcutDesc.Render(" copy"),
		t.ShortcutKey.Render("?") + t.ShortcutDesc.Render(" help"),
	}
	return strings.Join(shortcuts, "  ")
}

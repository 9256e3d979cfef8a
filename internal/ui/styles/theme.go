// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styles used to render diffs. Every style comes from the
// theme's own renderer, so a theme built for a pipe renders plain text even
// when stdout is a terminal.
type Theme struct {
	Renderer     *lipgloss.Renderer
	IsDark       bool
	ColorProfile termenv.Profile

	// Frame
	Title     lipgloss.Style
	Separator lipgloss.Style

	// Lines
	Added        lipgloss.Style
	Removed      lipgloss.Style
	Unchanged    lipgloss.Style
	Gutter       lipgloss.Style
	HunkHeader   lipgloss.Style
	SpanInserted lipgloss.Style
	SpanDeleted  lipgloss.Style
	Empty        lipgloss.Style

	// Summary
	CountAdded     lipgloss.Style
	CountRemoved   lipgloss.Style
	CountUnchanged lipgloss.Style
	Identical      lipgloss.Style

	// Status bar and help
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Error        lipgloss.Style
}

// ThemeOptions selects the output and colour handling of a theme.
type ThemeOptions struct {
	// Output is where rendered text goes. Used for colour detection when
	// Profile is not set.
	Output io.Writer

	// Profile forces a colour profile. termenv.Ascii disables colour.
	Profile *termenv.Profile

	// Mode is "auto", "dark" or "light".
	Mode string
}

// NewTheme creates a theme for the given output.
func NewTheme(opts ThemeOptions) *Theme {
	var r *lipgloss.Renderer
	if opts.Output != nil {
		r = lipgloss.NewRenderer(opts.Output)
	} else {
		r = lipgloss.DefaultRenderer()
	}
	if opts.Profile != nil {
		r.SetColorProfile(*opts.Profile)
	}

	switch strings.ToLower(opts.Mode) {
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	}

	t := &Theme{
		Renderer:     r,
		IsDark:       r.HasDarkBackground(),
		ColorProfile: r.ColorProfile(),
	}
	t.initStyles()
	return t
}

// PlainTheme returns a theme that never emits escape sequences.
func PlainTheme() *Theme {
	profile := termenv.Ascii
	return NewTheme(ThemeOptions{Output: io.Discard, Profile: &profile, Mode: "dark"})
}

// HasColor reports whether the theme emits colour.
func (t *Theme) HasColor() bool {
	return t.ColorProfile != termenv.Ascii
}

func (t *Theme) initStyles() {
	r := t.Renderer

	t.Title = r.NewStyle().Bold(true).Foreground(Purple)
	t.Separator = r.NewStyle().Foreground(Overlay)

	t.Added = r.NewStyle().Foreground(Emerald)
	t.Removed = r.NewStyle().Foreground(Rose)
	t.Unchanged = r.NewStyle().Foreground(TextPrimary)
	t.Gutter = r.NewStyle().Foreground(TextMuted)
	t.HunkHeader = r.NewStyle().Foreground(Cyan).Bold(true)
	t.SpanInserted = r.NewStyle().Foreground(Emerald).Background(EmeraldDeep).Bold(true)
	t.SpanDeleted = r.NewStyle().Foreground(Rose).Background(RoseDeep).Bold(true)
	t.Empty = r.NewStyle().Foreground(TextMuted).Faint(true)

	t.CountAdded = r.NewStyle().Foreground(Emerald).Bold(true)
	t.CountRemoved = r.NewStyle().Foreground(Rose).Bold(true)
	t.CountUnchanged = r.NewStyle().Foreground(Amber)
	t.Identical = r.NewStyle().Foreground(Emerald).Bold(true)

	t.StatusBar = r.NewStyle().Foreground(TextSecondary).Background(SurfaceDim).Padding(0, 1)
	t.ShortcutKey = r.NewStyle().Foreground(Cyan).Bold(true)
	t.ShortcutDesc = r.NewStyle().Foreground(TextMuted)
	t.Error = r.NewStyle().Foreground(Rose).Bold(true)
}

// RenderError renders an error message with its ASCII indicator.
func (t *Theme) RenderError(message string) string {
	return t.Error.Render(StatusIndicators.Error + " " + message)
}

// RenderSuccess renders a success message with its ASCII indicator.
func (t *Theme) RenderSuccess(message string) string {
	return t.Identical.Render(StatusIndicators.Success + " " + message)
}

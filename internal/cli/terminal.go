// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the narrowest width used for rendering
	MinTerminalWidth = 40
)

// fileDescriptor is implemented by *os.File.
type fileDescriptor interface {
	Fd() uintptr
}

// isTerminal reports whether w is a terminal.
func isTerminal(w interface{}) bool {
	f, ok := w.(fileDescriptor)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalSize returns the size of the terminal behind w, or 0, 0.
func terminalSize(w io.Writer) (int, int) {
	f, ok := w.(fileDescriptor)
	if !ok {
		return 0, 0
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0, 0
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	return width, height
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

// colorProfile picks the colour profile for w.
//
// mode is "always", "never" or "auto". In auto mode NO_COLOR disables colour
// (https://no-color.org/), FORCE_COLOR enables it, and otherwise colour is
// used only when w is a terminal.
func colorProfile(w io.Writer, mode string, getenv func(string) string) termenv.Profile {
	switch strings.ToLower(mode) {
	case "never":
		return termenv.Ascii
	case "always":
		return forcedProfile(w)
	}

	if getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if getenv("FORCE_COLOR") != "" {
		return forcedProfile(w)
	}
	if !isTerminal(w) {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).ColorProfile()
}

// forcedProfile detects the best profile as if w were a terminal, with at
// least 256 colours.
func forcedProfile(w io.Writer) termenv.Profile {
	p := termenv.NewOutput(w, termenv.WithTTY(true)).ColorProfile()
	if p > termenv.ANSI256 {
		return termenv.ANSI256
	}
	return p
}

// themeMode maps ui.theme to a styles mode, asking the terminal for its
// background only when colour is on and the theme is "auto".
func themeMode(setting string, profile termenv.Profile, w io.Writer) string {
	switch strings.ToLower(setting) {
	case "dark", "light":
		return strings.ToLower(setting)
	}
	if profile == termenv.Ascii || !isTerminal(w) {
		return "dark"
	}
	if termenv.NewOutput(w).HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// osGetenv is os.Getenv, replaceable in tests.
var osGetenv = os.Getenv

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the colour palette and themes used to render diffs.

# Color System (colors.go)

All colours are lipgloss AdaptiveColor values that pick a light or dark
variant from the terminal background:

	Emerald / EmeraldDeep - added lines and inserted fragments
	Rose / RoseDeep       - removed lines and deleted fragments
	TextPrimary           - unchanged lines
	TextMuted             - line numbers and hints
	Purple, Cyan, Amber   - titles, hunk headers, counts

# Theme System (theme.go)

A Theme owns a lipgloss.Renderer. Its colour profile is detected from the
output writer or forced by the caller:

	theme := styles.NewTheme(styles.ThemeOptions{Output: os.Stdout})

	// Never colour, e.g. for tests and golden output
	plain := styles.PlainTheme()
*/
package styles

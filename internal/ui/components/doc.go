// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components renders diff results for the terminal.

# Components

DiffViewer (diff_viewer.go) - Inline and split rendering of a diff.Result with
line number gutters, hunk headers, intra-line highlights and optional syntax
highlighting of unchanged lines.

StatusBar (statusbar.go) - Bottom bar for the interactive viewer: mode,
comparison options, counts, scroll position and transient messages.

ErrorPatternMatcher (error_patterns.go) - Maps error text to a title and
hints; the CLI prints them under "Error: ...".

Suggest (fuzzy.go) - Fuzzy "did you mean" matching, used for config keys.

Every rendering component takes a *styles.Theme. A nil theme falls back to
styles.PlainTheme, which renders without escape sequences and is what the
tests use.

# Usage

	res := diff.Compute(left, right, diff.Options{})
	dv := components.NewDiffViewer(res, theme, components.DefaultViewerOptions())
	fmt.Println(dv.View())
*/
package components

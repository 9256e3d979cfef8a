// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the textdiff command line with cobra.
//
// # Commands
//
//	textdiff [flags] <left> <right>   compare two files ("-" reads stdin)
//	textdiff compare <left> <right>   the same, as a subcommand
//	textdiff tui <left> <right>       interactive viewer (--watch to follow edits)
//	textdiff serve [--addr ADDR]      HTTP form and JSON API
//	textdiff watch <left> <right>     re-print on every change
//	textdiff export <left> <right>    JSON, YAML, Markdown or HTML file
//	textdiff history list|show|delete|export|prune
//	textdiff config list|get|set|path|init
//	textdiff sample                   compare the built-in sample pair
//	textdiff version
//
// # Exit Status
//
// Comparisons follow diff(1): 0 when the inputs are identical, 1 when they
// differ, 2 on any error. Errors are printed once, as "Error: ...", by
// Execute.
//
// # Settings
//
// Flags override the config file, which overrides the defaults. Colour
// follows --color or ui.color; in auto mode NO_COLOR and FORCE_COLOR are
// honoured and colour is used only on terminals.
package cli

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across textdiff.
//
// # Key Functions
//
// Display width (terminal columns, via go-runewidth):
//   - StringWidth, TruncateWidth, PadWidth: column-accurate sizing for
//     side-by-side rendering
//   - ExpandTabs: replace tabs so widths can be measured
//   - TruncateRunes: UTF-8 safe truncation by character count
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync and rename
//
// # Usage
//
//	cell := util.PadWidth(util.ExpandTabs(line, 4), 40)
//
//	err := util.AtomicWriteFile(path, data, 0600)
package util

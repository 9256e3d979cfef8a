// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff computes line-level differences between two texts.
//
// The engine builds a longest-common-subsequence table over the lines of both
// inputs, walks it back from the bottom-right corner and classifies every line
// as unchanged, added or removed. Each call returns a fresh Result; nothing is
// cached or shared, so Compute may be called from any number of goroutines.
//
// # Key Types
//
//   - Kind: classification of a line (unchanged, added, removed)
//   - Options: comparison options (ignore whitespace, ignore case)
//   - Line: a classified line with its left/right line numbers
//   - Summary: added/removed/unchanged tallies
//   - Result: the summary plus the ordered lines
//   - Hunk: a group of changes with surrounding context
//   - Pair: a side-by-side row for split rendering
//
// # Usage
//
// Compare two texts:
//
//	res := diff.Compute(oldText, newText, diff.Options{IgnoreCase: true})
//	fmt.Println(res.Summary)
//
// Produce a unified diff:
//
//	fmt.Print(diff.FormatUnified(res, "a.txt", "b.txt", 3))
//
// # Splitting
//
// Texts are split on "\n" only, so an empty text is a single empty line and a
// trailing newline yields a trailing empty line. A "\r" stays part of its line.
//
// # Cost
//
// The table is (m+1)*(n+1) integers for m and n input lines. Compute does not
// bound it; callers that accept untrusted input should check CellCount first.
package diff

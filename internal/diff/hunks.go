// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"fmt"
	"strings"
)

// =============================================================================
// HUNKS
// =============================================================================

// DefaultContext is the number of unchanged lines shown around each change in
// unified output.
const DefaultContext = 3

// Hunk is a contiguous section of a result: a run of changes plus the
// unchanged lines around it.
type Hunk struct {
	OldStart int    // First left line number (or the line before, if OldCount is 0)
	OldCount int    // Number of left lines in the hunk
	NewStart int    // First right line number (or the line before, if NewCount is 0)
	NewCount int    // Number of right lines in the hunk
	Lines    []Line // The lines of the hunk, in order
}

// Header returns the "@@ -a,b +c,d @@" header of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// Hunks groups the lines of r into hunks with context unchanged lines before
// and after every change. Changes separated by at most 2*context unchanged
// lines share a hunk. A negative context yields a single hunk holding every
// line. An identical result has no hunks unless context is negative.
func (r Result) Hunks(context int) []Hunk {
	if len(r.Lines) == 0 {
		return nil
	}
	if context < 0 {
		return []Hunk{r.hunk(0, len(r.Lines))}
	}

	var hunks []Hunk
	start, end := -1, -1 // current hunk covers [start, end)

	for i, line := range r.Lines {
		if line.Kind == KindUnchanged {
			continue
		}
		lo := max(0, i-context)
		hi := min(len(r.Lines), i+context+1)
		if start >= 0 && lo <= end {
			end = hi
			continue
		}
		if start >= 0 {
			hunks = append(hunks, r.hunk(start, end))
		}
		start, end = lo, hi
	}
	if start >= 0 {
		hunks = append(hunks, r.hunk(start, end))
	}

	return hunks
}

// hunk builds the hunk covering r.Lines[start:end].
func (r Result) hunk(start, end int) Hunk {
	var oldBefore, newBefore int
	for _, line := range r.Lines[:start] {
		if line.Kind != KindAdded {
			oldBefore++
		}
		if line.Kind != KindRemoved {
			newBefore++
		}
	}

	h := Hunk{Lines: r.Lines[start:end:end]}
	for _, line := range h.Lines {
		if line.Kind != KindAdded {
			h.OldCount++
		}
		if line.Kind != KindRemoved {
			h.NewCount++
		}
	}

	h.OldStart = oldBefore
	if h.OldCount > 0 {
		h.OldStart++
	}
	h.NewStart = newBefore
	if h.NewCount > 0 {
		h.NewStart++
	}
	return h
}

// =============================================================================
// UNIFIED DIFF FORMAT
// =============================================================================

// FormatUnified renders r as a unified diff. Identical results render as the
// empty string.
func FormatUnified(r Result, oldName, newName string, context int) string {
	hunks := r.Hunks(context)
	if r.Identical() || len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n", oldName)
	fmt.Fprintf(&sb, "+++ %s\n", newName)

	for _, h := range hunks {
		sb.WriteString(h.Header())
		sb.WriteString("\n")
		for _, line := range h.Lines {
			sb.WriteString(line.Kind.Prefix())
			sb.WriteString(line.Content)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

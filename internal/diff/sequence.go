// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// sequence holds the lines of one input as comparison keys plus the original
// lines used for display. Both slices always have the same length.
type sequence struct {
	keys    []string
	display []string
}

// Len returns the number of lines in the sequence.
func (s sequence) Len() int {
	return len(s.keys)
}

// SplitLines splits text on "\n". An empty text yields one empty line.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// newSequence splits and normalizes text according to opts.
func newSequence(text string, opts Options) sequence {
	lines := SplitLines(text)

	seq := sequence{
		keys:    make([]string, 0, len(lines)),
		display: make([]string, 0, len(lines)),
	}

	// Caser carries state and is not safe for concurrent use; one per call.
	var lower cases.Caser
	if opts.IgnoreCase {
		lower = cases.Lower(language.Und)
	}

	for _, line := range lines {
		key := line
		if opts.IgnoreWhitespace {
			key = strings.TrimSpace(line)
			if key == "" {
				continue
			}
		}
		if opts.IgnoreCase {
			key = lower.String(key)
		}
		seq.keys = append(seq.keys, key)
		seq.display = append(seq.display, line)
	}

	return seq
}

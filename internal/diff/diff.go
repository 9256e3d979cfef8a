// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"fmt"
	"strings"
)

// =============================================================================
// KIND
// =============================================================================

// Kind classifies a line of a diff.
type Kind int

const (
	// KindUnchanged marks a line present on both sides.
	KindUnchanged Kind = iota
	// KindAdded marks a line present only in the second text.
	KindAdded
	// KindRemoved marks a line present only in the first text.
	KindRemoved
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnchanged:
		return "unchanged"
	case KindAdded:
		return "added"
	case KindRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Prefix returns the unified-diff marker for the kind.
func (k Kind) Prefix() string {
	switch k {
	case KindAdded:
		return "+"
	case KindRemoved:
		return "-"
	default:
		return " "
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unchanged":
		return KindUnchanged, nil
	case "added":
		return KindAdded, nil
	case "removed":
		return KindRemoved, nil
	default:
		return KindUnchanged, fmt.Errorf("unknown line kind %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so kinds serialize by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls how lines are compared.
type Options struct {
	// IgnoreWhitespace compares trimmed lines and skips lines that are blank
	// after trimming. Displayed content keeps the original line.
	IgnoreWhitespace bool `json:"ignore_whitespace" yaml:"ignore_whitespace" toml:"ignore_whitespace"`

	// IgnoreCase compares lines case-insensitively.
	IgnoreCase bool `json:"ignore_case" yaml:"ignore_case" toml:"ignore_case"`
}

// =============================================================================
// RESULT TYPES
// =============================================================================

// Entry is one step of the backtrace, before numbering.
type Entry struct {
	Kind    Kind
	Content string
}

// Line is a classified, numbered line of the result.
type Line struct {
	Kind Kind `json:"kind" yaml:"kind"`

	// LineNumber is the position on the side the line comes from: the left
	// side for unchanged and removed lines, the right side for added lines.
	LineNumber int `json:"line_number" yaml:"line_number"`

	OldLine int `json:"old_line,omitempty" yaml:"old_line,omitempty"` // 0 for added lines
	NewLine int `json:"new_line,omitempty" yaml:"new_line,omitempty"` // 0 for removed lines

	Content string `json:"content" yaml:"content"`
}

// Summary tallies the lines of a result by kind.
type Summary struct {
	Added     int `json:"added" yaml:"added"`
	Removed   int `json:"removed" yaml:"removed"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
}

// Total returns the number of lines the summary covers.
func (s Summary) Total() int {
	return s.Added + s.Removed + s.Unchanged
}

// Changed returns the number of added and removed lines.
func (s Summary) Changed() int {
	return s.Added + s.Removed
}

// String renders the summary as "+A -R =U".
func (s Summary) String() string {
	return fmt.Sprintf("+%d -%d =%d", s.Added, s.Removed, s.Unchanged)
}

// Result is the outcome of a comparison.
type Result struct {
	Summary Summary `json:"summary" yaml:"summary"`
	Lines   []Line  `json:"lines" yaml:"lines"`
}

// Identical reports whether the compared sequences had no differences.
func (r Result) Identical() bool {
	return r.Summary.Changed() == 0
}

// =============================================================================
// COMPUTATION
// =============================================================================

// Compute compares text1 against text2 line by line.
//
// Compute never fails: empty texts are a single empty line each, and the result
// always satisfies Summary.Total() == len(Lines).
func Compute(text1, text2 string, opts Options) Result {
	left := newSequence(text1, opts)
	right := newSequence(text2, opts)

	table := BuildTable(left.keys, right.keys)
	entries := backtrack(table, left, right)

	return number(entries)
}

// CellCount returns the number of table cells Compute would allocate for the
// given inputs. Use it to reject inputs that are too large before comparing.
func CellCount(text1, text2 string, opts Options) int {
	m := newSequence(text1, opts).Len()
	n := newSequence(text2, opts).Len()
	return (m + 1) * (n + 1)
}

// backtrack walks the table from (m, n) to (0, 0) and returns the entries in
// head-to-tail order. When both moves keep the LCS length, it steps through
// the second sequence first, so within a change run removals come before
// additions in the final order.
func backtrack(table Table, left, right sequence) []Entry {
	i, j := left.Len(), right.Len()
	entries := make([]Entry, 0, i+j)

	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && left.keys[i-1] == right.keys[j-1]:
			entries = append(entries, Entry{Kind: KindUnchanged, Content: left.display[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || table[i][j-1] >= table[i-1][j]):
			entries = append(entries, Entry{Kind: KindAdded, Content: right.display[j-1]})
			j--
		default:
			entries = append(entries, Entry{Kind: KindRemoved, Content: left.display[i-1]})
			i--
		}
	}

	// Built tail to head.
	for a, b := 0, len(entries)-1; a < b; a, b = a+1, b-1 {
		entries[a], entries[b] = entries[b], entries[a]
	}
	return entries
}

// number assigns left/right line numbers and tallies the summary.
func number(entries []Entry) Result {
	res := Result{Lines: make([]Line, 0, len(entries))}
	oldLine, newLine := 1, 1

	for _, e := range entries {
		line := Line{Kind: e.Kind, Content: e.Content}
		switch e.Kind {
		case KindUnchanged:
			line.LineNumber = oldLine
			line.OldLine = oldLine
			line.NewLine = newLine
			oldLine++
			newLine++
			res.Summary.Unchanged++
		case KindAdded:
			line.LineNumber = newLine
			line.NewLine = newLine
			newLine++
			res.Summary.Added++
		case KindRemoved:
			line.LineNumber = oldLine
			line.OldLine = oldLine
			oldLine++
			res.Summary.Removed++
		}
		res.Lines = append(res.Lines, line)
	}

	return res
}

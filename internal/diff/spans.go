// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// SpanOp classifies a fragment of an intra-line diff.
type SpanOp int

const (
	SpanEqual SpanOp = iota
	SpanDelete
	SpanInsert
)

// Span is a fragment of a changed line.
type Span struct {
	Op   SpanOp
	Text string
}

// Spans computes a character-level diff between a removed line and the added
// line it is paired with. Adjacent equal fragments are merged. Identical
// inputs yield a single equal span; two empty inputs yield none.
func Spans(oldLine, newLine string) []Span {
	if oldLine == newLine {
		if oldLine == "" {
			return nil
		}
		return []Span{{Op: SpanEqual, Text: oldLine}}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldLine, newLine, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	spans := make([]Span, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		var op SpanOp
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = SpanDelete
		case diffmatchpatch.DiffInsert:
			op = SpanInsert
		default:
			op = SpanEqual
		}
		if n := len(spans); n > 0 && spans[n-1].Op == op {
			spans[n-1].Text += d.Text
			continue
		}
		spans = append(spans, Span{Op: op, Text: d.Text})
	}
	return spans
}

// OldSide keeps the fragments that make up the old line.
func OldSide(spans []Span) []Span {
	return filterSpans(spans, SpanInsert)
}

// NewSide keeps the fragments that make up the new line.
func NewSide(spans []Span) []Span {
	return filterSpans(spans, SpanDelete)
}

func filterSpans(spans []Span, drop SpanOp) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Op != drop {
			out = append(out, s)
		}
	}
	return out
}

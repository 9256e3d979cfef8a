// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct{ Left, Right string }

func rows(pairs []Pair) []row {
	out := make([]row, len(pairs))
	for i, p := range pairs {
		if p.Left != nil {
			out[i].Left = p.Left.Kind.Prefix() + p.Left.Content
		}
		if p.Right != nil {
			out[i].Right = p.Right.Kind.Prefix() + p.Right.Content
		}
	}
	return out
}

func TestPairs(t *testing.T) {
	res := Compute("a\nb\nc\nd", "a\nB\nC\nX\nd", Options{})

	want := []row{
		{" a", " a"},
		{"-b", "+B"},
		{"-c", "+C"},
		{"", "+X"},
		{" d", " d"},
	}
	if diff := cmp.Diff(want, rows(res.Pairs())); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPairs_ChangedAndPointers(t *testing.T) {
	res := Compute("a\nb\nc", "a\nc", Options{})
	pairs := res.Pairs()

	require.Len(t, pairs, 3)
	assert.False(t, pairs[0].Changed())
	assert.True(t, pairs[1].Changed())
	assert.Nil(t, pairs[1].Right)
	// Pairs point into the result rather than copying.
	assert.Same(t, &res.Lines[1], pairs[1].Left)
}

func TestSpans(t *testing.T) {
	spans := Spans("hello world", "hello there")

	var oldText, newText string
	for _, s := range OldSide(spans) {
		oldText += s.Text
	}
	for _, s := range NewSide(spans) {
		newText += s.Text
	}
	assert.Equal(t, "hello world", oldText)
	assert.Equal(t, "hello there", newText)
	require.NotEmpty(t, spans)
	assert.Equal(t, SpanEqual, spans[0].Op)
	assert.Equal(t, "hello ", spans[0].Text)
}

func TestSpans_EdgeCases(t *testing.T) {
	assert.Nil(t, Spans("", ""))
	assert.Equal(t, []Span{{Op: SpanEqual, Text: "x"}}, Spans("x", "x"))
	assert.Equal(t, []Span{{Op: SpanInsert, Text: "new"}}, Spans("", "new"))
	assert.Equal(t, []Span{{Op: SpanDelete, Text: "old"}}, Spans("old", ""))
}

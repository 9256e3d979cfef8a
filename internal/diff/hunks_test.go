// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// numbered returns n distinct single-letter lines.
func numbered(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = string(rune('a' + i))
	}
	return lines
}

func TestHunks_Identical(t *testing.T) {
	res := Compute("a\nb", "a\nb", Options{})

	assert.Empty(t, res.Hunks(3))

	all := res.Hunks(-1)
	require.Len(t, all, 1)
	assert.Equal(t, 1, all[0].OldStart)
	assert.Equal(t, 2, all[0].OldCount)
	assert.Equal(t, 2, all[0].NewCount)
}

func TestHunks_SingleChange(t *testing.T) {
	old := numbered(10)
	changed := append([]string(nil), old...)
	changed[4] = "E"

	res := Compute(strings.Join(old, "\n"), strings.Join(changed, "\n"), Options{})
	hunks := res.Hunks(2)

	require.Len(t, hunks, 1)
	h := hunks[0]
	assert.Equal(t, "@@ -3,5 +3,5 @@", h.Header())
	require.Len(t, h.Lines, 6)
	assert.Equal(t, "c", h.Lines[0].Content)
	assert.Equal(t, KindRemoved, h.Lines[2].Kind)
	assert.Equal(t, KindAdded, h.Lines[3].Kind)
	assert.Equal(t, "g", h.Lines[5].Content)
}

func TestHunks_SplitAndMerge(t *testing.T) {
	old := numbered(20)
	changed := append([]string(nil), old...)
	changed[1] = "B"
	changed[17] = "R"
	text1, text2 := strings.Join(old, "\n"), strings.Join(changed, "\n")

	res := Compute(text1, text2, Options{})

	// Far apart changes form separate hunks.
	assert.Len(t, res.Hunks(3), 2)
	// A wide enough context merges them.
	assert.Len(t, res.Hunks(8), 1)
}

func TestHunks_ZeroCountStart(t *testing.T) {
	res := Compute("a\nb", "a\nb\nc", Options{})
	hunks := res.Hunks(0)

	require.Len(t, hunks, 1)
	// No left lines: start is the line after which the insertion happens.
	assert.Equal(t, "@@ -2,0 +3,1 @@", hunks[0].Header())
}

func TestFormatUnified(t *testing.T) {
	res := Compute("line1\nline2\nline3", "line1\nmodified\nline3", Options{})

	got := FormatUnified(res, "a/file.txt", "b/file.txt", DefaultContext)

	want := "--- a/file.txt\n" +
		"+++ b/file.txt\n" +
		"@@ -1,3 +1,3 @@\n" +
		" line1\n" +
		"-line2\n" +
		"+modified\n" +
		" line3\n"
	assert.Equal(t, want, got)
}

func TestFormatUnified_Identical(t *testing.T) {
	res := Compute("same", "same", Options{})
	assert.Empty(t, FormatUnified(res, "a", "b", DefaultContext))
	assert.Empty(t, FormatUnified(res, "a", "b", -1))
}

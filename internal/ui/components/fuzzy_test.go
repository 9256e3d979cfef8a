// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		query, target string
		want          bool
	}{
		{"", "ui.theme", true},
		{"ctx", "diff.context", true},
		{"tw", "ui.tab_width", true},
		{"CONTEXT", "diff.context", true},
		{"xyz", "ui.theme", false},
		{"ui.theme.extra", "ui.theme", false},
	}
	for _, tt := range tests {
		_, ok := FuzzyMatch(tt.query, tt.target)
		assert.Equal(t, tt.want, ok, "FuzzyMatch(%q, %q)", tt.query, tt.target)
	}
}

func TestFuzzyMatch_PrefersBoundaries(t *testing.T) {
	boundary, _ := FuzzyMatch("m", "ui.mode")
	inner, _ := FuzzyMatch("m", "ui.theme")
	assert.Greater(t, boundary, inner)
}

func TestFuzzyFilter_SortsByScore(t *testing.T) {
	got := FuzzyFilter("mode", []string{"storage.max_comparisons", "ui.mode", "ui.theme"})
	if assert.NotEmpty(t, got) {
		assert.Equal(t, "ui.mode", got[0].Target)
	}
	for _, m := range got {
		assert.NotEqual(t, "ui.theme", m.Target)
	}
}

func TestSuggest(t *testing.T) {
	keys := []string{"diff.context", "diff.ignore_case", "ui.theme", "ui.tab_width"}

	assert.Equal(t, []string{"diff.context"}, Suggest("context", keys, 3))
	assert.Equal(t, []string{"diff.context"}, Suggest("ui.context", keys, 3))
	assert.Len(t, Suggest("i", keys, 2), 2)
	assert.Empty(t, Suggest("zzz", keys, 3))
}

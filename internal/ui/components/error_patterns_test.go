// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"testing"
)

func TestErrorPatternMatcher(t *testing.T) {
	matcher := NewErrorPatternMatcher()

	tests := []struct {
		name          string
		errorMsg      string
		expectedTitle string
		shouldMatch   bool
	}{
		{
			name:          "Table too large",
			errorMsg:      "comparison too large: 30000000 table cells exceeds the limit of 25000000",
			expectedTitle: "Comparison Too Large",
			shouldMatch:   true,
		},
		{
			name:          "Input too large",
			errorMsg:      "comparison too large: big.log is over 5242880 bytes",
			expectedTitle: "Input Too Large",
			shouldMatch:   true,
		},
		{
			name:          "Missing file",
			errorMsg:      "open old.txt: no such file or directory",
			expectedTitle: "File Not Found",
			shouldMatch:   true,
		},
		{
			name:          "Permission denied",
			errorMsg:      "open /etc/shadow: permission denied",
			expectedTitle: "Permission Denied",
			shouldMatch:   true,
		},
		{
			name:          "Port taken",
			errorMsg:      "listen tcp 127.0.0.1:8787: bind: address already in use",
			expectedTitle: "Address In Use",
			shouldMatch:   true,
		},
		{
			name:          "Case insensitive",
			errorMsg:      "HISTORY IS DISABLED",
			expectedTitle: "History Disabled",
			shouldMatch:   true,
		},
		{
			name:        "Unknown",
			errorMsg:    "something odd happened",
			shouldMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, ok := matcher.Match(tt.errorMsg)
			if ok != tt.shouldMatch {
				t.Fatalf("Match(%q) matched = %v, want %v", tt.errorMsg, ok, tt.shouldMatch)
			}
			if !ok {
				if pattern.Category != CategoryUnknown {
					t.Errorf("unmatched category = %q, want %q", pattern.Category, CategoryUnknown)
				}
				return
			}
			if pattern.Title != tt.expectedTitle {
				t.Errorf("Title = %q, want %q", pattern.Title, tt.expectedTitle)
			}
			if len(pattern.Suggestions) == 0 {
				t.Error("matched pattern has no suggestions")
			}
		})
	}
}

func TestErrorPatternMatcher_AddPattern(t *testing.T) {
	matcher := NewErrorPatternMatcher()
	matcher.AddPattern(ErrorPattern{
		Keywords:    []string{"clipboard"},
		Category:    CategoryUnknown,
		Title:       "Clipboard Unavailable",
		Suggestions: []string{"Install xclip or xsel"},
	})

	pattern, ok := matcher.Match("copy to clipboard: exec: \"xclip\": executable file not found")
	if !ok || pattern.Title != "Clipboard Unavailable" {
		t.Errorf("Match() = %+v, %v", pattern, ok)
	}
}

func TestSuggestionsFor(t *testing.T) {
	if got := SuggestionsFor(nil); got != nil {
		t.Errorf("SuggestionsFor(nil) = %v", got)
	}
	if got := SuggestionsFor(errors.New("history is disabled (set storage.enabled = true)")); len(got) == 0 {
		t.Error("no suggestions for disabled history")
	}
	if got := SuggestionsFor(errors.New("boom")); got != nil {
		t.Errorf("SuggestionsFor(boom) = %v", got)
	}
}

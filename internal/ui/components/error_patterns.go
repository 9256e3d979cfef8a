// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"runtime"
	"strings"
	"sync"
)

// =============================================================================
// ERROR CATEGORIES
// =============================================================================

// ErrorCategory represents the type of error for better organization and display.
type ErrorCategory string

const (
	// CategoryInput represents unreadable or missing input files
	CategoryInput ErrorCategory = "Input"
	// CategoryLimit represents comparisons over the configured size limits
	CategoryLimit ErrorCategory = "Limit"
	// CategoryConfig represents configuration and settings errors
	CategoryConfig ErrorCategory = "Config"
	// CategoryPermission represents file permission errors
	CategoryPermission ErrorCategory = "Permission"
	// CategoryNetwork represents listen and address errors
	CategoryNetwork ErrorCategory = "Network"
	// CategoryHistory represents history database errors
	CategoryHistory ErrorCategory = "History"
	// CategoryUnknown represents unclassified errors
	CategoryUnknown ErrorCategory = "Error"
)

// =============================================================================
// ERROR PATTERN MATCHER
// =============================================================================

// ErrorPattern defines a pattern to match against error strings and provide suggestions.
type ErrorPattern struct {
	// Keywords to match in the error message (case-insensitive, any match triggers)
	Keywords []string

	Category    ErrorCategory
	Title       string
	Suggestions []string
}

// ErrorPatternMatcher analyzes error strings and provides suggestions.
type ErrorPatternMatcher struct {
	mu       sync.RWMutex
	patterns []ErrorPattern
}

var (
	defaultMatcher     *ErrorPatternMatcher
	defaultMatcherOnce sync.Once
)

// GetDefaultMatcher returns the shared matcher with the default patterns.
func GetDefaultMatcher() *ErrorPatternMatcher {
	defaultMatcherOnce.Do(func() {
		defaultMatcher = NewErrorPatternMatcher()
	})
	return defaultMatcher
}

// NewErrorPatternMatcher creates a matcher with the default patterns.
func NewErrorPatternMatcher() *ErrorPatternMatcher {
	m := &ErrorPatternMatcher{}
	m.registerDefaultPatterns()
	return m
}

// registerDefaultPatterns registers patterns from most to least specific.
// The first match wins.
func (m *ErrorPatternMatcher) registerDefaultPatterns() {
	m.AddPattern(ErrorPattern{
		Keywords: []string{"table cells exceeds"},
		Category: CategoryLimit,
		Title:    "Comparison Too Large",
		Suggestions: []string{
			"Compare smaller sections of the files",
			"Use -w to skip blank lines",
			"Raise the limit: textdiff config set limits.max_table_cells <n>",
		},
	})

	m.AddPattern(ErrorPattern{
		Keywords: []string{"comparison too large"},
		Category: CategoryLimit,
		Title:    "Input Too Large",
		Suggestions: []string{
			"Raise the limit: textdiff config set limits.max_input_bytes <bytes>",
		},
	})

	m.AddPattern(ErrorPattern{
		Keywords: []string{"history is disabled"},
		Category: CategoryHistory,
		Title:    "History Disabled",
		Suggestions: []string{
			"Enable it: textdiff config set storage.enabled true",
			"Unset TEXTDIFF_HISTORY if it is set to off",
		},
	})

	m.AddPattern(ErrorPattern{
		Keywords: []string{"database is locked", "sqlite_busy"},
		Category: CategoryHistory,
		Title:    "History Busy",
		Suggestions: []string{
			"Another textdiff process is writing; try again",
		},
	})

	m.AddPattern(ErrorPattern{
		Keywords: []string{"invalid config", "failed to load toml config", "failed to load json config"},
		Category: CategoryConfig,
		Title:    "Invalid Configuration",
		Suggestions: []string{
			"Show the file location: textdiff config path",
			"Recreate it: textdiff config init --force",
		},
	})

	m.AddPattern(ErrorPattern{
		Keywords: []string{"address already in use", "bind:"},
		Category: CategoryNetwork,
		Title:    "Address In Use",
		Suggestions: []string{
			"Pick another port: textdiff serve --addr 127.0.0.1:<port>",
		},
	})

	m.AddPattern(ErrorPattern{
		Keywords: []string{"permission denied", "access is denied", "operation not permitted"},
		Category:    CategoryPermission,
		Title:       "Permission Denied",
		Suggestions: getPlatformSpecificPermissionSuggestions(),
	})

	m.AddPattern(ErrorPattern{
		Keywords: []string{"no such file or directory", "cannot find the file", "is a directory"},
		Category: CategoryInput,
		Title:    "File Not Found",
		Suggestions: []string{
			"Check the path spelling",
			`Use "-" to read one side from standard input`,
		},
	})
}

// AddPattern appends a pattern. Patterns added later match only when the
// earlier ones do not.
func (m *ErrorPatternMatcher) AddPattern(pattern ErrorPattern) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = append(m.patterns, pattern)
}

// Match returns the first pattern whose keywords occur in errMsg.
func (m *ErrorPatternMatcher) Match(errMsg string) (ErrorPattern, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lower := strings.ToLower(errMsg)
	for _, pattern := range m.patterns {
		if m.matchesPattern(lower, pattern) {
			return pattern, true
		}
	}
	return ErrorPattern{Category: CategoryUnknown}, false
}

// matchesPattern checks if an error message matches a pattern's keywords.
func (m *ErrorPatternMatcher) matchesPattern(errMsg string, pattern ErrorPattern) bool {
	for _, keyword := range pattern.Keywords {
		if strings.Contains(errMsg, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// SuggestionsFor returns the suggestions of the default matcher for err, or
// nil.
func SuggestionsFor(err error) []string {
	if err == nil {
		return nil
	}
	pattern, ok := GetDefaultMatcher().Match(err.Error())
	if !ok {
		return nil
	}
	return pattern.Suggestions
}

// =============================================================================
// PLATFORM-SPECIFIC HELPERS
// =============================================================================

// getPlatformSpecificPermissionSuggestions returns permission suggestions based on the OS.
func getPlatformSpecificPermissionSuggestions() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			"Check file permissions in Properties > Security",
		}
	default:
		return []string{
			"Check file permissions: ls -l <file>",
			"Grant read access: chmod +r <file>",
		}
	}
}

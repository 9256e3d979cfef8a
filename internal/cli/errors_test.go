// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/textdiff/internal/diff"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitIdentical},
		{"different", ErrDifferent, ExitDifferent},
		{"wrapped different", fmt.Errorf("compare: %w", ErrDifferent), ExitDifferent},
		{"exit error", &ExitError{Code: 3}, 3},
		{"too large", fmt.Errorf("%w: big", diff.ErrTooLarge), ExitTrouble},
		{"usage", &UsageError{Flag: "--format", Reason: "bad"}, ExitTrouble},
		{"other", errors.New("boom"), ExitTrouble},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestSilent(t *testing.T) {
	assert.True(t, silent(ErrDifferent))
	assert.True(t, silent(&ExitError{Code: 1}))
	assert.False(t, silent(&ExitError{Code: 2, Err: errors.New("x")}))
	assert.False(t, silent(errors.New("x")))
}

func TestUsageError(t *testing.T) {
	err := &UsageError{Flag: "--color", Value: "pink", Reason: "want auto, always or never"}
	assert.Equal(t, "invalid --color: want auto, always or never (got: pink)", err.Error())
	assert.True(t, isUsage(fmt.Errorf("wrapped: %w", err)))
	assert.True(t, errors.Is(ErrInputTooLarge, diff.ErrTooLarge))
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"

	"github.com/jeranaias/textdiff/internal/diff"
)

// =============================================================================
// EXIT CODES - the diff(1) convention
// =============================================================================

const (
	// ExitIdentical means the inputs compared equal.
	ExitIdentical = 0
	// ExitDifferent means the inputs differ.
	ExitDifferent = 1
	// ExitTrouble means the command failed.
	ExitTrouble = 2
)

// ErrInputTooLarge is returned when an input exceeds limits.max_input_bytes
// or the comparison exceeds limits.max_table_cells.
var ErrInputTooLarge = diff.ErrTooLarge

// ErrDifferent is the error carried by a comparison that found differences.
// It sets the exit status without printing anything.
var ErrDifferent = errors.New("inputs differ")

// =============================================================================
// ERROR TYPES
// =============================================================================

// ExitError carries an exit status out of a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// UsageError reports invalid arguments or flag values.
type UsageError struct {
	Flag   string // Flag or argument at fault
	Value  string // Value that was provided
	Reason string // Why it was rejected
}

func (e *UsageError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Flag, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	return msg
}

// ExitCode maps an error returned by a command to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitIdentical
	}
	if errors.Is(err, ErrDifferent) {
		return ExitDifferent
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitTrouble
}

// silent reports whether err only carries an exit status.
func silent(err error) bool {
	if errors.Is(err, ErrDifferent) {
		return true
	}
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Err == nil
}

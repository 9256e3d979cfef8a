// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"errors"
	"fmt"
)

// ErrTooLarge is returned by Limits.Check for inputs over a limit.
var ErrTooLarge = errors.New("comparison too large")

// Limits bounds the inputs of a comparison. Zero fields are unlimited.
type Limits struct {
	// MaxInputBytes caps the length of each text.
	MaxInputBytes int64

	// MaxTableCells caps the LCS table, see CellCount.
	MaxTableCells int
}

// Check returns an error wrapping ErrTooLarge when text1 or text2 is over a
// limit.
func (l Limits) Check(text1, text2 string, opts Options) error {
	if l.MaxInputBytes > 0 && (int64(len(text1)) > l.MaxInputBytes || int64(len(text2)) > l.MaxInputBytes) {
		return fmt.Errorf("%w: each text is limited to %d bytes", ErrTooLarge, l.MaxInputBytes)
	}
	if l.MaxTableCells > 0 {
		if cells := CellCount(text1, text2, opts); cells > l.MaxTableCells {
			return fmt.Errorf("%w: %d table cells exceeds the limit of %d", ErrTooLarge, cells, l.MaxTableCells)
		}
	}
	return nil
}

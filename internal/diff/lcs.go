// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

// Table is a longest-common-subsequence length table. Cell [i][j] holds the
// LCS length of the first i elements of a and the first j elements of b.
type Table [][]int

// BuildTable fills the LCS table for a and b. The result has len(a)+1 rows of
// len(b)+1 columns; row 0 and column 0 are zero.
func BuildTable(a, b []string) Table {
	m, n := len(a), len(b)

	// One backing array keeps the rows contiguous.
	cells := make([]int, (m+1)*(n+1))
	table := make(Table, m+1)
	for i := range table {
		table[i] = cells[i*(n+1) : (i+1)*(n+1)]
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				table[i][j] = table[i-1][j-1] + 1
			} else {
				table[i][j] = max(table[i-1][j], table[i][j-1])
			}
		}
	}

	return table
}

// LCSLength returns the length of the longest common subsequence, which is
// the bottom-right cell of the table.
func (t Table) LCSLength() int {
	if len(t) == 0 || len(t[len(t)-1]) == 0 {
		return 0
	}
	last := t[len(t)-1]
	return last[len(last)-1]
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

// Pair is one row of a side-by-side rendering. Either side may be nil when a
// line has no counterpart.
type Pair struct {
	Left  *Line
	Right *Line
}

// Changed reports whether the row differs between the two sides.
func (p Pair) Changed() bool {
	return p.Left == nil || p.Right == nil || p.Left.Kind != KindUnchanged
}

// Pairs arranges the lines of r into side-by-side rows. Unchanged lines sit on
// both sides. Within a change run the i-th removed line is paired with the
// i-th added line; surplus lines get an empty opposite side.
func (r Result) Pairs() []Pair {
	pairs := make([]Pair, 0, len(r.Lines))

	for i := 0; i < len(r.Lines); {
		line := &r.Lines[i]
		if line.Kind == KindUnchanged {
			pairs = append(pairs, Pair{Left: line, Right: line})
			i++
			continue
		}

		// Collect the run of removals, then the run of additions after it.
		var removed, added []*Line
		for i < len(r.Lines) && r.Lines[i].Kind == KindRemoved {
			removed = append(removed, &r.Lines[i])
			i++
		}
		for i < len(r.Lines) && r.Lines[i].Kind == KindAdded {
			added = append(added, &r.Lines[i])
			i++
		}

		for k := 0; k < max(len(removed), len(added)); k++ {
			var p Pair
			if k < len(removed) {
				p.Left = removed[k]
			}
			if k < len(added) {
				p.Right = added[k]
			}
			pairs = append(pairs, p)
		}
	}

	return pairs
}

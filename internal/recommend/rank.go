// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"math"
	"sort"
)

type neighbour struct {
	index int
	score float64
}

// topK returns up to k entries of row ordered by descending score, never
// including self. Equal scores keep ascending index order and NaN sorts
// last.
func topK(row []float64, self, k int) []neighbour {
	candidates := make([]neighbour, 0, len(row))
	for j, s := range row {
		if j == self {
			continue
		}
		candidates = append(candidates, neighbour{index: j, score: s})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return scoreLess(candidates[b].score, candidates[a].score)
	})

	if k < len(candidates) {
		candidates = candidates[:k]
	}
	return candidates
}

// scoreLess orders a before b with NaN below every number.
func scoreLess(a, b float64) bool {
	switch {
	case math.IsNaN(a):
		return !math.IsNaN(b)
	case math.IsNaN(b):
		return false
	default:
		return a < b
	}
}

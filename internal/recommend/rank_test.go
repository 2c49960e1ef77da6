// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"reflect"
	"testing"
)

func TestTopK(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  []float64
		self int
		k    int
		want []int
	}{
		{name: "basic", row: []float64{1, 0.9, 0.2, 0.5}, self: 0, k: 2, want: []int{1, 3}},
		{name: "ties keep index order", row: []float64{0.5, 0.5, 1, 0.5}, self: 2, k: 3, want: []int{0, 1, 3}},
		{name: "k larger than row", row: []float64{0.1, 1, 0.3}, self: 1, k: 10, want: []int{2, 0}},
		{name: "self in middle", row: []float64{0.3, 0.2, 0.99, 0.1}, self: 2, k: 2, want: []int{0, 1}},
		{name: "zero k", row: []float64{1, 0.5}, self: 0, k: 0, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := topK(tt.row, tt.self, tt.k)
			idx := make([]int, len(got))
			for i, n := range got {
				idx[i] = n.index
			}
			if !reflect.DeepEqual(idx, tt.want) {
				t.Errorf("topK() = %v, want %v", idx, tt.want)
			}
		})
	}
}

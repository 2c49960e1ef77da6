// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func sampleEntries() []Entry {
	return []Entry{
		{ID: 1, Title: "Alpha"},
		{ID: 2, Title: "Beta"},
		{ID: 3, Title: "Gamma"},
	}
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	square3, err := NewSimilarity([][]float64{{1, 0.5, 0.1}, {0.5, 1, 0.2}, {0.1, 0.2, 1}})
	if err != nil {
		t.Fatalf("NewSimilarity() error = %v", err)
	}
	square2, err := NewSimilarity([][]float64{{1, 0}, {0, 1}})
	if err != nil {
		t.Fatalf("NewSimilarity() error = %v", err)
	}

	tests := []struct {
		name    string
		catalog *Catalog
		sim     *Similarity
		wantErr error
	}{
		{name: "matching dimensions", catalog: NewCatalog(sampleEntries()), sim: square3},
		{name: "dimension mismatch", catalog: NewCatalog(sampleEntries()), sim: square2, wantErr: ErrDimensionMismatch},
		{name: "missing matrix", catalog: NewCatalog(sampleEntries()), sim: nil, wantErr: ErrDimensionMismatch},
		{name: "empty catalog", catalog: NewCatalog(nil), sim: square2, wantErr: ErrEmptyCatalog},
		{name: "nil catalog", catalog: nil, sim: square2, wantErr: ErrEmptyCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store, err := NewStore(tt.catalog, tt.sim)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewStore() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStore() unexpected error = %v", err)
			}
			if store.Len() != 3 {
				t.Errorf("Len() = %d, want 3", store.Len())
			}
			if store.Info().Titles != 3 {
				t.Errorf("Info().Titles = %d, want 3", store.Info().Titles)
			}
		})
	}
}

func TestNewSimilarity_RejectsRaggedRows(t *testing.T) {
	t.Parallel()

	_, err := NewSimilarity([][]float64{{1, 0.5}, {0.5}})
	if !errors.Is(err, ErrNotSquare) {
		t.Fatalf("NewSimilarity() error = %v, want ErrNotSquare", err)
	}
	_, err = NewSimilarity(nil)
	if !errors.Is(err, ErrNotSquare) {
		t.Fatalf("NewSimilarity(nil) error = %v, want ErrNotSquare", err)
	}
}

func TestNewSimilarityFromDense(t *testing.T) {
	t.Parallel()

	if _, err := NewSimilarityFromDense(mat.NewDense(2, 3, nil)); !errors.Is(err, ErrNotSquare) {
		t.Fatalf("expected ErrNotSquare for 2x3, got %v", err)
	}

	src := mat.NewDense(2, 2, []float64{1, 0.3, 0.3, 1})
	s, err := NewSimilarityFromDense(src)
	if err != nil {
		t.Fatalf("NewSimilarityFromDense() error = %v", err)
	}
	src.Set(0, 1, 99)
	if got := s.At(0, 1); got != 0.3 {
		t.Errorf("At(0,1) = %v after mutating source, want 0.3", got)
	}
}

func TestSimilarity_RowIsCopy(t *testing.T) {
	t.Parallel()

	s, err := NewSimilarity([][]float64{{1, 0.9}, {0.9, 1}})
	if err != nil {
		t.Fatal(err)
	}
	row := s.Row(0)
	row[1] = -1
	if s.At(0, 1) != 0.9 {
		t.Error("mutating Row() result changed the matrix")
	}
}

func TestCatalog_Immutable(t *testing.T) {
	t.Parallel()

	src := sampleEntries()
	c := NewCatalog(src)
	src[0].Title = "Changed"
	if c.At(0).Title != "Alpha" {
		t.Error("catalog aliased its constructor input")
	}
	entries := c.Entries()
	entries[1].Title = "Changed"
	if c.At(1).Title != "Beta" {
		t.Error("Entries() exposed internal storage")
	}
}

func TestSimilarity_NonFinite(t *testing.T) {
	t.Parallel()

	s, err := NewSimilarity([][]float64{{1, math.NaN()}, {math.Inf(1), 1}})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.NonFinite(); got != 2 {
		t.Errorf("NonFinite() = %d, want 2", got)
	}
}

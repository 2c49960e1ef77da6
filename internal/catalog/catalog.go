// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors returned while building a store. All of them are fatal at
// startup.
var (
	ErrEmptyCatalog       = errors.New("catalog is empty")
	ErrDimensionMismatch  = errors.New("similarity matrix dimension does not match catalog")
	ErrNotSquare          = errors.New("similarity matrix is not square")
	ErrUnsupportedFormat  = errors.New("unsupported artifact format")
	ErrIncompleteMatrix   = errors.New("similarity matrix has missing cells")
	ErrDuplicateCell      = errors.New("similarity matrix has duplicate cells")
	ErrCellOutOfRange     = errors.New("similarity cell index out of range")
	ErrInvalidCatalogData = errors.New("invalid catalog data")
)

// Entry is one catalog record. ID is the external identifier used for poster
// lookups; the entry's own position in the catalog is its internal identity.
type Entry struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Catalog is an immutable ordered list of entries.
type Catalog struct {
	entries []Entry
}

// NewCatalog copies entries into a new Catalog.
func NewCatalog(entries []Entry) *Catalog {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Catalog{entries: cp}
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// At returns the entry at position i. It panics if i is out of range, like a
// slice index.
func (c *Catalog) At(i int) Entry {
	return c.entries[i]
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	cp := make([]Entry, len(c.entries))
	copy(cp, c.entries)
	return cp
}

// Similarity is a square matrix of pairwise similarity scores. Symmetry is not
// checked and callers must not assume it.
type Similarity struct {
	m *mat.Dense
	n int
}

// NewSimilarity builds a matrix from rows. Every row must have len(rows)
// columns.
func NewSimilarity(rows [][]float64) (*Similarity, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrNotSquare)
	}
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNotSquare, i, len(row), n)
		}
		data = append(data, row...)
	}
	return &Similarity{m: mat.NewDense(n, n, data), n: n}, nil
}

// NewSimilarityFromDense wraps a copy of d.
func NewSimilarityFromDense(d mat.Matrix) (*Similarity, error) {
	r, c := d.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, r, c)
	}
	if r == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrNotSquare)
	}
	return &Similarity{m: mat.DenseCopyOf(d), n: r}, nil
}

// Dim returns N for an N×N matrix.
func (s *Similarity) Dim() int {
	return s.n
}

// At returns the score of cell (i, j).
func (s *Similarity) At(i, j int) float64 {
	return s.m.At(i, j)
}

// Row returns a copy of row i.
func (s *Similarity) Row(i int) []float64 {
	return mat.Row(nil, i, s.m)
}

// NonFinite counts NaN and infinite cells. Such cells are legal but rank last.
func (s *Similarity) NonFinite() int {
	count := 0
	for i := 0; i < s.n; i++ {
		for _, v := range s.m.RawRowView(i) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				count++
			}
		}
	}
	return count
}

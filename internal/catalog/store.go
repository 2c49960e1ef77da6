// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"fmt"
	"time"
)

// Store pairs a catalog with its similarity matrix.
type Store struct {
	catalog    *Catalog
	similarity *Similarity
	info       Info
}

// Info describes where a store was loaded from.
type Info struct {
	Titles           int       `json:"titles"`
	CatalogSource    string    `json:"catalog_source,omitempty"`
	SimilaritySource string    `json:"similarity_source,omitempty"`
	NonFiniteScores  int       `json:"non_finite_scores"`
	LoadedAt         time.Time `json:"loaded_at"`
}

// NewStore validates that the catalog and matrix describe the same N movies.
func NewStore(c *Catalog, s *Similarity) (*Store, error) {
	if c == nil || c.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	if s == nil {
		return nil, fmt.Errorf("%w: catalog has %d entries, matrix is missing", ErrDimensionMismatch, c.Len())
	}
	if s.Dim() != c.Len() {
		return nil, fmt.Errorf("%w: catalog has %d entries, matrix is %dx%d",
			ErrDimensionMismatch, c.Len(), s.Dim(), s.Dim())
	}
	return &Store{
		catalog:    c,
		similarity: s,
		info: Info{
			Titles:          c.Len(),
			NonFiniteScores: s.NonFinite(),
			LoadedAt:        time.Now().UTC(),
		},
	}, nil
}

// Catalog returns the store's catalog.
func (s *Store) Catalog() *Catalog { return s.catalog }

// Similarity returns the store's similarity matrix.
func (s *Store) Similarity() *Similarity { return s.similarity }

// Len returns N.
func (s *Store) Len() int { return s.catalog.Len() }

// Info returns load metadata.
func (s *Store) Info() Info { return s.info }

func (s *Store) withSources(catalogPath, similarityPath string) *Store {
	s.info.CatalogSource = catalogPath
	s.info.SimilaritySource = similarityPath
	return s
}

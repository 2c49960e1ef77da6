// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package catalog holds the read-only data every recommendation is computed
// from: the ordered movie catalog and its precomputed N×N similarity matrix.
//
// # Identity
//
// A movie is identified by its position in the catalog. Position i is both
// the catalog index and the row/column index into the similarity matrix, so
// the two artifacts are only usable together. NewStore enforces
// len(catalog) == rows == cols and refuses to build anything else.
//
// # Artifacts
//
// Load picks a decoder by file extension:
//
//   - .json: catalog as [{"id":19995,"title":"Avatar"}, ...], similarity as a
//     row-major array of arrays
//   - .csv, .parquet: read through an in-memory DuckDB connection. The
//     catalog has columns id and title in catalog order; the similarity file
//     is long format with columns i, j, score and one row per cell
//
// # Thread Safety
//
// Catalog, Similarity and Store have no mutating methods after construction
// and are shared across goroutines without locking. Accessors that return
// slices return copies.
package catalog

// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend answers "movies like this one" from a precomputed
// similarity matrix.
//
// # Algorithm
//
// Recommend runs the same steps for every query:
//
//  1. Case-fold the query (Unicode full folding) and look it up among the
//     case-folded catalog titles. There is no fuzzy matching: an absent
//     title yields a *NotFoundError carrying the query exactly as given.
//  2. When several entries share a folded title the lowest catalog index
//     wins.
//  3. Read the movie's similarity row, drop the movie's own index, and sort
//     the rest by score descending. Equal scores keep ascending catalog
//     order; NaN scores sort after every number.
//  4. Keep the first K neighbours (fewer when the catalog is small).
//  5. Resolve a poster URL for each neighbour concurrently through a
//     bounded pool and return the neighbours in rank order.
//
// The self index is removed by identity, never by dropping the first sorted
// entry, so a row whose diagonal is not its maximum still yields correct
// neighbours.
//
// # Result count
//
// K defaults to 5. A request with K of 0 gets the default, K above the
// configured maximum is clamped, and a negative K is rejected with
// ErrInvalidK.
//
// # Concurrency
//
// The engine holds an immutable catalog.Store and no mutable shared state
// besides atomic counters, so it is safe for concurrent use. Poster
// resolution writes into pre-allocated result slots, which keeps the output
// in rank order regardless of which lookup finishes first.
//
// # Usage
//
//	engine, err := recommend.NewEngine(store, resolver, recommend.DefaultConfig(), logger)
//	resp, err := engine.Recommend(ctx, recommend.Request{Title: "avatar", K: 5})
//	if errors.Is(err, recommend.ErrNotFound) {
//	    // show "not found" with the original query
//	}
package recommend

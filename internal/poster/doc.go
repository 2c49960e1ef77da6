// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package poster maps an external movie ID to a displayable image URL.
//
// This is the only part of Marquee that talks to an unreliable remote
// service, and it never fails from the caller's point of view. Every call
// yields a URL: the real poster, or one of three placeholders.
//
//   - Unconfigured: no API key is set. No network call is made.
//   - NoPoster: the metadata lookup succeeded but carried no poster path.
//   - Error: anything else went wrong (timeout, transport error, non-2xx
//     status, malformed body, open circuit, caller cancellation).
//
// Resolve returns a Resolution with the URL and an Outcome naming exactly
// which case applied; ResolvePoster collapses it to the URL.
//
// # Upstream
//
// Lookups hit a TMDB-compatible endpoint:
//
//	GET {base_url}/movie/{id}?api_key={key}&language={language}
//
// Each lookup runs under its own timeout (5s by default) and is never
// retried. A token bucket (golang.org/x/time/rate) keeps the process under
// the upstream request budget and a circuit breaker (sony/gobreaker) stops
// calling a host that keeps failing.
//
// # Caching
//
// Found and NoPoster outcomes are cached in an in-memory LRU and, when a
// cache path is configured, in a Badger database that survives restarts.
// Failure outcomes are never cached.
package poster

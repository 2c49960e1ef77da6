// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services provides suture.Service wrappers for Marquee components.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Runs an optional drain hook before Shutdown so readiness flips first
  - Configurable shutdown timeout for draining connections

Poster Cache (PosterCacheService):
  - Ticks at a fixed interval and calls Maintain on the poster resolver
  - Expired entries are purged and the badger value log is compacted
  - Failures are logged and retried on the next tick

Every wrapper implements fmt.Stringer so suture events name the service.
*/
package services

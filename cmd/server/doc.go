// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee recommendation server.

Marquee answers "what should I watch after this?" from a precomputed
movie-to-movie similarity matrix, attaching a poster image to every
suggestion.

# Application Architecture

	RootSupervisor ("marquee")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Poster cache maintenance
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Catalog: movie list and similarity matrix (JSON, CSV or Parquet via DuckDB)
 4. Poster resolver: TMDB client behind a circuit breaker and two cache tiers
 5. Engine: lookup, ranking and concurrent poster attachment
 6. Supervisor Tree: Suture v4 process supervision
 7. HTTP Server: Chi router with middleware stack

A catalog that fails to load, or a matrix that is not N×N for N catalog
entries, stops startup.

# Configuration

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=8501
	CATALOG_PATH=data/movies.json
	SIMILARITY_PATH=data/similarity.json
	TMDB_API_KEY=<key>           # unset: placeholder posters only
	POSTER_CACHE_PATH=data/posters  # unset: in-memory cache only
	RECOMMEND_DEFAULT_K=5
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM flip readiness to 503, drain in-flight requests within
HTTP_SHUTDOWN_TIMEOUT, then close the poster cache.

# Example Usage

	export TMDB_API_KEY=...
	./marquee-server
	curl 'localhost:8501/api/v1/recommendations?title=Heat&k=5'
*/
package main

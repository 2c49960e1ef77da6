// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config provides centralized configuration management for Marquee.

# Configuration Sources

Configuration is layered with Koanf v2, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, config.yaml, config.yml,
    /etc/marquee/config.yaml, /etc/marquee/config.yml
 3. Environment variables (see envMappings in koanf.go)

Unmapped environment variables are ignored so unrelated process environment
cannot leak into configuration.

# Environment Variables

HTTP Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8501)
  - HTTP_TIMEOUT: Per-request timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown budget (default: 15s)

Data artifacts:
  - CATALOG_PATH: Catalog file, .json/.csv/.tsv/.parquet (default: data/movies.json)
  - SIMILARITY_PATH: Similarity file (default: data/similarity.json)

Posters:
  - TMDB_API_KEY: Metadata API key; empty means placeholder posters
  - TMDB_BASE_URL, TMDB_IMAGE_BASE_URL, TMDB_LANGUAGE
  - POSTER_TIMEOUT: Per-lookup timeout (default: 5s)
  - POSTER_RATE_LIMIT, POSTER_RATE_BURST: Outbound request budget
  - POSTER_CACHE_SIZE, POSTER_CACHE_TTL, POSTER_NO_POSTER_TTL
  - POSTER_CACHE_PATH: Badger directory for the persistent cache tier
  - POSTER_MAINTENANCE_INTERVAL: Cache cleanup cadence (default: 10m)

Recommendations:
  - RECOMMEND_DEFAULT_K (default: 5), RECOMMEND_MAX_K (default: 20)
  - RECOMMEND_MAX_CONCURRENCY: Poster lookups in flight per query (0 = GOMAXPROCS)

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

Config is immutable after Load and safe for concurrent reads.
*/
package config

// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML file
//  3. Environment Variables: Override any mapped setting
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Poster    PosterConfig    `koanf:"poster"`
	Recommend RecommendConfig `koanf:"recommend"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DataConfig locates the precomputed artifacts loaded at startup.
type DataConfig struct {
	CatalogPath    string `koanf:"catalog_path"`
	SimilarityPath string `koanf:"similarity_path"`
}

// PosterConfig holds poster lookup settings.
//
// Environment Variables:
//   - TMDB_API_KEY: Leave empty to serve placeholder posters only
//   - POSTER_TIMEOUT: Per-lookup timeout (default: 5s)
type PosterConfig struct {
	APIKey       string        `koanf:"api_key"`
	BaseURL      string        `koanf:"base_url"`
	ImageBaseURL string        `koanf:"image_base_url"`
	Language     string        `koanf:"language"`
	Timeout      time.Duration `koanf:"timeout"`
	RateLimit    float64       `koanf:"rate_limit"`
	RateBurst    int           `koanf:"rate_burst"`

	CacheSize   int           `koanf:"cache_size"`
	CacheTTL    time.Duration `koanf:"cache_ttl"`
	NoPosterTTL time.Duration `koanf:"no_poster_ttl"`
	CachePath   string        `koanf:"cache_path"`

	// MaintenanceInterval is how often expired cache entries are purged.
	MaintenanceInterval time.Duration `koanf:"maintenance_interval"`
	// GCDiscardRatio is passed to Badger value log GC.
	GCDiscardRatio float64 `koanf:"gc_discard_ratio"`

	Placeholders PlaceholderConfig `koanf:"placeholders"`
	Breaker      BreakerConfig     `koanf:"breaker"`
}

// PlaceholderConfig holds the fallback poster URLs.
type PlaceholderConfig struct {
	Unconfigured string `koanf:"unconfigured"`
	NoPoster     string `koanf:"no_poster"`
	Error        string `koanf:"error"`
}

// BreakerConfig tunes the upstream circuit breaker.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// RecommendConfig holds recommendation engine settings
type RecommendConfig struct {
	DefaultK       int `koanf:"default_k"`
	MaxK           int `koanf:"max_k"`
	MaxConcurrency int `koanf:"max_concurrency"`
}

// APIConfig holds API pagination settings
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds inbound request limits and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, an optional config file and the
// environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

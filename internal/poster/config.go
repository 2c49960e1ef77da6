// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package poster

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Config configures a Resolver.
type Config struct {
	// APIKey is the upstream credential. Empty selects placeholder mode.
	APIKey string

	// BaseURL is the metadata API root, e.g. https://api.themoviedb.org/3.
	BaseURL string

	// ImageBaseURL is prefixed to poster paths.
	ImageBaseURL string

	// Language is sent as the language query parameter.
	Language string

	// Timeout bounds each lookup.
	Timeout time.Duration

	// RateLimit is the sustained outbound request rate per second. 0 disables.
	RateLimit float64
	RateBurst int

	Placeholders Placeholders

	// CacheSize is the in-memory LRU capacity. 0 disables the memory tier.
	CacheSize int
	CacheTTL  time.Duration

	// NoPosterTTL applies to cached no-poster results, which are more likely
	// to change upstream than a found poster.
	NoPosterTTL time.Duration

	// CachePath enables the Badger tier when non-empty.
	CachePath string

	Breaker BreakerConfig

	// HTTPClient overrides the transport. Tests only.
	HTTPClient *http.Client
}

// DefaultConfig returns a placeholder-mode configuration pointed at TMDB.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "https://api.themoviedb.org/3",
		ImageBaseURL: "https://image.tmdb.org/t/p/w500",
		Language:     "en-US",
		Timeout:      5 * time.Second,
		RateLimit:    40,
		RateBurst:    10,
		Placeholders: DefaultPlaceholders(),
		CacheSize:    10000,
		CacheTTL:     24 * time.Hour,
		NoPosterTTL:  time.Hour,
		Breaker:      DefaultBreakerConfig(),
	}
}

// Configured reports whether upstream lookups are enabled.
func (c *Config) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("poster timeout must be positive")
	}
	if c.Placeholders.Unconfigured == "" || c.Placeholders.NoPoster == "" || c.Placeholders.Error == "" {
		return errors.New("all poster placeholders must be set")
	}
	if c.RateLimit < 0 {
		return errors.New("poster rate limit cannot be negative")
	}
	if c.CacheSize < 0 {
		return errors.New("poster cache size cannot be negative")
	}
	if c.Configured() {
		if c.BaseURL == "" {
			return errors.New("poster base URL is required when an API key is set")
		}
		if c.ImageBaseURL == "" {
			return errors.New("poster image base URL is required when an API key is set")
		}
	}
	return nil
}

// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"runtime"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// MaxConcurrency bounds concurrent poster resolutions per query.
	// Zero means runtime.GOMAXPROCS(0).
	MaxConcurrency int `json:"max_concurrency"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the result count used when a request leaves K at zero.
	DefaultK int `json:"default_k"`

	// MaxK caps K.
	MaxK int `json:"max_k"`

	// DefaultSearchLimit is the title search page size when none is given.
	DefaultSearchLimit int `json:"default_search_limit"`

	// MaxSearchLimit caps the title search page size.
	MaxSearchLimit int `json:"max_search_limit"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultK:           5,
			MaxK:               20,
			DefaultSearchLimit: 20,
			MaxSearchLimit:     100,
		},
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k (%d) must be >= limits.default_k (%d)", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Limits.DefaultSearchLimit < 1 {
		return fmt.Errorf("limits.default_search_limit must be positive, got %d", c.Limits.DefaultSearchLimit)
	}
	if c.Limits.MaxSearchLimit < c.Limits.DefaultSearchLimit {
		return fmt.Errorf("limits.max_search_limit (%d) must be >= limits.default_search_limit (%d)",
			c.Limits.MaxSearchLimit, c.Limits.DefaultSearchLimit)
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be non-negative, got %d", c.MaxConcurrency)
	}
	return nil
}

// concurrency resolves the effective worker count.
func (c *Config) concurrency() int {
	if c.MaxConcurrency > 0 {
		return c.MaxConcurrency
	}
	return runtime.GOMAXPROCS(0)
}

// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/poster"
	"github.com/tomtom215/marquee/internal/recommend"
)

// ResolverConfig converts the poster section into a poster.Config.
func (c *Config) ResolverConfig() poster.Config {
	p := c.Poster
	return poster.Config{
		APIKey:       p.APIKey,
		BaseURL:      p.BaseURL,
		ImageBaseURL: p.ImageBaseURL,
		Language:     p.Language,
		Timeout:      p.Timeout,
		RateLimit:    p.RateLimit,
		RateBurst:    p.RateBurst,
		Placeholders: poster.Placeholders{
			Unconfigured: p.Placeholders.Unconfigured,
			NoPoster:     p.Placeholders.NoPoster,
			Error:        p.Placeholders.Error,
		},
		CacheSize:   p.CacheSize,
		CacheTTL:    p.CacheTTL,
		NoPosterTTL: p.NoPosterTTL,
		CachePath:   p.CachePath,
		Breaker: poster.BreakerConfig{
			MaxRequests:  p.Breaker.MaxRequests,
			Interval:     p.Breaker.Interval,
			Timeout:      p.Breaker.Timeout,
			MinRequests:  p.Breaker.MinRequests,
			FailureRatio: p.Breaker.FailureRatio,
		},
	}
}

// EngineConfig converts the recommend and api sections into a recommend.Config.
// Title search page sizes follow the API pagination settings.
func (c *Config) EngineConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.Limits.DefaultK = c.Recommend.DefaultK
	cfg.Limits.MaxK = c.Recommend.MaxK
	cfg.MaxConcurrency = c.Recommend.MaxConcurrency
	if c.API.DefaultPageSize > 0 {
		cfg.Limits.DefaultSearchLimit = c.API.DefaultPageSize
	}
	if c.API.MaxPageSize > 0 {
		cfg.Limits.MaxSearchLimit = c.API.MaxPageSize
	}
	return cfg
}

// LoggingConfig converts the logging section into a logging.Config.
func (c *Config) LoggingConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Caller = c.Logging.Caller
	return lc
}

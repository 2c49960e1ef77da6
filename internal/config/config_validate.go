// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
)

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validatePoster(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

func (c *Config) validateData() error {
	if strings.TrimSpace(c.Data.CatalogPath) == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if strings.TrimSpace(c.Data.SimilarityPath) == "" {
		return fmt.Errorf("SIMILARITY_PATH is required")
	}
	return nil
}

// validatePoster validates poster lookup settings. URLs are only checked when
// an API key enables upstream lookups.
func (c *Config) validatePoster() error {
	p := c.Poster
	if p.Timeout <= 0 {
		return fmt.Errorf("POSTER_TIMEOUT must be positive")
	}
	if p.RateLimit < 0 {
		return fmt.Errorf("POSTER_RATE_LIMIT cannot be negative")
	}
	if p.RateLimit > 0 && p.RateBurst < 1 {
		return fmt.Errorf("POSTER_RATE_BURST must be at least 1 when POSTER_RATE_LIMIT is set")
	}
	if p.CacheSize < 0 {
		return fmt.Errorf("POSTER_CACHE_SIZE cannot be negative")
	}
	if p.CacheSize > 0 && p.CacheTTL <= 0 {
		return fmt.Errorf("POSTER_CACHE_TTL must be positive when the cache is enabled")
	}
	if p.NoPosterTTL < 0 {
		return fmt.Errorf("POSTER_NO_POSTER_TTL cannot be negative")
	}
	if p.MaintenanceInterval <= 0 {
		return fmt.Errorf("POSTER_MAINTENANCE_INTERVAL must be positive")
	}
	if p.GCDiscardRatio <= 0 || p.GCDiscardRatio >= 1 {
		return fmt.Errorf("POSTER_GC_DISCARD_RATIO must be between 0 and 1 exclusive")
	}
	if p.Breaker.FailureRatio <= 0 || p.Breaker.FailureRatio > 1 {
		return fmt.Errorf("POSTER_BREAKER_RATIO must be in (0, 1]")
	}
	if p.Breaker.Timeout <= 0 {
		return fmt.Errorf("POSTER_BREAKER_TIMEOUT must be positive")
	}

	placeholders := map[string]string{
		"POSTER_PLACEHOLDER_URL": p.Placeholders.Unconfigured,
		"POSTER_NO_POSTER_URL":   p.Placeholders.NoPoster,
		"POSTER_ERROR_URL":       p.Placeholders.Error,
	}
	for field, value := range placeholders {
		if err := validateAbsoluteURL(value, field); err != nil {
			return err
		}
	}

	if strings.TrimSpace(p.APIKey) == "" {
		return nil
	}
	if err := validateAbsoluteURL(p.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	return validateAbsoluteURL(p.ImageBaseURL, "TMDB_IMAGE_BASE_URL")
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultK < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be positive, got %d", c.Recommend.DefaultK)
	}
	if c.Recommend.MaxK < c.Recommend.DefaultK {
		return fmt.Errorf("RECOMMEND_MAX_K (%d) must be >= RECOMMEND_DEFAULT_K (%d)",
			c.Recommend.MaxK, c.Recommend.DefaultK)
	}
	if c.Recommend.MaxConcurrency < 0 {
		return fmt.Errorf("RECOMMEND_MAX_CONCURRENCY cannot be negative")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be positive")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be >= API_DEFAULT_PAGE_SIZE")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateCORS rejects the wildcard origin in production.
func (c *Config) validateCORS() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	if !c.IsProduction() {
		return nil
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS cannot be '*' when ENVIRONMENT=production")
		}
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000")
	}
	if c.Security.RateLimitWindow < time.Second {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateAbsoluteURL checks that rawURL is an http(s) URL with a host.
func validateAbsoluteURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	return nil
}

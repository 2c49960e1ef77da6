// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
	"/etc/marquee/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8501,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Data: DataConfig{
			CatalogPath:    "data/movies.json",
			SimilarityPath: "data/similarity.json",
		},
		Poster: PosterConfig{
			APIKey:              "", // Placeholder posters until a key is supplied
			BaseURL:             "https://api.themoviedb.org/3",
			ImageBaseURL:        "https://image.tmdb.org/t/p/w500",
			Language:            "en-US",
			Timeout:             5 * time.Second,
			RateLimit:           40,
			RateBurst:           10,
			CacheSize:           10000,
			CacheTTL:            24 * time.Hour,
			NoPosterTTL:         time.Hour,
			CachePath:           "", // Memory tier only
			MaintenanceInterval: 10 * time.Minute,
			GCDiscardRatio:      0.5,
			Placeholders: PlaceholderConfig{
				Unconfigured: "https://via.placeholder.com/500x750?text=Poster+Unavailable",
				NoPoster:     "https://via.placeholder.com/500x750?text=No+Poster",
				Error:        "https://via.placeholder.com/500x750?text=Error",
			},
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      time.Minute,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Recommend: RecommendConfig{
			DefaultK:       5,
			MaxK:           20,
			MaxConcurrency: 0, // 0 = runtime.GOMAXPROCS(0)
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Data artifact mappings
	"catalog_path":    "data.catalog_path",
	"similarity_path": "data.similarity_path",

	// Poster mappings
	"tmdb_api_key":                "poster.api_key",
	"tmdb_base_url":               "poster.base_url",
	"tmdb_image_base_url":         "poster.image_base_url",
	"tmdb_language":               "poster.language",
	"poster_timeout":              "poster.timeout",
	"poster_rate_limit":           "poster.rate_limit",
	"poster_rate_burst":           "poster.rate_burst",
	"poster_cache_size":           "poster.cache_size",
	"poster_cache_ttl":            "poster.cache_ttl",
	"poster_no_poster_ttl":        "poster.no_poster_ttl",
	"poster_cache_path":           "poster.cache_path",
	"poster_maintenance_interval": "poster.maintenance_interval",
	"poster_gc_discard_ratio":     "poster.gc_discard_ratio",
	"poster_placeholder_url":      "poster.placeholders.unconfigured",
	"poster_no_poster_url":        "poster.placeholders.no_poster",
	"poster_error_url":            "poster.placeholders.error",
	"poster_breaker_timeout":      "poster.breaker.timeout",
	"poster_breaker_min_requests": "poster.breaker.min_requests",
	"poster_breaker_ratio":        "poster.breaker.failure_ratio",

	// Recommendation engine mappings
	"recommend_default_k":       "recommend.default_k",
	"recommend_max_k":           "recommend.max_k",
	"recommend_max_concurrency": "recommend.max_concurrency",

	// API mappings
	"api_default_page_size": "api.default_page_size",
	"api_max_page_size":     "api.max_page_size",

	// Security mappings
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - TMDB_API_KEY -> poster.api_key
//   - RECOMMEND_DEFAULT_K -> recommend.default_k
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so random environment variables cannot
	// pollute config.
	return ""
}

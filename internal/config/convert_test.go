// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"testing"
	"time"
)

func TestConfig_ResolverConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Poster.APIKey = "secret"
	cfg.Poster.Timeout = 3 * time.Second
	cfg.Poster.CachePath = "/var/lib/marquee/posters"
	cfg.Poster.Placeholders.Error = "https://example.test/error.png"
	cfg.Poster.Breaker.FailureRatio = 0.75

	pc := cfg.ResolverConfig()
	if !pc.Configured() {
		t.Error("Configured() = false with an API key")
	}
	if pc.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", pc.Timeout)
	}
	if pc.CachePath != cfg.Poster.CachePath {
		t.Errorf("CachePath = %q", pc.CachePath)
	}
	if pc.Placeholders.Error != "https://example.test/error.png" {
		t.Errorf("Placeholders.Error = %q", pc.Placeholders.Error)
	}
	if pc.Breaker.FailureRatio != 0.75 {
		t.Errorf("Breaker.FailureRatio = %v, want 0.75", pc.Breaker.FailureRatio)
	}
	if err := pc.Validate(); err != nil {
		t.Errorf("converted poster config invalid: %v", err)
	}
}

func TestConfig_EngineConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Recommend.DefaultK = 7
	cfg.Recommend.MaxK = 12
	cfg.Recommend.MaxConcurrency = 3
	cfg.API.DefaultPageSize = 25
	cfg.API.MaxPageSize = 50

	ec := cfg.EngineConfig()
	if ec.Limits.DefaultK != 7 || ec.Limits.MaxK != 12 {
		t.Errorf("K limits = %d/%d, want 7/12", ec.Limits.DefaultK, ec.Limits.MaxK)
	}
	if ec.MaxConcurrency != 3 {
		t.Errorf("MaxConcurrency = %d, want 3", ec.MaxConcurrency)
	}
	if ec.Limits.DefaultSearchLimit != 25 || ec.Limits.MaxSearchLimit != 50 {
		t.Errorf("search limits = %d/%d, want 25/50", ec.Limits.DefaultSearchLimit, ec.Limits.MaxSearchLimit)
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("converted engine config invalid: %v", err)
	}
}

func TestConfig_LoggingConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Logging = LoggingConfig{Level: "debug", Format: "console", Caller: true}

	lc := cfg.LoggingConfig()
	if lc.Level != "debug" || lc.Format != "console" || !lc.Caller {
		t.Errorf("LoggingConfig() = %+v", lc)
	}
	if !lc.Timestamp || lc.Output == nil {
		t.Error("LoggingConfig() lost defaults for Timestamp/Output")
	}
}

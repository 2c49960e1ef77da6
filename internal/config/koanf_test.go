// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// isolate points config discovery at an empty directory so a stray
// config.yaml in the package directory cannot affect the test.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))

	orig := DefaultConfigPaths
	DefaultConfigPaths = nil
	t.Cleanup(func() { DefaultConfigPaths = orig })
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.Poster.APIKey != "" {
		t.Errorf("Poster.APIKey should be empty by default, got %q", cfg.Poster.APIKey)
	}
	if cfg.Poster.Timeout != 5*time.Second {
		t.Errorf("Poster.Timeout = %v, want 5s", cfg.Poster.Timeout)
	}
	if cfg.Recommend.DefaultK != 5 {
		t.Errorf("Recommend.DefaultK = %d, want 5", cfg.Recommend.DefaultK)
	}
	if cfg.Recommend.MaxK != 20 {
		t.Errorf("Recommend.MaxK = %d, want 20", cfg.Recommend.MaxK)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"*"}) {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	want := defaultConfig()
	if cfg.Poster.Breaker != want.Poster.Breaker {
		t.Errorf("Poster.Breaker = %+v, want %+v", cfg.Poster.Breaker, want.Poster.Breaker)
	}
	if cfg.Poster.Placeholders != want.Poster.Placeholders {
		t.Errorf("Poster.Placeholders = %+v, want %+v", cfg.Poster.Placeholders, want.Poster.Placeholders)
	}
	if cfg.Poster.CacheTTL != want.Poster.CacheTTL {
		t.Errorf("Poster.CacheTTL = %v, want %v", cfg.Poster.CacheTTL, want.Poster.CacheTTL)
	}
	if cfg.Data != want.Data {
		t.Errorf("Data = %+v, want %+v", cfg.Data, want.Data)
	}
	if cfg.API != want.API {
		t.Errorf("API = %+v, want %+v", cfg.API, want.API)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	isolate(t)

	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("TMDB_API_KEY", "abc123")
	t.Setenv("POSTER_TIMEOUT", "2s")
	t.Setenv("POSTER_CACHE_PATH", "/var/lib/marquee/posters")
	t.Setenv("RECOMMEND_DEFAULT_K", "8")
	t.Setenv("RECOMMEND_MAX_K", "12")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CATALOG_PATH", "/data/movies.parquet")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Poster.APIKey != "abc123" {
		t.Errorf("Poster.APIKey = %q, want abc123", cfg.Poster.APIKey)
	}
	if cfg.Poster.Timeout != 2*time.Second {
		t.Errorf("Poster.Timeout = %v, want 2s", cfg.Poster.Timeout)
	}
	if cfg.Poster.CachePath != "/var/lib/marquee/posters" {
		t.Errorf("Poster.CachePath = %q", cfg.Poster.CachePath)
	}
	if cfg.Recommend.DefaultK != 8 || cfg.Recommend.MaxK != 12 {
		t.Errorf("Recommend = %+v, want default_k 8 max_k 12", cfg.Recommend)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Data.CatalogPath != "/data/movies.parquet" {
		t.Errorf("Data.CatalogPath = %q", cfg.Data.CatalogPath)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 7000
poster:
  language: fr-FR
  placeholders:
    no_poster: https://cdn.example/none.png
recommend:
  default_k: 3
security:
  cors_origins:
    - https://movies.example
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RECOMMEND_DEFAULT_K", "4")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000 from file", cfg.Server.Port)
	}
	if cfg.Poster.Language != "fr-FR" {
		t.Errorf("Poster.Language = %q, want fr-FR", cfg.Poster.Language)
	}
	if cfg.Poster.Placeholders.NoPoster != "https://cdn.example/none.png" {
		t.Errorf("Placeholders.NoPoster = %q", cfg.Poster.Placeholders.NoPoster)
	}
	if cfg.Poster.Placeholders.Error != defaultConfig().Poster.Placeholders.Error {
		t.Errorf("Placeholders.Error should keep its default, got %q", cfg.Poster.Placeholders.Error)
	}
	if cfg.Recommend.DefaultK != 4 {
		t.Errorf("Recommend.DefaultK = %d, want env override 4", cfg.Recommend.DefaultK)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"https://movies.example"}) {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestLoadWithKoanf_InvalidFails(t *testing.T) {
	isolate(t)
	t.Setenv("RECOMMEND_DEFAULT_K", "0")

	if _, err := LoadWithKoanf(); err == nil {
		t.Error("LoadWithKoanf() should fail validation for RECOMMEND_DEFAULT_K=0")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"TMDB_API_KEY", "poster.api_key"},
		{"POSTER_BREAKER_RATIO", "poster.breaker.failure_ratio"},
		{"RECOMMEND_MAX_CONCURRENCY", "recommend.max_concurrency"},
		{"cors_origins", "security.cors_origins"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package poster

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const testImageBase = "https://image.example.test/t/p/w500/"

// newUpstream starts a fake metadata API that counts requests.
func newUpstream(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.APIKey = "test-api-key-123"
	cfg.BaseURL = baseURL
	cfg.ImageBaseURL = testImageBase
	cfg.Timeout = 2 * time.Second
	cfg.RateLimit = 0
	return cfg
}

func newTestResolver(t *testing.T, cfg Config) *Resolver {
	t.Helper()
	r, err := NewResolver(cfg, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func jsonBody(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func TestResolver_Unconfigured(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	r := newTestResolver(t, cfg)

	res := r.Resolve(context.Background(), 19995)
	if res.Outcome != OutcomeUnconfigured {
		t.Errorf("Outcome = %q, want %q", res.Outcome, OutcomeUnconfigured)
	}
	if res.URL != cfg.Placeholders.Unconfigured {
		t.Errorf("URL = %q, want unconfigured placeholder", res.URL)
	}
	if r.Configured() {
		t.Error("Configured() = true without an API key")
	}
	if r.Stats().Lookups != 0 {
		t.Error("unconfigured resolver must not perform lookups")
	}
}

func TestResolver_Found(t *testing.T) {
	t.Parallel()

	seen := make(chan *http.Request, 1)
	srv, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Clone(context.Background())
		jsonBody(`{"id":19995,"title":"Avatar","poster_path":"/kyeqWdyUXW608qlYkRqosgbbJyK.jpg"}`)(w, r)
	})
	r := newTestResolver(t, testConfig(srv.URL))

	res := r.Resolve(context.Background(), 19995)
	if res.Outcome != OutcomeFound {
		t.Fatalf("Outcome = %q, err = %v", res.Outcome, res.Err)
	}
	want := "https://image.example.test/t/p/w500/kyeqWdyUXW608qlYkRqosgbbJyK.jpg"
	if res.URL != want {
		t.Errorf("URL = %q, want %q", res.URL, want)
	}
	req := <-seen
	if req.URL.Path != "/movie/19995" {
		t.Errorf("request path = %q", req.URL.Path)
	}
	gotKey, gotLang := req.URL.Query().Get("api_key"), req.URL.Query().Get("language")
	if gotKey != "test-api-key-123" || gotLang != "en-US" {
		t.Errorf("query api_key=%q language=%q", gotKey, gotLang)
	}
}

func TestResolver_NoPoster(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"null path":    `{"poster_path":null}`,
		"missing path": `{"id":1}`,
		"empty path":   `{"poster_path":""}`,
		"blank path":   `{"poster_path":"   "}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			srv, _ := newUpstream(t, jsonBody(body))
			cfg := testConfig(srv.URL)
			r := newTestResolver(t, cfg)

			res := r.Resolve(context.Background(), 1)
			if res.Outcome != OutcomeNoPoster {
				t.Errorf("Outcome = %q, want %q", res.Outcome, OutcomeNoPoster)
			}
			if res.URL != cfg.Placeholders.NoPoster {
				t.Errorf("URL = %q, want no-poster placeholder", res.URL)
			}
		})
	}
}

func TestResolver_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
		want    Outcome
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			want: OutcomeBadStatus,
		},
		{
			name: "unknown movie",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"status_code":34}`, http.StatusNotFound)
			},
			want: OutcomeBadStatus,
		},
		{
			name:    "malformed body",
			handler: jsonBody(`{"poster_path":`),
			want:    OutcomeDecode,
		},
		{
			name: "slow upstream",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
				jsonBody(`{"poster_path":"/late.jpg"}`)(w, r)
			},
			timeout: 50 * time.Millisecond,
			want:    OutcomeTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv, _ := newUpstream(t, tt.handler)
			cfg := testConfig(srv.URL)
			if tt.timeout > 0 {
				cfg.Timeout = tt.timeout
			}
			r := newTestResolver(t, cfg)

			res := r.Resolve(context.Background(), 7)
			if res.Outcome != tt.want {
				t.Errorf("Outcome = %q, want %q (err = %v)", res.Outcome, tt.want, res.Err)
			}
			if res.URL != cfg.Placeholders.Error {
				t.Errorf("URL = %q, want error placeholder", res.URL)
			}
			if res.Err == nil {
				t.Error("failed resolution should carry its error")
			}
		})
	}
}

func TestResolver_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := testConfig(url)
	r := newTestResolver(t, cfg)

	res := r.Resolve(context.Background(), 1)
	if res.Outcome != OutcomeTransport {
		t.Errorf("Outcome = %q, want %q (err = %v)", res.Outcome, OutcomeTransport, res.Err)
	}
	if got := r.ResolvePoster(context.Background(), 1); got != cfg.Placeholders.Error {
		t.Errorf("ResolvePoster() = %q, want error placeholder", got)
	}
}

func TestResolver_ErrorDoesNotLeakAPIKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	r := newTestResolver(t, testConfig(url))
	res := r.Resolve(context.Background(), 1)
	if res.Err == nil {
		t.Fatal("expected an error")
	}
	if msg := res.Err.Error(); strings.Contains(msg, "test-api-key-123") {
		t.Errorf("error message leaks API key: %s", msg)
	}
}

func TestResolver_Canceled(t *testing.T) {
	t.Parallel()

	srv, hits := newUpstream(t, jsonBody(`{"poster_path":"/x.jpg"}`))
	r := newTestResolver(t, testConfig(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := r.Resolve(ctx, 1)
	if res.Outcome != OutcomeCanceled {
		t.Errorf("Outcome = %q, want %q", res.Outcome, OutcomeCanceled)
	}
	if hits.Load() != 0 {
		t.Errorf("upstream hit %d times after cancellation", hits.Load())
	}
}

func TestResolver_CachesFoundAndNoPoster(t *testing.T) {
	t.Parallel()

	srv, hits := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/movie/1" {
			jsonBody(`{"poster_path":"/one.jpg"}`)(w, r)
			return
		}
		jsonBody(`{"poster_path":null}`)(w, r)
	})
	r := newTestResolver(t, testConfig(srv.URL))

	for i := 0; i < 3; i++ {
		r.Resolve(context.Background(), 1)
		r.Resolve(context.Background(), 2)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("upstream hits = %d, want 2", got)
	}
	res := r.Resolve(context.Background(), 1)
	if !res.Cached || res.Outcome != OutcomeFound {
		t.Errorf("expected cached found resolution, got %+v", res)
	}
}

func TestResolver_DoesNotCacheFailures(t *testing.T) {
	t.Parallel()

	srv, hits := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})
	r := newTestResolver(t, testConfig(srv.URL))

	r.Resolve(context.Background(), 1)
	r.Resolve(context.Background(), 1)
	if got := hits.Load(); got != 2 {
		t.Errorf("upstream hits = %d, want 2", got)
	}
}

func TestResolver_PersistentCacheSurvivesRestart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	srv, _ := newUpstream(t, jsonBody(`{"poster_path":"/persisted.jpg"}`))
	cfg := testConfig(srv.URL)
	cfg.CachePath = dir

	first, err := NewResolver(cfg, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	want := first.ResolvePoster(context.Background(), 42)
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	down, downHits := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})
	cfg.BaseURL = down.URL
	second := newTestResolver(t, cfg)

	res := second.Resolve(context.Background(), 42)
	if res.URL != want || res.Outcome != OutcomeFound || !res.Cached {
		t.Errorf("Resolve() after restart = %+v, want cached %q", res, want)
	}
	if downHits.Load() != 0 {
		t.Error("persistent cache hit should not reach upstream")
	}
	if !second.Stats().Persistent {
		t.Error("Stats().Persistent = false")
	}
}

func TestResolver_CircuitOpens(t *testing.T) {
	t.Parallel()

	srv, hits := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	cfg := testConfig(srv.URL)
	cfg.Breaker = BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, MinRequests: 2, FailureRatio: 0.5}
	r := newTestResolver(t, cfg)

	r.Resolve(context.Background(), 1)
	r.Resolve(context.Background(), 2)
	res := r.Resolve(context.Background(), 3)

	if res.Outcome != OutcomeCircuitOpen {
		t.Errorf("Outcome = %q, want %q", res.Outcome, OutcomeCircuitOpen)
	}
	if res.URL != cfg.Placeholders.Error {
		t.Errorf("URL = %q, want error placeholder", res.URL)
	}
	if hits.Load() != 2 {
		t.Errorf("upstream hits = %d, want 2", hits.Load())
	}
	if state := r.Stats().BreakerState; state != "open" {
		t.Errorf("BreakerState = %q, want open", state)
	}
}

func TestResolver_NotFoundDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	srv, hits := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	})
	cfg := testConfig(srv.URL)
	cfg.Breaker = BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, MinRequests: 2, FailureRatio: 0.5}
	r := newTestResolver(t, cfg)

	for i := 0; i < 5; i++ {
		r.Resolve(context.Background(), i)
	}
	if hits.Load() != 5 {
		t.Errorf("upstream hits = %d, want 5", hits.Load())
	}
}

func TestResolver_RateLimited(t *testing.T) {
	t.Parallel()

	srv, hits := newUpstream(t, jsonBody(`{"poster_path":"/a.jpg"}`))
	cfg := testConfig(srv.URL)
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1
	cfg.Timeout = 100 * time.Millisecond
	r := newTestResolver(t, cfg)

	if res := r.Resolve(context.Background(), 1); res.Outcome != OutcomeFound {
		t.Fatalf("first Resolve() outcome = %q", res.Outcome)
	}
	res := r.Resolve(context.Background(), 2)
	if res.Outcome != OutcomeRateLimited {
		t.Errorf("Outcome = %q, want %q (err = %v)", res.Outcome, OutcomeRateLimited, res.Err)
	}
	if hits.Load() != 1 {
		t.Errorf("upstream hits = %d, want 1", hits.Load())
	}
}

func TestResolver_Maintain(t *testing.T) {
	t.Parallel()

	srv, _ := newUpstream(t, jsonBody(`{"poster_path":"/a.jpg"}`))
	cfg := testConfig(srv.URL)
	cfg.CacheTTL = time.Millisecond
	cfg.NoPosterTTL = time.Millisecond
	r := newTestResolver(t, cfg)

	r.Resolve(context.Background(), 1)
	r.Resolve(context.Background(), 2)
	time.Sleep(5 * time.Millisecond)

	removed, err := r.Maintain(0.5)
	if err != nil {
		t.Fatalf("Maintain() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("Maintain() removed = %d, want 2", removed)
	}
}

func TestImageURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base, path, want string
	}{
		{"https://image.tmdb.org/t/p/w500/", "/abc.jpg", "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"https://image.tmdb.org/t/p/w500", "/abc.jpg", "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"https://image.tmdb.org/t/p/w500/", "abc.jpg", "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"https://image.tmdb.org/t/p/w500", "abc.jpg", "https://image.tmdb.org/t/p/w500/abc.jpg"},
	}
	for _, tt := range tests {
		if got := ImageURL(tt.base, tt.path); got != tt.want {
			t.Errorf("ImageURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: true},
		{name: "missing placeholder", mutate: func(c *Config) { c.Placeholders.Error = "" }, wantErr: true},
		{name: "negative rate", mutate: func(c *Config) { c.RateLimit = -1 }, wantErr: true},
		{name: "key without base url", mutate: func(c *Config) { c.APIKey = "k"; c.BaseURL = "" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOutcome_Policy(t *testing.T) {
	t.Parallel()

	for _, o := range []Outcome{OutcomeFound, OutcomeNoPoster, OutcomeUnconfigured} {
		if o.Failed() {
			t.Errorf("%q.Failed() = true", o)
		}
	}
	for _, o := range []Outcome{OutcomeTimeout, OutcomeTransport, OutcomeBadStatus, OutcomeDecode, OutcomeCircuitOpen, OutcomeRateLimited, OutcomeCanceled} {
		if !o.Failed() {
			t.Errorf("%q.Failed() = false", o)
		}
		if o.Cacheable() {
			t.Errorf("%q.Cacheable() = true", o)
		}
	}
}

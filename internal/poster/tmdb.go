// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package poster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

const (
	// maxMetadataBytes bounds how much of a metadata response is decoded.
	maxMetadataBytes = 1 << 20
	// maxErrorBodyBytes bounds how much of an error response is kept.
	maxErrorBodyBytes = 64 * 1024
)

// movieMetadata is the subset of the upstream movie document we read.
type movieMetadata struct {
	PosterPath *string `json:"poster_path"`
}

// TMDBClient looks up poster paths from a TMDB-compatible metadata API.
type TMDBClient struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	language string
	timeout  time.Duration
	limiter  *rate.Limiter
	breaker  *breaker
}

// NewTMDBClient builds a client from cfg. cfg.APIKey must be set.
func NewTMDBClient(cfg *Config) *TMDBClient {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	breakerCfg := cfg.Breaker
	if breakerCfg == (BreakerConfig{}) {
		breakerCfg = DefaultBreakerConfig()
	}

	return &TMDBClient{
		client:   httpClient,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		timeout:  cfg.Timeout,
		limiter:  limiter,
		breaker:  newBreaker("tmdb-api", breakerCfg),
	}
}

// PosterPath returns the poster path for externalID, or "" when the movie has
// none. The whole lookup, including any wait on the rate limiter, is bounded
// by the configured timeout.
func (c *TMDBClient) PosterPath(ctx context.Context, externalID int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %w", errRateLimited, err)
		}
	}

	start := time.Now()
	path, err := c.breaker.execute(func() (string, error) {
		return c.fetch(ctx, externalID)
	})
	metrics.RecordPosterLookup(time.Since(start))
	return path, err
}

// BreakerState returns the circuit breaker state name.
func (c *TMDBClient) BreakerState() string {
	return c.breaker.state()
}

func (c *TMDBClient) fetch(ctx context.Context, externalID int) (string, error) {
	reqURL := c.movieURL(externalID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// url.Error embeds the full URL, API key included.
		return "", fmt.Errorf("request %s: %w", logging.RedactURL(reqURL), unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, Body: readBodyForError(resp.Body)}
	}

	var meta movieMetadata
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxMetadataBytes)).Decode(&meta); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if meta.PosterPath == nil {
		return "", nil
	}
	return strings.TrimSpace(*meta.PosterPath), nil
}

func (c *TMDBClient) movieURL(externalID int) string {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	if c.language != "" {
		q.Set("language", c.language)
	}
	return c.baseURL + "/movie/" + strconv.Itoa(externalID) + "?" + q.Encode()
}

// unwrapURLError strips the url.Error wrapper so the request URL does not
// leak into logs while keeping the cause for errors.Is.
func unwrapURLError(err error) error {
	if urlErr, ok := err.(*url.Error); ok { //nolint:errorlint // only the outermost wrapper is stripped
		return urlErr.Err
	}
	return err
}

// readBodyForError reads a bounded amount of an error response body.
func readBodyForError(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// ImageURL joins an image base URL and a poster path with exactly one slash.
func ImageURL(imageBase, posterPath string) string {
	return strings.TrimRight(imageBase, "/") + "/" + strings.TrimLeft(posterPath, "/")
}

// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// PosterResolver maps an external movie ID to a displayable image URL. It
// must always return a URL; failures are expressed as placeholder URLs.
type PosterResolver interface {
	ResolvePoster(ctx context.Context, externalID int) string
}

// ErrNotFound matches every *NotFoundError.
var ErrNotFound = errors.New("title not found")

// ErrInvalidK is returned for a negative result count.
var ErrInvalidK = errors.New("k must not be negative")

// NotFoundError reports a query title with no case-insensitive match.
type NotFoundError struct {
	// Query is the title exactly as the caller supplied it.
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("movie %q not found in catalog", e.Query)
}

// Is makes errors.Is(err, ErrNotFound) true.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Request is a recommendation query.
type Request struct {
	// Title is matched case-insensitively against catalog titles.
	Title string `json:"title"`

	// K is the number of recommendations. Zero selects the default.
	K int `json:"k"`

	// RequestID is propagated into logs and response metadata.
	RequestID string `json:"request_id,omitempty"`
}

// Movie identifies a catalog entry.
type Movie struct {
	Index int    `json:"index"`
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Score is a similarity score. Non-finite values encode as JSON null.
type Score float64

// MarshalJSON implements json.Marshaler.
func (s Score) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// Recommendation is one similar movie.
type Recommendation struct {
	Rank      int    `json:"rank"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	PosterURL string `json:"poster_url"`
	Score     Score  `json:"score"`
}

// Response is a successful recommendation result.
type Response struct {
	// Query is the title as supplied.
	Query string `json:"query"`

	// Movie is the catalog entry the query matched.
	Movie Movie `json:"movie"`

	// Items are ordered by descending similarity.
	Items []Recommendation `json:"items"`

	Metadata ResponseMetadata `json:"metadata"`
}

// Titles returns the recommended titles in rank order.
func (r *Response) Titles() []string {
	titles := make([]string, len(r.Items))
	for i, item := range r.Items {
		titles[i] = item.Title
	}
	return titles
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID string    `json:"request_id,omitempty"`
	K         int       `json:"k"`
	Catalog   int       `json:"catalog_size"`
	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}

// TitlePage is one page of title search results.
type TitlePage struct {
	Items  []Movie `json:"items"`
	Total  int     `json:"total"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
}

// Stats reports engine counters.
type Stats struct {
	CatalogTitles    int     `json:"catalog_titles"`
	RequestCount     int64   `json:"request_count"`
	NotFoundCount    int64   `json:"not_found_count"`
	InvalidCount     int64   `json:"invalid_count"`
	AverageLatencyMS float64 `json:"average_latency_ms"`
	MaxConcurrency   int     `json:"max_concurrency"`
	DefaultK         int     `json:"default_k"`
	MaxK             int     `json:"max_k"`
}

// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Engine answers recommendation and title search queries over an immutable
// catalog.Store.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	store   *catalog.Store
	posters PosterResolver

	// index maps folded titles to the first catalog index carrying them.
	index *titleIndex

	workers int

	requestCount  atomic.Int64
	notFoundCount atomic.Int64
	invalidCount  atomic.Int64
	latencyNanos  atomic.Int64
}

// NewEngine creates a recommendation engine. A nil cfg selects
// DefaultConfig.
func NewEngine(store *catalog.Store, posters PosterResolver, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, errors.New("store is required")
	}
	if posters == nil {
		return nil, errors.New("poster resolver is required")
	}

	e := &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		store:   store,
		posters: posters,
		index:   buildTitleIndex(store.Catalog()),
		workers: cfg.concurrency(),
	}

	metrics.SetCatalogTitles(store.Len())
	e.logger.Info().
		Int("titles", store.Len()).
		Int("distinct_titles", e.index.distinct()).
		Int("max_concurrency", e.workers).
		Msg("recommendation engine ready")

	return e, nil
}

// Recommend returns the movies most similar to req.Title. An unknown title
// yields an error matching ErrNotFound whose Query is req.Title unchanged.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(ctx)
	}
	log := e.logger.With().Str("request_id", req.RequestID).Logger()

	k, err := e.resolveK(req.K)
	if err != nil {
		e.invalidCount.Add(1)
		metrics.RecordRecommendation("invalid", 0, time.Since(start))
		return nil, err
	}

	idx, ok := e.index.lookup(req.Title)
	if !ok {
		e.notFoundCount.Add(1)
		metrics.RecordRecommendation("not_found", 0, time.Since(start))
		log.Debug().Str("title", req.Title).Msg("title not found")
		return nil, &NotFoundError{Query: req.Title}
	}

	neighbours := topK(e.store.Similarity().Row(idx), idx, k)

	cat := e.store.Catalog()
	items := make([]Recommendation, len(neighbours))
	for i, n := range neighbours {
		entry := cat.At(n.index)
		items[i] = Recommendation{
			Rank:  i + 1,
			ID:    entry.ID,
			Title: entry.Title,
			Score: Score(n.score),
		}
	}

	e.attachPosters(ctx, items)

	latency := time.Since(start)
	e.latencyNanos.Add(latency.Nanoseconds())
	metrics.RecordRecommendation("success", len(items), latency)

	self := cat.At(idx)
	log.Debug().
		Str("title", self.Title).
		Int("k", k).
		Int("items", len(items)).
		Dur("latency", latency).
		Msg("recommendations generated")

	return &Response{
		Query: req.Title,
		Movie: Movie{Index: idx, ID: self.ID, Title: self.Title},
		Items: items,
		Metadata: ResponseMetadata{
			RequestID: req.RequestID,
			K:         k,
			Catalog:   e.store.Len(),
			LatencyMS: latency.Milliseconds(),
			Timestamp: time.Now().UTC(),
		},
	}, nil
}

// Lookup returns the catalog entry a title resolves to.
func (e *Engine) Lookup(title string) (Movie, error) {
	idx, ok := e.index.lookup(title)
	if !ok {
		return Movie{}, &NotFoundError{Query: title}
	}
	entry := e.store.Catalog().At(idx)
	return Movie{Index: idx, ID: entry.ID, Title: entry.Title}, nil
}

// resolveK applies the default and the cap.
func (e *Engine) resolveK(k int) (int, error) {
	switch {
	case k < 0:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	case k == 0:
		return e.config.Limits.DefaultK, nil
	case k > e.config.Limits.MaxK:
		return e.config.Limits.MaxK, nil
	default:
		return k, nil
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	requests := e.requestCount.Load()
	served := requests - e.notFoundCount.Load() - e.invalidCount.Load()

	var avg float64
	if served > 0 {
		avg = float64(e.latencyNanos.Load()) / float64(served) / float64(time.Millisecond)
	}

	return Stats{
		CatalogTitles:    e.store.Len(),
		RequestCount:     requests,
		NotFoundCount:    e.notFoundCount.Load(),
		InvalidCount:     e.invalidCount.Load(),
		AverageLatencyMS: avg,
		MaxConcurrency:   e.workers,
		DefaultK:         e.config.Limits.DefaultK,
		MaxK:             e.config.Limits.MaxK,
	}
}

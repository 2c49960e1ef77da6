// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package poster

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// pathLookup fetches a raw poster path. TMDBClient is the production
// implementation.
type pathLookup interface {
	PosterPath(ctx context.Context, externalID int) (string, error)
}

// Resolver turns external movie IDs into poster URLs. It is safe for
// concurrent use.
type Resolver struct {
	cfg    Config
	lookup pathLookup
	client *TMDBClient
	memory *cache.LRU[int, Resolution]
	store  *BadgerStore
	logger zerolog.Logger

	// Counters for Stats
	lookups  atomic.Int64
	failures atomic.Int64
}

// Stats summarizes resolver activity for the status endpoint.
type Stats struct {
	Configured   bool        `json:"configured"`
	Lookups      int64       `json:"upstream_lookups"`
	Failures     int64       `json:"upstream_failures"`
	BreakerState string      `json:"breaker_state,omitempty"`
	MemoryCache  cache.Stats `json:"memory_cache"`
	Persistent   bool        `json:"persistent_cache"`
}

// NewResolver builds a Resolver. With no API key it never touches the
// network and opens no cache.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewResolver(cfg Config, logger zerolog.Logger) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid poster config: %w", err)
	}

	r := &Resolver{
		cfg:    cfg,
		logger: logger.With().Str("component", "poster").Logger(),
	}
	if !cfg.Configured() {
		r.logger.Warn().Msg("No poster API key configured, serving placeholder images")
		return r, nil
	}

	r.client = NewTMDBClient(&cfg)
	r.lookup = r.client

	if cfg.CacheSize > 0 {
		r.memory = cache.NewLRU[int, Resolution](cfg.CacheSize, cfg.CacheTTL)
	}
	if cfg.CachePath != "" {
		store, err := OpenBadgerStore(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("open poster cache: %w", err)
		}
		r.store = store
	}

	r.logger.Info().
		Str("base_url", cfg.BaseURL).
		Str("api_key", logging.SanitizeToken(cfg.APIKey)).
		Dur("timeout", cfg.Timeout).
		Int("memory_cache", cfg.CacheSize).
		Bool("persistent_cache", r.store != nil).
		Msg("Poster resolver configured")
	return r, nil
}

// Configured reports whether upstream lookups are enabled.
func (r *Resolver) Configured() bool {
	return r.lookup != nil
}

// ResolvePoster returns a displayable URL for externalID. It never fails.
func (r *Resolver) ResolvePoster(ctx context.Context, externalID int) string {
	return r.Resolve(ctx, externalID).URL
}

// Resolve returns the URL together with the outcome that produced it.
func (r *Resolver) Resolve(ctx context.Context, externalID int) Resolution {
	res := r.resolve(ctx, externalID)
	metrics.RecordPosterResolution(string(res.Outcome))
	if res.Outcome.Failed() {
		r.failures.Add(1)
		ev := logging.Ctx(ctx).Warn()
		if res.Outcome == OutcomeCanceled {
			ev = logging.Ctx(ctx).Debug()
		}
		ev.Str("component", "poster").
			Int("movie_id", externalID).
			Str("outcome", string(res.Outcome)).
			Err(res.Err).
			Msg("Poster lookup failed, using placeholder")
	}
	return res
}

func (r *Resolver) resolve(ctx context.Context, externalID int) Resolution {
	if r.lookup == nil {
		return Resolution{URL: r.cfg.Placeholders.Unconfigured, Outcome: OutcomeUnconfigured}
	}

	if res, ok := r.cached(externalID); ok {
		return res
	}
	metrics.RecordPosterCacheMiss()

	r.lookups.Add(1)
	path, err := r.lookup.PosterPath(ctx, externalID)
	var res Resolution
	switch {
	case err != nil:
		return Resolution{URL: r.cfg.Placeholders.Error, Outcome: classify(err), Err: err}
	case path == "":
		res = Resolution{URL: r.cfg.Placeholders.NoPoster, Outcome: OutcomeNoPoster}
	default:
		res = Resolution{URL: ImageURL(r.cfg.ImageBaseURL, path), Outcome: OutcomeFound}
	}
	r.remember(externalID, res)
	return res
}

func (r *Resolver) cached(externalID int) (Resolution, bool) {
	if r.memory != nil {
		if res, ok := r.memory.Get(externalID); ok {
			metrics.RecordPosterCacheHit("memory")
			res.Cached = true
			return res, true
		}
	}
	if r.store != nil {
		res, ok, err := r.store.Get(externalID)
		if err != nil {
			r.logger.Warn().Err(err).Int("movie_id", externalID).Msg("Persistent poster cache read failed")
			return Resolution{}, false
		}
		if ok {
			metrics.RecordPosterCacheHit("badger")
			if r.memory != nil {
				r.memory.AddWithTTL(externalID, res, r.ttlFor(res.Outcome))
			}
			return res, true
		}
	}
	return Resolution{}, false
}

func (r *Resolver) remember(externalID int, res Resolution) {
	if !res.Outcome.Cacheable() {
		return
	}
	ttl := r.ttlFor(res.Outcome)
	if r.memory != nil {
		r.memory.AddWithTTL(externalID, res, ttl)
		metrics.SetPosterCacheEntries(r.memory.Len())
	}
	if r.store != nil {
		if err := r.store.Put(externalID, res, ttl); err != nil {
			r.logger.Warn().Err(err).Int("movie_id", externalID).Msg("Persistent poster cache write failed")
		}
	}
}

func (r *Resolver) ttlFor(outcome Outcome) time.Duration {
	if outcome == OutcomeNoPoster && r.cfg.NoPosterTTL > 0 {
		return r.cfg.NoPosterTTL
	}
	return r.cfg.CacheTTL
}

// Maintain drops expired memory entries and compacts the persistent store.
// It returns the number of memory entries removed.
func (r *Resolver) Maintain(discardRatio float64) (int, error) {
	removed := 0
	if r.memory != nil {
		removed = r.memory.CleanupExpired()
		metrics.RecordPosterCacheExpired(removed)
		metrics.SetPosterCacheEntries(r.memory.Len())
	}
	if r.store != nil {
		if err := r.store.RunGC(discardRatio); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// Stats returns a snapshot of resolver activity.
func (r *Resolver) Stats() Stats {
	s := Stats{
		Configured: r.Configured(),
		Lookups:    r.lookups.Load(),
		Failures:   r.failures.Load(),
		Persistent: r.store != nil,
	}
	if r.client != nil {
		s.BreakerState = r.client.BreakerState()
	}
	if r.memory != nil {
		s.MemoryCache = r.memory.Stats()
	}
	return s
}

// Close releases the persistent cache.
func (r *Resolver) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

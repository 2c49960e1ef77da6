// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// PosterCache is the maintenance surface of the poster resolver.
type PosterCache interface {
	// Maintain expires stale entries and compacts persistent storage,
	// returning the number of entries removed.
	Maintain(discardRatio float64) (int, error)
}

// PosterCacheServiceConfig holds configuration for the cache service.
type PosterCacheServiceConfig struct {
	// Interval between maintenance passes. Default: 10m
	Interval time.Duration

	// DiscardRatio is handed to the persistent store's value log GC.
	// Default: 0.5
	DiscardRatio float64
}

// PosterCacheService periodically maintains the poster cache.
type PosterCacheService struct {
	cache  PosterCache
	config PosterCacheServiceConfig
	logger zerolog.Logger
	name   string
}

// NewPosterCacheService creates a new poster cache maintenance service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPosterCacheService(cache PosterCache, cfg PosterCacheServiceConfig, logger zerolog.Logger) *PosterCacheService {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if cfg.DiscardRatio <= 0 || cfg.DiscardRatio >= 1 {
		cfg.DiscardRatio = 0.5
	}
	return &PosterCacheService{
		cache:  cache,
		config: cfg,
		logger: logger.With().Str("service", "poster-cache").Logger(),
		name:   "poster-cache-service",
	}
}

// Serve implements the suture.Service interface. Maintenance errors are
// logged and retried on the next tick; they never restart the service.
func (s *PosterCacheService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Float64("discard_ratio", s.config.DiscardRatio).
		Msg("poster cache service starting")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("poster cache service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *PosterCacheService) runOnce() {
	start := time.Now()
	removed, err := s.cache.Maintain(s.config.DiscardRatio)
	if err != nil {
		s.logger.Warn().Err(err).Msg("poster cache maintenance failed")
		return
	}
	s.logger.Debug().
		Int("removed", removed).
		Dur("duration", time.Since(start)).
		Msg("poster cache maintenance complete")
}

// String returns the service name for logging.
func (s *PosterCacheService) String() string {
	return s.name
}

// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/poster"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

// RecommendComponents holds all recommendation-related components.
type RecommendComponents struct {
	Store    *catalog.Store
	Resolver *poster.Resolver
	Engine   *recommend.Engine
}

// Close releases the poster cache.
func (c *RecommendComponents) Close() error {
	return c.Resolver.Close()
}

// initRecommend loads the catalog and similarity matrix and builds the
// engine. Any failure here is fatal: the service has nothing to serve
// without a loaded store.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*RecommendComponents, error) {
	store, err := catalog.NewLoader(logger).Load(ctx, cfg.Data.CatalogPath, cfg.Data.SimilarityPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	resolver, err := poster.NewResolver(cfg.ResolverConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("create poster resolver: %w", err)
	}

	engine, err := recommend.NewEngine(store, resolver, cfg.EngineConfig(), logger)
	if err != nil {
		_ = resolver.Close()
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	logger.Info().
		Int("titles", store.Len()).
		Bool("posters_configured", resolver.Configured()).
		Bool("persistent_poster_cache", cfg.Poster.CachePath != "").
		Int("default_k", cfg.Recommend.DefaultK).
		Msg("recommendation components initialized")

	return &RecommendComponents{
		Store:    store,
		Resolver: resolver,
		Engine:   engine,
	}, nil
}

// addMaintenance registers poster cache housekeeping with the tree.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func addMaintenance(tree *supervisor.SupervisorTree, rc *RecommendComponents, cfg *config.Config, logger zerolog.Logger) {
	tree.AddMaintenanceService(services.NewPosterCacheService(rc.Resolver, services.PosterCacheServiceConfig{
		Interval:     cfg.Poster.MaintenanceInterval,
		DiscardRatio: cfg.Poster.GCDiscardRatio,
	}, logger))
}

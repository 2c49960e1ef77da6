// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/poster"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Recommender is the engine surface the handlers depend on.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Titles(query string, offset, limit int) recommend.TitlePage
	Stats() recommend.Stats
}

// PosterStatus reports poster resolver state.
type PosterStatus interface {
	Stats() poster.Stats
}

// HandlerConfig holds handler limits.
type HandlerConfig struct {
	// RequestTimeout bounds a single recommendation including poster lookups.
	RequestTimeout time.Duration
	// MaxTitleLength rejects absurd query strings before lookup.
	MaxTitleLength int
	// MaxPageSize bounds the movies listing limit parameter.
	MaxPageSize int
}

// DefaultHandlerConfig returns the default handler limits.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		RequestTimeout: 30 * time.Second,
		MaxTitleLength: 500,
		MaxPageSize:    100,
	}
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_recommend.go: recommendation, status and title search
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	engine    Recommender
	posters   PosterStatus
	catalog   catalog.Info
	config    HandlerConfig
	startTime time.Time
	ready     atomic.Bool
}

// NewHandler creates a new API handler. The handler starts ready because
// the store is loaded before the engine can exist.
func NewHandler(engine Recommender, posters PosterStatus, info catalog.Info, cfg HandlerConfig) *Handler {
	h := &Handler{
		engine:    engine,
		posters:   posters,
		catalog:   info,
		config:    cfg,
		startTime: time.Now(),
	}
	h.ready.Store(true)
	return h
}

// SetReady toggles the readiness probe, e.g. while draining on shutdown.
func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

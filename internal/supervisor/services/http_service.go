// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPServer is the subset of *http.Server the service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs an HTTP server under suture.
//
// On context cancellation it calls the drain hook first, so readiness
// probes fail while in-flight recommendations finish, then shuts the
// server down within shutdownTimeout.
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
	onDrain         func()
	logger          zerolog.Logger
	name            string
}

// HTTPServiceOption configures an HTTPServerService.
type HTTPServiceOption func(*HTTPServerService)

// WithDrainHook registers fn to run before graceful shutdown begins.
func WithDrainHook(fn func()) HTTPServiceOption {
	return func(h *HTTPServerService) { h.onDrain = fn }
}

// WithLogger sets the service logger.
//
//nolint:gocritic // zerolog loggers are passed by value
func WithLogger(logger zerolog.Logger) HTTPServiceOption {
	return func(h *HTTPServerService) {
		h.logger = logger.With().Str("service", h.name).Logger()
	}
}

// NewHTTPServerService wraps server. A non-positive shutdownTimeout selects 10s.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration, opts ...HTTPServiceOption) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	h := &HTTPServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		logger:          zerolog.Nop(),
		name:            "http-server",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Serve implements suture.Service.
// http.ErrServerClosed is expected on shutdown and is not reported.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		if h.onDrain != nil {
			h.onDrain()
		}
		h.logger.Info().Dur("timeout", h.shutdownTimeout).Msg("Draining HTTP server")

		// The parent context is already canceled.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}

		<-errCh
		return ctx.Err()
	}
}

// String identifies the service in suture events.
func (h *HTTPServerService) String() string {
	return h.name
}

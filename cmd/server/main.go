// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingConfig())

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("catalog", cfg.Data.CatalogPath).
		Str("similarity", cfg.Data.SimilarityPath).
		Msg("Starting Marquee with supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	// Fatal exits without running deferred calls, so every resource is
	// released inside run before it returns.
	err = run(ctx, cfg)
	cancel()
	if err != nil {
		logging.Fatal().Err(err).Msg("Marquee stopped")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// run builds the components and serves until ctx is canceled. The poster
// cache is closed before run returns on every path.
func run(ctx context.Context, cfg *config.Config) error {
	rc, err := initRecommend(ctx, cfg, logging.Logger())
	if err != nil {
		return fmt.Errorf("initialize recommendation engine: %w", err)
	}
	defer func() {
		if err := rc.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing poster cache")
		}
	}()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	handler := api.NewHandler(rc.Engine, rc.Resolver, rc.Store.Info(), api.HandlerConfig{
		RequestTimeout: cfg.Server.Timeout,
		MaxTitleLength: api.DefaultHandlerConfig().MaxTitleLength,
		MaxPageSize:    cfg.API.MaxPageSize,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logging.Debug().
		Dur("request_timeout", cfg.Server.Timeout).
		Dur("write_timeout", server.WriteTimeout).
		Int("max_page_size", cfg.API.MaxPageSize).
		Msg("HTTP server configured")

	// === ADD SERVICES TO SUPERVISOR TREE ===
	addMaintenance(tree, rc, cfg, logging.WithComponent("maintenance"))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout,
		services.WithDrainHook(func() { handler.SetReady(false) }),
		services.WithLogger(logging.WithComponent("api"))))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===
	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}
	return nil
}

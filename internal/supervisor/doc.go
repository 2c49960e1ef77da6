// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor provides process supervision for Marquee using suture v4.

# Overview

The tree separates housekeeping from serving:

	RootSupervisor ("marquee")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── PosterCacheService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A poster cache failure restarts inside the maintenance layer and never
interrupts the HTTP server.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(slogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second,
	    services.WithDrainHook(func() { handler.SetReady(false) })))
	tree.AddMaintenanceService(services.NewPosterCacheService(resolver, cfg, logger))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Failure Handling

Each failure increments a counter that decays over FailureDecay seconds.
Past FailureThreshold the supervisor waits FailureBackoff before the next
restart. A service returning nil is not restarted; returning an error is a
crash.

Supervisor events are logged through sutureslog into the slog adapter of the
logging package, so they share the zerolog output format.

# What Is NOT Supervised

The catalog and similarity matrix are loaded once before the tree starts and
are immutable afterwards. DuckDB is only used during that load.

# Debugging Shutdown Issues

	report, err := tree.UnstoppedServiceReport()
*/
package supervisor

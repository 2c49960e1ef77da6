// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP middleware components for the application.

Key Components:

  - Request ID: UUID-based request tracking, mirrored into the logging
    context as request_id and correlation_id
  - Prometheus Metrics: request count, latency and in-flight gauge labelled
    by chi route pattern

Both are plain func(http.HandlerFunc) http.HandlerFunc wrappers; the api
package adapts them to chi's r.Use.

Usage Example:

	handler := middleware.RequestID(middleware.PrometheusMetrics(h.Recommendations))
*/
package middleware

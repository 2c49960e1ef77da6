// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides the HTTP REST API layer for Marquee.

Endpoints:

	GET /api/v1/recommendations?title=Avatar&k=5   similar movies with posters
	GET /api/v1/recommendations/status             engine, catalog and poster status
	GET /api/v1/movies?q=matrix&offset=0&limit=20  title search in catalog order
	GET /api/v1/health/live                        liveness probe
	GET /api/v1/health/ready                       readiness probe
	GET /metrics                                   Prometheus exposition

Every JSON response uses the APIResponse envelope:

	{"success":true,"data":{...},"meta":{"request_id":"...","timestamp":"...","duration_ms":3}}
	{"success":false,"error":{"code":"NOT_FOUND","message":"...","details":{"title":"Avatr"}}}

An unknown title answers 404 with code NOT_FOUND and the title echoed exactly
as the client sent it. Malformed or out-of-range parameters answer 400 with
code VALIDATION_FAILED.

Middleware (outermost first): request ID, real IP, panic recovery, CORS,
then per group rate limiting (go-chi/httprate), security headers, Prometheus
instrumentation and gzip compression.
*/
package api

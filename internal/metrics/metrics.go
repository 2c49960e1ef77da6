// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package metrics defines the Prometheus collectors exported at /metrics.
//
// Collectors are registered with the default registry through promauto.
// Call sites use the Record* helpers rather than touching collectors
// directly so label sets stay consistent.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation queries by result",
		},
		[]string{"result"}, // "success", "not_found", "invalid"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "End-to-end recommendation latency including poster resolution",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	RecommendItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_items",
			Help:    "Number of recommendations returned per successful query",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 10, 15, 20},
		},
	)

	CatalogTitles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_titles",
			Help: "Number of titles in the loaded catalog",
		},
	)

	// Poster Resolution Metrics
	PosterResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_resolutions_total",
			Help: "Total number of poster resolutions by outcome",
		},
		[]string{"outcome"},
	)

	PosterLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poster_lookup_duration_seconds",
			Help:    "Duration of upstream poster metadata lookups",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	PosterCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_cache_hits_total",
			Help: "Total number of poster cache hits by tier",
		},
		[]string{"tier"}, // "memory", "badger"
	)

	PosterCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poster_cache_misses_total",
			Help: "Total number of poster lookups that missed every cache tier",
		},
	)

	PosterCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "poster_cache_entries",
			Help: "Current number of entries in the in-memory poster cache",
		},
	)

	PosterCacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poster_cache_expired_total",
			Help: "Total number of expired poster cache entries removed by maintenance",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rejected request
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records the outcome of a recommendation query.
// items is ignored unless result is "success".
func RecordRecommendation(result string, items int, duration time.Duration) {
	RecommendRequests.WithLabelValues(result).Inc()
	RecommendDuration.Observe(duration.Seconds())
	if result == "success" {
		RecommendItems.Observe(float64(items))
	}
}

// SetCatalogTitles publishes the loaded catalog size
func SetCatalogTitles(n int) {
	CatalogTitles.Set(float64(n))
}

// RecordPosterResolution records one poster resolution outcome
func RecordPosterResolution(outcome string) {
	PosterResolutions.WithLabelValues(outcome).Inc()
}

// RecordPosterLookup records the latency of an upstream lookup
func RecordPosterLookup(duration time.Duration) {
	PosterLookupDuration.Observe(duration.Seconds())
}

// RecordPosterCacheHit records a hit in the given cache tier
func RecordPosterCacheHit(tier string) {
	PosterCacheHits.WithLabelValues(tier).Inc()
}

// RecordPosterCacheMiss records a lookup that missed every cache tier
func RecordPosterCacheMiss() {
	PosterCacheMisses.Inc()
}

// SetPosterCacheEntries publishes the in-memory cache size
func SetPosterCacheEntries(n int) {
	PosterCacheEntries.Set(float64(n))
}

// RecordPosterCacheExpired records entries removed by cache maintenance
func RecordPosterCacheExpired(n int) {
	PosterCacheEvictions.Add(float64(n))
}

// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))
	RecordAPIRequest("GET", "/api/v1/recommendations", "200", 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))
	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name   string
		result string
		items  int
	}{
		{"success", "success", 5},
		{"not found", "not_found", 0},
		{"invalid", "invalid", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.result))
			RecordRecommendation(tt.result, tt.items, time.Millisecond)
			after := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.result))
			if after-before != 1 {
				t.Errorf("recommend_requests_total{result=%q} delta = %v, want 1", tt.result, after-before)
			}
		})
	}
}

func TestPosterMetrics(t *testing.T) {
	before := testutil.ToFloat64(PosterResolutions.WithLabelValues("found"))
	RecordPosterResolution("found")
	if got := testutil.ToFloat64(PosterResolutions.WithLabelValues("found")); got-before != 1 {
		t.Errorf("poster_resolutions_total{outcome=found} delta = %v, want 1", got-before)
	}

	hitsBefore := testutil.ToFloat64(PosterCacheHits.WithLabelValues("memory"))
	RecordPosterCacheHit("memory")
	if got := testutil.ToFloat64(PosterCacheHits.WithLabelValues("memory")); got-hitsBefore != 1 {
		t.Errorf("poster_cache_hits_total{tier=memory} delta = %v, want 1", got-hitsBefore)
	}

	SetPosterCacheEntries(42)
	if got := testutil.ToFloat64(PosterCacheEntries); got != 42 {
		t.Errorf("poster_cache_entries = %v, want 42", got)
	}

	SetCatalogTitles(4803)
	if got := testutil.ToFloat64(CatalogTitles); got != 4803 {
		t.Errorf("catalog_titles = %v, want 4803", got)
	}
}

// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/poster"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Recommendations handles GET /api/v1/recommendations?title=&k=
// Returns the movies most similar to title, each with a poster URL.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, apiErr := h.parseRecommendRequest(r)
	if apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	ctx := r.Context()
	if h.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.RequestTimeout)
		defer cancel()
	}

	resp, err := h.engine.Recommend(ctx, recommend.Request{
		Title:     req.Title,
		K:         req.K,
		RequestID: logging.RequestIDFromContext(ctx),
	})
	if err != nil {
		h.writeRecommendError(rw, r, err)
		return
	}

	logging.Ctx(ctx).Debug().
		Str("title", resp.Movie.Title).
		Int("items", len(resp.Items)).
		Msg("Recommendations served")

	rw.Success(resp)
}

func (h *Handler) writeRecommendError(rw *ResponseWriter, r *http.Request, err error) {
	var nf *recommend.NotFoundError
	switch {
	case errors.As(err, &nf):
		rw.ErrorWithDetails(http.StatusNotFound, ErrCodeNotFound,
			fmt.Sprintf("Movie %q not found in catalog", nf.Query),
			map[string]string{"title": nf.Query})
	case errors.Is(err, recommend.ErrInvalidK):
		rw.ValidationError(err.Error(), map[string]string{"field": "k"})
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Recommendation failed")
		rw.InternalError("Failed to generate recommendations")
	}
}

// Movies handles GET /api/v1/movies?q=&offset=&limit=
// Lists catalog titles containing q, case-insensitively, in catalog order.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, apiErr := h.parseMoviesRequest(r)
	if apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	page := h.engine.Titles(req.Query, req.Offset, req.Limit)

	rw.SuccessWithPagination(page.Items, &PaginationMeta{
		Total:   page.Total,
		Count:   len(page.Items),
		Offset:  page.Offset,
		Limit:   page.Limit,
		HasMore: page.Offset+len(page.Items) < page.Total,
	})
}

// RecommendStatus is the payload of GET /api/v1/recommendations/status.
type RecommendStatus struct {
	Catalog    catalog.Info    `json:"catalog"`
	Engine     recommend.Stats `json:"engine"`
	PosterMode string          `json:"poster_mode"`
	Posters    poster.Stats    `json:"posters"`
}

// Poster modes reported by the status endpoint.
const (
	PosterModeConfigured  = "configured"
	PosterModePlaceholder = "placeholder"
)

// RecommendationStatus handles GET /api/v1/recommendations/status
func (h *Handler) RecommendationStatus(w http.ResponseWriter, r *http.Request) {
	status := RecommendStatus{
		Catalog:    h.catalog,
		Engine:     h.engine.Stats(),
		PosterMode: PosterModePlaceholder,
	}
	if h.posters != nil {
		status.Posters = h.posters.Stats()
		if status.Posters.Configured {
			status.PosterMode = PosterModeConfigured
		}
	}

	WriteSuccess(w, r, status)
}

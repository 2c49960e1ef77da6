// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/marquee/internal/validation"
)

// RecommendRequest represents the validated query parameters for
// /recommendations. K of zero selects the configured default.
type RecommendRequest struct {
	Title string `query:"title" validate:"notblank"`
	K     int    `query:"k" validate:"min=0"`
}

// MoviesRequest represents the validated query parameters for /movies.
// Limit of zero selects the configured default page size.
type MoviesRequest struct {
	Query  string `query:"q"`
	Offset int    `query:"offset" validate:"min=0"`
	Limit  int    `query:"limit" validate:"min=0"`
}

// paramError reports a query parameter that is not a valid integer.
type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("%s must be an integer, got %q", e.name, e.value)
}

// getIntParam reads an optional integer query parameter.
func getIntParam(r *http.Request, name string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{name: name, value: raw}
	}
	return v, nil
}

// parseRecommendRequest extracts and validates recommendation parameters.
// The title is returned exactly as sent.
func (h *Handler) parseRecommendRequest(r *http.Request) (RecommendRequest, *validation.APIError) {
	req := RecommendRequest{Title: r.URL.Query().Get("title")}

	k, err := getIntParam(r, "k", 0)
	if err != nil {
		return req, paramAPIError(err)
	}
	req.K = k

	if verr := validation.ValidateStruct(&req); verr != nil {
		return req, verr.ToAPIError()
	}
	if h.config.MaxTitleLength > 0 && len(req.Title) > h.config.MaxTitleLength {
		return req, &validation.APIError{
			Code:    "VALIDATION_ERROR",
			Message: fmt.Sprintf("title must be at most %d characters", h.config.MaxTitleLength),
			Details: map[string]interface{}{"field": "title", "tag": "max"},
		}
	}
	return req, nil
}

// parseMoviesRequest extracts and validates title search parameters.
func (h *Handler) parseMoviesRequest(r *http.Request) (MoviesRequest, *validation.APIError) {
	req := MoviesRequest{Query: r.URL.Query().Get("q")}

	var err error
	if req.Offset, err = getIntParam(r, "offset", 0); err != nil {
		return req, paramAPIError(err)
	}
	if req.Limit, err = getIntParam(r, "limit", 0); err != nil {
		return req, paramAPIError(err)
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		return req, verr.ToAPIError()
	}
	if h.config.MaxPageSize > 0 && req.Limit > h.config.MaxPageSize {
		req.Limit = h.config.MaxPageSize
	}
	return req, nil
}

func paramAPIError(err error) *validation.APIError {
	details := map[string]interface{}{}
	if pe, ok := err.(*paramError); ok { //nolint:errorlint // constructed locally, never wrapped
		details["field"] = pe.name
		details["value"] = pe.value
	}
	return &validation.APIError{
		Code:    "VALIDATION_ERROR",
		Message: err.Error(),
		Details: details,
	}
}

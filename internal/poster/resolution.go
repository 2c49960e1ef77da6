// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package poster

import (
	"context"
	"errors"
	"fmt"
	"net"

	gobreaker "github.com/sony/gobreaker/v2"
)

// Outcome names how a poster URL was obtained.
type Outcome string

const (
	OutcomeFound        Outcome = "found"
	OutcomeNoPoster     Outcome = "no_poster"
	OutcomeUnconfigured Outcome = "unconfigured"
	OutcomeTimeout      Outcome = "timeout"
	OutcomeTransport    Outcome = "transport"
	OutcomeBadStatus    Outcome = "bad_status"
	OutcomeDecode       Outcome = "decode"
	OutcomeCircuitOpen  Outcome = "circuit_open"
	OutcomeRateLimited  Outcome = "rate_limited"
	OutcomeCanceled     Outcome = "canceled"
)

// Failed reports whether the outcome maps to the error placeholder.
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeFound, OutcomeNoPoster, OutcomeUnconfigured:
		return false
	default:
		return true
	}
}

// Cacheable reports whether a resolution with this outcome may be reused.
func (o Outcome) Cacheable() bool {
	return o == OutcomeFound || o == OutcomeNoPoster
}

// Resolution is the result of resolving one poster.
type Resolution struct {
	URL     string  `json:"url"`
	Outcome Outcome `json:"outcome"`
	// Err is set for failed outcomes only.
	Err error `json:"-"`
	// Cached is true when the resolution came from a cache tier.
	Cached bool `json:"-"`
}

// Placeholders are the fixed URLs returned when no real poster is available.
type Placeholders struct {
	Unconfigured string
	NoPoster     string
	Error        string
}

// DefaultPlaceholders returns the stock placeholder images.
func DefaultPlaceholders() Placeholders {
	return Placeholders{
		Unconfigured: "https://via.placeholder.com/300x450?text=Poster+Unavailable",
		NoPoster:     "https://via.placeholder.com/300x450?text=No+Poster",
		Error:        "https://via.placeholder.com/300x450?text=Error",
	}
}

// StatusError is returned for a non-2xx upstream response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := e.Body
	if body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, body)
}

// ErrDecode wraps malformed upstream bodies.
var ErrDecode = errors.New("decode poster metadata")

// errRateLimited wraps a failed wait on the outbound limiter.
var errRateLimited = errors.New("outbound rate limit wait aborted")

// classify maps a lookup error to a failure outcome.
func classify(err error) Outcome {
	var (
		statusErr *StatusError
		netErr    net.Error
	)
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return OutcomeCircuitOpen
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return OutcomeTimeout
	case errors.Is(err, errRateLimited):
		return OutcomeRateLimited
	case errors.As(err, &statusErr):
		return OutcomeBadStatus
	case errors.Is(err, ErrDecode):
		return OutcomeDecode
	default:
		return OutcomeTransport
	}
}

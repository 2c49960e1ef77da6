// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"net/url"
	"strings"
)

// secretQueryParams are query parameter names whose values never reach a log line.
var secretQueryParams = []string{"api_key", "apikey", "token", "access_token"}

// SanitizeToken keeps the first four characters of a secret.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****"
}

// RedactURL masks secret query parameters in rawURL. Unparseable input is
// replaced entirely rather than echoed.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "[unparseable url]"
	}
	q := u.Query()
	changed := false
	for key := range q {
		for _, secret := range secretQueryParams {
			if strings.EqualFold(key, secret) {
				q.Set(key, "REDACTED")
				changed = true
			}
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

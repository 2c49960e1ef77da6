// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/tomtom215/marquee/internal/catalog"
)

// fold normalizes a title for comparison. Only case is folded; whitespace is
// significant. A Caser holds state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// titleIndex is built once per engine and read concurrently.
type titleIndex struct {
	first  map[string]int
	folded []string
}

func buildTitleIndex(c *catalog.Catalog) *titleIndex {
	idx := &titleIndex{
		first:  make(map[string]int, c.Len()),
		folded: make([]string, c.Len()),
	}
	for i := 0; i < c.Len(); i++ {
		f := fold(c.At(i).Title)
		idx.folded[i] = f
		if _, seen := idx.first[f]; !seen {
			idx.first[f] = i
		}
	}
	return idx
}

func (t *titleIndex) lookup(title string) (int, bool) {
	i, ok := t.first[fold(title)]
	return i, ok
}

func (t *titleIndex) distinct() int {
	return len(t.first)
}

// Titles lists catalog entries whose folded title contains the folded query,
// in catalog order. An empty query matches everything. limit of zero selects
// the default page size; larger limits are capped.
func (e *Engine) Titles(query string, offset, limit int) TitlePage {
	if offset < 0 {
		offset = 0
	}
	switch {
	case limit <= 0:
		limit = e.config.Limits.DefaultSearchLimit
	case limit > e.config.Limits.MaxSearchLimit:
		limit = e.config.Limits.MaxSearchLimit
	}

	q := fold(query)
	cat := e.store.Catalog()

	page := TitlePage{Items: []Movie{}, Offset: offset, Limit: limit}
	for i, f := range e.index.folded {
		if q != "" && !strings.Contains(f, q) {
			continue
		}
		if page.Total >= offset && len(page.Items) < limit {
			entry := cat.At(i)
			page.Items = append(page.Items, Movie{Index: i, ID: entry.ID, Title: entry.Title})
		}
		page.Total++
	}
	return page
}

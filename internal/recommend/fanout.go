// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"sync"
)

// attachPosters fills PosterURL for every item using at most e.workers
// concurrent lookups. Each goroutine writes only its own slot.
func (e *Engine) attachPosters(ctx context.Context, items []Recommendation) {
	if len(items) == 0 {
		return
	}

	workers := e.workers
	if workers > len(items) {
		workers = len(items)
	}
	if workers == 1 {
		for i := range items {
			items[i].PosterURL = e.posters.ResolvePoster(ctx, items[i].ID)
		}
		return
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		sem <- struct{}{} // Acquire semaphore
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }() // Release semaphore
			items[idx].PosterURL = e.posters.ResolvePoster(ctx, items[idx].ID)
		}(i)
	}
	wg.Wait()
}

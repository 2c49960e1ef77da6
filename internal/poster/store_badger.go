// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package poster

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const posterKeyPrefix = "poster:"

// cachedPoster is the persisted form of a cacheable Resolution.
type cachedPoster struct {
	URL      string    `json:"url"`
	Outcome  Outcome   `json:"outcome"`
	CachedAt time.Time `json:"cached_at"`
}

// BadgerStore persists resolved posters across restarts. Entries expire
// through Badger's native TTL.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a store at path. An empty path opens an
// in-memory database.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerStore wraps an already open database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func posterKey(externalID int) []byte {
	return []byte(posterKeyPrefix + strconv.Itoa(externalID))
}

// Get returns the cached resolution for externalID.
func (s *BadgerStore) Get(externalID int) (Resolution, bool, error) {
	var cp cachedPoster
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(posterKey(externalID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cp)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Resolution{}, false, nil
	}
	if err != nil {
		return Resolution{}, false, fmt.Errorf("get poster %d: %w", externalID, err)
	}
	return Resolution{URL: cp.URL, Outcome: cp.Outcome, Cached: true}, true, nil
}

// Put stores res for ttl. Non-cacheable outcomes are ignored.
func (s *BadgerStore) Put(externalID int, res Resolution, ttl time.Duration) error {
	if !res.Outcome.Cacheable() {
		return nil
	}
	data, err := json.Marshal(cachedPoster{URL: res.URL, Outcome: res.Outcome, CachedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal poster: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(posterKey(externalID), data)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
}

// Count returns the number of live poster entries.
func (s *BadgerStore) Count() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(posterKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// RunGC reclaims value log space until Badger reports nothing to rewrite.
func (s *BadgerStore) RunGC(discardRatio float64) error {
	if s.db.Opts().InMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

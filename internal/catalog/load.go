// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Format is an on-disk artifact encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv", ".tsv":
		return FormatCSV, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Loader reads catalog and similarity artifacts from disk.
type Loader struct {
	logger zerolog.Logger
	duck   *duckReader
}

// NewLoader creates a loader that logs through logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{logger: logger.With().Str("component", "catalog").Logger()}
}

// Load reads both artifacts and returns a validated Store.
func (l *Loader) Load(ctx context.Context, catalogPath, similarityPath string) (*Store, error) {
	start := time.Now()
	defer l.closeDuck()

	c, err := l.LoadCatalog(ctx, catalogPath)
	if err != nil {
		return nil, err
	}
	s, err := l.LoadSimilarity(ctx, similarityPath, c.Len())
	if err != nil {
		return nil, err
	}
	store, err := NewStore(c, s)
	if err != nil {
		return nil, err
	}
	store.withSources(catalogPath, similarityPath)

	info := store.Info()
	ev := l.logger.Info().
		Int("titles", info.Titles).
		Str("catalog", catalogPath).
		Str("similarity", similarityPath).
		Dur("duration", time.Since(start))
	if info.NonFiniteScores > 0 {
		ev = ev.Int("non_finite_scores", info.NonFiniteScores)
	}
	ev.Msg("Catalog and similarity matrix loaded")
	return store, nil
}

// LoadCatalog reads the catalog artifact at path.
func (l *Loader) LoadCatalog(ctx context.Context, path string) (*Catalog, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	var entries []Entry
	switch format {
	case FormatJSON:
		entries, err = readCatalogJSON(path)
	default:
		var duck *duckReader
		if duck, err = l.duckDB(); err == nil {
			entries, err = duck.readCatalog(ctx, path, format)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog %s: %w", path, ErrEmptyCatalog)
	}
	return NewCatalog(entries), nil
}

// LoadSimilarity reads the similarity artifact at path. n is the catalog
// size; long-format artifacts need it to place cells.
func (l *Loader) LoadSimilarity(ctx context.Context, path string, n int) (*Similarity, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, fmt.Errorf("similarity %s: %w", path, err)
	}

	var s *Similarity
	switch format {
	case FormatJSON:
		s, err = readSimilarityJSON(path)
	default:
		var duck *duckReader
		if duck, err = l.duckDB(); err == nil {
			s, err = duck.readSimilarity(ctx, path, format, n)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("similarity %s: %w", path, err)
	}
	return s, nil
}

func (l *Loader) duckDB() (*duckReader, error) {
	if l.duck != nil {
		return l.duck, nil
	}
	d, err := openDuckReader()
	if err != nil {
		return nil, err
	}
	l.duck = d
	return d, nil
}

func (l *Loader) closeDuck() {
	if l.duck == nil {
		return
	}
	if err := l.duck.close(); err != nil {
		l.logger.Warn().Err(err).Msg("Failed to close DuckDB reader")
	}
	l.duck = nil
}

func readCatalogJSON(path string) ([]Entry, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var entries []Entry
	if err := json.NewDecoder(f).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalogData, err)
	}
	return entries, nil
}

func readSimilarityJSON(path string) (*Similarity, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var rows [][]float64
	if err := json.NewDecoder(f).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return NewSimilarity(rows)
}

// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	// DuckDB driver - reads CSV and Parquet artifacts in-process
	_ "github.com/duckdb/duckdb-go/v2"
)

// duckReader reads tabular artifacts through an in-memory DuckDB database.
type duckReader struct {
	db *sql.DB
}

func openDuckReader() (*duckReader, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &duckReader{db: db}, nil
}

func (d *duckReader) close() error {
	return d.db.Close()
}

// tableFunction returns the DuckDB table function call that scans path.
func tableFunction(path string, format Format) string {
	lit := quoteLiteral(path)
	if format == FormatParquet {
		return "read_parquet(" + lit + ")"
	}
	return "read_csv_auto(" + lit + ", header = true)"
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// readCatalog returns entries in file order. DuckDB preserves insertion order
// for plain scans.
func (d *duckReader) readCatalog(ctx context.Context, path string, format Format) ([]Entry, error) {
	query := "SELECT CAST(id AS BIGINT), CAST(title AS VARCHAR) FROM " + tableFunction(path, format) //nolint:gosec // literal is quoted
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrInvalidCatalogData, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			id    int64
			title sql.NullString
		)
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidCatalogData, len(entries), err)
		}
		entries = append(entries, Entry{ID: int(id), Title: title.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan: %v", ErrInvalidCatalogData, err)
	}
	return entries, nil
}

// readSimilarity assembles an n×n matrix from long-format (i, j, score) rows.
// Every cell must appear exactly once.
func (d *duckReader) readSimilarity(ctx context.Context, path string, format Format, n int) (*Similarity, error) {
	if n <= 0 {
		return nil, ErrEmptyCatalog
	}
	query := "SELECT CAST(i AS BIGINT), CAST(j AS BIGINT), CAST(score AS DOUBLE) FROM " + tableFunction(path, format) //nolint:gosec // literal is quoted
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	dense := mat.NewDense(n, n, nil)
	seen := make([]bool, n*n)
	cells := 0
	for rows.Next() {
		var (
			i, j  int64
			score sql.NullFloat64
		)
		if err := rows.Scan(&i, &j, &score); err != nil {
			return nil, fmt.Errorf("scan cell %d: %w", cells, err)
		}
		if i < 0 || j < 0 || i >= int64(n) || j >= int64(n) {
			return nil, fmt.Errorf("%w: (%d, %d) for %d titles", ErrCellOutOfRange, i, j, n)
		}
		idx := int(i)*n + int(j)
		if seen[idx] {
			return nil, fmt.Errorf("%w: (%d, %d)", ErrDuplicateCell, i, j)
		}
		seen[idx] = true
		cells++
		if score.Valid {
			dense.Set(int(i), int(j), score.Float64)
		} else {
			dense.Set(int(i), int(j), math.NaN())
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if cells != n*n {
		return nil, fmt.Errorf("%w: got %d of %d cells", ErrIncompleteMatrix, cells, n*n)
	}
	return &Similarity{m: dense, n: n}, nil
}

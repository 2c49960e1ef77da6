// Marquee - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Command recommend prints recommendations for one title as JSON.
//
//	recommend -k 5 "The Dark Knight"
//	recommend -search knight
//
// It reads the same configuration as the server. Exit status is 2 when the
// title is not in the catalog and 1 on any other failure.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/poster"
	"github.com/tomtom215/marquee/internal/recommend"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitNotFound = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	k          int
	search     string
	catalog    string
	similarity string
	noPosters  bool
	timeout    time.Duration
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var o options
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&o.k, "k", 0, "number of recommendations (0 selects the configured default)")
	fs.StringVar(&o.search, "search", "", "list catalog titles containing this text instead of recommending")
	fs.StringVar(&o.catalog, "catalog", "", "catalog path (overrides CATALOG_PATH)")
	fs.StringVar(&o.similarity, "similarity", "", "similarity matrix path (overrides SIMILARITY_PATH)")
	fs.BoolVar(&o.noPosters, "no-posters", false, "skip upstream poster lookups and use placeholders")
	fs.DurationVar(&o.timeout, "timeout", 30*time.Second, "overall deadline")
	fs.BoolVar(&o.verbose, "v", false, "log to stderr")
	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	return o, fs.Args(), nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, rest, err := parseFlags(args, stderr)
	if err != nil {
		return exitFailure
	}
	title := strings.Join(rest, " ")
	if opts.search == "" && strings.TrimSpace(title) == "" {
		fmt.Fprintln(stderr, "usage: recommend [flags] <title>")
		return exitFailure
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitFailure
	}
	if opts.catalog != "" {
		cfg.Data.CatalogPath = opts.catalog
	}
	if opts.similarity != "" {
		cfg.Data.SimilarityPath = opts.similarity
	}
	if opts.noPosters {
		cfg.Poster.APIKey = ""
	}

	logger := zerolog.Nop()
	if opts.verbose {
		lc := cfg.LoggingConfig()
		lc.Format = "console"
		lc.Output = stderr
		logging.Init(lc)
		logger = logging.Logger()
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()
	ctx = logging.ContextWithNewRequestID(ctx)

	engine, closeFn, err := buildEngine(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitFailure
	}
	defer closeFn()

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	if opts.search != "" {
		page := engine.Titles(opts.search, 0, cfg.API.MaxPageSize)
		if err := enc.Encode(page); err != nil {
			fmt.Fprintf(stderr, "encode: %v\n", err)
			return exitFailure
		}
		return exitOK
	}

	resp, err := engine.Recommend(ctx, recommend.Request{
		Title:     title,
		K:         opts.k,
		RequestID: logging.RequestIDFromContext(ctx),
	})
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		fmt.Fprintf(stderr, "%v\n", err)
		return exitNotFound
	case err != nil:
		fmt.Fprintf(stderr, "%v\n", err)
		return exitFailure
	}

	if err := enc.Encode(resp); err != nil {
		fmt.Fprintf(stderr, "encode: %v\n", err)
		return exitFailure
	}
	return exitOK
}

//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func buildEngine(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*recommend.Engine, func(), error) {
	store, err := catalog.NewLoader(logger).Load(ctx, cfg.Data.CatalogPath, cfg.Data.SimilarityPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	resolver, err := poster.NewResolver(cfg.ResolverConfig(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create poster resolver: %w", err)
	}
	closeFn := func() { _ = resolver.Close() }

	engine, err := recommend.NewEngine(store, resolver, cfg.EngineConfig(), logger)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("create engine: %w", err)
	}
	return engine, closeFn, nil
}

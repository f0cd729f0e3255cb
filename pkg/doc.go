// Package pkg provides the core libraries for Venture content curation.
//
// # Overview
//
// Venture turns a catalog of institutions, exhibits, member benefits and tips
// into a personal board: a grid of cards where the most pressing content is
// biggest and nearest the top. The pkg directory is organized into three
// areas:
//
//  1. [board] - Domain logic (curation, sizing, packing, assembly)
//  2. [catalog], [prefs] - Inputs (content and per-user state)
//  3. [pipeline], [cache] - Orchestration and caching shared by CLI and server
//
// # Architecture
//
// The data flow for one board:
//
//	Catalog + Preferences
//	         ↓
//	    [pipeline] BuildPlan (priority tiers + tip insertions)
//	         ↓
//	    [board/curate] package (caps, dedup, insertions)
//	         ↓
//	    [board/footprint] package (size by position)
//	         ↓
//	    [board/pack] package (first-fit grid packing)
//	         ↓
//	    [board] Assemble → Board (JSON or terminal preview)
//
// # Quick Start
//
//	cat := catalog.Sample()
//	p := prefs.Default()
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := runner.Execute(ctx, cat, p, pipeline.Options{Columns: 4})
//	if err != nil {
//	    return err
//	}
//	board.Write(res.Board, os.Stdout)
//
// # Main Packages
//
// [board] - Content items, footprints, positions and the assembled board,
// with layout validation and JSON I/O.
//
// [board/curate] - Merges prioritized tiers into one sequence: per-tier caps,
// first-occurrence dedup by kind and id, and tips inserted at fractional
// offsets.
//
// [board/footprint] - Rule-based footprint assignment. The first exhibit is
// the 2x2 hero; later positions get smaller cards.
//
// [board/pack] - Deterministic row-major first-fit packing onto a fixed-width
// grid that grows downward.
//
// [catalog] - Institutions, exhibits, reciprocal benefits and tips loaded
// from JSON, YAML or TOML, with date, interest and distance queries.
//
// [prefs] - User preferences and their stores: local JSON files for the CLI,
// MongoDB for the server.
//
// [cache] - Board cache backends (file, Redis, null) and content-addressed
// keys.
//
// [pipeline] - Curate → size → pack → assemble with caching. Used by both
// the CLI and the HTTP server so they build identical boards.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Coded errors and input validation.
//
// # Testing
//
//	go test ./...                    # All tests
//	go test ./pkg/board/...          # Layout core only
//	go test -run Example ./pkg/...   # Examples only
//
// Redis and MongoDB tests run when VENTURE_REDIS_ADDR and
// VENTURE_MONGO_URI are set.
//
// [board]: https://pkg.go.dev/github.com/ryanphanna/Venture/pkg/board
// [board/curate]: https://pkg.go.dev/github.com/ryanphanna/Venture/pkg/board/curate
// [board/footprint]: https://pkg.go.dev/github.com/ryanphanna/Venture/pkg/board/footprint
// [board/pack]: https://pkg.go.dev/github.com/ryanphanna/Venture/pkg/board/pack
// [catalog]: https://pkg.go.dev/github.com/ryanphanna/Venture/pkg/catalog
// [prefs]: https://pkg.go.dev/github.com/ryanphanna/Venture/pkg/prefs
// [cache]: https://pkg.go.dev/github.com/ryanphanna/Venture/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/ryanphanna/Venture/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/ryanphanna/Venture/pkg/observability
// [errors]: https://pkg.go.dev/github.com/ryanphanna/Venture/pkg/errors
package pkg

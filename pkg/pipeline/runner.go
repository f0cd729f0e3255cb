package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ryanphanna/Venture/pkg/board"
	"github.com/ryanphanna/Venture/pkg/board/curate"
	"github.com/ryanphanna/Venture/pkg/cache"
	"github.com/ryanphanna/Venture/pkg/catalog"
	verrors "github.com/ryanphanna/Venture/pkg/errors"
	"github.com/ryanphanna/Venture/pkg/observability"
	"github.com/ryanphanna/Venture/pkg/prefs"
)

// keyTypeBoard labels board entries in cache hooks.
const keyTypeBoard = "board"

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute computes the board for one user, consulting the cache first.
// A nil p stands for the default preferences.
func (r *Runner) Execute(ctx context.Context, cat *catalog.Catalog, p *prefs.Preferences, opts Options) (*Result, error) {
	if cat == nil {
		return nil, verrors.New(verrors.ErrCodeInvalidCatalog, "catalog is required")
	}
	if p == nil {
		p = prefs.Default()
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	key, err := r.boardKey(cat, p, opts)
	if err != nil {
		// Unhashable input only costs us the cache.
		r.Logger.Warn("board cache disabled", "err", err)
	}

	if key != "" && !opts.Refresh {
		if b, ok := r.cached(ctx, key, opts.Columns); ok {
			observability.Cache().OnCacheHit(ctx, keyTypeBoard)
			r.Logger.Debug("board cache hit", "rows", b.Rows, "items", len(b.Items))
			return &Result{
				Board:    b,
				Stats:    Stats{Items: len(b.Items), Rows: b.Rows},
				CacheHit: true,
			}, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeBoard)
	}

	result, err := r.Build(ctx, cat, p, opts)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if data, err := board.Marshal(result.Board); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLBoard); err != nil {
				r.Logger.Warn("board cache write failed", "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, keyTypeBoard, len(data))
			}
		}
	}
	return result, nil
}

// Build runs every stage without touching the cache.
func (r *Runner) Build(ctx context.Context, cat *catalog.Catalog, p *prefs.Preferences, opts Options) (*Result, error) {
	if cat == nil {
		return nil, verrors.New(verrors.ErrCodeInvalidCatalog, "catalog is required")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: Curate
	plan := BuildPlan(cat, p, opts)
	hooks.OnCurateStart(ctx, len(plan.Tiers))
	curateStart := time.Now()
	items, cs := curate.AggregateStats(plan)
	result.Stats.CurateTime = time.Since(curateStart)
	result.Stats.Items = cs.Emitted
	result.Stats.Truncated = cs.Truncated
	result.Stats.Duplicates = cs.Duplicates
	result.Stats.Inserted = cs.Inserted
	hooks.OnCurateComplete(ctx, len(items), result.Stats.CurateTime, nil)

	opts.Logger.Info("curated board",
		"items", cs.Emitted,
		"truncated", cs.Truncated,
		"duplicates", cs.Duplicates,
		"duration", result.Stats.CurateTime)

	// Stage 2: Size, pack and assemble
	hooks.OnPackStart(ctx, len(items), opts.Columns)
	packStart := time.Now()
	b, err := Layout(opts.Columns, items)
	result.Stats.PackTime = time.Since(packStart)
	hooks.OnPackComplete(ctx, b.Rows, result.Stats.PackTime, err)
	if err != nil {
		return nil, err
	}
	result.Board = b
	result.Stats.Rows = b.Rows

	opts.Logger.Info("packed board",
		"columns", b.Columns,
		"rows", b.Rows,
		"duration", result.Stats.PackTime)

	return result, nil
}

// Invalidate drops the cached board for these inputs, if any.
func (r *Runner) Invalidate(ctx context.Context, cat *catalog.Catalog, p *prefs.Preferences, opts Options) error {
	if p == nil {
		p = prefs.Default()
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	key, err := r.boardKey(cat, p, opts)
	if err != nil {
		return err
	}
	return r.Cache.Delete(ctx, key)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cached returns a stored board if it decodes, passes validation and has the
// requested width. Anything else is dropped so the next write replaces it.
func (r *Runner) cached(ctx context.Context, key string, columns int) (board.Board, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("board cache read failed", "err", err)
		return board.Board{}, false
	}
	if !hit {
		return board.Board{}, false
	}
	b, err := board.Unmarshal(data)
	if err == nil && b.Columns != columns {
		err = verrors.New(verrors.ErrCodeInvalidConfig,
			"cached board has %d columns, want %d", b.Columns, columns)
	}
	if err != nil {
		r.Logger.Warn("discarding cached board", "err", err)
		_ = r.Cache.Delete(ctx, key)
		return board.Board{}, false
	}
	return b, true
}

// boardKey hashes everything the board depends on. UpdatedAt is left out of
// the preferences hash since it does not change the board.
func (r *Runner) boardKey(cat *catalog.Catalog, p *prefs.Preferences, opts Options) (string, error) {
	catHash, err := cache.HashJSON(cat)
	if err != nil {
		return "", err
	}
	pc := *p
	pc.UpdatedAt = time.Time{}
	prefsHash, err := cache.HashJSON(&pc)
	if err != nil {
		return "", err
	}
	return r.Keyer.BoardKey(catHash, prefsHash, opts.BoardKeyOpts()), nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

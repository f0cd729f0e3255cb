// Package pipeline provides the board pipeline for Venture.
//
// This package implements the complete curate → size → pack → assemble
// pipeline used by both the CLI and the HTTP server. By centralizing this
// logic, both entry points build the same board from the same inputs.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Curate: Build a tiered plan from the catalog and a user's preferences
//     and merge it into one deduplicated sequence ([BuildPlan], [Curate])
//  2. Size: Assign every item a footprint from the decision table
//  3. Pack: Place the footprints on a fixed-width grid, first fit
//  4. Assemble: Zip items, footprints and positions into a [board.Board]
//
// Stages 2 to 4 are run together by [Layout].
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Columns: 4, Now: time.Now()}
//	result, err := runner.Execute(ctx, catalog.Sample(), prefs.Default(), opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Board.Rows)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ryanphanna/Venture/pkg/board"
	"github.com/ryanphanna/Venture/pkg/cache"
	"github.com/ryanphanna/Venture/pkg/catalog"
	verrors "github.com/ryanphanna/Venture/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultGridCols is the board width in cells.
	DefaultGridCols = 4

	// DefaultEndingSoonDays is how far ahead an exhibit's last day may be
	// for it to count as ending soon.
	DefaultEndingSoonDays = 30

	// DefaultRevisitAfterDays is how long after a visit an institution is
	// suggested again.
	DefaultRevisitAfterDays = 90

	// DefaultRevisitAfter is DefaultRevisitAfterDays as a duration.
	DefaultRevisitAfter = DefaultRevisitAfterDays * 24 * time.Hour

	// InsertionTier is the priority tier stamped on inserted tips.
	InsertionTier = 4

	// InsertAfterTier anchors inserted tips behind the interest-matched tier,
	// so revisit suggestions and the membership tip stay at the end.
	InsertAfterTier = 5
)

// Board categories, one per curated tier.
const (
	CategoryEndingSoon      = "ending-soon"
	CategoryFreeAccess      = "free-access"
	CategoryMemberBenefits  = "member-benefits"
	CategoryInterestMatched = "interest-matched"
	CategoryRevisit         = "revisit"
	CategoryTips            = "tips"
)

// Tip ids the default plan refers to.
const (
	TipFree       = "tip-free"
	TipReciprocal = "tip-reciprocal"
	TipTiming     = "tip-timing"
	TipExplore    = "tip-explore"
	TipSpecial    = "tip-special"
	TipMembership = "tip-membership"
)

// KnownCategories is the set of categories a cap may be set for.
var KnownCategories = map[string]bool{
	CategoryEndingSoon:      true,
	CategoryFreeAccess:      true,
	CategoryMemberBenefits:  true,
	CategoryInterestMatched: true,
	CategoryRevisit:         true,
}

// DefaultCaps returns the per-category list caps. The map is a fresh copy.
func DefaultCaps() map[string]int {
	return map[string]int{
		CategoryEndingSoon:      2,
		CategoryFreeAccess:      2,
		CategoryMemberBenefits:  2,
		CategoryInterestMatched: 6,
		CategoryRevisit:         3,
	}
}

// InsertionSpec names a tip to drop into the sequence at a fractional offset.
type InsertionSpec struct {
	Tip    string  `json:"tip" toml:"tip"`
	Offset float64 `json:"offset" toml:"offset"`
}

// DefaultInsertions returns the advisory tips interleaved into every board,
// in application order.
func DefaultInsertions() []InsertionSpec {
	return []InsertionSpec{
		{Tip: TipExplore, Offset: 0.5},
		{Tip: TipSpecial, Offset: 0.7},
	}
}

// Output formats for a computed board.
const (
	FormatJSON    = "json"
	FormatPreview = "preview"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:    true,
	FormatPreview: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return verrors.New(verrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, preview)", format)
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one board computation.
// This struct supports JSON serialization for cache keys and API responses.
type Options struct {
	Columns        int             `json:"columns"`
	Now            time.Time       `json:"now"`
	EndingSoonDays int             `json:"ending_soon_days"`
	RevisitAfter   time.Duration   `json:"revisit_after"`
	Caps           map[string]int  `json:"caps,omitempty"`
	Insertions     []InsertionSpec `json:"insertions,omitempty"`

	// Refresh skips the cache read; the result is still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Board    board.Board
	Stats    Stats
	CacheHit bool
}

// Stats contains pipeline execution statistics. Curation counters are zero
// when the board came from the cache.
type Stats struct {
	Items      int
	Rows       int
	Truncated  int
	Duplicates int
	Inserted   int
	CurateTime time.Duration
	PackTime   time.Duration
}

// SetDefaults fills every unset field.
func (o *Options) SetDefaults() {
	if o.Columns == 0 {
		o.Columns = DefaultGridCols
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.EndingSoonDays == 0 {
		o.EndingSoonDays = DefaultEndingSoonDays
	}
	if o.RevisitAfter == 0 {
		o.RevisitAfter = DefaultRevisitAfter
	}
	if o.Caps == nil {
		o.Caps = DefaultCaps()
	}
	if o.Insertions == nil {
		o.Insertions = DefaultInsertions()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option ranges. It expects defaults to be set.
func (o *Options) Validate() error {
	if err := verrors.ValidateGridColumns(o.Columns); err != nil {
		return err
	}
	if o.EndingSoonDays < 0 {
		return verrors.New(verrors.ErrCodeInvalidConfig,
			"ending-soon window must not be negative, got %d days", o.EndingSoonDays)
	}
	if o.RevisitAfter < 0 {
		return verrors.New(verrors.ErrCodeInvalidConfig,
			"revisit interval must not be negative, got %s", o.RevisitAfter)
	}
	for category, limit := range o.Caps {
		if !KnownCategories[category] {
			return verrors.New(verrors.ErrCodeInvalidConfig, "unknown cap category %q", category)
		}
		if limit < 0 {
			return verrors.New(verrors.ErrCodeInvalidConfig,
				"cap for %q must not be negative, got %d", category, limit)
		}
	}
	for i, ins := range o.Insertions {
		if ins.Tip == "" {
			return verrors.New(verrors.ErrCodeInvalidConfig, "insertion %d names no tip", i)
		}
		if ins.Offset < 0 || ins.Offset > 1 {
			return verrors.New(verrors.ErrCodeInvalidConfig,
				"insertion %q offset %g outside [0, 1]", ins.Tip, ins.Offset)
		}
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and checks the result.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Cap returns the list cap for a category. A category without a cap, or with
// a zero cap, is unlimited.
func (o *Options) Cap(category string) int {
	return o.Caps[category]
}

// Today is the calendar day of Now. Everything date-dependent in a board is
// computed from it, so boards are stable within a day.
func (o *Options) Today() catalog.Date {
	return catalog.DateOf(o.Now)
}

// BoardKeyOpts returns cache key options for the board computation.
func (o *Options) BoardKeyOpts() cache.BoardKeyOpts {
	planHash, _ := cache.HashJSON(struct {
		Caps       map[string]int  `json:"caps"`
		Insertions []InsertionSpec `json:"insertions"`
	}{o.Caps, o.Insertions})
	return cache.BoardKeyOpts{
		Columns:        o.Columns,
		Day:            o.Today().String(),
		EndingSoonDays: o.EndingSoonDays,
		RevisitAfter:   o.RevisitAfter.String(),
		PlanHash:       planHash,
	}
}

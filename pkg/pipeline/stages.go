package pipeline

import (
	"fmt"

	"github.com/ryanphanna/Venture/pkg/board"
	"github.com/ryanphanna/Venture/pkg/board/curate"
	"github.com/ryanphanna/Venture/pkg/board/footprint"
	"github.com/ryanphanna/Venture/pkg/board/pack"
	"github.com/ryanphanna/Venture/pkg/catalog"
	"github.com/ryanphanna/Venture/pkg/prefs"
)

// =============================================================================
// Stages
// =============================================================================

// Curate builds the plan for p and merges it into the board sequence.
func Curate(cat *catalog.Catalog, p *prefs.Preferences, opts Options) ([]board.ContentItem, curate.Stats) {
	return curate.AggregateStats(BuildPlan(cat, p, opts))
}

// Layout sizes, packs and assembles a curated sequence into a board of the
// given width. An empty sequence yields an empty board.
func Layout(columns int, items []board.ContentItem) (board.Board, error) {
	fps := footprint.Assign(items)
	positions, err := pack.Pack(columns, fps)
	if err != nil {
		return board.Board{}, fmt.Errorf("pack: %w", err)
	}
	placed, err := board.Assemble(items, fps, positions)
	if err != nil {
		return board.Board{}, fmt.Errorf("assemble: %w", err)
	}
	return board.New(columns, placed), nil
}

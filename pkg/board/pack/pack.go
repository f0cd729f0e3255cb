// Package pack places footprints on a fixed-width grid.
//
// The packer is first-fit, row-major and top-left biased: each footprint, in
// input order, goes to the first free position found by scanning rows from
// the top and columns from the left. No item is ever placed after a free
// slot that could have held it, so gaps left by earlier large items are
// filled before new rows are opened.
//
// The row search has no ceiling. Below the last occupied row every cell is
// free, so any footprint that fits the grid width is always placed.
//
// # Usage
//
//	positions, err := pack.Pack(4, []board.Footprint{board.Large, board.Wide, board.Small})
//	// positions: (0,0), (0,2), (1,2)
package pack

import (
	"github.com/ryanphanna/Venture/pkg/board"
	verrors "github.com/ryanphanna/Venture/pkg/errors"
)

// Pack assigns each footprint, in order, the earliest free position on a
// grid of cols columns. The returned positions have the same order and
// length as footprints.
//
// A footprint wider than the grid, or with a non-positive span, is a
// configuration error: the whole run fails with INVALID_FOOTPRINT and
// nothing is clamped.
func Pack(cols int, footprints []board.Footprint) ([]board.Position, error) {
	positions, _, err := PackGrid(cols, footprints)
	return positions, err
}

// PackGrid is like Pack but also returns the occupancy grid of the run,
// for callers that want to inspect coverage.
func PackGrid(cols int, footprints []board.Footprint) ([]board.Position, *Grid, error) {
	if cols <= 0 {
		return nil, nil, verrors.New(verrors.ErrCodeInvalidConfig, "grid must have at least 1 column, got %d", cols)
	}
	for i, fp := range footprints {
		if err := checkFootprint(cols, i, fp); err != nil {
			return nil, nil, err
		}
	}

	g := NewGrid(cols)
	positions := make([]board.Position, len(footprints))
	for i, fp := range footprints {
		pos := firstFit(g, fp)
		g.Mark(pos, fp)
		positions[i] = pos
	}
	return positions, g, nil
}

// firstFit scans rows top to bottom and columns left to right and returns
// the first position where fp fits. It always terminates: the first
// unallocated row is empty and fp is no wider than the grid.
func firstFit(g *Grid, fp board.Footprint) board.Position {
	for row := 0; ; row++ {
		for col := 0; col+fp.ColSpan <= g.Columns(); col++ {
			pos := board.Position{Row: row, Column: col}
			if g.Fits(pos, fp) {
				return pos
			}
		}
	}
}

func checkFootprint(cols, i int, fp board.Footprint) error {
	if fp.ColSpan <= 0 || fp.RowSpan <= 0 {
		return verrors.New(verrors.ErrCodeInvalidFootprint,
			"footprint %d has non-positive span %s", i, fp.Label())
	}
	if fp.ColSpan > cols {
		return verrors.New(verrors.ErrCodeInvalidFootprint,
			"footprint %d is %d columns wide but the grid has %d", i, fp.ColSpan, cols)
	}
	return nil
}

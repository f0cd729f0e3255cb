package board

import (
	verrors "github.com/ryanphanna/Venture/pkg/errors"
)

// Assemble zips items, footprints and positions into placed items.
//
// The three slices must have equal length and share the same order. A
// mismatch means an upstream stage broke its order-preservation contract and
// is reported as ARITY_MISMATCH.
func Assemble(items []ContentItem, footprints []Footprint, positions []Position) ([]PlacedItem, error) {
	if len(items) != len(footprints) || len(items) != len(positions) {
		return nil, verrors.New(verrors.ErrCodeArityMismatch,
			"assemble: %d items, %d footprints, %d positions", len(items), len(footprints), len(positions))
	}

	placed := make([]PlacedItem, len(items))
	for i := range items {
		placed[i] = PlacedItem{
			ContentItem: items[i],
			Footprint:   footprints[i],
			Position:    positions[i],
		}
	}
	return placed, nil
}

// New builds a Board of the given width from placed items.
// Rows is the height actually used by the items.
func New(columns int, items []PlacedItem) Board {
	rows := 0
	for _, it := range items {
		if b := it.Bottom(); b > rows {
			rows = b
		}
	}
	if items == nil {
		items = []PlacedItem{}
	}
	return Board{Columns: columns, Rows: rows, Items: items}
}

// Validate checks the layout invariants of the board: every item lies within
// the column bounds, has a positive footprint, and no two items share a cell.
func (b Board) Validate() error {
	if b.Columns <= 0 {
		return verrors.New(verrors.ErrCodeInvalidInput, "board has %d columns", b.Columns)
	}
	for i, it := range b.Items {
		if it.ColSpan <= 0 || it.RowSpan <= 0 {
			return verrors.New(verrors.ErrCodeInvalidFootprint,
				"item %d (%s) has non-positive footprint %s", i, it.Key(), it.Footprint.Label())
		}
		if it.Row < 0 || it.Column < 0 || it.Right() > b.Columns {
			return verrors.New(verrors.ErrCodeInvalidInput,
				"item %d (%s) at (%d,%d) size %s is outside %d columns",
				i, it.Key(), it.Row, it.Column, it.Footprint.Label(), b.Columns)
		}
		if it.Bottom() > b.Rows {
			return verrors.New(verrors.ErrCodeInvalidInput,
				"item %d (%s) extends below row %d", i, it.Key(), b.Rows)
		}
	}
	for i := range b.Items {
		for j := i + 1; j < len(b.Items); j++ {
			if b.Items[i].Overlaps(b.Items[j]) {
				return verrors.New(verrors.ErrCodeInvalidInput,
					"items %d (%s) and %d (%s) overlap", i, b.Items[i].Key(), j, b.Items[j].Key())
			}
		}
	}
	return nil
}

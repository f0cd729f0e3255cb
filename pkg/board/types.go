package board

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Constants
// =============================================================================

// Kind identifies what a content item represents.
type Kind string

// Content kinds.
const (
	KindExhibit    Kind = "exhibit"
	KindTip        Kind = "tip"
	KindReciprocal Kind = "reciprocal"
)

// TopTier is the highest-precedence priority tier.
const TopTier = 1

// Known reports whether k is one of the enumerated kinds.
func (k Kind) Known() bool {
	switch k {
	case KindExhibit, KindTip, KindReciprocal:
		return true
	}
	return false
}

// =============================================================================
// ContentItem
// =============================================================================

// ContentItem is one entry of a curated sequence.
//
// Identity is ID scoped within Kind: a tip and an exhibit may share an ID
// without colliding. Payload is an opaque reference that the board never
// inspects; renderers decode it.
type ContentItem struct {
	ID       string          `json:"id" bson:"id"`
	Kind     Kind            `json:"kind" bson:"kind"`
	Tier     int             `json:"tier" bson:"tier"`
	Category string          `json:"category,omitempty" bson:"category,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty" bson:"payload,omitempty"`
}

// Key returns the identity of the item as "kind:id".
func (c ContentItem) Key() string { return string(c.Kind) + ":" + c.ID }

// =============================================================================
// Footprint & Position
// =============================================================================

// Footprint is the size of an item in grid cells.
type Footprint struct {
	ColSpan int `json:"col_span" bson:"col_span"`
	RowSpan int `json:"row_span" bson:"row_span"`
}

// Standard footprints.
var (
	Small = Footprint{ColSpan: 1, RowSpan: 1}
	Wide  = Footprint{ColSpan: 2, RowSpan: 1}
	Tall  = Footprint{ColSpan: 1, RowSpan: 2}
	Large = Footprint{ColSpan: 2, RowSpan: 2}
)

// Area returns the number of cells covered by the footprint.
func (f Footprint) Area() int { return f.ColSpan * f.RowSpan }

// Label returns the footprint as "COLSxROWS".
func (f Footprint) Label() string { return fmt.Sprintf("%dx%d", f.ColSpan, f.RowSpan) }

// Position is the top-left grid cell of a placed footprint.
type Position struct {
	Row    int `json:"row" bson:"row"`
	Column int `json:"column" bson:"column"`
}

// =============================================================================
// PlacedItem
// =============================================================================

// PlacedItem is a content item together with its final footprint and grid
// position. It is the unit consumed by renderers.
type PlacedItem struct {
	ContentItem `bson:",inline"`
	Footprint   `bson:",inline"`
	Position    `bson:",inline"`
}

// Bottom returns the first row below the item.
func (p PlacedItem) Bottom() int { return p.Row + p.RowSpan }

// Right returns the first column right of the item.
func (p PlacedItem) Right() int { return p.Column + p.ColSpan }

// Overlaps reports whether the cell rectangles of p and q intersect.
func (p PlacedItem) Overlaps(q PlacedItem) bool {
	return p.Column < q.Right() && q.Column < p.Right() &&
		p.Row < q.Bottom() && q.Row < p.Bottom()
}

// =============================================================================
// Board
// =============================================================================

// Board is the result of one packing run.
type Board struct {
	Columns int          `json:"columns" bson:"columns"`
	Rows    int          `json:"rows" bson:"rows"`
	Items   []PlacedItem `json:"items" bson:"items"`
}

// CellCount returns the total area covered by all placed items.
func (b Board) CellCount() int {
	n := 0
	for _, it := range b.Items {
		n += it.Area()
	}
	return n
}

// Empty reports whether the board holds no items.
func (b Board) Empty() bool { return len(b.Items) == 0 }

// CountByKind returns how many items of each kind are on the board.
func (b Board) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, it := range b.Items {
		counts[it.Kind]++
	}
	return counts
}

package pack

import (
	"strings"

	"github.com/ryanphanna/Venture/pkg/board"
)

// Grid is an occupancy grid of fixed width and unbounded height.
//
// Rows are stored as a list of fixed-width boolean rows that grows on
// demand. Cells in rows that have not been allocated yet are free. A Grid is
// owned by a single packing run and must not be shared.
type Grid struct {
	cols     int
	rows     [][]bool
	occupied int
}

// NewGrid returns an empty grid with the given number of columns.
func NewGrid(cols int) *Grid {
	return &Grid{cols: cols}
}

// Columns returns the grid width.
func (g *Grid) Columns() int { return g.cols }

// Rows returns the number of allocated rows. Every occupied cell lies in an
// allocated row, so this is also the height used by the packed items.
func (g *Grid) Rows() int { return len(g.rows) }

// Occupied reports whether the cell at (row, col) is taken.
// Cells outside the allocated rows are free.
func (g *Grid) Occupied(row, col int) bool {
	if row < 0 || col < 0 || col >= g.cols {
		return false
	}
	if row >= len(g.rows) {
		return false
	}
	return g.rows[row][col]
}

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int { return g.occupied }

// Fits reports whether the rectangle of fp anchored at pos is inside the
// column bounds and entirely free.
func (g *Grid) Fits(pos board.Position, fp board.Footprint) bool {
	if pos.Row < 0 || pos.Column < 0 || pos.Column+fp.ColSpan > g.cols {
		return false
	}
	for r := pos.Row; r < pos.Row+fp.RowSpan; r++ {
		if r >= len(g.rows) {
			// Unallocated rows are free, and so are all rows below them.
			return true
		}
		for c := pos.Column; c < pos.Column+fp.ColSpan; c++ {
			if g.rows[r][c] {
				return false
			}
		}
	}
	return true
}

// Mark occupies every cell in the rectangle of fp anchored at pos, growing
// the grid as needed. Callers check Fits first.
func (g *Grid) Mark(pos board.Position, fp board.Footprint) {
	g.grow(pos.Row + fp.RowSpan)
	for r := pos.Row; r < pos.Row+fp.RowSpan; r++ {
		for c := pos.Column; c < pos.Column+fp.ColSpan; c++ {
			if !g.rows[r][c] {
				g.rows[r][c] = true
				g.occupied++
			}
		}
	}
}

// grow allocates rows until the grid holds at least n of them.
func (g *Grid) grow(n int) {
	for len(g.rows) < n {
		g.rows = append(g.rows, make([]bool, g.cols))
	}
}

// String renders the grid one line per row, '#' for occupied and '.' for
// free cells. Useful in test failure output.
func (g *Grid) String() string {
	var sb strings.Builder
	for _, row := range g.rows {
		for _, cell := range row {
			if cell {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

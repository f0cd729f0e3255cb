package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ryanphanna/Venture/pkg/board"
	"github.com/ryanphanna/Venture/pkg/catalog"
)

// =============================================================================
// Board Preview
// =============================================================================

// labels name placed items in the preview grid, in placement order.
const labels = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func itemLabel(i int) string {
	if i < len(labels) {
		return labels[i : i+1]
	}
	return "#"
}

// boardGrid maps every cell of b to the index of the item covering it, or -1
// for a hole.
func boardGrid(b board.Board) [][]int {
	grid := make([][]int, b.Rows)
	for r := range grid {
		grid[r] = make([]int, b.Columns)
		for c := range grid[r] {
			grid[r][c] = -1
		}
	}
	for i, it := range b.Items {
		for r := it.Row; r < it.Bottom() && r < b.Rows; r++ {
			for c := it.Column; c < it.Right() && c < b.Columns; c++ {
				grid[r][c] = i
			}
		}
	}
	return grid
}

// renderBoard draws the board as a letter grid followed by a legend.
func renderBoard(b board.Board, cat *catalog.Catalog) string {
	if b.Empty() {
		return StyleDim.Render("(empty board)") + "\n"
	}

	var sb strings.Builder
	hole := StyleDim.Render("·")
	for _, row := range boardGrid(b) {
		cells := make([]string, len(row))
		for c, idx := range row {
			if idx < 0 {
				cells[c] = hole
				continue
			}
			cells[c] = kindStyles[b.Items[idx].Kind].Render(itemLabel(idx))
		}
		sb.WriteString("  " + strings.Join(cells, " ") + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(renderLegend(b, cat))
	sb.WriteString("\n")
	return sb.String()
}

func renderLegend(b board.Board, cat *catalog.Catalog) string {
	rows := make([][]string, len(b.Items))
	for i, it := range b.Items {
		rows[i] = []string{
			itemLabel(i),
			string(it.Kind),
			it.Footprint.Label(),
			fmt.Sprintf("%d", it.Tier),
			itemTitle(cat, it.ContentItem),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Kind", "Size", "Tier", "Title").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 0 && row < len(b.Items) {
				return kindStyles[b.Items[row].Kind]
			}
			if col == 1 || col == 2 || col == 3 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// itemTitle finds a human-readable title for a board item in the catalog,
// falling back to its id.
func itemTitle(cat *catalog.Catalog, it board.ContentItem) string {
	if cat == nil {
		return it.ID
	}
	switch it.Kind {
	case board.KindExhibit:
		if ex, ok := cat.Exhibit(it.ID); ok {
			if inst, ok := cat.Institution(ex.InstitutionID); ok {
				return ex.Title + StyleDim.Render(" @ "+inst.DisplayName())
			}
			return ex.Title
		}
	case board.KindTip:
		if tip, ok := cat.Tip(it.ID); ok {
			return tip.Title
		}
	case board.KindReciprocal:
		for _, rb := range cat.Reciprocals {
			if rb.ID != it.ID {
				continue
			}
			if inst, ok := cat.Institution(rb.ToInstitutionID); ok {
				return rb.Benefit + StyleDim.Render(" @ "+inst.DisplayName())
			}
			return rb.Benefit
		}
	}
	return it.ID
}

package cli

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ryanphanna/Venture/pkg/board"
	"github.com/ryanphanna/Venture/pkg/catalog"
)

func placedAt(id string, kind board.Kind, fp board.Footprint, row, col int) board.PlacedItem {
	return board.PlacedItem{
		ContentItem: board.ContentItem{ID: id, Kind: kind, Tier: 1},
		Footprint:   fp,
		Position:    board.Position{Row: row, Column: col},
	}
}

func TestBoardGrid(t *testing.T) {
	b := board.New(3, []board.PlacedItem{
		placedAt("rom-2", board.KindExhibit, board.Large, 0, 0),
		placedAt("tip-free", board.KindTip, board.Small, 0, 2),
		placedAt("rom-ago", board.KindReciprocal, board.Wide, 2, 1),
	})

	want := [][]int{
		{0, 0, 1},
		{0, 0, -1},
		{-1, 2, 2},
	}
	if diff := cmp.Diff(want, boardGrid(b)); diff != "" {
		t.Errorf("boardGrid() mismatch (-want +got):\n%s", diff)
	}
}

func TestItemLabel(t *testing.T) {
	tests := []struct {
		i    int
		want string
	}{
		{0, "A"},
		{25, "Z"},
		{26, "a"},
		{len(labels) - 1, "9"},
		{len(labels), "#"},
	}
	for _, tt := range tests {
		if got := itemLabel(tt.i); got != tt.want {
			t.Errorf("itemLabel(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}

func TestRenderBoard(t *testing.T) {
	cat := catalog.Sample()
	b := board.New(4, []board.PlacedItem{
		placedAt("rom-2", board.KindExhibit, board.Large, 0, 0),
		placedAt("tip-free", board.KindTip, board.Small, 0, 2),
		placedAt("rom-ago", board.KindReciprocal, board.Wide, 1, 2),
	})

	out := renderBoard(b, cat)
	for _, want := range []string{
		"Spinosaurus",
		"Free culture nights",
		"10% discount on admission",
		"2x2",
		"reciprocal",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("renderBoard() missing %q:\n%s", want, out)
		}
	}
}

func TestRenderBoardEmpty(t *testing.T) {
	out := renderBoard(board.New(4, nil), catalog.Sample())
	if !strings.Contains(out, "empty board") {
		t.Errorf("renderBoard(empty) = %q", out)
	}
}

func TestItemTitleFallsBackToID(t *testing.T) {
	item := board.ContentItem{ID: "gone", Kind: board.KindExhibit}
	if got := itemTitle(catalog.Sample(), item); got != "gone" {
		t.Errorf("itemTitle() = %q, want id", got)
	}
	if got := itemTitle(nil, item); got != "gone" {
		t.Errorf("itemTitle(nil catalog) = %q, want id", got)
	}
}

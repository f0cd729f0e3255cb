package pack_test

import (
	"fmt"

	"github.com/ryanphanna/Venture/pkg/board"
	"github.com/ryanphanna/Venture/pkg/board/pack"
)

func ExamplePack() {
	footprints := []board.Footprint{board.Large, board.Wide, board.Small, board.Small, board.Small}

	positions, err := pack.Pack(4, footprints)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for i, p := range positions {
		fmt.Printf("%s at row %d, column %d\n", footprints[i].Label(), p.Row, p.Column)
	}
	// Output:
	// 2x2 at row 0, column 0
	// 2x1 at row 0, column 2
	// 1x1 at row 1, column 2
	// 1x1 at row 1, column 3
	// 1x1 at row 2, column 0
}

func ExamplePack_tooWide() {
	_, err := pack.Pack(1, []board.Footprint{board.Wide})
	fmt.Println(err)
	// Output:
	// INVALID_FOOTPRINT: footprint 0 is 2 columns wide but the grid has 1
}

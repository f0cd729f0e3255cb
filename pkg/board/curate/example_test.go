package curate_test

import (
	"fmt"

	"github.com/ryanphanna/Venture/pkg/board"
	"github.com/ryanphanna/Venture/pkg/board/curate"
)

func ExampleAggregate() {
	item := func(id string) board.ContentItem { return board.ContentItem{ID: id, Kind: board.KindExhibit} }

	seq := curate.Aggregate(curate.Plan{
		Tiers: []curate.Tier{
			{Category: "ending-soon", Priority: 1, Items: []board.ContentItem{item("x"), item("y")}},
			{Category: "interest-matched", Priority: 2, Items: []board.ContentItem{item("y"), item("z")}},
		},
		Insertions: []curate.Insertion{
			{Offset: 0.5, Priority: 4, Item: board.ContentItem{ID: "tip-explore", Kind: board.KindTip}},
		},
	})
	for _, it := range seq {
		fmt.Println(it.Tier, it.Key())
	}
	// Output:
	// 1 exhibit:x
	// 4 tip:tip-explore
	// 1 exhibit:y
	// 2 exhibit:z
}

// Package board defines the data model of a curated board and the final
// assembly step that turns a curated sequence into placed items.
//
// A board is built in four stages, each living in its own package:
//
//  1. [curate]: merge ranked candidate lists into one ordered [ContentItem] sequence
//  2. [footprint]: assign each item a [Footprint] (column span × row span)
//  3. [pack]: place each footprint on a fixed-width grid, first-fit row-major
//  4. [Assemble]: zip items, footprints and positions into [PlacedItem] records
//
// Every stage is a pure function of its input. Nothing is retained between
// runs, so a board can be recomputed from scratch whenever the catalog or the
// user's preferences change.
//
// # Core Types
//
//   - [ContentItem]: one curated entry (exhibit, tip or reciprocal benefit)
//   - [Footprint]: size in grid cells
//   - [Position]: top-left grid cell of a placed item
//   - [PlacedItem]: item + footprint + position, ready for rendering
//   - [Board]: the placed items of one run plus the grid dimensions
//
// # Serialization
//
// Boards use a flat JSON format:
//
//	{
//	  "columns": 4,
//	  "rows": 3,
//	  "items": [
//	    {"id": "rom-2", "kind": "exhibit", "tier": 1, "col_span": 2, "row_span": 2, "row": 0, "column": 0}
//	  ]
//	}
//
// Common operations:
//
//	data, _ := board.Marshal(b)            // Board → []byte
//	b, _ := board.Unmarshal(data)          // []byte → Board (validated)
//	board.WriteFile(b, "board.json")       // Board → File
//	b, _ := board.ReadFile("board.json")   // File → Board
//
// [curate]: github.com/ryanphanna/Venture/pkg/board/curate
// [footprint]: github.com/ryanphanna/Venture/pkg/board/footprint
// [pack]: github.com/ryanphanna/Venture/pkg/board/pack
package board

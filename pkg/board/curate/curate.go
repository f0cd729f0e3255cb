// Package curate merges ranked candidate lists into one ordered sequence.
//
// A [Plan] lists tiers and insertions. Aggregation runs in two passes:
//
//  1. Tiers are visited in priority order (lower number first, ties keep
//     the order given). Each tier's list is truncated to its Limit, then
//     every item whose identity was already emitted is skipped. Surviving
//     items are stamped with the tier's priority and category.
//  2. Insertions are applied one at a time, in the order listed, at
//     floor(len*Offset) of the sequence as it stands at that moment. An
//     earlier insertion therefore shifts the position of a later one.
//
// An insertion with After > 0 is anchored: it is applied as soon as every
// tier with Priority <= After has been emitted, and before any later tier
// runs. Offsets are then fractions of that partial sequence. After <= 0
// applies the insertion once all tiers are done.
//
// Tier numbers below [board.TopTier] are raised to it.
//
// Identity is [board.ContentItem.Key]: the id scoped within the kind.
package curate

import (
	"math"
	"sort"

	"github.com/ryanphanna/Venture/pkg/board"
)

// Tier is one category's candidate list and its precedence.
type Tier struct {
	Category string
	Priority int
	Items    []board.ContentItem

	// Limit caps the list before merging. Zero or negative means no cap.
	Limit int
}

// Insertion places a single advisory item at a fractional offset.
type Insertion struct {
	Offset   float64
	Priority int
	Item     board.ContentItem

	// After anchors the insertion behind the tiers with Priority <= After.
	After int
}

// Plan is the full input of one aggregation run.
type Plan struct {
	Tiers      []Tier
	Insertions []Insertion
}

// Stats describes what an aggregation run kept and dropped.
type Stats struct {
	Emitted    int
	Truncated  int // dropped by per-tier limits
	Duplicates int // dropped because a higher tier emitted them
	Inserted   int
}

// Aggregate runs the plan and returns the ordered sequence. The result never
// contains two items with the same key. Empty plans yield an empty, non-nil
// slice.
func Aggregate(p Plan) []board.ContentItem {
	out, _ := AggregateStats(p)
	return out
}

// AggregateStats is Aggregate with counters for logging.
func AggregateStats(p Plan) ([]board.ContentItem, Stats) {
	var st Stats
	seen := make(map[string]struct{})
	out := []board.ContentItem{}

	done := make([]bool, len(p.Insertions))
	insert := func(due func(Insertion) bool) {
		for i, ins := range p.Insertions {
			if done[i] || !due(ins) {
				continue
			}
			done[i] = true
			key := ins.Item.Key()
			if _, dup := seen[key]; dup {
				st.Duplicates++
				continue
			}
			seen[key] = struct{}{}
			it := ins.Item
			if ins.Priority > 0 {
				it.Tier = ins.Priority
			}
			it.Tier = clampTier(it.Tier)
			out = insertAt(out, Index(len(out), ins.Offset), it)
			st.Inserted++
		}
	}

	for _, t := range ordered(p.Tiers) {
		insert(func(ins Insertion) bool { return ins.After > 0 && ins.After < t.Priority })

		items := t.Items
		if t.Limit > 0 && len(items) > t.Limit {
			st.Truncated += len(items) - t.Limit
			items = items[:t.Limit]
		}
		for _, it := range items {
			key := it.Key()
			if _, dup := seen[key]; dup {
				st.Duplicates++
				continue
			}
			seen[key] = struct{}{}
			it.Tier = t.Priority
			if t.Category != "" {
				it.Category = t.Category
			}
			out = append(out, it)
		}
	}
	insert(func(Insertion) bool { return true })

	st.Emitted = len(out)
	return out, st
}

// Index returns the slot for a fractional offset into a sequence of length n:
// floor(n*offset) clamped to [0, n].
// The clamp happens before the float is converted, so huge or infinite
// offsets land at n.
func Index(n int, offset float64) int {
	if n <= 0 || math.IsNaN(offset) || offset <= 0 {
		return 0
	}
	f := math.Floor(float64(n) * offset)
	if math.IsInf(f, 0) || f >= float64(n) {
		return n
	}
	return int(f)
}

func clampTier(tier int) int {
	if tier < board.TopTier {
		return board.TopTier
	}
	return tier
}

// ordered returns the tiers stably sorted by priority without touching the
// caller's slice. Priorities are clamped first.
func ordered(tiers []Tier) []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	for i := range out {
		out[i].Priority = clampTier(out[i].Priority)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

func insertAt(s []board.ContentItem, i int, it board.ContentItem) []board.ContentItem {
	s = append(s, board.ContentItem{})
	copy(s[i+1:], s[i:])
	s[i] = it
	return s
}

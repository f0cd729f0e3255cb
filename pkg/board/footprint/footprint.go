// Package footprint sizes curated items for the board grid.
//
// Sizing is a decision table: an ordered list of [Rule] values, each pairing
// a predicate with a footprint. The first rule whose predicate matches wins,
// and a 1×1 default covers everything no rule claims. The predicate only sees
// the item kind, its index in the sequence and its priority tier, never
// content, so sizing is deterministic.
//
// The default table, evaluated top to bottom:
//
//	hero        index 0 at the top tier         2×2
//	reciprocal  reciprocal benefit cards        2×1
//	unknown     kinds not enumerated            1×1
//	feature     tier ≤ 2, every 6th index       2×2
//	portrait    tier ≤ 2, every 4th index       1×2
//	banner      tier ≤ 2, every 3rd index       2×1
//	feature-lo  tier > 2, every 10th index      2×2
//	portrait-lo tier > 2, every 8th index       1×2
//	banner-lo   tier > 2, every 5th index       2×1
//	(default)                                   1×1
//
// Lower tiers use larger moduli, so visual weight follows priority.
package footprint

import (
	"github.com/ryanphanna/Venture/pkg/board"
)

// Input is what a rule may look at.
type Input struct {
	Kind  board.Kind
	Index int
	Tier  int
}

// Rule pairs a predicate with the footprint it assigns.
type Rule struct {
	Name      string
	Match     func(Input) bool
	Footprint board.Footprint
}

// Default is the footprint used when no rule matches.
var Default = board.Small

// HighTierMax is the last tier sized with the dense high-priority moduli.
const HighTierMax = 2

// DefaultRules returns the standard decision table. The returned slice is a
// fresh copy and may be modified by the caller.
func DefaultRules() []Rule {
	high := func(in Input) bool { return in.Tier <= HighTierMax }
	low := func(in Input) bool { return in.Tier > HighTierMax }
	sized := func(in Input) bool { return in.Kind == board.KindExhibit || in.Kind == board.KindTip }

	return []Rule{
		{Name: "hero", Footprint: board.Large, Match: func(in Input) bool {
			return in.Index == 0 && in.Tier == board.TopTier
		}},
		{Name: "reciprocal", Footprint: board.Wide, Match: func(in Input) bool {
			return in.Kind == board.KindReciprocal
		}},
		{Name: "unknown", Footprint: board.Small, Match: func(in Input) bool {
			return !in.Kind.Known()
		}},
		{Name: "feature", Footprint: board.Large, Match: every(6, high, sized)},
		{Name: "portrait", Footprint: board.Tall, Match: every(4, high, sized)},
		{Name: "banner", Footprint: board.Wide, Match: every(3, high, sized)},
		{Name: "feature-lo", Footprint: board.Large, Match: every(10, low, sized)},
		{Name: "portrait-lo", Footprint: board.Tall, Match: every(8, low, sized)},
		{Name: "banner-lo", Footprint: board.Wide, Match: every(5, low, sized)},
	}
}

// every matches indices divisible by n when all extra conditions hold.
func every(n int, conds ...func(Input) bool) func(Input) bool {
	return func(in Input) bool {
		if in.Index%n != 0 {
			return false
		}
		for _, c := range conds {
			if !c(in) {
				return false
			}
		}
		return true
	}
}

// Assigner applies a decision table to a sequence.
type Assigner struct {
	Rules []Rule
}

// New returns an Assigner using rules, or the default table when rules is nil.
func New(rules []Rule) *Assigner {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Assigner{Rules: rules}
}

// Size returns the footprint for a single input and the name of the rule
// that produced it ("default" when none matched).
func (a *Assigner) Size(in Input) (board.Footprint, string) {
	for _, r := range a.Rules {
		if r.Match(in) {
			return r.Footprint, r.Name
		}
	}
	return Default, "default"
}

// Assign returns one footprint per item, in the same order.
func (a *Assigner) Assign(items []board.ContentItem) []board.Footprint {
	out := make([]board.Footprint, len(items))
	for i, it := range items {
		out[i], _ = a.Size(Input{Kind: it.Kind, Index: i, Tier: it.Tier})
	}
	return out
}

// Assign sizes items with the default table.
func Assign(items []board.ContentItem) []board.Footprint {
	return New(nil).Assign(items)
}

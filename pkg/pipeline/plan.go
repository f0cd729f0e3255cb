package pipeline

import (
	"github.com/ryanphanna/Venture/pkg/board"
	"github.com/ryanphanna/Venture/pkg/board/curate"
	"github.com/ryanphanna/Venture/pkg/catalog"
	"github.com/ryanphanna/Venture/pkg/prefs"
)

// =============================================================================
// Plan
// =============================================================================

// BuildPlan turns a catalog and one user's preferences into the tiers and
// insertions of a board. Tiers, in precedence order:
//
//	1  ending-soon       exhibits whose last day is within the window
//	2  free-access       free exhibits, led by the free-access tip
//	3  member-benefits   reciprocal benefits of held memberships, led by a tip
//	4  timing tip
//	5  interest-matched  exhibits sharing an interest, minus every ending-soon
//	                     and free exhibit (not just the ones kept by caps)
//	6  revisit           exhibits at institutions not visited lately
//	7  membership tip    only when no membership is held
//
// Inserted tips are placed once tier 5 is emitted, before revisit.
// Tips missing from the catalog are skipped. opts must have defaults set.
func BuildPlan(cat *catalog.Catalog, p *prefs.Preferences, opts Options) curate.Plan {
	if p == nil {
		p = prefs.Default()
	}
	b := planBuilder{cat: cat, opts: opts}

	ending := cat.EndingSoon(opts.Now, opts.EndingSoonDays)
	b.category(CategoryEndingSoon, 1, catalog.ExhibitItems(ending))

	free := cat.FreeAccess()
	if len(free) > 0 {
		b.tip(TipFree, 2)
	}
	b.category(CategoryFreeAccess, 2, catalog.ExhibitItems(free))

	benefits := cat.ReciprocalsFor(p.Memberships)
	if len(benefits) > 0 {
		b.tip(TipReciprocal, 3)
	}
	b.category(CategoryMemberBenefits, 3, catalog.ReciprocalItems(benefits))

	b.tip(TipTiming, 4)

	b.category(CategoryInterestMatched, 5,
		catalog.ExhibitItems(without(cat.ByInterests(p.Interests), ending, free)))

	// Start of day, so a board does not change between morning and evening.
	today := opts.Today().Time()
	b.category(CategoryRevisit, 6,
		catalog.ExhibitItems(cat.NotRecentlyVisited(p.LastVisits(), today, opts.RevisitAfter, 0)))

	if len(p.Memberships) == 0 {
		b.tip(TipMembership, 7)
	}

	for _, ins := range opts.Insertions {
		t, ok := cat.Tip(ins.Tip)
		if !ok {
			continue
		}
		b.plan.Insertions = append(b.plan.Insertions, curate.Insertion{
			Offset:   ins.Offset,
			Priority: InsertionTier,
			After:    InsertAfterTier,
			Item:     t.Item(),
		})
	}
	return b.plan
}

type planBuilder struct {
	cat  *catalog.Catalog
	opts Options
	plan curate.Plan
}

func (b *planBuilder) category(name string, priority int, items []board.ContentItem) {
	b.plan.Tiers = append(b.plan.Tiers, curate.Tier{
		Category: name,
		Priority: priority,
		Items:    items,
		Limit:    b.opts.Cap(name),
	})
}

func (b *planBuilder) tip(id string, priority int) {
	t, ok := b.cat.Tip(id)
	if !ok {
		return
	}
	b.plan.Tiers = append(b.plan.Tiers, curate.Tier{
		Category: CategoryTips,
		Priority: priority,
		Items:    []board.ContentItem{t.Item()},
	})
}

// without drops exhibits whose id appears in any of the excluded lists.
func without(exhibits []catalog.Exhibit, exclude ...[]catalog.Exhibit) []catalog.Exhibit {
	drop := make(map[string]struct{})
	for _, list := range exclude {
		for _, ex := range list {
			drop[ex.ID] = struct{}{}
		}
	}
	out := make([]catalog.Exhibit, 0, len(exhibits))
	for _, ex := range exhibits {
		if _, ok := drop[ex.ID]; !ok {
			out = append(out, ex)
		}
	}
	return out
}

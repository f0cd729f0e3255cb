package catalog

import (
	"sort"
	"time"

	"github.com/maruel/natural"
)

// =============================================================================
// Lookups
// =============================================================================

// Institution returns the institution with the given id.
func (c *Catalog) Institution(id string) (Institution, bool) {
	for _, inst := range c.Institutions {
		if inst.ID == id {
			return inst, true
		}
	}
	return Institution{}, false
}

// Exhibit returns the exhibit with the given id.
func (c *Catalog) Exhibit(id string) (Exhibit, bool) {
	for _, ex := range c.Exhibits {
		if ex.ID == id {
			return ex, true
		}
	}
	return Exhibit{}, false
}

// Tip returns the tip with the given id.
func (c *Catalog) Tip(id string) (Tip, bool) {
	for _, t := range c.Tips {
		if t.ID == id {
			return t, true
		}
	}
	return Tip{}, false
}

// ExhibitsByInstitution returns the exhibits held at an institution.
func (c *Catalog) ExhibitsByInstitution(id string) []Exhibit {
	return c.filter(func(ex Exhibit) bool { return ex.InstitutionID == id })
}

// Interests returns every distinct interest tag in natural order.
func (c *Catalog) Interests() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, ex := range c.Exhibits {
		for _, in := range ex.Interests {
			if _, ok := seen[in]; ok {
				continue
			}
			seen[in] = struct{}{}
			out = append(out, in)
		}
	}
	sort.Sort(natural.StringSlice(out))
	return out
}

// =============================================================================
// Category queries
// =============================================================================

// EndingSoon returns time-limited exhibits whose last day falls between the
// calendar day of now and days later, both inclusive. Permanent exhibits and
// exhibits without an end date never qualify.
func (c *Catalog) EndingSoon(now time.Time, days int) []Exhibit {
	today := DateOf(now)
	limit := today.AddDays(days)
	return c.filter(func(ex Exhibit) bool {
		if ex.Permanent || ex.EndDate.IsZero() {
			return false
		}
		return !ex.EndDate.Before(today) && !ex.EndDate.After(limit)
	})
}

// FreeAccess returns exhibits flagged as free to attend.
func (c *Catalog) FreeAccess() []Exhibit {
	return c.filter(func(ex Exhibit) bool { return ex.Free })
}

// ByInterests returns exhibits sharing at least one interest. With no
// interests every exhibit matches.
func (c *Catalog) ByInterests(interests []string) []Exhibit {
	if len(interests) == 0 {
		return c.filter(func(Exhibit) bool { return true })
	}
	return c.filter(func(ex Exhibit) bool { return ex.HasInterest(interests...) })
}

// ReciprocalsFor returns the benefits unlocked by the given memberships: those
// whose source institution and tier match a held membership.
func (c *Catalog) ReciprocalsFor(memberships []Membership) []Reciprocal {
	var out []Reciprocal
	for _, rb := range c.Reciprocals {
		for _, m := range memberships {
			if m.InstitutionID == rb.FromInstitutionID && m.Tier == rb.MembershipTier {
				out = append(out, rb)
				break
			}
		}
	}
	return out
}

// NotRecentlyVisited returns up to limit exhibits at institutions that were
// never visited or last visited before now minus after. lastVisits maps an
// institution id to its most recent visit. A limit of zero or less returns
// every match.
func (c *Catalog) NotRecentlyVisited(lastVisits map[string]time.Time, now time.Time, after time.Duration, limit int) []Exhibit {
	cutoff := now.Add(-after)
	out := c.filter(func(ex Exhibit) bool {
		last, ok := lastVisits[ex.InstitutionID]
		return !ok || last.Before(cutoff)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (c *Catalog) filter(keep func(Exhibit) bool) []Exhibit {
	var out []Exhibit
	for _, ex := range c.Exhibits {
		if keep(ex) {
			out = append(out, ex)
		}
	}
	return out
}

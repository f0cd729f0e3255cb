// Package prefs holds per-user preferences that steer curation: interests,
// held memberships, visit history, saved exhibits and a home location.
//
// Preferences are plain values with toggle helpers mirroring what a user can
// do in the app. Persistence goes through the [Store] interface, with
// implementations for different backends:
//   - [FileStore]: JSON files, for the CLI
//   - [MongoStore]: a MongoDB collection, for the HTTP server
//
// # Usage
//
//	store, err := prefs.NewFileStore("") // ~/.config/venture/profiles
//	p, err := store.Get(ctx, id)
//	if errors.Is(err, errors.ErrCodeProfileNotFound) {
//	    p = prefs.Default()
//	}
//	p.ToggleInterest("music")
//	err = store.Put(ctx, id, p)
package prefs

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ryanphanna/Venture/pkg/catalog"
	verrors "github.com/ryanphanna/Venture/pkg/errors"
)

// DefaultInterests seed a new profile.
var DefaultInterests = []string{"art", "culture", "family"}

// DefaultProfile is the profile id used by the CLI when none is given.
const DefaultProfile = "default"

// Preferences is one user's curation state.
type Preferences struct {
	Interests   []string             `json:"interests" bson:"interests"`
	Memberships []catalog.Membership `json:"memberships" bson:"memberships"`
	Visits      []Visit              `json:"visits" bson:"visits"`
	Saved       []string             `json:"saved" bson:"saved"`
	Location    Location             `json:"location" bson:"location"`
	UpdatedAt   time.Time            `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// Visit records how often and how recently an institution was visited.
type Visit struct {
	InstitutionID string    `json:"institution_id" bson:"institution_id"`
	LastVisit     time.Time `json:"last_visit" bson:"last_visit"`
	Count         int       `json:"count" bson:"count"`
}

// Location is where the user is, used for distance sorting.
type Location struct {
	City         string  `json:"city,omitempty" bson:"city,omitempty"`
	Neighborhood string  `json:"neighborhood,omitempty" bson:"neighborhood,omitempty"`
	Lat          float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng          float64 `json:"lng,omitempty" bson:"lng,omitempty"`
}

// Point returns the coordinates, zero when unset.
func (l Location) Point() catalog.Point { return catalog.Point{Lat: l.Lat, Lng: l.Lng} }

// Default returns the preferences of a new user.
func Default() *Preferences {
	return &Preferences{
		Interests:   slices.Clone(DefaultInterests),
		Memberships: []catalog.Membership{},
		Visits:      []Visit{},
		Saved:       []string{},
	}
}

// NewProfileID returns a fresh random profile id.
func NewProfileID() string {
	return uuid.NewString()
}

// Clone returns a deep copy.
func (p *Preferences) Clone() *Preferences {
	out := *p
	out.Interests = slices.Clone(p.Interests)
	out.Memberships = slices.Clone(p.Memberships)
	out.Visits = slices.Clone(p.Visits)
	out.Saved = slices.Clone(p.Saved)
	return &out
}

// Validate checks interest tags and membership entries.
func (p *Preferences) Validate() error {
	for _, in := range p.Interests {
		if err := verrors.ValidateInterest(in); err != nil {
			return err
		}
	}
	for _, m := range p.Memberships {
		if m.InstitutionID == "" || m.Tier == "" {
			return verrors.New(verrors.ErrCodeInvalidProfile,
				"membership needs an institution and a tier, got %q/%q", m.InstitutionID, m.Tier)
		}
	}
	return nil
}

// =============================================================================
// Interests
// =============================================================================

// ToggleInterest adds the interest if absent and removes it otherwise. It
// reports whether the interest is now selected.
func (p *Preferences) ToggleInterest(interest string) bool {
	if i := slices.Index(p.Interests, interest); i >= 0 {
		p.Interests = slices.Delete(p.Interests, i, i+1)
		return false
	}
	p.Interests = append(p.Interests, interest)
	return true
}

// HasInterest reports whether the interest is selected.
func (p *Preferences) HasInterest(interest string) bool {
	return slices.Contains(p.Interests, interest)
}

// =============================================================================
// Memberships
// =============================================================================

// ToggleMembership removes any membership held at the institution, whatever
// its tier; otherwise it adds one at the given tier. It reports whether a
// membership is now held.
func (p *Preferences) ToggleMembership(institutionID, tier string) bool {
	if i := p.membershipIndex(institutionID); i >= 0 {
		p.Memberships = slices.Delete(p.Memberships, i, i+1)
		return false
	}
	p.Memberships = append(p.Memberships, catalog.Membership{InstitutionID: institutionID, Tier: tier})
	return true
}

// HasMembership reports whether any membership is held at the institution.
func (p *Preferences) HasMembership(institutionID string) bool {
	return p.membershipIndex(institutionID) >= 0
}

// Membership returns the membership held at the institution.
func (p *Preferences) Membership(institutionID string) (catalog.Membership, bool) {
	if i := p.membershipIndex(institutionID); i >= 0 {
		return p.Memberships[i], true
	}
	return catalog.Membership{}, false
}

func (p *Preferences) membershipIndex(institutionID string) int {
	return slices.IndexFunc(p.Memberships, func(m catalog.Membership) bool {
		return m.InstitutionID == institutionID
	})
}

// =============================================================================
// Visits
// =============================================================================

// MarkVisited records a visit at now.
func (p *Preferences) MarkVisited(institutionID string, now time.Time) {
	for i := range p.Visits {
		if p.Visits[i].InstitutionID == institutionID {
			p.Visits[i].LastVisit = now
			p.Visits[i].Count++
			return
		}
	}
	p.Visits = append(p.Visits, Visit{InstitutionID: institutionID, LastVisit: now, Count: 1})
}

// LastVisit returns when the institution was last visited.
func (p *Preferences) LastVisit(institutionID string) (time.Time, bool) {
	for _, v := range p.Visits {
		if v.InstitutionID == institutionID {
			return v.LastVisit, true
		}
	}
	return time.Time{}, false
}

// LastVisits maps each visited institution to its most recent visit.
func (p *Preferences) LastVisits() map[string]time.Time {
	out := make(map[string]time.Time, len(p.Visits))
	for _, v := range p.Visits {
		out[v.InstitutionID] = v.LastVisit
	}
	return out
}

// =============================================================================
// Saved exhibits
// =============================================================================

// ToggleSaved saves or unsaves an exhibit and reports whether it is now saved.
func (p *Preferences) ToggleSaved(exhibitID string) bool {
	if i := slices.Index(p.Saved, exhibitID); i >= 0 {
		p.Saved = slices.Delete(p.Saved, i, i+1)
		return false
	}
	p.Saved = append(p.Saved, exhibitID)
	return true
}

// IsSaved reports whether the exhibit is saved.
func (p *Preferences) IsSaved(exhibitID string) bool {
	return slices.Contains(p.Saved, exhibitID)
}

// Package catalog holds the read-only content the board is curated from:
// institutions, their exhibits, reciprocal membership benefits and advisory
// tips.
//
// A [Catalog] is plain data. It can be loaded from JSON, YAML or TOML with
// [Load], checked with [Catalog.Validate], and queried by curation category
// with methods such as [Catalog.EndingSoon] and [Catalog.ByInterests]. Every
// query preserves catalog order so that curation stays deterministic.
//
// [Sample] returns an embedded catalog of Toronto institutions, used as the
// default when no catalog file is configured.
package catalog

import (
	"fmt"
	"time"
)

// =============================================================================
// Catalog
// =============================================================================

// Catalog is the full set of curatable content.
type Catalog struct {
	Institutions []Institution `json:"institutions" yaml:"institutions" toml:"institutions"`
	Exhibits     []Exhibit     `json:"exhibits" yaml:"exhibits" toml:"exhibits"`
	Reciprocals  []Reciprocal  `json:"reciprocals" yaml:"reciprocals" toml:"reciprocals"`
	Tips         []Tip         `json:"tips" yaml:"tips" toml:"tips"`
}

// Institution is a museum, gallery, zoo or similar venue.
type Institution struct {
	ID              string   `json:"id" yaml:"id" toml:"id"`
	Name            string   `json:"name" yaml:"name" toml:"name"`
	ShortName       string   `json:"short_name,omitempty" yaml:"short_name,omitempty" toml:"short_name,omitempty"`
	Type            string   `json:"type" yaml:"type" toml:"type"`
	Location        Location `json:"location" yaml:"location" toml:"location"`
	MembershipTiers []string `json:"membership_tiers,omitempty" yaml:"membership_tiers,omitempty" toml:"membership_tiers,omitempty"`
	Website         string   `json:"website,omitempty" yaml:"website,omitempty" toml:"website,omitempty"`
}

// DisplayName returns the short name when set, otherwise the full name.
func (i Institution) DisplayName() string {
	if i.ShortName != "" {
		return i.ShortName
	}
	return i.Name
}

// OffersTier reports whether the institution sells the given membership tier.
func (i Institution) OffersTier(tier string) bool {
	for _, t := range i.MembershipTiers {
		if t == tier {
			return true
		}
	}
	return false
}

// Location is a street address with coordinates.
type Location struct {
	Address      string  `json:"address,omitempty" yaml:"address,omitempty" toml:"address,omitempty"`
	Neighborhood string  `json:"neighborhood,omitempty" yaml:"neighborhood,omitempty" toml:"neighborhood,omitempty"`
	Lat          float64 `json:"lat" yaml:"lat" toml:"lat"`
	Lng          float64 `json:"lng" yaml:"lng" toml:"lng"`
}

// Point returns the coordinates of the location.
func (l Location) Point() Point { return Point{Lat: l.Lat, Lng: l.Lng} }

// Exhibit is something to see at an institution: a permanent collection, a
// time-limited show or a recurring program.
type Exhibit struct {
	ID            string   `json:"id" yaml:"id" toml:"id"`
	InstitutionID string   `json:"institution_id" yaml:"institution_id" toml:"institution_id"`
	Title         string   `json:"title" yaml:"title" toml:"title"`
	Type          string   `json:"type" yaml:"type" toml:"type"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	StartDate     Date     `json:"start_date" yaml:"start_date" toml:"start_date"`
	EndDate       Date     `json:"end_date" yaml:"end_date" toml:"end_date"`
	Permanent     bool     `json:"permanent" yaml:"permanent" toml:"permanent"`
	Interests     []string `json:"interests,omitempty" yaml:"interests,omitempty" toml:"interests,omitempty"`
	Free          bool     `json:"free" yaml:"free" toml:"free"`
}

// HasInterest reports whether the exhibit is tagged with any of interests.
func (e Exhibit) HasInterest(interests ...string) bool {
	for _, want := range interests {
		for _, have := range e.Interests {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Reciprocal is a benefit that members of one institution receive at another.
type Reciprocal struct {
	ID                string `json:"id" yaml:"id" toml:"id"`
	FromInstitutionID string `json:"from_institution_id" yaml:"from_institution_id" toml:"from_institution_id"`
	ToInstitutionID   string `json:"to_institution_id" yaml:"to_institution_id" toml:"to_institution_id"`
	MembershipTier    string `json:"membership_tier" yaml:"membership_tier" toml:"membership_tier"`
	Benefit           string `json:"benefit" yaml:"benefit" toml:"benefit"`
	Description       string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// Tip is a short piece of advisory content placed between exhibits.
type Tip struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	Type        string `json:"type" yaml:"type" toml:"type"`
	Title       string `json:"title" yaml:"title" toml:"title"`
	Description string `json:"description" yaml:"description" toml:"description"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
}

// Membership is a held membership: an institution and the tier bought there.
type Membership struct {
	InstitutionID string `json:"institution_id" yaml:"institution_id" toml:"institution_id" bson:"institution_id"`
	Tier          string `json:"tier" yaml:"tier" toml:"tier" bson:"tier"`
}

// =============================================================================
// Date
// =============================================================================

// DateLayout is the calendar-date format used in catalog files.
const DateLayout = "2006-01-02"

// Date is a calendar day. The zero Date means "not set" and encodes as an
// empty string.
type Date struct {
	t time.Time
}

// NewDate returns the date of the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string. RFC 3339 timestamps are accepted
// and truncated to their calendar day, which is how TOML datetimes arrive.
// The empty string yields the zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("date %q: want %s", s, DateLayout)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return d.t }

// Before reports whether d is an earlier day than o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// After reports whether d is a later day than o.
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// Equal reports whether d and o are the same day.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

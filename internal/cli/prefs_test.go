package cli

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ryanphanna/Venture/pkg/catalog"
	verrors "github.com/ryanphanna/Venture/pkg/errors"
	"github.com/ryanphanna/Venture/pkg/prefs"
)

func TestProfileEdits(t *testing.T) {
	cat := catalog.Sample()
	now := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		edit     profileEdit
		args     []string
		wantCode verrors.Code
		check    func(t *testing.T, p *prefs.Preferences)
	}{
		{
			name: "add interest",
			edit: editInterest,
			args: []string{"music"},
			check: func(t *testing.T, p *prefs.Preferences) {
				if !p.HasInterest("music") {
					t.Errorf("interests = %v", p.Interests)
				}
			},
		},
		{
			name: "remove interest",
			edit: editInterest,
			args: []string{"art"},
			check: func(t *testing.T, p *prefs.Preferences) {
				if p.HasInterest("art") {
					t.Errorf("interests = %v", p.Interests)
				}
			},
		},
		{name: "bad interest", edit: editInterest, args: []string{"Not Valid"}, wantCode: verrors.ErrCodeInvalidInput},
		{
			name: "membership",
			edit: editMembership,
			args: []string{"rom", "family"},
			check: func(t *testing.T, p *prefs.Preferences) {
				m, ok := p.Membership("rom")
				if !ok || m.Tier != "family" {
					t.Errorf("membership = %+v, %v", m, ok)
				}
			},
		},
		{name: "unknown tier", edit: editMembership, args: []string{"rom", "platinum"}, wantCode: verrors.ErrCodeInvalidInput},
		{name: "unknown institution", edit: editMembership, args: []string{"louvre", "family"}, wantCode: verrors.ErrCodeNotFound},
		{
			name: "visit",
			edit: editVisit,
			args: []string{"ago"},
			check: func(t *testing.T, p *prefs.Preferences) {
				if last, ok := p.LastVisit("ago"); !ok || !last.Equal(now) {
					t.Errorf("last visit = %v, %v", last, ok)
				}
			},
		},
		{name: "visit unknown", edit: editVisit, args: []string{"louvre"}, wantCode: verrors.ErrCodeNotFound},
		{
			name: "save",
			edit: editSaved,
			args: []string{"rom-2"},
			check: func(t *testing.T, p *prefs.Preferences) {
				if diff := cmp.Diff([]string{"rom-2"}, p.Saved); diff != "" {
					t.Errorf("saved mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{name: "save unknown", edit: editSaved, args: []string{"nope"}, wantCode: verrors.ErrCodeNotFound},
		{
			name: "location",
			edit: editLocation,
			args: []string{"43.65", "-79.38"},
			check: func(t *testing.T, p *prefs.Preferences) {
				if p.Location.Lat != 43.65 || p.Location.Lng != -79.38 {
					t.Errorf("location = %+v", p.Location)
				}
			},
		},
		{name: "location out of range", edit: editLocation, args: []string{"91", "0"}, wantCode: verrors.ErrCodeInvalidInput},
		{name: "location not a number", edit: editLocation, args: []string{"north", "0"}, wantCode: verrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := prefs.Default()
			summary, err := tt.edit(cat, p, tt.args, now)
			if tt.wantCode != "" {
				if !verrors.Is(err, tt.wantCode) {
					t.Errorf("error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if summary == "" {
				t.Error("empty summary")
			}
			tt.check(t, p)
		})
	}
}

func TestRemoveMembershipIgnoresTier(t *testing.T) {
	p := prefs.Default()
	p.ToggleMembership("rom", "family")

	if _, err := editMembership(catalog.Sample(), p, []string{"rom", "anything"}, time.Time{}); err != nil {
		t.Fatalf("remove membership: %v", err)
	}
	if p.HasMembership("rom") {
		t.Error("membership still held")
	}
}

func TestPrefsCommandPersists(t *testing.T) {
	c, _ := testCLI(t)

	for _, args := range [][]string{
		{"prefs", "interest", "music"},
		{"prefs", "membership", "ago", "plus", "--profile", "member"},
	} {
		root := c.RootCommand()
		root.SetArgs(args)
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	store, err := prefs.NewFileStore("")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	def, err := store.Get(ctx, prefs.DefaultProfile)
	if err != nil {
		t.Fatal(err)
	}
	if !def.HasInterest("music") || def.UpdatedAt.IsZero() {
		t.Errorf("default profile = %+v", def)
	}

	member, err := store.Get(ctx, "member")
	if err != nil {
		t.Fatal(err)
	}
	if !member.HasMembership("ago") || member.HasInterest("music") {
		t.Errorf("member profile = %+v", member)
	}
}

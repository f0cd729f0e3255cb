package pipeline

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ryanphanna/Venture/pkg/board"
	"github.com/ryanphanna/Venture/pkg/catalog"
	verrors "github.com/ryanphanna/Venture/pkg/errors"
	"github.com/ryanphanna/Venture/pkg/prefs"
)

var winter = time.Date(2024, 12, 20, 15, 30, 0, 0, time.UTC)

func keys(items []board.ContentItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key()
	}
	return out
}

func defaults(t *testing.T, o Options) Options {
	t.Helper()
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	return o
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"preview", false},
		{"svg", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !verrors.Is(err, verrors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, verrors.GetCode(err))
		}
	}
}

func TestSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()

	if o.Columns != DefaultGridCols {
		t.Errorf("Columns = %d, want %d", o.Columns, DefaultGridCols)
	}
	if o.EndingSoonDays != DefaultEndingSoonDays {
		t.Errorf("EndingSoonDays = %d", o.EndingSoonDays)
	}
	if o.RevisitAfter != 90*24*time.Hour {
		t.Errorf("RevisitAfter = %s", o.RevisitAfter)
	}
	if o.Now.IsZero() {
		t.Error("Now not defaulted")
	}
	if o.Logger == nil {
		t.Error("Logger not defaulted")
	}
	if diff := cmp.Diff(DefaultCaps(), o.Caps); diff != "" {
		t.Errorf("Caps mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(DefaultInsertions(), o.Insertions); diff != "" {
		t.Errorf("Insertions mismatch (-want +got):\n%s", diff)
	}

	// Explicit values survive.
	o = Options{Columns: 6, Caps: map[string]int{}, Insertions: []InsertionSpec{}}
	o.SetDefaults()
	if o.Columns != 6 || len(o.Caps) != 0 || len(o.Insertions) != 0 {
		t.Errorf("SetDefaults overwrote explicit values: %+v", o)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code verrors.Code
	}{
		{"defaults", Options{}, ""},
		{"one column", Options{Columns: 1}, verrors.ErrCodeInvalidConfig},
		{"negative window", Options{EndingSoonDays: -1}, verrors.ErrCodeInvalidConfig},
		{"negative revisit", Options{RevisitAfter: -time.Hour}, verrors.ErrCodeInvalidConfig},
		{"unknown cap", Options{Caps: map[string]int{"trending": 3}}, verrors.ErrCodeInvalidConfig},
		{"negative cap", Options{Caps: map[string]int{CategoryRevisit: -1}}, verrors.ErrCodeInvalidConfig},
		{"unnamed insertion", Options{Insertions: []InsertionSpec{{Offset: 0.5}}}, verrors.ErrCodeInvalidConfig},
		{"offset past end", Options{Insertions: []InsertionSpec{{Tip: TipExplore, Offset: 1.5}}}, verrors.ErrCodeInvalidConfig},
		{"offset at end", Options{Insertions: []InsertionSpec{{Tip: TipExplore, Offset: 1}}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !verrors.Is(err, tt.code) {
				t.Fatalf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestBoardKeyOpts(t *testing.T) {
	a := defaults(t, Options{Now: winter})
	b := defaults(t, Options{Now: winter.Add(3 * time.Hour)})
	if diff := cmp.Diff(a.BoardKeyOpts(), b.BoardKeyOpts()); diff != "" {
		t.Errorf("same day should share key options:\n%s", diff)
	}

	c := defaults(t, Options{Now: winter, Caps: map[string]int{CategoryRevisit: 1}})
	if a.BoardKeyOpts().PlanHash == c.BoardKeyOpts().PlanHash {
		t.Error("changing caps should change the plan hash")
	}
	if got := a.BoardKeyOpts().Day; got != "2024-12-20" {
		t.Errorf("Day = %q", got)
	}
}

// =============================================================================
// Plan
// =============================================================================

func TestCurateDefaultProfile(t *testing.T) {
	opts := defaults(t, Options{Now: winter})
	items, st := Curate(catalog.Sample(), prefs.Default(), opts)

	want := []string{
		"exhibit:rom-2", // ending soon
		"exhibit:ago-1",
		"tip:tip-free",
		"exhibit:ago-3", // free
		"tip:tip-timing",
		"tip:tip-explore", // floor(11 * 0.5)
		"exhibit:rom-1",   // interests
		"exhibit:rom-3",
		"tip:tip-special", // floor(12 * 0.7)
		"exhibit:ago-2",
		"exhibit:zoo-1",
		"exhibit:zoo-2",
		"exhibit:gardiner-1",
		"tip:tip-membership", // revisit adds nothing new
	}
	if diff := cmp.Diff(want, keys(items)); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}

	wantStats := struct{ Emitted, Truncated, Duplicates, Inserted int }{14, 16, 3, 2}
	gotStats := struct{ Emitted, Truncated, Duplicates, Inserted int }{st.Emitted, st.Truncated, st.Duplicates, st.Inserted}
	if wantStats != gotStats {
		t.Errorf("stats = %+v, want %+v", gotStats, wantStats)
	}

	tiers := map[string]int{}
	for _, it := range items {
		tiers[it.Key()] = it.Tier
	}
	for key, tier := range map[string]int{
		"exhibit:rom-2":      1,
		"tip:tip-free":       2,
		"tip:tip-explore":    InsertionTier,
		"exhibit:rom-1":      5,
		"tip:tip-membership": 7,
	} {
		if tiers[key] != tier {
			t.Errorf("%s tier = %d, want %d", key, tiers[key], tier)
		}
	}
}

func TestBuildPlanInterestsSkipEndingAndFree(t *testing.T) {
	opts := defaults(t, Options{Now: winter})
	plan := BuildPlan(catalog.Sample(), prefs.Default(), opts)

	var interest []board.ContentItem
	for _, tier := range plan.Tiers {
		if tier.Category == CategoryInterestMatched {
			interest = tier.Items
		}
	}
	// aga-2 is ending soon but capped out of its tier; it still stays out.
	for _, it := range interest {
		switch it.ID {
		case "rom-2", "ago-1", "aga-2", "ago-3":
			t.Errorf("%s offered as interest-matched", it.ID)
		}
	}

	items, _ := Curate(catalog.Sample(), prefs.Default(), opts)
	var got []string
	for _, it := range items {
		if it.Category == CategoryInterestMatched {
			got = append(got, it.ID)
		}
	}
	want := []string{"rom-1", "rom-3", "ago-2", "zoo-1", "zoo-2", "gardiner-1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("interest-matched mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPlanAnchorsInsertions(t *testing.T) {
	plan := BuildPlan(catalog.Sample(), prefs.Default(), defaults(t, Options{Now: winter}))
	if len(plan.Insertions) == 0 {
		t.Fatal("no insertions")
	}
	for _, ins := range plan.Insertions {
		if ins.After != InsertAfterTier {
			t.Errorf("%s anchored after %d, want %d", ins.Item.ID, ins.After, InsertAfterTier)
		}
	}
}

func TestCurateMember(t *testing.T) {
	p := prefs.Default()
	p.ToggleMembership("rom", "family")
	opts := defaults(t, Options{Now: winter, Insertions: []InsertionSpec{}})
	items, _ := Curate(catalog.Sample(), p, opts)

	got := keys(items)
	want := []string{"exhibit:rom-2", "exhibit:ago-1", "tip:tip-free", "exhibit:ago-3",
		"tip:tip-reciprocal", "reciprocal:rom-ago", "reciprocal:rom-gardiner"}
	if diff := cmp.Diff(want, got[:len(want)]); diff != "" {
		t.Errorf("head mismatch (-want +got):\n%s", diff)
	}
	for _, k := range got {
		if k == "tip:tip-membership" {
			t.Error("members should not be offered the membership tip")
		}
	}
	if items[5].Category != CategoryMemberBenefits {
		t.Errorf("benefit category = %q", items[5].Category)
	}
}

func TestCurateRecentVisitsSkipRevisit(t *testing.T) {
	p := prefs.Default()
	p.Interests = []string{"space"}
	opts := defaults(t, Options{Now: winter, Insertions: []InsertionSpec{}})

	// Never visited anywhere: revisit proposes the first three exhibits.
	items, _ := Curate(catalog.Sample(), p, opts)
	if !containsKey(items, "exhibit:rom-1") {
		t.Fatalf("rom-1 missing from revisit: %v", keys(items))
	}

	p.MarkVisited("rom", winter.AddDate(0, 0, -10))
	items, _ = Curate(catalog.Sample(), p, opts)
	for _, k := range keys(items) {
		if k == "exhibit:rom-1" || k == "exhibit:rom-3" {
			t.Errorf("recently visited %s proposed for revisit", k)
		}
	}
}

func TestBuildPlanMissingTips(t *testing.T) {
	cat := catalog.Sample()
	cat.Tips = nil
	opts := defaults(t, Options{Now: winter})

	plan := BuildPlan(cat, nil, opts)
	if len(plan.Insertions) != 0 {
		t.Errorf("insertions without tips: %d", len(plan.Insertions))
	}
	for _, tier := range plan.Tiers {
		if tier.Category == CategoryTips {
			t.Errorf("tip tier built without tips at priority %d", tier.Priority)
		}
	}
}

func TestBuildPlanEmptyCatalog(t *testing.T) {
	opts := defaults(t, Options{Now: winter})
	items, _ := Curate(&catalog.Catalog{}, prefs.Default(), opts)
	if items == nil || len(items) != 0 {
		t.Errorf("empty catalog: got %v, want empty non-nil", items)
	}
}

func containsKey(items []board.ContentItem, key string) bool {
	for _, it := range items {
		if it.Key() == key {
			return true
		}
	}
	return false
}

// =============================================================================
// Layout
// =============================================================================

func TestLayout(t *testing.T) {
	opts := defaults(t, Options{Now: winter})
	items, _ := Curate(catalog.Sample(), prefs.Default(), opts)

	b, err := Layout(opts.Columns, items)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("board invalid: %v", err)
	}
	if len(b.Items) != len(items) {
		t.Fatalf("placed %d of %d items", len(b.Items), len(items))
	}
	hero := b.Items[0]
	if hero.Footprint != board.Large || hero.Position != (board.Position{}) {
		t.Errorf("hero = %s at %+v, want 2x2 at origin", hero.Footprint.Label(), hero.Position)
	}
}

func TestLayoutEmpty(t *testing.T) {
	b, err := Layout(4, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Empty() || b.Rows != 0 {
		t.Errorf("empty layout = %+v", b)
	}
}

func TestLayoutTooNarrow(t *testing.T) {
	items := []board.ContentItem{{ID: "x", Kind: board.KindExhibit, Tier: board.TopTier}}
	_, err := Layout(1, items)
	if !verrors.Is(err, verrors.ErrCodeInvalidFootprint) {
		t.Errorf("error = %v, want INVALID_FOOTPRINT", err)
	}
}

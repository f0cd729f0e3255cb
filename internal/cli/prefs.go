package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ryanphanna/Venture/pkg/catalog"
	verrors "github.com/ryanphanna/Venture/pkg/errors"
	"github.com/ryanphanna/Venture/pkg/prefs"
)

// prefsCommand creates the profile editing command.
func (c *CLI) prefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show and edit the local profile",
		Long: `Show and edit the local profile used by "venture board".

Interests, memberships and saved exhibits toggle: running the same command
twice undoes it. Profiles live under $XDG_CONFIG_HOME/venture/profiles.`,
	}

	cmd.AddCommand(c.prefsShowCommand())
	institutions := c.completeFromCatalog(institutionNames)
	cmd.AddCommand(
		c.prefsEditCommand("interest <name>", "Toggle an interest", 1, editInterest,
			c.completeFromCatalog((*catalog.Catalog).Interests)),
		c.prefsEditCommand("membership <institution> <tier>", "Toggle a membership", 2, editMembership, institutions),
		c.prefsEditCommand("visit <institution>", "Record a visit today", 1, editVisit, institutions),
		c.prefsEditCommand("save <exhibit>", "Toggle a saved exhibit", 1, editSaved,
			c.completeFromCatalog(exhibitNames)),
		c.prefsEditCommand("location <lat> <lng>", "Set your location for distance sorting", 2, editLocation, nil),
	)
	cmd.AddCommand(c.prefsInterestsCommand())

	return cmd
}

// prefsShowCommand creates the "prefs show" subcommand.
func (c *CLI) prefsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			p, err := prefs.GetOrDefault(cmd.Context(), store, c.profile)
			if err != nil {
				return err
			}
			printProfile(c.profile, p)
			return nil
		},
	}
}

// =============================================================================
// Edits
// =============================================================================

// profileEdit changes p using args and returns a one-line summary.
type profileEdit func(cat *catalog.Catalog, p *prefs.Preferences, args []string, now time.Time) (string, error)

// prefsEditCommand wraps a profileEdit as a subcommand that loads, edits and
// stores the profile.
func (c *CLI) prefsEditCommand(use, short string, nargs int, edit profileEdit, complete completeFunc) *cobra.Command {
	return &cobra.Command{
		Use:               use,
		Short:             short,
		Args:              cobra.ExactArgs(nargs),
		ValidArgsFunction: complete,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cat, err := c.loadCatalog(cfg)
			if err != nil {
				return err
			}
			var summary string
			err = c.updateProfile(cmd.Context(), func(p *prefs.Preferences) error {
				summary, err = edit(cat, p, args, time.Now())
				return err
			})
			if err != nil {
				return err
			}
			printSuccess("%s", summary)
			printNextStep("See the updated board", "venture board")
			return nil
		},
	}
}

// updateProfile applies fn to the stored profile, creating it from defaults
// when missing, and writes it back.
func (c *CLI) updateProfile(ctx context.Context, fn func(*prefs.Preferences) error) error {
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := prefs.GetOrDefault(ctx, store, c.profile)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	if err := store.Put(ctx, c.profile, p); err != nil {
		return err
	}
	c.Logger.Debug("saved profile", "profile", c.profile, "dir", store.Path())
	return nil
}

func editInterest(_ *catalog.Catalog, p *prefs.Preferences, args []string, _ time.Time) (string, error) {
	interest := args[0]
	if err := verrors.ValidateInterest(interest); err != nil {
		return "", err
	}
	if p.ToggleInterest(interest) {
		return fmt.Sprintf("Added interest %s", interest), nil
	}
	return fmt.Sprintf("Removed interest %s", interest), nil
}

func editMembership(cat *catalog.Catalog, p *prefs.Preferences, args []string, _ time.Time) (string, error) {
	instID, tier := args[0], args[1]
	inst, ok := cat.Institution(instID)
	if !ok {
		return "", verrors.New(verrors.ErrCodeNotFound, "institution %q not found", instID)
	}
	// Removing a membership does not need a valid tier.
	if !p.HasMembership(instID) && !inst.OffersTier(tier) {
		return "", verrors.New(verrors.ErrCodeInvalidInput,
			"%s has no %q membership (tiers: %s)", inst.DisplayName(), tier, strings.Join(inst.MembershipTiers, ", "))
	}
	if p.ToggleMembership(instID, tier) {
		return fmt.Sprintf("Added %s membership at %s", tier, inst.DisplayName()), nil
	}
	return fmt.Sprintf("Removed membership at %s", inst.DisplayName()), nil
}

func editVisit(cat *catalog.Catalog, p *prefs.Preferences, args []string, now time.Time) (string, error) {
	inst, ok := cat.Institution(args[0])
	if !ok {
		return "", verrors.New(verrors.ErrCodeNotFound, "institution %q not found", args[0])
	}
	p.MarkVisited(inst.ID, now.UTC())
	return fmt.Sprintf("Recorded visit to %s", inst.DisplayName()), nil
}

func editSaved(cat *catalog.Catalog, p *prefs.Preferences, args []string, _ time.Time) (string, error) {
	ex, ok := cat.Exhibit(args[0])
	if !ok {
		return "", verrors.New(verrors.ErrCodeNotFound, "exhibit %q not found", args[0])
	}
	if p.ToggleSaved(ex.ID) {
		return fmt.Sprintf("Saved %s", ex.Title), nil
	}
	return fmt.Sprintf("Unsaved %s", ex.Title), nil
}

func editLocation(_ *catalog.Catalog, p *prefs.Preferences, args []string, _ time.Time) (string, error) {
	lat, errLat := strconv.ParseFloat(args[0], 64)
	lng, errLng := strconv.ParseFloat(args[1], 64)
	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return "", verrors.New(verrors.ErrCodeInvalidInput,
			"location must be a latitude and longitude in degrees, got %q %q", args[0], args[1])
	}
	p.Location.Lat, p.Location.Lng = lat, lng
	return fmt.Sprintf("Location set to %.4f, %.4f", lat, lng), nil
}

// =============================================================================
// Interactive Interests
// =============================================================================

// prefsInterestsCommand creates the "prefs interests" subcommand.
func (c *CLI) prefsInterestsCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "interests",
		Short: "List profile interests, or pick them interactively with -i",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactive {
				store, err := c.openStore()
				if err != nil {
					return err
				}
				defer store.Close()
				p, err := prefs.GetOrDefault(cmd.Context(), store, c.profile)
				if err != nil {
					return err
				}
				for _, in := range p.Interests {
					fmt.Println(in)
				}
				return nil
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cat, err := c.loadCatalog(cfg)
			if err != nil {
				return err
			}
			var selected []string
			err = c.updateProfile(cmd.Context(), func(p *prefs.Preferences) error {
				selected, err = pickInterests(cmd.Context(), cat, p.Interests)
				if err != nil {
					return err
				}
				p.Interests = selected
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Saved %d interests", len(selected))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "choose interests in a terminal picker")
	return cmd
}

// pickInterests runs the picker. Quitting without confirming cancels the
// edit.
func pickInterests(ctx context.Context, cat *catalog.Catalog, current []string) ([]string, error) {
	model := NewInterestPickerModel(cat.Interests(), current, interestCounts(cat))
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, fmt.Errorf("interest picker: %w", err)
	}
	m := final.(InterestPickerModel)
	if !m.Done {
		return nil, context.Canceled
	}
	return m.Selected(), nil
}

// =============================================================================
// Display
// =============================================================================

func printProfile(id string, p *prefs.Preferences) {
	printKeyValue("Profile", id)
	printKeyValue("Interests", joinOrNone(p.Interests))

	members := make([]string, len(p.Memberships))
	for i, m := range p.Memberships {
		members[i] = m.InstitutionID + " (" + m.Tier + ")"
	}
	printKeyValue("Memberships", joinOrNone(members))

	visits := make([]string, len(p.Visits))
	for i, v := range p.Visits {
		visits[i] = fmt.Sprintf("%s %s ×%d", v.InstitutionID, v.LastVisit.Format("2006-01-02"), v.Count)
	}
	printKeyValue("Visits", joinOrNone(visits))
	printKeyValue("Saved", joinOrNone(p.Saved))

	if pt := p.Location.Point(); !pt.IsZero() {
		printKeyValue("Location", fmt.Sprintf("%.4f, %.4f", pt.Lat, pt.Lng))
	}
	if !p.UpdatedAt.IsZero() {
		printKeyValue("Updated", p.UpdatedAt.Local().Format("Jan 2, 2006 15:04"))
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return StyleDim.Render("none")
	}
	return strings.Join(items, ", ")
}

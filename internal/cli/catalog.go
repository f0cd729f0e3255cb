package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ryanphanna/Venture/pkg/catalog"
	"github.com/ryanphanna/Venture/pkg/prefs"
)

// catalogCommand creates the catalog inspection command.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the content catalog",
	}

	cmd.AddCommand(c.catalogListCommand())
	cmd.AddCommand(c.catalogInterestsCommand())

	return cmd
}

// catalogListCommand creates the "catalog list" subcommand.
func (c *CLI) catalogListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List institutions, nearest first when the profile has a location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cat, err := c.loadCatalog(cfg)
			if err != nil {
				return err
			}

			var from catalog.Point
			if store, err := c.openStore(); err == nil {
				if p, err := prefs.GetOrDefault(cmd.Context(), store, c.profile); err == nil {
					from = p.Location.Point()
				}
				store.Close()
			}

			fmt.Println(renderInstitutions(cat, from))
			return nil
		},
	}
}

// catalogInterestsCommand creates the "catalog interests" subcommand.
func (c *CLI) catalogInterestsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "interests",
		Short: "List the interests exhibits are tagged with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cat, err := c.loadCatalog(cfg)
			if err != nil {
				return err
			}
			counts := interestCounts(cat)
			for _, interest := range cat.Interests() {
				fmt.Printf("%s %s\n", StyleValue.Render(interest),
					StyleDim.Render(fmt.Sprintf("(%d)", counts[interest])))
			}
			return nil
		},
	}
}

// renderInstitutions draws the institutions as a table. With a non-zero from
// they are ordered by distance and a distance column is shown.
func renderInstitutions(cat *catalog.Catalog, from catalog.Point) string {
	withDistance := !from.IsZero()
	headers := []string{"ID", "Name", "Type", "Area", "Exhibits"}
	if withDistance {
		headers = append(headers, "Distance")
	}

	nearby := catalog.SortByDistance(cat.Institutions, from)
	rows := make([][]string, len(nearby))
	for i, n := range nearby {
		row := []string{
			n.ID,
			n.Name,
			n.Type,
			n.Location.Neighborhood,
			strconv.Itoa(len(cat.ExhibitsByInstitution(n.ID))),
		}
		if withDistance {
			row = append(row, catalog.FormatDistance(n.DistanceKm))
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return StyleHighlight
			case col >= 2:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// interestCounts returns how many exhibits carry each interest.
func interestCounts(cat *catalog.Catalog) map[string]int {
	counts := make(map[string]int)
	for _, ex := range cat.Exhibits {
		for _, interest := range ex.Interests {
			counts[interest]++
		}
	}
	return counts
}

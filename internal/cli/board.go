package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ryanphanna/Venture/pkg/board"
	"github.com/ryanphanna/Venture/pkg/pipeline"
	"github.com/ryanphanna/Venture/pkg/prefs"
)

// boardFlags holds flags for the board command.
type boardFlags struct {
	now     string
	cols    int
	format  string
	output  string
	noCache bool
	refresh bool
}

// boardCommand creates the board command: curate, size and pack a board for
// the current profile.
func (c *CLI) boardCommand() *cobra.Command {
	flags := boardFlags{format: pipeline.FormatPreview}

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Build the curated board for a profile",
		Long: `Build the curated board for a profile.

Content is chosen from the catalog in priority order (ending soon, free,
member benefits, timing tips, interests, revisits), sized by position and
packed into a grid. Boards are cached per profile, catalog and day.`,
		Example: `  venture board
  venture board --now 2024-12-20 --cols 6
  venture board --format json -o board.json
  venture board --catalog museums.yaml --profile family`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoard(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.now, "now", "", "curate as of this time (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().IntVar(&flags.cols, "cols", 0, fmt.Sprintf("grid columns (default %d)", pipeline.DefaultGridCols))
	cmd.Flags().StringVarP(&flags.format, "format", "f", flags.format, "output format: json or preview")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the board to a file (json only)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the board cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "rebuild even when a cached board exists")

	return cmd
}

func (c *CLI) runBoard(cmd *cobra.Command, flags boardFlags) error {
	if err := pipeline.ValidateFormat(flags.format); err != nil {
		return err
	}
	now, err := parseNow(flags.now)
	if err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	cat, err := c.loadCatalog(cfg)
	if err != nil {
		return err
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	p, err := prefs.GetOrDefault(ctx, store, c.profile)
	if err != nil {
		return err
	}

	opts := baseOptions(cfg, now)
	if cmd.Flags().Changed("cols") {
		opts.Columns = flags.cols
	}
	opts.Refresh = flags.refresh

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Building board...")
	spinner.Start()
	res, err := runner.Execute(ctx, cat, p, opts)
	if err != nil {
		spinner.StopWithError("Board failed")
		return err
	}
	spinner.Stop()
	c.Logger.Debug("board stats",
		"truncated", res.Stats.Truncated,
		"duplicates", res.Stats.Duplicates,
		"inserted", res.Stats.Inserted)

	if res.Board.Empty() {
		printWarning("Nothing to curate for %s; try adding interests with \"venture prefs interests -i\"", c.profile)
	}

	switch {
	case flags.output != "":
		if err := board.WriteFile(res.Board, flags.output); err != nil {
			return err
		}
		printSuccess("Board for %s", c.profile)
		printStats(res.Stats.Items, res.Stats.Rows, res.CacheHit)
		printFile(flags.output)
	case flags.format == pipeline.FormatJSON:
		return board.Write(res.Board, os.Stdout)
	default:
		fmt.Print(renderBoard(res.Board, cat))
		printStats(res.Stats.Items, res.Stats.Rows, res.CacheHit)
		prog.done("Built board")
	}
	return nil
}

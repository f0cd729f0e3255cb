package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ryanphanna/Venture/pkg/buildinfo"
	"github.com/ryanphanna/Venture/pkg/cache"
	"github.com/ryanphanna/Venture/pkg/observability"
	"github.com/ryanphanna/Venture/pkg/pipeline"
)

// appName names the XDG directories.
const appName = "venture"

// CLI holds what every command shares: the logger and the persistent root
// flags.
type CLI struct {
	Logger *log.Logger

	configPath  string
	catalogPath string
	profile     string
	verbose     bool
}

// New returns a CLI logging to w at info level. --verbose lowers the level
// to debug before any command runs.
func New(w io.Writer) *CLI {
	return &CLI{Logger: newLogger(w, log.InfoLevel)}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "venture",
		Short: "Venture curates museum and gallery content into a board",
		Long: `Venture picks exhibits, member benefits and tips for you from a catalog
of institutions, ranks them by what matters today, and packs them into a
grid board you can preview in the terminal or serve over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.Logger.SetLevel(log.DebugLevel)
			}
			if c.Logger.GetLevel() <= log.DebugLevel {
				hooks := newLogHooks(c.Logger)
				observability.Install(observability.Hooks{Pipeline: hooks, Cache: hooks})
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	c.registerRootFlags(root)

	root.AddCommand(c.boardCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.prefsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Board Cache
// =============================================================================

// newRunner returns a pipeline runner backed by the local file cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	bc, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(bc, nil, c.Logger), nil
}

// newCache opens the file cache. Without a home directory boards are simply
// not cached.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("board cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir is $XDG_CACHE_HOME/venture, or ~/.cache/venture.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

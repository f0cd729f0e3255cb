package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ryanphanna/Venture/pkg/catalog"
	verrors "github.com/ryanphanna/Venture/pkg/errors"
	"github.com/ryanphanna/Venture/pkg/pipeline"
	"github.com/ryanphanna/Venture/pkg/prefs"
)

// registerRootFlags adds the flags every subcommand shares.
func (c *CLI) registerRootFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/venture/config.toml)")
	pf.StringVar(&c.catalogPath, "catalog", "", "catalog file (.json, .yaml or .toml; default: built-in sample)")
	pf.StringVarP(&c.profile, "profile", "p", prefs.DefaultProfile, "profile id")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "log pipeline and cache events")
	_ = root.RegisterFlagCompletionFunc("profile", c.completeProfiles)
}

// =============================================================================
// Config & Inputs
// =============================================================================

// loadConfig reads the config file named by --config, or the default one
// when present. An explicit path that does not exist is an error; a missing
// default file is not. Environment overrides apply either way.
func (c *CLI) loadConfig() (pipeline.Config, error) {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		p, err := pipeline.DefaultConfigPath()
		if err != nil {
			cfg := pipeline.Config{}
			cfg.ApplyEnv()
			return cfg, nil
		}
		path = p
	}

	cfg, err := pipeline.LoadConfig(path)
	if err != nil {
		if explicit || !verrors.Is(err, verrors.ErrCodeFileNotFound) {
			return pipeline.Config{}, err
		}
		cfg = pipeline.Config{}
	} else {
		c.Logger.Debug("loaded config", "path", path)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// baseOptions returns pipeline options with config file values applied.
// Command flags are layered on top by the caller.
func baseOptions(cfg pipeline.Config, now time.Time) pipeline.Options {
	opts := pipeline.Options{Now: now}
	cfg.Apply(&opts)
	return opts
}

// loadCatalog reads the catalog named by --catalog, then the config file,
// falling back to the built-in sample.
func (c *CLI) loadCatalog(cfg pipeline.Config) (*catalog.Catalog, error) {
	path := c.catalogPath
	if path == "" {
		path = cfg.Catalog
	}
	if path == "" {
		c.Logger.Debug("using sample catalog")
		return catalog.Sample(), nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded catalog", "path", path,
		"institutions", len(cat.Institutions), "exhibits", len(cat.Exhibits))
	return cat, nil
}

// openStore opens the local profile store.
func (c *CLI) openStore() (*prefs.FileStore, error) {
	if err := verrors.ValidateProfileID(c.profile); err != nil {
		return nil, err
	}
	return prefs.NewFileStore("")
}

// parseNow accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date. An empty
// string means the current time.
func parseNow(v string) (time.Time, error) {
	if v == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	d, err := catalog.ParseDate(v)
	if err != nil || d.IsZero() {
		return time.Time{}, verrors.New(verrors.ErrCodeInvalidInput,
			"--now must be RFC 3339 or YYYY-MM-DD, got %q", v)
	}
	return d.Time(), nil
}

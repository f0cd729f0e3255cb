package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	verrors "github.com/ryanphanna/Venture/pkg/errors"
)

// =============================================================================
// Config File
// =============================================================================

// Config mirrors the optional TOML config file. Zero values mean "not set"
// and leave the corresponding option at its default.
type Config struct {
	GridCols         int             `toml:"grid_cols"`
	EndingSoonDays   int             `toml:"ending_soon_days"`
	RevisitAfterDays int             `toml:"revisit_after_days"`
	Catalog          string          `toml:"catalog"`
	Caps             map[string]int  `toml:"caps"`
	Insertions       []InsertionSpec `toml:"insertions"`
	Server           ServerConfig    `toml:"server"`
}

// ServerConfig holds the [server] table.
type ServerConfig struct {
	Addr        string `toml:"addr"`
	RedisAddr   string `toml:"redis_addr"`
	MongoURI    string `toml:"mongo_uri"`
	CachePrefix string `toml:"cache_prefix"`
}

// Environment variables that override the [server] table.
const (
	EnvRedisAddr = "VENTURE_REDIS_ADDR"
	EnvMongoURI  = "VENTURE_MONGO_URI"
)

// DefaultConfigPath returns $XDG_CONFIG_HOME/venture/config.toml, falling
// back to ~/.config/venture/config.toml.
func DefaultConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "venture", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "venture", "config.toml"), nil
}

// LoadConfig reads a TOML config file. Keys the file sets that Config does
// not know are rejected so typos do not pass silently.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, verrors.Wrap(verrors.ErrCodeFileNotFound, err, "config %s not found", path)
		}
		return cfg, verrors.Wrap(verrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, verrors.New(verrors.ErrCodeInvalidConfig,
			"config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Apply copies every value the file sets into opts. Caps merge over the
// defaults, so a file may override a single category.
func (c Config) Apply(opts *Options) {
	if c.GridCols != 0 {
		opts.Columns = c.GridCols
	}
	if c.EndingSoonDays != 0 {
		opts.EndingSoonDays = c.EndingSoonDays
	}
	if c.RevisitAfterDays != 0 {
		opts.RevisitAfter = time.Duration(c.RevisitAfterDays) * 24 * time.Hour
	}
	if len(c.Caps) > 0 {
		if opts.Caps == nil {
			opts.Caps = DefaultCaps()
		}
		for k, v := range c.Caps {
			opts.Caps[k] = v
		}
	}
	if c.Insertions != nil {
		opts.Insertions = append([]InsertionSpec(nil), c.Insertions...)
	}
}

// ApplyEnv overrides the [server] table from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Server.RedisAddr = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.Server.MongoURI = v
	}
}

package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ryanphanna/Venture/internal/server"
	"github.com/ryanphanna/Venture/pkg/cache"
	"github.com/ryanphanna/Venture/pkg/pipeline"
	"github.com/ryanphanna/Venture/pkg/prefs"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve boards and profiles over HTTP",
		Long: `Serve boards and profiles over HTTP.

Boards are cached in Redis when VENTURE_REDIS_ADDR (or [server] redis_addr)
is set, otherwise on disk. Profiles are kept in MongoDB when
VENTURE_MONGO_URI (or [server] mongo_uri) is set, otherwise as local files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the board cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg pipeline.Config, noCache bool) error {
	cat, err := c.loadCatalog(cfg)
	if err != nil {
		return err
	}

	runner, err := c.newServerRunner(ctx, cfg.Server, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	store, err := c.newServerStore(ctx, cfg.Server)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.New(server.Config{
		Addr:    cfg.Server.Addr,
		Catalog: cat,
		Store:   store,
		Runner:  runner,
		Options: baseOptions(cfg, time.Time{}),
		Logger:  c.Logger,
	})
	printInfo("Serving on %s", StyleHighlight.Render(addrOrDefault(cfg.Server.Addr)))
	return srv.ListenAndServe(ctx)
}

// newServerRunner picks the board cache: Redis when configured, the local
// file cache otherwise.
func (c *CLI) newServerRunner(ctx context.Context, sc pipeline.ServerConfig, noCache bool) (*pipeline.Runner, error) {
	var keyer cache.Keyer
	if sc.CachePrefix != "" {
		keyer = cache.Prefixed(nil, sc.CachePrefix)
	}
	if noCache || sc.RedisAddr == "" {
		bc, err := c.newCache(noCache)
		if err != nil {
			return nil, err
		}
		return pipeline.NewRunner(bc, keyer, c.Logger), nil
	}

	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: sc.RedisAddr})
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using redis board cache", "addr", sc.RedisAddr)
	return pipeline.NewRunner(rc, keyer, c.Logger), nil
}

// newServerStore picks the profile store: MongoDB when configured, local
// files otherwise.
func (c *CLI) newServerStore(ctx context.Context, sc pipeline.ServerConfig) (prefs.Store, error) {
	if sc.MongoURI == "" {
		return prefs.NewFileStore("")
	}
	store, err := prefs.NewMongoStore(ctx, prefs.MongoConfig{URI: sc.MongoURI})
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using mongodb profile store")
	return store, nil
}

func addrOrDefault(addr string) string {
	if addr == "" {
		return server.DefaultAddr
	}
	return addr
}

package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ryanphanna/Venture/pkg/board"
	"github.com/ryanphanna/Venture/pkg/catalog"
	verrors "github.com/ryanphanna/Venture/pkg/errors"
	"github.com/ryanphanna/Venture/pkg/pipeline"
	"github.com/ryanphanna/Venture/pkg/prefs"
)

// testCLI isolates config, profile and cache directories under t.TempDir.
func testCLI(t *testing.T) (*CLI, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv(pipeline.EnvRedisAddr, "")
	t.Setenv(pipeline.EnvMongoURI, "")
	c := New(io.Discard)
	c.profile = prefs.DefaultProfile
	return c, dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigMissingDefault(t *testing.T) {
	c, _ := testCLI(t)
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.GridCols != 0 || cfg.Catalog != "" {
		t.Errorf("loadConfig() = %+v, want zero config", cfg)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	c, dir := testCLI(t)
	c.configPath = filepath.Join(dir, "nope.toml")
	if _, err := c.loadConfig(); !verrors.Is(err, verrors.ErrCodeFileNotFound) {
		t.Errorf("loadConfig() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadConfigDefaultFile(t *testing.T) {
	c, dir := testCLI(t)
	writeFile(t, filepath.Join(dir, "config", "venture", "config.toml"), "grid_cols = 6\n\n[server]\nredis_addr = \"file:6379\"\n")
	t.Setenv(pipeline.EnvRedisAddr, "env:6379")

	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.GridCols != 6 {
		t.Errorf("GridCols = %d, want 6", cfg.GridCols)
	}
	if cfg.Server.RedisAddr != "env:6379" {
		t.Errorf("RedisAddr = %q, want env override", cfg.Server.RedisAddr)
	}

	opts := baseOptions(cfg, time.Time{})
	if opts.Columns != 6 {
		t.Errorf("baseOptions().Columns = %d, want 6", opts.Columns)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	c, dir := testCLI(t)
	c.configPath = filepath.Join(dir, "bad.toml")
	writeFile(t, c.configPath, "grid_colums = 6\n")
	if _, err := c.loadConfig(); !verrors.Is(err, verrors.ErrCodeInvalidConfig) {
		t.Errorf("loadConfig() error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	c, dir := testCLI(t)

	cat, err := c.loadCatalog(pipeline.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.Institutions) != len(catalog.Sample().Institutions) {
		t.Errorf("default catalog has %d institutions, want the sample", len(cat.Institutions))
	}

	data, err := catalog.Encode(catalog.Sample(), catalog.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "catalog.json")
	writeFile(t, path, string(data))

	// The flag wins over the config file.
	c.catalogPath = path
	if _, err := c.loadCatalog(pipeline.Config{Catalog: filepath.Join(dir, "missing.json")}); err != nil {
		t.Errorf("loadCatalog() with --catalog error: %v", err)
	}

	c.catalogPath = ""
	_, err = c.loadCatalog(pipeline.Config{Catalog: filepath.Join(dir, "missing.json")})
	if !verrors.Is(err, verrors.ErrCodeFileNotFound) {
		t.Errorf("loadCatalog() missing file error = %v", err)
	}
}

func TestParseNow(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-12-20", want: time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)},
		{in: "2024-12-20T15:30:00Z", want: time.Date(2024, 12, 20, 15, 30, 0, 0, time.UTC)},
		{in: "tomorrow", wantErr: true},
		{in: "2024-13-01", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseNow(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseNow(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("parseNow(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if got, err := parseNow(""); err != nil || got.IsZero() {
		t.Errorf("parseNow(\"\") = %v, %v; want current time", got, err)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard).RootCommand()
	for _, name := range []string{"board", "catalog", "prefs", "serve", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "catalog", "profile"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestBoardCommandWritesFile(t *testing.T) {
	c, dir := testCLI(t)
	out := filepath.Join(dir, "board.json")

	root := c.RootCommand()
	root.SetArgs([]string{"board", "--now", "2024-12-20", "--no-cache", "-o", out})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("board: %v", err)
	}

	b, err := board.ReadFile(out)
	if err != nil {
		t.Fatalf("read board: %v", err)
	}
	if b.Columns != pipeline.DefaultGridCols || len(b.Items) != 14 {
		t.Errorf("board: %d columns, %d items", b.Columns, len(b.Items))
	}
}

func TestBoardCommandRejectsBadFlags(t *testing.T) {
	tests := []struct {
		args []string
		code verrors.Code
	}{
		{[]string{"board", "--format", "svg"}, verrors.ErrCodeInvalidFormat},
		{[]string{"board", "--now", "soon"}, verrors.ErrCodeInvalidInput},
		{[]string{"board", "--cols", "1", "--no-cache"}, verrors.ErrCodeInvalidConfig},
		{[]string{"board", "--profile", "../etc", "--no-cache"}, verrors.ErrCodeInvalidProfile},
	}
	for _, tt := range tests {
		t.Run(tt.args[1], func(t *testing.T) {
			c, _ := testCLI(t)
			root := c.RootCommand()
			root.SetArgs(tt.args)
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)
			err := root.ExecuteContext(context.Background())
			if !verrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

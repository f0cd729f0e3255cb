package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

// cacheContract exercises behaviour every Cache must share.
func cacheContract(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := "contract:" + Hash([]byte(t.Name()))

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte(`{"columns":4}`), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != `{"columns":4}` {
		t.Fatalf("Get = %q, hit %v, err %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get after Delete hit")
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	cacheContract(t, c)
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "short", []byte("a"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "forever", []byte("b"), 0); err != nil {
		t.Fatal(err)
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("short")); !os.IsNotExist(err) {
		t.Error("expired entry file not removed")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl expired")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestFileCachePruneAndStats(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for key, ttl := range map[string]time.Duration{"old": time.Minute, "new": time.Hour, "pinned": 0} {
		if err := c.Set(ctx, key, []byte(key), ttl); err != nil {
			t.Fatal(err)
		}
	}
	junk := filepath.Join(c.Dir(), "ab", "junk.json")
	if err := os.MkdirAll(filepath.Dir(junk), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(junk, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	now = now.Add(10 * time.Minute)

	st, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if st.Entries != 4 || st.Expired != 2 || st.Bytes == 0 {
		t.Errorf("Stats = %+v, want 4 entries with 2 expired", st)
	}

	n, err := c.Prune()
	if err != nil {
		t.Fatalf("Prune error: %v", err)
	}
	if n != 2 {
		t.Errorf("Prune removed %d, want 2", n)
	}
	for _, key := range []string{"new", "pinned"} {
		if _, hit, _ := c.Get(ctx, key); !hit {
			t.Errorf("Prune removed live entry %q", key)
		}
	}
}

func TestFileCacheMissingDir(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(c.Dir()); err != nil {
		t.Fatal(err)
	}
	if n, err := c.Clear(); n != 0 || err != nil {
		t.Errorf("Clear on missing dir = %d, %v", n, err)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("VENTURE_REDIS_ADDR")
	if addr == "" {
		t.Skip("VENTURE_REDIS_ADDR not set")
	}
	c, err := NewRedisCache(context.Background(), RedisConfig{Addr: addr})
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	defer c.Close()
	cacheContract(t, c)
}

func TestNewRedisCacheUnavailable(t *testing.T) {
	old := connectBackoff
	connectBackoff = Backoff{Attempts: 2, Delay: time.Millisecond}
	defer func() { connectBackoff = old }()

	// Port 1 on localhost refuses connections.
	_, err := NewRedisCache(context.Background(), RedisConfig{Addr: "127.0.0.1:1"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("NewRedisCache error = %v, want ErrUnavailable", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}

	type v struct {
		A int
		B map[string]int
	}
	j1, err := HashJSON(v{A: 1, B: map[string]int{"x": 1, "y": 2}})
	if err != nil {
		t.Fatal(err)
	}
	j2, _ := HashJSON(v{A: 1, B: map[string]int{"y": 2, "x": 1}})
	if j1 != j2 {
		t.Error("HashJSON should not depend on map insertion order")
	}
	if _, err := HashJSON(func() {}); err == nil {
		t.Error("HashJSON(func) should fail")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := BoardKeyOpts{Columns: 4, Day: "2025-01-01", EndingSoonDays: 30}
	k1 := k.BoardKey("cat", "prefs", base)
	if !strings.HasPrefix(k1, "board:") || len(k1) != len("board:")+64 {
		t.Errorf("BoardKey format unexpected: %s", k1)
	}
	if k1 != k.BoardKey("cat", "prefs", base) {
		t.Error("BoardKey should be deterministic")
	}

	changed := []struct {
		name string
		key  string
	}{
		{"catalog", k.BoardKey("cat2", "prefs", base)},
		{"prefs", k.BoardKey("cat", "prefs2", base)},
		{"columns", k.BoardKey("cat", "prefs", BoardKeyOpts{Columns: 6, Day: base.Day, EndingSoonDays: 30})},
		{"day", k.BoardKey("cat", "prefs", BoardKeyOpts{Columns: 4, Day: "2025-01-02", EndingSoonDays: 30})},
	}
	for _, c := range changed {
		if c.key == k1 {
			t.Errorf("changing %s did not change the key", c.name)
		}
	}
}

func TestPrefixedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := Prefixed(inner, "venture:test:")

	opts := BoardKeyOpts{Columns: 4}
	got := scoped.BoardKey("c", "p", opts)
	if got != "venture:test:"+inner.BoardKey("c", "p", opts) {
		t.Errorf("Prefixed BoardKey unexpected: %s", got)
	}

	// Should use DefaultKeyer when inner is nil
	if key := Prefixed(nil, "x:").BoardKey("c", "p", opts); !strings.HasPrefix(key, "x:board:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestTransient(t *testing.T) {
	if Transient(nil) != nil {
		t.Error("Transient(nil) should stay nil")
	}
	err := Transient(ErrUnavailable)
	if !IsTransient(err) || !errors.Is(err, ErrUnavailable) {
		t.Errorf("Transient(ErrUnavailable) = %v, want transient wrapping ErrUnavailable", err)
	}
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("message = %q, want %q", err.Error(), ErrUnavailable.Error())
	}
	if IsTransient(ErrUnavailable) {
		t.Error("plain errors are not transient")
	}
}

func TestBackoffDo(t *testing.T) {
	permanent := errors.New("bad password")
	b := Backoff{Attempts: 3, Delay: time.Millisecond}

	tests := []struct {
		name      string
		failures  int   // transient failures before success
		err       error // returned on every call when set
		wantCalls int
		wantErr   error
	}{
		{name: "first try", wantCalls: 1},
		{name: "recovers", failures: 2, wantCalls: 3},
		{name: "exhausted", failures: 5, wantCalls: 3, wantErr: ErrUnavailable},
		{name: "permanent", err: permanent, wantCalls: 1, wantErr: permanent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Do(context.Background(), func() error {
				calls++
				if tt.err != nil {
					return tt.err
				}
				if calls <= tt.failures {
					return Transient(ErrUnavailable)
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if IsTransient(err) {
				t.Errorf("err %v should not carry the transient mark", err)
			}
		})
	}
}

func TestBackoffZeroAttempts(t *testing.T) {
	calls := 0
	_ = Backoff{}.Do(context.Background(), func() error { calls++; return Transient(ErrUnavailable) })
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Backoff{Attempts: 3, Delay: time.Hour}.Do(ctx, func() error {
		return Transient(ErrUnavailable)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

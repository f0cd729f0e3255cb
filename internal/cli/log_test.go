package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	tests := []struct {
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{log.InfoLevel, func(l *log.Logger) { l.Info("built") }, true},
		{log.InfoLevel, func(l *log.Logger) { l.Debug("built") }, false},
		{log.DebugLevel, func(l *log.Logger) { l.Debug("built") }, true},
		{log.WarnLevel, func(l *log.Logger) { l.Info("built") }, false},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		tt.emit(newLogger(&buf, tt.level))
		if got := strings.Contains(buf.String(), "built"); got != tt.want {
			t.Errorf("level %v: logged = %v, want %v (%q)", tt.level, got, tt.want, buf.String())
		}
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.start = prog.start.Add(-1500 * time.Millisecond)
	prog.done("Built board")

	out := buf.String()
	if !strings.Contains(out, "Built board (1.5") {
		t.Errorf("progress output %q should carry the elapsed time", out)
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := newLogHooks(newLogger(&buf, log.DebugLevel))
	ctx := context.Background()

	hooks.OnCurateStart(ctx, 7)
	hooks.OnCurateComplete(ctx, 12, time.Millisecond, nil)
	hooks.OnPackStart(ctx, 12, 4)
	hooks.OnPackComplete(ctx, 5, time.Millisecond, errors.New("no fit"))
	hooks.OnCacheHit(ctx, "board")
	hooks.OnCacheSet(ctx, "board", 2048)

	out := buf.String()
	for _, want := range []string{
		"hooks", "curate start", "tiers=7", "items=12", "columns=4",
		"pack done", "rows=5", "no fit", "cache hit", "type=board", "bytes=2048",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	hooks := newLogHooks(newLogger(&buf, log.InfoLevel))
	hooks.OnCacheMiss(context.Background(), "board")

	if buf.Len() != 0 {
		t.Errorf("hooks logged at info level: %q", buf.String())
	}
}

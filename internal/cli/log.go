// Package cli implements the venture command line.
//
// Commands:
//   - board: curate, size and pack a board; print a preview or JSON
//   - catalog: list institutions and interests
//   - prefs: show and edit the local profile
//   - serve: run the HTTP API
//   - cache: inspect and clean the local board cache
//
// Diagnostics go to stderr through charmbracelet/log. With --verbose the
// pipeline and cache hooks log every stage at debug level.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ryanphanna/Venture/pkg/observability"
)

// newLogger returns a logger on w with centisecond timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a command took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Built board (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Logging Hooks
// =============================================================================

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("hooks")}
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
)

func (h *logHooks) OnCurateStart(_ context.Context, tiers int) {
	h.logger.Debug("curate start", "tiers", tiers)
}

func (h *logHooks) OnCurateComplete(_ context.Context, items int, d time.Duration, err error) {
	h.logger.Debug("curate done", "items", items, "duration", d, "err", err)
}

func (h *logHooks) OnPackStart(_ context.Context, items, columns int) {
	h.logger.Debug("pack start", "items", items, "columns", columns)
}

func (h *logHooks) OnPackComplete(_ context.Context, rows int, d time.Duration, err error) {
	h.logger.Debug("pack done", "rows", rows, "duration", d, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

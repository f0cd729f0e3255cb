// Package observability lets callers watch board builds, cache traffic and
// HTTP requests without the core packages depending on a metrics or logging
// backend.
//
// Libraries emit events through the accessors:
//
//	observability.Pipeline().OnCurateStart(ctx, len(plan.Tiers))
//
// Binaries install implementations once at startup, usually through
// [Install]. Unset hooks are no-ops.
//
//	observability.Install(observability.Hooks{Pipeline: h, Cache: h})
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the board pipeline.
type PipelineHooks interface {
	// Curation events (aggregation and footprint assignment)
	OnCurateStart(ctx context.Context, tiers int)
	OnCurateComplete(ctx context.Context, items int, duration time.Duration, err error)

	// Packing events
	OnPackStart(ctx context.Context, items, columns int)
	OnPackComplete(ctx context.Context, rows int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request. route is the matched pattern,
	// not the raw path, so profile ids do not explode cardinality.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)

	// OnError records a handler error.
	OnError(ctx context.Context, method, route string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnCurateStart(context.Context, int)                          {}
func (NoopPipelineHooks) OnCurateComplete(context.Context, int, time.Duration, error) {}
func (NoopPipelineHooks) OnPackStart(context.Context, int, int)                       {}
func (NoopPipelineHooks) OnPackComplete(context.Context, int, time.Duration, error)   {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Registry
// =============================================================================

// Hooks is one set of installed hooks. Nil fields keep what is installed.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

func noopHooks() *Hooks {
	return &Hooks{Pipeline: NoopPipelineHooks{}, Cache: NoopCacheHooks{}, HTTP: NoopHTTPHooks{}}
}

// current is read on every event, so readers load it without locking.
// installMu serializes writers doing copy-on-write.
var (
	current   atomic.Pointer[Hooks]
	installMu sync.Mutex
)

func init() { current.Store(noopHooks()) }

// Install replaces the hooks named in h and leaves the rest in place.
func Install(h Hooks) {
	installMu.Lock()
	defer installMu.Unlock()

	next := *current.Load()
	if h.Pipeline != nil {
		next.Pipeline = h.Pipeline
	}
	if h.Cache != nil {
		next.Cache = h.Cache
	}
	if h.HTTP != nil {
		next.HTTP = h.HTTP
	}
	current.Store(&next)
}

// SetPipelineHooks installs pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) { Install(Hooks{Pipeline: h}) }

// SetCacheHooks installs cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) { Install(Hooks{Cache: h}) }

// SetHTTPHooks installs HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) { Install(Hooks{HTTP: h}) }

func Pipeline() PipelineHooks { return current.Load().Pipeline }
func Cache() CacheHooks       { return current.Load().Cache }
func HTTP() HTTPHooks         { return current.Load().HTTP }

// Reset puts the no-op hooks back. Tests that install hooks defer it.
func Reset() {
	installMu.Lock()
	defer installMu.Unlock()
	current.Store(noopHooks())
}

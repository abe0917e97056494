// Package observability lets applications instrument the timing pipeline
// without coupling the library packages to any metrics or tracing backend.
//
// An application registers hook implementations once at startup; library
// code emits events through the package-level accessors. Until something
// registers, every accessor returns a no-op implementation, so emitting is
// always safe and costs one interface call.
//
//	func main() {
//	    observability.SetPipelineHooks(&promHooks{})
//	    observability.SetCacheHooks(&promHooks{})
//	    // ... run application
//	}
//
// Emitting from library code:
//
//	observability.Pipeline().OnLoadStart(ctx, source)
//	// ... load level ...
//	observability.Pipeline().OnLoadComplete(ctx, source, bytes, duration, err)
//
// Because registration flows from main inward, the hook interfaces live
// here and nothing in pkg/ imports a backend SDK.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Hook Interfaces
// =============================================================================

// PipelineHooks receives one event pair per pipeline stage.
// Parse and compute carry no error parameter: the lenient reader and the
// timing engine cannot fail, only loading can.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, bytes int, duration time.Duration, err error)

	// Parse events
	OnParseStart(ctx context.Context, source string)
	OnParseComplete(ctx context.Context, source string, tileCount, eventCount int, duration time.Duration)

	// Compute events
	OnComputeStart(ctx context.Context, source string, tileCount int)
	OnComputeComplete(ctx context.Context, source string, duration time.Duration, cached bool)
}

// CacheHooks receives cache traffic events. The keyType distinguishes the
// two cached artifacts: "fetch" for downloaded level text and "timings"
// for computed results.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events for level downloads. OnError fires for
// transport failures; HTTP error statuses arrive through OnResponse.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks ignores all pipeline events. Embed it to implement
// only the events a backend cares about.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                              {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnParseStart(context.Context, string)                             {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, int, int, time.Duration) {}
func (NoopPipelineHooks) OnComputeStart(context.Context, string, int)                      {}
func (NoopPipelineHooks) OnComputeComplete(context.Context, string, time.Duration, bool)   {}

// NoopCacheHooks ignores all cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores all HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Registry
// =============================================================================

// registry holds the process-wide hooks behind a single lock. Accessors
// run on every pipeline stage, so reads take the shared side.
var registry = struct {
	sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
	http:     NoopHTTPHooks{},
}

// SetPipelineHooks registers h for pipeline events. A nil h is ignored, so
// callers can pass an optional hook through without a check.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.pipeline = h
	registry.Unlock()
}

// SetCacheHooks registers h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.cache = h
	registry.Unlock()
}

// SetHTTPHooks registers h for HTTP events. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.http = h
	registry.Unlock()
}

// Pipeline returns the registered pipeline hooks, never nil.
func Pipeline() PipelineHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.pipeline
}

// Cache returns the registered cache hooks, never nil.
func Cache() CacheHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.cache
}

// HTTP returns the registered HTTP hooks, never nil.
func HTTP() HTTPHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.http
}

// Reset restores the no-op defaults. Tests use it to unregister themselves.
func Reset() {
	registry.Lock()
	registry.pipeline = NoopPipelineHooks{}
	registry.cache = NoopCacheHooks{}
	registry.http = NoopHTTPHooks{}
	registry.Unlock()
}

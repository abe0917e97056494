package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/adofai-tools/tilebeat/pkg/cache"
	"github.com/adofai-tools/tilebeat/pkg/level"
	"github.com/adofai-tools/tilebeat/pkg/observability"
	"github.com/adofai-tools/tilebeat/pkg/timing"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → parse → compute pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}
	source := opts.SourceName()
	hooks := observability.Pipeline()

	// Stage 1: Load
	hooks.OnLoadStart(ctx, source)
	loadStart := time.Now()
	text, fetchHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		hooks.OnLoadComplete(ctx, source, 0, time.Since(loadStart), err)
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.CacheInfo.FetchHit = fetchHit
	result.ContentHash = cache.Hash([]byte(text))
	hooks.OnLoadComplete(ctx, source, len(text), result.Stats.LoadTime, nil)

	r.Logger.Debug("loaded level",
		"source", source,
		"bytes", len(text),
		"duration", result.Stats.LoadTime)

	// Stage 2: Parse
	hooks.OnParseStart(ctx, source)
	parseStart := time.Now()
	lv := level.Parse(text)
	result.Level = lv
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.TileCount = len(lv.Angles)
	result.Stats.EventCount = len(lv.Events)
	hooks.OnParseComplete(ctx, source, result.Stats.TileCount, result.Stats.EventCount, result.Stats.ParseTime)

	r.Logger.Info("parsed level",
		"tiles", result.Stats.TileCount,
		"events", result.Stats.EventCount,
		"duration", result.Stats.ParseTime)

	// Stage 3: Compute
	hooks.OnComputeStart(ctx, source, result.Stats.TileCount)
	computeStart := time.Now()
	tm, timingsHit := r.ComputeWithCacheInfo(ctx, lv, result.ContentHash, opts)
	result.Times = tm.Times
	result.Info = tm.Info
	result.AutoOffset = tm.AutoOffset
	result.Stats.ComputeTime = time.Since(computeStart)
	result.CacheInfo.TimingsHit = timingsHit
	hooks.OnComputeComplete(ctx, source, result.Stats.ComputeTime, timingsHit)

	r.Logger.Info("computed timings",
		"tiles", len(tm.Times),
		"total_ms", tm.Info.TotalDuration,
		"duration", result.Stats.ComputeTime)

	return result, nil
}

// ComputeWithCacheInfo runs the timing engine with caching and returns cache hit info.
// The contentHash keys the cache entry; pass an empty hash to skip caching.
func (r *Runner) ComputeWithCacheInfo(ctx context.Context, lv *level.Level, contentHash string, opts Options) (Timings, bool) {
	cacheKey := r.Keyer.TimingsKey(contentHash)

	// Try cache first (unless refresh requested)
	if !opts.Refresh && contentHash != "" {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Timings
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "timings")
				return cached, true // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "timings")
	}

	tm := ComputeTimings(lv)

	// Cache the result
	if contentHash != "" {
		if data, err := json.Marshal(tm); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLTimings)
			observability.Cache().OnCacheSet(ctx, "timings", len(data))
		}
	}

	return tm, false // Cache miss
}

// ComputeTimings runs the timing engine over a parsed level without caching.
func ComputeTimings(lv *level.Level) Timings {
	return Timings{
		Times:      timing.Compute(lv),
		Info:       timing.Summarize(lv),
		AutoOffset: timing.AutoOffset(lv.Settings),
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

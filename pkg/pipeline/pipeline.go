// Package pipeline provides the core timing pipeline for Tilebeat.
//
// This package implements the complete load → parse → compute pipeline that
// can be used by CLI, API, and batch components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read level text from a local file, an HTTP(S) URL, or inline content
//  2. Parse: Build the level model (settings, angles, events) from the text
//  3. Compute: Run the timing engine and produce per-tile hit timestamps
//
// Loaded URL content and computed timings are cached independently; parsing
// is cheap enough to run every time.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path:   "level.adofai",
//	    Format: "json",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	times := result.Times
//
// Run individual stages:
//
//	// Load only
//	text, err := runner.Load(ctx, loadOpts)
//
//	// Compute with an already parsed level
//	tm := pipeline.ComputeTimings(lv)
package pipeline

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/adofai-tools/tilebeat/pkg/errors"
	"github.com/adofai-tools/tilebeat/pkg/level"
	"github.com/adofai-tools/tilebeat/pkg/timing"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Batch
// =============================================================================

const (
	// DefaultLimit is the number of tile rows printed in text output.
	// Matches the preview length players expect from the in-game editor log.
	// Use a negative limit to print every tile.
	DefaultLimit = 20

	// DefaultFormat is the default output format.
	DefaultFormat = FormatText
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatCSV:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the timing pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Source options (exactly one must be set)
	Path    string `json:"path,omitempty"`    // Local level file
	URL     string `json:"url,omitempty"`     // Remote level over HTTP(S)
	Content string `json:"content,omitempty"` // Inline level text

	// Refresh bypasses caches: URLs are re-fetched and timings recomputed.
	Refresh bool `json:"refresh,omitempty"`

	// Output options
	Format string `json:"format,omitempty"` // text, json, or csv
	Limit  int    `json:"limit,omitempty"`  // Tile rows in text output, negative for all

	// Runtime options (not serialized)
	Logger     *log.Logger  `json:"-"`
	HTTPClient *http.Client `json:"-"` // Client for URL sources; nil uses a default

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Level is the parsed level model.
	Level *level.Level

	// Times holds one hit timestamp in milliseconds per logical tile.
	Times []float64

	// Info summarizes the level metadata and total duration.
	Info timing.Info

	// AutoOffset is the recommended audio offset in milliseconds.
	AutoOffset float64

	// ContentHash is the content hash of the decoded level text.
	ContentHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Timings bundles the outputs of the compute stage. It doubles as the JSON
// payload stored under a timings cache key.
type Timings struct {
	Times      []float64   `json:"times"`
	Info       timing.Info `json:"info"`
	AutoOffset float64     `json:"auto_offset"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TileCount   int
	EventCount  int
	LoadTime    time.Duration
	ParseTime   time.Duration
	ComputeTime time.Duration
}

// CacheInfo tracks cache hits for each cacheable pipeline stage.
type CacheInfo struct {
	FetchHit   bool // Whether URL content came from cache
	TimingsHit bool // Whether computed timings came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: text, json, csv)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateSource(); err != nil {
		return err
	}
	o.SetOutputDefaults()
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateSource checks that exactly one level source is configured.
func (o *Options) ValidateSource() error {
	set := 0
	for _, s := range []string{o.Path, o.URL, o.Content} {
		if s != "" {
			set++
		}
	}
	if set == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "path, url or content is required")
	}
	if set > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "only one of path, url and content may be set")
	}

	if o.Path != "" {
		if err := errors.ValidateLevelPath(o.Path); err != nil {
			return err
		}
	}
	if o.URL != "" {
		if err := errors.ValidateURL(o.URL); err != nil {
			return err
		}
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetOutputDefaults sets default values for output formatting.
func (o *Options) SetOutputDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsRemote reports whether the level is fetched over HTTP.
func (o *Options) IsRemote() bool {
	return o.URL != ""
}

// SourceName returns a printable name for the level source.
func (o *Options) SourceName() string {
	switch {
	case o.Path != "":
		return o.Path
	case o.URL != "":
		return o.URL
	default:
		return "<inline>"
	}
}

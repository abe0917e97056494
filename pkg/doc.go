// Package pkg provides the core libraries for Tilebeat level timing.
//
// # Overview
//
// Tilebeat computes the millisecond hit time of every tile in an
// A Dance of Fire and Ice custom level. The pkg directory is organized
// into four main areas:
//
//  1. [document] / [level] - Reading (.adofai parsing into a level model)
//  2. [timing] - Domain logic (the tile timing engine)
//  3. [pipeline] - Orchestration (load → parse → compute) with caching
//  4. [cache] / [store] / [io] - Infrastructure (caching, archival, reports)
//
// # Architecture
//
// The typical data flow through Tilebeat:
//
//	.adofai file / URL
//	         ↓
//	    [document] package (lenient JSON-like reading)
//	         ↓
//	    [level] package (settings + angles + events)
//	         ↓
//	    [timing] package (derive → apply → propagate → integrate)
//	         ↓
//	    per-tile timestamps (text/JSON/CSV output)
//
// # Quick Start
//
// Parse a level and compute its tile timings:
//
//	import (
//	    "fmt"
//	    "github.com/adofai-tools/tilebeat/pkg/level"
//	    "github.com/adofai-tools/tilebeat/pkg/timing"
//	)
//
//	// 1. Parse the level text (never fails, even on malformed input)
//	lv := level.Parse(text)
//
//	// 2. Compute per-tile hit times in milliseconds
//	times := timing.Compute(lv)
//
//	// 3. Summarize
//	info := timing.Summarize(lv)
//	fmt.Printf("%s: %d tiles, %.0f ms\n", info.Song, info.TotalTiles, info.TotalDuration)
//
// # Main Packages
//
// ## Reading
//
// [document] - Lenient reader for the JSON-like .adofai format. Tolerates
// trailing commas, unquoted values, comments, and truncated files; reading
// never returns an error.
//
// [level] - Level model (settings, tile angles, events) and Parse, which
// turns raw level text into a Level via the document reader. Includes the
// legacy pathData letter decoding.
//
// ## Domain Logic
//
// [timing] - The timing engine. Four passes over the tile list:
//
//   - [timing.DeriveTiles]: Angles to tiles (midspin folding, travel arcs)
//   - [timing.ApplyEvents]: Speed, twirl, pause, hold, and planet events
//   - [timing.PropagateState]: BPM and direction carried tile to tile
//   - [timing.Integrate]: Arc degrees to cumulative milliseconds
//
// [timing.Compute] runs the complete engine; [timing.AutoOffset] derives
// the countdown lead-in.
//
// ## Orchestration
//
// [pipeline] - Complete timing pipeline (load → parse → compute) used by
// CLI and API. Ensures consistent behavior across all entry points: source
// validation, UTF-8/UTF-16 decoding, retrying fetches, and two-key caching
// (fetched text by URL, computed timings by content hash).
//
// ## Infrastructure
//
// [cache] - Cache backends and key derivation. FileCache for the CLI
// (filesystem), RedisCache for the API, NullCache to disable caching.
// Includes the retry-with-backoff helper used for remote fetches.
//
// [store] - Archive for computed results. MemoryStore for testing and
// single-process serving, MongoStore for durable archival.
//
// [io] - Report writers for pipeline results: aligned text tables, JSON
// reports, and CSV exports.
//
// [errors] - Structured error codes shared by CLI and API so failures map
// cleanly to exit codes and HTTP statuses.
//
// [observability] - Hook interfaces for metrics and tracing. No-op by
// default; backends are registered at startup.
//
// [buildinfo] - Version, commit, and build date injected at link time.
//
// # Common Workflows
//
// Run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	defer runner.Close()
//	result, err := runner.Execute(ctx, pipeline.Options{Path: "level.adofai"})
//
// Inspect per-tile state:
//
//	tiles, markers := timing.DeriveTiles(lv.Angles)
//	timing.ApplyEvents(tiles, markers, lv.Events, lv.Settings)
//	timing.PropagateState(tiles, lv.Settings)
//	times := timing.Integrate(tiles)
//
// Export a report:
//
//	err := io.Export(result, "timings.json", pipeline.FormatJSON, -1)
//
// Archive a result:
//
//	st, _ := store.NewMongoStore(ctx, uri, "tilebeat", "levels")
//	entry := store.NewEntry(uuid.NewString(), "World 1", result)
//	err := st.Put(ctx, entry)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/timing/...      # Specific package
//	go test -run Example          # Examples only
//
// [document]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/document
// [level]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/level
// [timing]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/timing
// [timing.DeriveTiles]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/timing#DeriveTiles
// [timing.ApplyEvents]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/timing#ApplyEvents
// [timing.PropagateState]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/timing#PropagateState
// [timing.Integrate]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/timing#Integrate
// [timing.Compute]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/timing#Compute
// [timing.AutoOffset]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/timing#AutoOffset
// [pipeline]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/cache
// [store]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/store
// [io]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/io
// [errors]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/errors
// [observability]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/adofai-tools/tilebeat/pkg/buildinfo
package pkg

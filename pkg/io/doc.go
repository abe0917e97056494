// Package io provides export and import of timing reports.
//
// # Overview
//
// This package serializes pipeline results into the three output formats the
// CLI and API expose. The formats are designed for:
//
//   - Reading timings at a glance (text, the classic calculator output)
//   - Integration with external tools that consume timing data (json)
//   - Spreadsheet and DAW import of per-tile hit times (csv)
//   - Round-trip preservation: export a report and re-import it identically
//
// # JSON Format
//
// A report is a single JSON object:
//
//	{
//	  "info": {
//	    "song": "Example",
//	    "bpm": 120,
//	    "total_tiles": 3,
//	    "total_duration_ms": 1000
//	  },
//	  "auto_offset_ms": 0,
//	  "tile_count": 3,
//	  "times_ms": [500, 750, 1000]
//	}
//
// The info object carries the level metadata and derived totals. times_ms
// holds one hit timestamp per logical tile, in milliseconds from the start
// of the song. Midspin markers do not hit and carry no entry.
//
// # CSV Format
//
// One row per tile with a header row:
//
//	tile,time_ms
//	1,500.00
//	2,750.00
//	3,1000.00
//
// Tile numbers are 1-based to match the numbering editors display.
//
// # Text Format
//
// The level info block, the first N tile timings, and the recommended auto
// offset, formatted the way the original calculator prints them. Use a
// negative limit to print every tile.
//
// # Import
//
// Use [ImportJSON] to read a report from a file path, or [ReadJSON] to read
// from any io.Reader. Only the JSON format round-trips; text and csv are
// export-only.
package io

// Package timing computes per-tile hit timestamps for parsed levels.
//
// This package implements the complete derive → apply → propagate → integrate
// engine shared by the CLI, API, and batch components, so every entry point
// produces identical timestamps for the same level.
//
// # Architecture
//
// The engine runs four passes:
//
//  1. Derive: Collapse the raw angle sequence into tiles, folding midspin
//     markers into the preceding tile and remembering their raw positions.
//  2. Apply: Walk the event list in file order and write speed, direction,
//     hold and planet changes onto the addressed tiles.
//  3. Propagate: Sweep the tiles once, carrying rotation sign and BPM
//     forward so every tile ends up with absolute state.
//  4. Integrate: Accumulate travel time tile by tile into millisecond
//     timestamps measured from the start of play.
//
// Each pass is exported and usable on its own; Compute chains all four.
//
// # Usage
//
//	lv := level.Parse(text)
//	times := timing.Compute(lv)
//	info := timing.Summarize(lv)
//	offset := timing.AutoOffset(lv.Settings)
//
// All passes are pure computation over their inputs. The engine does no I/O
// and never fails: a level with no tiles yields an empty timestamp list.
package timing

import "github.com/adofai-tools/tilebeat/pkg/level"

// Compute runs the full engine and returns one timestamp in milliseconds per
// tile, each marking the moment the planet reaches that tile.
func Compute(lv *level.Level) []float64 {
	if len(lv.Angles) == 0 {
		return []float64{}
	}

	tiles, markers := DeriveTiles(lv.Angles)
	ApplyEvents(tiles, markers, lv.Events, lv.Settings)
	PropagateState(tiles, lv.Settings)
	return Integrate(tiles)
}

// AutoOffset returns the playback offset in milliseconds implied by the
// level settings: the declared offset plus one effective-BPM beat per
// countdown tick.
func AutoOffset(s level.Settings) float64 {
	beat := 60000 / s.EffectiveBPM()
	return float64(s.Offset) + float64(s.CountdownTicks)*beat
}

package timing

import "github.com/adofai-tools/tilebeat/pkg/level"

// PropagateState resolves the per-tile sentinels left by DeriveTiles and
// ApplyEvents into absolute state, in one forward sweep:
//
//   - Direction: a -1 written by a Twirl flips the carried rotation sign at
//     that tile; every tile then receives the carried sign.
//   - BPM: a negative BPM inherits the carried value; a non-negative BPM
//     (written by SetSpeed) becomes the carried value from that tile on.
//
// The sweep starts clockwise at the level's effective BPM.
func PropagateState(tiles []Tile, s level.Settings) {
	bpm := s.EffectiveBPM()
	direction := 1

	for i := range tiles {
		if tiles[i].Direction == -1 {
			direction = -direction
		}
		tiles[i].Direction = direction

		if tiles[i].BPM < 0 {
			tiles[i].BPM = bpm
		} else {
			bpm = tiles[i].BPM
		}
	}
}

package timing

import "github.com/adofai-tools/tilebeat/pkg/level"

// Tile is one playable tile with the state the engine needs to time it.
// DeriveTiles leaves BPM and Direction in their sentinel forms ("inherit"
// and "event-local"); PropagateState resolves both to absolute values.
type Tile struct {
	// Angle is the tile's destination angle in [0, 360).
	Angle float64 `json:"angle"`

	// BPM is the effective BPM at this tile. Before propagation a negative
	// value means "inherit from the previous tile".
	BPM float64 `json:"bpm"`

	// Direction is the rotation sign, 1 clockwise or -1 counterclockwise.
	// Before propagation -1 marks a Twirl on this tile rather than an
	// absolute direction.
	Direction int `json:"direction"`

	// ExtraHold is additional travel in full rotations from Pause and Hold
	// events.
	ExtraHold float64 `json:"extra_hold"`

	// Midspin marks a tile followed by a midspin marker: the planet's facing
	// flips 180 degrees after landing here.
	Midspin bool `json:"midspin"`

	// MultiPlanet is true when a MultiPlanet event switches to three planets
	// on this tile.
	MultiPlanet bool `json:"multi_planet"`
}

// DeriveTiles collapses a raw angle sequence into tiles. Midspin markers
// (999) do not become tiles: each one flags the preceding tile and records
// its own raw position, so event floors (which index the raw sequence) can
// be remapped onto tile indices later.
//
// The returned marker list holds, for each midspin, the raw index of the
// entry before it, in ascending order. A midspin at raw index 0 records -1.
func DeriveTiles(angles []float64) ([]Tile, []int) {
	tiles := make([]Tile, 0, len(angles))
	markers := []int{}

	for i, a := range angles {
		if a == level.MidspinAngle {
			markers = append(markers, i-1)
			if len(tiles) > 0 {
				tiles[len(tiles)-1].Midspin = true
			}
			continue
		}
		tiles = append(tiles, Tile{
			Angle:     level.NormalizeAngle(a),
			BPM:       -1,
			Direction: 1,
		})
	}

	return tiles, markers
}

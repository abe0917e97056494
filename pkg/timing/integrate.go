package timing

import (
	"math"

	"github.com/adofai-tools/tilebeat/pkg/level"
)

// sameAngleEpsilon is the tolerance under which a tile's destination counts
// as the planet's current position, turning the hop into a full rotation.
const sameAngleEpsilon = 0.001

// Integrate accumulates travel time across tiles and returns one cumulative
// timestamp in milliseconds per tile. Tiles must already be propagated.
//
// Per tile, the planet's position first flips 180 degrees (it now orbits the
// new center), then the swept angle to the destination is taken along the
// tile's rotation sign. A destination within sameAngleEpsilon of the current
// position sweeps a full 360. Pause and Hold contribute ExtraHold full
// rotations on top.
//
// Once a tile turns on the third planet, every later hop is skewed: sweeps
// over 60 degrees lose 60, shorter ones gain 300. An activating tile skews
// its own hop as well, so restating three planets while already active skews
// that hop twice. Nothing unsets the skew; a switch back to two planets
// leaves it active.
func Integrate(tiles []Tile) []float64 {
	times := make([]float64, 0, len(tiles))

	curAngle := 0.0
	curTime := 0.0
	threePlanets := false

	for i := range tiles {
		tile := tiles[i]
		curAngle = level.NormalizeAngle(curAngle - 180)

		var sweep float64
		if math.Abs(tile.Angle-curAngle) <= sameAngleEpsilon {
			sweep = 360
		} else {
			sweep = level.NormalizeAngle((curAngle - tile.Angle) * float64(tile.Direction))
		}
		sweep += tile.ExtraHold * 360

		if threePlanets {
			sweep = skewThreePlanets(sweep)
		}
		if tile.MultiPlanet {
			threePlanets = true
			sweep = skewThreePlanets(sweep)
		}

		curTime += AngleToTime(sweep, tile.BPM)
		curAngle = tile.Angle
		if tile.Midspin {
			curAngle += 180
		}

		times = append(times, curTime)
	}

	return times
}

func skewThreePlanets(sweep float64) float64 {
	if sweep > 60 {
		return sweep - 60
	}
	return sweep + 300
}

// AngleToTime converts swept degrees at an effective BPM into milliseconds.
// One beat is 180 degrees of travel.
func AngleToTime(degrees, bpm float64) float64 {
	return degrees / 180 * (60 / bpm) * 1000
}

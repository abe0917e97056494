package timing

import (
	"sort"

	"github.com/adofai-tools/tilebeat/pkg/document"
	"github.com/adofai-tools/tilebeat/pkg/level"
)

// Event type strings as they appear in level files. Events with any other
// type are ignored by the engine.
const (
	EventSetSpeed    = "SetSpeed"
	EventTwirl       = "Twirl"
	EventPause       = "Pause"
	EventHold        = "Hold"
	EventMultiPlanet = "MultiPlanet"
)

// ApplyEvents walks events in file order and writes their effects onto the
// addressed tiles. Event floors index the raw angle sequence, so each floor
// is shifted down by the number of midspin markers at or below it before it
// is used as a tile index. Events whose remapped floor falls outside the
// tile range are dropped.
//
// File order matters: SetSpeed events mutate a running BPM accumulator that
// later SetSpeed events build on, regardless of which floors they target.
func ApplyEvents(tiles []Tile, markers []int, events []level.Event, s level.Settings) {
	currentBPM := s.EffectiveBPM()

	for _, ev := range events {
		floor := ev.Floor - markersAtOrBelow(markers, ev.Floor)
		if floor < 0 || floor >= len(tiles) {
			continue
		}
		tile := &tiles[floor]

		switch ev.Type {
		case EventSetSpeed:
			if document.GetString(ev.Fields, "speedType", "Bpm") == SpeedTypeMultiplier {
				mult := document.GetFloat(ev.Fields, "bpmMultiplier", 1)
				tile.BPM = currentBPM * mult
				currentBPM *= mult
			} else {
				// An absent beatsPerMinute restates the running BPM, which
				// already carries the pitch factor, so the written value
				// picks up pitch twice. The game does the same.
				bpm := document.GetFloat(ev.Fields, "beatsPerMinute", currentBPM)
				tile.BPM = bpm * s.Pitch / 100
				currentBPM = tile.BPM
			}
		case EventTwirl:
			tile.Direction = -1
		case EventPause:
			tile.ExtraHold += document.GetFloat(ev.Fields, "duration", 0) / 2
		case EventHold:
			tile.ExtraHold += document.GetFloat(ev.Fields, "duration", 0)
		case EventMultiPlanet:
			tile.MultiPlanet = document.GetString(ev.Fields, "planets", PlanetsTwo) == PlanetsThree
		}
	}
}

// SetSpeed speedType values.
const (
	SpeedTypeBpm        = "Bpm"
	SpeedTypeMultiplier = "Multiplier"
)

// MultiPlanet planets values.
const (
	PlanetsTwo   = "TwoPlanets"
	PlanetsThree = "ThreePlanets"
)

// markersAtOrBelow counts midspin markers with raw index <= floor. The
// marker list is ascending by construction, so a binary search suffices.
func markersAtOrBelow(markers []int, floor int) int {
	return sort.SearchInts(markers, floor+1)
}

package timing

import (
	"fmt"

	"github.com/adofai-tools/tilebeat/pkg/level"
)

// Info is a level summary: the settings worth showing plus the tile count
// and total duration. It serializes for API responses, JSON export, and the
// archive store.
type Info struct {
	Song           string  `json:"song" bson:"song"`
	Artist         string  `json:"artist" bson:"artist"`
	Author         string  `json:"author" bson:"author"`
	BPM            float64 `json:"bpm" bson:"bpm"`
	Offset         int     `json:"offset" bson:"offset"`
	Pitch          float64 `json:"pitch" bson:"pitch"`
	CountdownTicks int     `json:"countdown_ticks" bson:"countdown_ticks"`

	// TotalTiles counts raw angle entries, midspin markers included, to
	// match the tile numbering editors display.
	TotalTiles int `json:"total_tiles" bson:"total_tiles"`

	// TotalDuration is the timestamp of the last tile in milliseconds, or 0
	// for an empty level.
	TotalDuration float64 `json:"total_duration_ms" bson:"total_duration_ms"`
}

// Summarize computes a level's Info. The timestamps are recomputed from the
// level, so the summary is always consistent with Compute.
func Summarize(lv *level.Level) Info {
	info := Info{
		Song:           lv.Settings.Song,
		Artist:         lv.Settings.Artist,
		Author:         lv.Settings.Author,
		BPM:            lv.Settings.BPM,
		Offset:         lv.Settings.Offset,
		Pitch:          lv.Settings.Pitch,
		CountdownTicks: lv.Settings.CountdownTicks,
		TotalTiles:     len(lv.Angles),
	}

	if times := Compute(lv); len(times) > 0 {
		info.TotalDuration = times[len(times)-1]
	}

	return info
}

// String renders the summary as the fixed-layout info block used by the CLI
// text output.
func (i Info) String() string {
	return fmt.Sprintf(
		"=== Level Info ===\n"+
			"Song: %s\n"+
			"Artist: %s\n"+
			"Author: %s\n"+
			"BPM: %.2f\n"+
			"Offset: %d ms\n"+
			"Pitch: %.0f%%\n"+
			"Countdown: %d ticks\n"+
			"Total Tiles: %d\n"+
			"Duration: %.2f seconds\n",
		i.Song, i.Artist, i.Author, i.BPM, i.Offset, i.Pitch,
		i.CountdownTicks, i.TotalTiles, i.TotalDuration/1000,
	)
}

// Package level turns a raw .adofai document into a structured level: playback
// settings, the tile angle sequence, and the event list.
//
// Parsing is fail-soft end to end. Missing or malformed pieces fall back to
// defaults (bpm 100, pitch 100%, "Unknown" metadata) instead of producing
// errors, because levels in the wild are frequently hand-edited and older
// editors wrote files that are not strict JSON.
//
// Angle sources:
//
//   - angleData: the modern format, a flat list of angles in degrees. Entries
//     that are not numbers are dropped. The value 999 is not an angle but a
//     midspin marker attached to the preceding tile.
//   - pathData: the legacy format, a string of direction glyphs decoded by
//     [AnglesFromPath]. It is consulted only when angleData is absent or not
//     a list.
package level

import (
	"strings"

	"github.com/adofai-tools/tilebeat/pkg/document"
)

// Settings holds the playback parameters of a level. Fields mirror the
// settings block of the file; absent keys take the documented defaults.
type Settings struct {
	Song           string  `json:"song"`
	Artist         string  `json:"artist"`
	Author         string  `json:"author"`
	BPM            float64 `json:"bpm"`
	Offset         int     `json:"offset"`
	Pitch          float64 `json:"pitch"`
	CountdownTicks int     `json:"countdown_ticks"`
}

// EffectiveBPM is the base BPM scaled by pitch. All timing math runs on this
// value rather than the nominal BPM.
func (s Settings) EffectiveBPM() float64 {
	return s.BPM * s.Pitch / 100
}

// Event is one entry of the actions list. Floor and Type are extracted
// eagerly; everything else stays in Fields because which keys matter (and
// what they default to) depends on the event type at apply time.
type Event struct {
	Floor  int            `json:"floor"`
	Type   string         `json:"type"`
	Fields map[string]any `json:"-"`
}

// Level is a parsed .adofai file.
type Level struct {
	Settings Settings  `json:"settings"`
	Angles   []float64 `json:"angles"`
	Events   []Event   `json:"events"`
}

// Parse reads level text into a Level. It never fails: any input, including
// an empty string or one that is not an object at all, yields a Level with
// default settings and whatever angles and events could be recovered.
func Parse(text string) *Level {
	text = strings.TrimPrefix(text, "\uFEFF")

	root, _ := document.Parse(text).(map[string]any)
	settings, _ := root["settings"].(map[string]any)

	lv := &Level{
		Settings: Settings{
			Song:           document.GetString(settings, "song", "Unknown"),
			Artist:         document.GetString(settings, "artist", "Unknown"),
			Author:         document.GetString(settings, "author", "Unknown"),
			BPM:            document.GetFloat(settings, "bpm", 100),
			Offset:         document.GetInt(settings, "offset", 0),
			Pitch:          document.GetFloat(settings, "pitch", 100),
			CountdownTicks: document.GetInt(settings, "countdownTicks", 0),
		},
	}

	if raw, ok := root["angleData"].([]any); ok {
		lv.Angles = make([]float64, 0, len(raw))
		for _, v := range raw {
			switch n := v.(type) {
			case float64:
				lv.Angles = append(lv.Angles, n)
			case int64:
				lv.Angles = append(lv.Angles, float64(n))
			}
		}
	} else {
		// pathData lives at the top level of the file, not under settings.
		lv.Angles = AnglesFromPath(document.GetString(root, "pathData", ""))
	}

	if actions, ok := root["actions"].([]any); ok {
		for _, v := range actions {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			lv.Events = append(lv.Events, Event{
				Floor:  document.GetInt(m, "floor", 0),
				Type:   document.GetString(m, "eventType", ""),
				Fields: m,
			})
		}
	}

	return lv
}

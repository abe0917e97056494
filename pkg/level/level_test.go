package level

import (
	"math"
	"reflect"
	"testing"
)

func TestParse_SettingsDefaults(t *testing.T) {
	lv := Parse(`{}`)

	if lv.Settings.Song != "Unknown" || lv.Settings.Artist != "Unknown" || lv.Settings.Author != "Unknown" {
		t.Errorf("metadata = %q/%q/%q, want Unknown for all", lv.Settings.Song, lv.Settings.Artist, lv.Settings.Author)
	}
	if lv.Settings.BPM != 100 {
		t.Errorf("BPM = %v, want 100", lv.Settings.BPM)
	}
	if lv.Settings.Offset != 0 {
		t.Errorf("Offset = %v, want 0", lv.Settings.Offset)
	}
	if lv.Settings.Pitch != 100 {
		t.Errorf("Pitch = %v, want 100", lv.Settings.Pitch)
	}
	if lv.Settings.CountdownTicks != 0 {
		t.Errorf("CountdownTicks = %v, want 0", lv.Settings.CountdownTicks)
	}
	if len(lv.Angles) != 0 {
		t.Errorf("Angles = %v, want empty", lv.Angles)
	}
	if len(lv.Events) != 0 {
		t.Errorf("Events = %v, want empty", lv.Events)
	}
}

func TestParse_Settings(t *testing.T) {
	lv := Parse(`{
		"settings": {
			"song": "Third Sun",
			"artist": "Someone",
			"author": "Else",
			"bpm": 126.5,
			"offset": -120,
			"pitch": 110,
			"countdownTicks": 4
		},
		"angleData": [0, 90]
	}`)

	if lv.Settings.Song != "Third Sun" {
		t.Errorf("Song = %q, want Third Sun", lv.Settings.Song)
	}
	if lv.Settings.BPM != 126.5 {
		t.Errorf("BPM = %v, want 126.5", lv.Settings.BPM)
	}
	if lv.Settings.Offset != -120 {
		t.Errorf("Offset = %v, want -120", lv.Settings.Offset)
	}
	if lv.Settings.Pitch != 110 {
		t.Errorf("Pitch = %v, want 110", lv.Settings.Pitch)
	}
	if lv.Settings.CountdownTicks != 4 {
		t.Errorf("CountdownTicks = %v, want 4", lv.Settings.CountdownTicks)
	}
}

func TestParse_SettingsCoerceStrings(t *testing.T) {
	// Some editors quote numeric settings; the accessors coerce them.
	lv := Parse(`{"settings": {"bpm": "190", "offset": " 80 ", "pitch": "50.0"}}`)

	if lv.Settings.BPM != 190 {
		t.Errorf("BPM = %v, want 190", lv.Settings.BPM)
	}
	if lv.Settings.Offset != 80 {
		t.Errorf("Offset = %v, want 80", lv.Settings.Offset)
	}
	if lv.Settings.Pitch != 50 {
		t.Errorf("Pitch = %v, want 50", lv.Settings.Pitch)
	}
}

func TestParse_StripsByteOrderMark(t *testing.T) {
	lv := Parse("\uFEFF" + `{"settings": {"bpm": 150}}`)
	if lv.Settings.BPM != 150 {
		t.Errorf("BPM = %v, want 150", lv.Settings.BPM)
	}
}

func TestParse_AngleDataKeepsOnlyNumbers(t *testing.T) {
	lv := Parse(`{"angleData": [0, "spin", 90, null, true, 180.5, [7]]}`)
	want := []float64{0, 90, 180.5}
	if !reflect.DeepEqual(lv.Angles, want) {
		t.Errorf("Angles = %v, want %v", lv.Angles, want)
	}
}

func TestParse_PathDataFallback(t *testing.T) {
	lv := Parse(`{"pathData": "RUL"}`)
	want := []float64{0, 90, 180}
	if !reflect.DeepEqual(lv.Angles, want) {
		t.Errorf("Angles = %v, want %v", lv.Angles, want)
	}
}

func TestParse_AngleDataWinsOverPathData(t *testing.T) {
	lv := Parse(`{"angleData": [45], "pathData": "RUL"}`)
	want := []float64{45}
	if !reflect.DeepEqual(lv.Angles, want) {
		t.Errorf("Angles = %v, want %v", lv.Angles, want)
	}
}

func TestParse_EmptyAngleDataDoesNotFallBack(t *testing.T) {
	// An empty list is still the modern format; pathData stays ignored.
	lv := Parse(`{"angleData": [], "pathData": "RUL"}`)
	if len(lv.Angles) != 0 {
		t.Errorf("Angles = %v, want empty", lv.Angles)
	}
}

func TestParse_NonListAngleDataFallsBack(t *testing.T) {
	lv := Parse(`{"angleData": "corrupt", "pathData": "RR"}`)
	want := []float64{0, 0}
	if !reflect.DeepEqual(lv.Angles, want) {
		t.Errorf("Angles = %v, want %v", lv.Angles, want)
	}
}

func TestParse_ActionsKeepOnlyObjects(t *testing.T) {
	lv := Parse(`{
		"angleData": [0, 90],
		"actions": [
			{"floor": 1, "eventType": "Twirl"},
			42,
			"junk",
			{"eventType": "Pause", "duration": 2}
		]
	}`)

	if len(lv.Events) != 2 {
		t.Fatalf("len(Events) = %d, want 2", len(lv.Events))
	}
	if lv.Events[0].Floor != 1 || lv.Events[0].Type != "Twirl" {
		t.Errorf("Events[0] = %+v, want floor 1 Twirl", lv.Events[0])
	}
	if lv.Events[1].Floor != 0 {
		t.Errorf("Events[1].Floor = %d, want default 0", lv.Events[1].Floor)
	}
	if got := lv.Events[1].Fields["duration"]; got != int64(2) {
		t.Errorf("Events[1].Fields[duration] = %v, want 2", got)
	}
}

func TestParse_NonObjectRoot(t *testing.T) {
	for _, src := range []string{"", "null", "[1, 2, 3]", "complete garbage"} {
		lv := Parse(src)
		if lv == nil {
			t.Fatalf("Parse(%q) = nil, want level with defaults", src)
		}
		if lv.Settings.BPM != 100 {
			t.Errorf("Parse(%q).Settings.BPM = %v, want 100", src, lv.Settings.BPM)
		}
	}
}

func TestEffectiveBPM(t *testing.T) {
	tests := []struct {
		bpm, pitch, want float64
	}{
		{100, 100, 100},
		{100, 50, 50},
		{190, 110, 209},
		{120, 200, 240},
	}
	for _, tt := range tests {
		s := Settings{BPM: tt.bpm, Pitch: tt.pitch}
		if got := s.EffectiveBPM(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("EffectiveBPM(%v@%v%%) = %v, want %v", tt.bpm, tt.pitch, got, tt.want)
		}
	}
}

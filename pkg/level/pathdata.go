package level

import "math"

// MidspinAngle is the sentinel used in angle sequences for a midspin marker.
// It is not a real angle: it flags the preceding tile and is skipped when
// tiles are derived.
const MidspinAngle = 999

// pathGlyph describes one legacy path character. Absolute glyphs set the
// travel direction outright; relative glyphs turn away from the direction the
// planet is currently facing.
type pathGlyph struct {
	degrees  float64
	relative bool
}

var pathGlyphs = map[rune]pathGlyph{
	'R': {0, false},
	'p': {15, false},
	'J': {30, false},
	'E': {45, false},
	'T': {60, false},
	'o': {75, false},
	'U': {90, false},
	'q': {105, false},
	'G': {120, false},
	'Q': {135, false},
	'H': {150, false},
	'W': {165, false},
	'L': {180, false},
	'x': {195, false},
	'N': {210, false},
	'Z': {225, false},
	'F': {240, false},
	'V': {255, false},
	'D': {270, false},
	'Y': {285, false},
	'B': {300, false},
	'C': {315, false},
	'M': {330, false},
	'A': {345, false},

	'5': {108, true},
	'6': {252, true},
	'7': {900.0 / 7.0, true},
	'8': {360 - 900.0/7.0, true},
	't': {60, true},
	'h': {120, true},
	'j': {240, true},
	'y': {300, true},

	'!': {MidspinAngle, true},
}

// AnglesFromPath decodes a legacy pathData string into the same angle
// sequence the modern angleData field would carry. Characters outside the
// glyph table are skipped. The midspin glyph '!' emits the 999 sentinel and
// leaves the running direction untouched, so the glyph after it continues
// from the direction before the midspin.
func AnglesFromPath(path string) []float64 {
	angles := make([]float64, 0, len(path))
	running := 0.0

	for _, c := range path {
		g, ok := pathGlyphs[c]
		if !ok {
			continue
		}
		if g.degrees == MidspinAngle {
			angles = append(angles, MidspinAngle)
			continue
		}
		if g.relative {
			running = NormalizeAngle(running + 180 - g.degrees)
		} else {
			running = g.degrees
		}
		angles = append(angles, running)
	}

	return angles
}

// NormalizeAngle maps degrees into [0, 360) using floored modulo, so
// negative inputs wrap upward (-90 becomes 270).
func NormalizeAngle(degrees float64) float64 {
	return degrees - 360*math.Floor(degrees/360)
}

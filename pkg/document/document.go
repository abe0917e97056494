// Package document implements a fault-tolerant reader for the loosely
// JSON-like format used by .adofai level files.
//
// Level files are frequently hand-edited: trailing commas, stray tokens,
// unquoted commentary after values, and truncated input are all common.
// A strict JSON decoder rejects a large share of real-world levels, so this
// package parses with recovery instead: malformed tokens are skipped,
// unreadable values degrade to null, and unterminated structures stop at end
// of input. Parse never fails; the result is a best-effort tree.
//
// # Tree Shape
//
// Parse returns one of:
//
//	map[string]any  object
//	[]any           array
//	string          string
//	int64           number without '.', 'e' or 'E'
//	float64         any other number
//	bool            true / false
//	nil             null, or an unreadable value
//
// # Accessors
//
// GetString, GetFloat and GetInt read fields out of an object leniently:
// numeric kinds coerce into each other, strings are parsed, and anything
// unreadable yields the caller's default. This mirrors how the rest of the
// system treats level documents, where absent or garbled fields fall back
// to documented defaults rather than failing.
package document

import (
	"fmt"
	"strconv"
	"strings"
)

// GetString returns the value under key rendered as a string, or def when
// the key is absent or null. Non-string scalars are formatted, matching the
// lenient treatment of hand-edited files where quoting is inconsistent.
func GetString(m map[string]any, key, def string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// GetFloat returns the value under key as a float64. Integers widen, numeric
// strings are parsed, and anything else yields def.
func GetFloat(m map[string]any, key string, def float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

// GetInt returns the value under key as an int. Floats truncate toward zero,
// numeric strings are parsed, and anything else yields def.
func GetInt(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return int(n)
		}
	}
	return def
}

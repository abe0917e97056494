package document

import (
	"math"
	"reflect"
	"testing"
)

func TestParse_Object(t *testing.T) {
	v := Parse(`{"song": "Heracles", "bpm": 190, "pitch": 100.0, "loop": true, "legacy": null}`)
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("Parse() = %T, want map[string]any", v)
	}

	if got := m["song"]; got != "Heracles" {
		t.Errorf("song = %v, want Heracles", got)
	}
	if got := m["bpm"]; got != int64(190) {
		t.Errorf("bpm = %v (%T), want int64 190", got, got)
	}
	if got := m["pitch"]; got != 100.0 {
		t.Errorf("pitch = %v (%T), want float64 100", got, got)
	}
	if got := m["loop"]; got != true {
		t.Errorf("loop = %v, want true", got)
	}
	if got, present := m["legacy"]; !present || got != nil {
		t.Errorf("legacy = %v (present=%v), want nil present", got, present)
	}
}

func TestParse_NestedArray(t *testing.T) {
	v := Parse(`{"angleData": [0, 90, 180.5, 999]}`)
	m := v.(map[string]any)
	arr, ok := m["angleData"].([]any)
	if !ok {
		t.Fatalf("angleData = %T, want []any", m["angleData"])
	}
	want := []any{int64(0), int64(90), 180.5, int64(999)}
	if !reflect.DeepEqual(arr, want) {
		t.Errorf("angleData = %v, want %v", arr, want)
	}
}

func TestParse_NumberForms(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"0", int64(0)},
		{"-45", int64(-45)},
		{"128.571", 128.571},
		{"1e3", 1000.0},
		{"2.5E-1", 0.25},
		{"-0.001", -0.001},
		{".5", 0.5},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}

func TestParse_MalformedNumberBecomesNil(t *testing.T) {
	// The scan is permissive, so junk like "1.2.3" is consumed as one
	// literal; it must degrade to nil instead of failing the parse.
	v := Parse(`{"a": 1.2.3, "b": 7}`)
	m := v.(map[string]any)
	if got := m["a"]; got != nil {
		t.Errorf("a = %v, want nil", got)
	}
	if got := m["b"]; got != int64(7) {
		t.Errorf("b = %v, want 7", got)
	}
}

func TestParse_HugeIntegerFallsBackToFloat(t *testing.T) {
	v := Parse("123456789012345678901234567890")
	f, ok := v.(float64)
	if !ok {
		t.Fatalf("Parse() = %T, want float64", v)
	}
	if f < 1e29 || f > 1.3e29 {
		t.Errorf("Parse() = %g, want about 1.23e29", f)
	}
}

func TestParse_StringEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"a\"b"`, `a"b`},
		{`"a\\b"`, `a\b`},
		{`"a\/b"`, "a/b"},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"aAb"`, "aAb"},
		{`"aéb"`, "aéb"},
		{`"a\qb"`, "aqb"},      // unknown escape keeps the character
		{`"a\uZZZZb"`, "a?b"},  // bad hex degrades to ?
		{`"a\u00"`, "a?"},      // truncated escape degrades to ?
		{`"unterminated`, "unterminated"},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse_StrayTokensSkipped(t *testing.T) {
	v := Parse(`@@ {"bpm": 100} ##`)
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("Parse() = %T, want map[string]any", v)
	}
	if got := m["bpm"]; got != int64(100) {
		t.Errorf("bpm = %v, want 100", got)
	}
}

func TestParse_ObjectRecoversFromUnquotedKey(t *testing.T) {
	// Hand-edited files sometimes leave commentary where a key belongs.
	// The reader keeps what it already has and ends the object at the next
	// delimiter instead of giving up on the whole document.
	v := Parse(`{"bpm": 100, some stray note}`)
	m := v.(map[string]any)
	if got := m["bpm"]; got != int64(100) {
		t.Errorf("bpm = %v, want 100", got)
	}
	if len(m) != 1 {
		t.Errorf("len(m) = %d, want 1", len(m))
	}
}

func TestParse_TrailingComma(t *testing.T) {
	v := Parse(`{"a": 1, "b": 2,}`)
	m := v.(map[string]any)
	if len(m) != 2 || m["a"] != int64(1) || m["b"] != int64(2) {
		t.Errorf("m = %v, want a=1 b=2", m)
	}

	arr := Parse(`[1, 2,]`).([]any)
	want := []any{int64(1), int64(2)}
	if !reflect.DeepEqual(arr, want) {
		t.Errorf("arr = %v, want %v", arr, want)
	}
}

func TestParse_UnterminatedStructures(t *testing.T) {
	v := Parse(`{"a": 1, "b": [2, 3`)
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("Parse() = %T, want map[string]any", v)
	}
	if got := m["a"]; got != int64(1) {
		t.Errorf("a = %v, want 1", got)
	}
	arr, ok := m["b"].([]any)
	if !ok {
		t.Fatalf("b = %T, want []any", m["b"])
	}
	want := []any{int64(2), int64(3)}
	if !reflect.DeepEqual(arr, want) {
		t.Errorf("b = %v, want %v", arr, want)
	}
}

func TestParse_EmptyAndWhitespaceInput(t *testing.T) {
	if got := Parse(""); got != nil {
		t.Errorf("Parse(\"\") = %v, want nil", got)
	}
	if got := Parse("   \n\t  "); got != nil {
		t.Errorf("Parse(whitespace) = %v, want nil", got)
	}
	if got := Parse("{}"); !reflect.DeepEqual(got, map[string]any{}) {
		t.Errorf("Parse({}) = %v, want empty map", got)
	}
	if got := Parse("[]"); !reflect.DeepEqual(got, []any{}) {
		t.Errorf("Parse([]) = %v, want empty slice", got)
	}
}

func TestParse_BooleansAcceptInterveningWhitespace(t *testing.T) {
	// consume() skips whitespace before matching each byte, so a spaced-out
	// literal still reads as the value.
	if got := Parse("t r u e"); got != true {
		t.Errorf("Parse(\"t r u e\") = %v, want true", got)
	}
	if got := Parse("false"); got != false {
		t.Errorf("Parse(false) = %v, want false", got)
	}
}

func TestGetFloat_Coercions(t *testing.T) {
	m := map[string]any{
		"f": 1.5,
		"i": int64(3),
		"s": "2.25",
		"x": "not a number",
		"n": nil,
	}

	tests := []struct {
		key  string
		def  float64
		want float64
	}{
		{"f", 0, 1.5},
		{"i", 0, 3},
		{"s", 0, 2.25},
		{"x", 7, 7},
		{"n", 7, 7},
		{"missing", 9, 9},
	}
	for _, tt := range tests {
		if got := GetFloat(m, tt.key, tt.def); got != tt.want {
			t.Errorf("GetFloat(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestGetInt_TruncatesTowardZero(t *testing.T) {
	m := map[string]any{"a": 3.9, "b": -3.9, "c": int64(5), "d": "12"}
	if got := GetInt(m, "a", 0); got != 3 {
		t.Errorf("GetInt(a) = %d, want 3", got)
	}
	if got := GetInt(m, "b", 0); got != -3 {
		t.Errorf("GetInt(b) = %d, want -3", got)
	}
	if got := GetInt(m, "c", 0); got != 5 {
		t.Errorf("GetInt(c) = %d, want 5", got)
	}
	if got := GetInt(m, "d", 0); got != 12 {
		t.Errorf("GetInt(d) = %d, want 12", got)
	}
	if got := GetInt(m, "missing", -1); got != -1 {
		t.Errorf("GetInt(missing) = %d, want -1", got)
	}
}

func TestGetString_FormatsScalars(t *testing.T) {
	m := map[string]any{"s": "name", "i": int64(42), "b": true, "n": nil}
	if got := GetString(m, "s", ""); got != "name" {
		t.Errorf("GetString(s) = %q, want name", got)
	}
	if got := GetString(m, "i", ""); got != "42" {
		t.Errorf("GetString(i) = %q, want 42", got)
	}
	if got := GetString(m, "b", ""); got != "true" {
		t.Errorf("GetString(b) = %q, want true", got)
	}
	if got := GetString(m, "n", "fallback"); got != "fallback" {
		t.Errorf("GetString(n) = %q, want fallback", got)
	}
}

func TestParse_DeepDocumentRoundTrip(t *testing.T) {
	src := `{
		"settings": {"song": "Night", "bpm": 126, "offset": -40},
		"angleData": [0, 90, 999, 270],
		"actions": [
			{"floor": 1, "eventType": "SetSpeed", "speedType": "Multiplier", "bpmMultiplier": 1.5},
			{"floor": 2, "eventType": "Twirl"}
		]
	}`
	m := Parse(src).(map[string]any)

	settings, ok := m["settings"].(map[string]any)
	if !ok {
		t.Fatalf("settings = %T, want map", m["settings"])
	}
	if got := GetFloat(settings, "bpm", 0); got != 126 {
		t.Errorf("bpm = %v, want 126", got)
	}
	if got := GetInt(settings, "offset", 0); got != -40 {
		t.Errorf("offset = %v, want -40", got)
	}

	actions, ok := m["actions"].([]any)
	if !ok || len(actions) != 2 {
		t.Fatalf("actions = %v, want 2 entries", m["actions"])
	}
	first := actions[0].(map[string]any)
	if got := GetFloat(first, "bpmMultiplier", 0); math.Abs(got-1.5) > 1e-12 {
		t.Errorf("bpmMultiplier = %v, want 1.5", got)
	}
}

package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBatchOutputPath(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		outputDir string
		format    string
		want      string
	}{
		{
			name:   "sibling json",
			source: filepath.Join("levels", "world1.adofai"),
			format: "json",
			want:   filepath.Join("levels", "world1.json"),
		},
		{
			name:      "output dir",
			source:    filepath.Join("levels", "world1.adofai"),
			outputDir: "out",
			format:    "csv",
			want:      filepath.Join("out", "world1.csv"),
		},
		{
			name:   "text uses txt extension",
			source: "world1.adofai",
			format: "text",
			want:   "world1.txt",
		},
		{
			name:   "url goes to working directory",
			source: "https://example.com/packs/world1.adofai",
			format: "json",
			want:   "world1.json",
		},
		{
			name:      "url with output dir",
			source:    "https://example.com/packs/world1.adofai?dl=1",
			outputDir: "out",
			format:    "json",
			want:      filepath.Join("out", "world1.json"),
		},
		{
			name:   "no extension",
			source: "world1",
			format: "json",
			want:   "world1.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := batchOutputPath(tt.source, tt.outputDir, tt.format)
			if got != tt.want {
				t.Errorf("batchOutputPath(%q, %q, %q) = %q, want %q",
					tt.source, tt.outputDir, tt.format, got, tt.want)
			}
		})
	}
}

func TestFormatExt(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", "json"},
		{"csv", "csv"},
		{"text", "txt"},
	}

	for _, tt := range tests {
		if got := formatExt(tt.format); got != tt.want {
			t.Errorf("formatExt(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestExpandSources(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.adofai", "b.adofai", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	sources, err := expandSources([]string{filepath.Join(dir, "*.adofai")})
	if err != nil {
		t.Fatalf("expandSources() error: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expandSources() matched %d files, want 2: %v", len(sources), sources)
	}

	// Plain paths and URLs pass through even when they do not exist.
	sources, err = expandSources([]string{"missing.adofai", "https://example.com/x.adofai"})
	if err != nil {
		t.Fatalf("expandSources() error: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expandSources() = %v, want both args passed through", sources)
	}
}

func TestExpandSourcesBadPattern(t *testing.T) {
	_, err := expandSources([]string{"[invalid"})
	if err == nil {
		t.Error("expandSources() should reject a malformed pattern")
	}
}

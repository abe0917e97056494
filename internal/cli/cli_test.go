package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	// Clear XDG_CACHE_HOME to test default behavior
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		}
	}()

	dir, err := defaultCacheDir()
	if err != nil {
		t.Fatalf("defaultCacheDir() error: %v", err)
	}

	if dir == "" {
		t.Error("defaultCacheDir() returned empty string")
	}

	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, home) {
		t.Errorf("defaultCacheDir() = %q, should be under home %q", dir, home)
	}

	if !strings.HasSuffix(dir, appName) {
		t.Errorf("defaultCacheDir() = %q, should end with %q", dir, appName)
	}

	if !strings.Contains(dir, ".cache") {
		t.Errorf("defaultCacheDir() = %q, should contain '.cache'", dir)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Setenv("XDG_CACHE_HOME", customCache)
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CACHE_HOME")
		}
	}()

	dir, err := defaultCacheDir()
	if err != nil {
		t.Fatalf("defaultCacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("defaultCacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"https://example.com/level.adofai", true},
		{"http://localhost:8080/level", true},
		{"level.adofai", false},
		{"./levels/world1.adofai", false},
		{"/abs/path/level.adofai", false},
		{"ftp://example.com/level.adofai", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isURL(tt.arg); got != tt.want {
			t.Errorf("isURL(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

func TestSourceOptions(t *testing.T) {
	opts := sourceOptions("level.adofai", true)
	if opts.Path != "level.adofai" {
		t.Errorf("Path = %q, want %q", opts.Path, "level.adofai")
	}
	if opts.URL != "" {
		t.Errorf("URL = %q, want empty", opts.URL)
	}
	if !opts.Refresh {
		t.Error("Refresh should be true")
	}

	opts = sourceOptions("https://example.com/level.adofai", false)
	if opts.URL != "https://example.com/level.adofai" {
		t.Errorf("URL = %q, want the source URL", opts.URL)
	}
	if opts.Path != "" {
		t.Errorf("Path = %q, want empty", opts.Path)
	}
	if opts.Refresh {
		t.Error("Refresh should be false")
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "tilebeat" {
		t.Errorf("root.Use = %q, want %q", root.Use, "tilebeat")
	}

	want := []string{"times", "info", "inspect", "batch", "serve", "cache", "completion"}
	registered := make(map[string]bool)
	for _, cmd := range root.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)

	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("log level = %v, want %v", c.Logger.GetLevel(), LogDebug)
	}

	c.SetLogLevel(LogInfo)
	if c.Logger.GetLevel() != LogInfo {
		t.Errorf("log level = %v, want %v", c.Logger.GetLevel(), LogInfo)
	}
}

package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `format = "csv"
limit = 50
cache_dir = "/var/cache/tilebeat"

[serve]
addr = ":9000"
redis_url = "redis://localhost:6379/1"
mongo_uri = "mongodb://localhost:27017"
mongo_database = "prod"
mongo_collection = "archive"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Format != "csv" {
		t.Errorf("Format = %q, want %q", cfg.Format, "csv")
	}
	if cfg.Limit != 50 {
		t.Errorf("Limit = %d, want 50", cfg.Limit)
	}
	if cfg.CacheDir != "/var/cache/tilebeat" {
		t.Errorf("CacheDir = %q, want %q", cfg.CacheDir, "/var/cache/tilebeat")
	}
	if cfg.Serve.Addr != ":9000" {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, ":9000")
	}
	if cfg.Serve.MongoDatabase != "prod" {
		t.Errorf("Serve.MongoDatabase = %q, want %q", cfg.Serve.MongoDatabase, "prod")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("format = [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := loadConfig(path)
	if err == nil {
		t.Fatal("loadConfig() should fail on malformed TOML")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("error = %q, should mention parse config", err)
	}
}

func TestLoadConfigFileExplicitMissing(t *testing.T) {
	c := New(io.Discard, LogInfo)

	err := c.loadConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("loadConfigFile() should fail for an explicit missing path")
	}
}

func TestLoadConfigFileDefaultMissing(t *testing.T) {
	// Point the default location at an empty directory.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	if err := c.loadConfigFile(""); err != nil {
		t.Errorf("loadConfigFile() with no default file should succeed, got %v", err)
	}
	if c.Config != (fileConfig{}) {
		t.Errorf("Config = %+v, want zero value", c.Config)
	}
}

func TestConfigPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	expected := filepath.Join("/tmp/custom-config", appName, "config.toml")
	if got := configPath(); got != expected {
		t.Errorf("configPath() = %q, want %q", got, expected)
	}
}

func TestApplyConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Format = "json"
	c.Config.Limit = 5

	cmd := &cobra.Command{Use: "test"}
	format := cmd.Flags().String("format", "text", "")
	limit := cmd.Flags().Int("limit", 20, "")

	c.applyConfig(cmd)

	if *format != "json" {
		t.Errorf("format = %q, want config value %q", *format, "json")
	}
	if *limit != 5 {
		t.Errorf("limit = %d, want config value 5", *limit)
	}
}

func TestApplyConfigFlagWins(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Format = "json"

	cmd := &cobra.Command{Use: "test"}
	format := cmd.Flags().String("format", "text", "")
	if err := cmd.Flags().Set("format", "csv"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	c.applyConfig(cmd)

	if *format != "csv" {
		t.Errorf("format = %q, explicit flag should win over config", *format)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.CacheDir = "/tmp/tilebeat-cache"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/tilebeat-cache" {
		t.Errorf("cacheDir() = %q, want config value", dir)
	}
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// fileConfig holds defaults read from the optional TOML config file.
// Flag values take precedence over file values, which take precedence over
// the built-in defaults.
type fileConfig struct {
	Format   string      `toml:"format"`
	Limit    int         `toml:"limit"`
	CacheDir string      `toml:"cache_dir"`
	Serve    serveConfig `toml:"serve"`
}

// serveConfig holds defaults for the serve command.
type serveConfig struct {
	Addr            string `toml:"addr"`
	RedisURL        string `toml:"redis_url"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// configPath returns the default config file location using XDG standard
// (~/.config/tilebeat/config.toml).
func configPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// loadConfig reads and parses the TOML config file at path.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// loadConfigFile populates c.Config from path, or from the default location
// when path is empty. A missing file at the default location is not an
// error; a file named explicitly must exist and parse.
func (c *CLI) loadConfigFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = configPath()
		if path == "" {
			return nil
		}
	}

	cfg, err := loadConfig(path)
	switch {
	case err == nil:
		c.Config = cfg
	case explicit:
		return err
	case !os.IsNotExist(err):
		c.Logger.Warn("ignoring config file", "path", path, "err", err)
	}
	return nil
}

// applyConfig overlays config file values onto flags the user left unset.
// Commands without a given flag are unaffected.
func (c *CLI) applyConfig(cmd *cobra.Command) {
	values := map[string]string{
		"format":           c.Config.Format,
		"addr":             c.Config.Serve.Addr,
		"redis":            c.Config.Serve.RedisURL,
		"mongo":            c.Config.Serve.MongoURI,
		"mongo-db":         c.Config.Serve.MongoDatabase,
		"mongo-collection": c.Config.Serve.MongoCollection,
	}
	if c.Config.Limit != 0 {
		values["limit"] = strconv.Itoa(c.Config.Limit)
	}

	for name, value := range values {
		if value == "" {
			continue
		}
		flag := cmd.Flags().Lookup(name)
		if flag == nil || flag.Changed {
			continue
		}
		_ = cmd.Flags().Set(name, value)
	}
}

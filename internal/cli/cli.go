// Package cli implements the tilebeat command-line interface.
//
// This package provides commands for computing note timings from A Dance of
// Fire and Ice level files, inspecting per-tile state, batch processing, and
// serving the HTTP API. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - times: Compute per-tile hit timestamps for a level
//   - info: Show level metadata and timing summary
//   - inspect: Browse per-tile engine state interactively
//   - batch: Process many levels concurrently
//   - serve: Run the HTTP API server
//   - cache: Manage the local level and timing cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// held on the CLI struct, attached to the command context, and handed to the
// pipeline runner.
//
// # Configuration
//
// Defaults for format, limit, cache directory, and serve endpoints can be
// set in ~/.config/tilebeat/config.toml (override with --config). Flags
// take precedence over the file.
//
// # Example
//
//	import "github.com/adofai-tools/tilebeat/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/adofai-tools/tilebeat/pkg/buildinfo"
	"github.com/adofai-tools/tilebeat/pkg/cache"
	"github.com/adofai-tools/tilebeat/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tilebeat"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config fileConfig
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		configFile string
		verbose    bool
	)

	root := &cobra.Command{
		Use:          "tilebeat",
		Short:        "Tilebeat computes note timings for A Dance of Fire and Ice levels",
		Long:         `Tilebeat reads .adofai level files and computes the millisecond hit time of every tile, accounting for speed changes, twirls, pauses, holds and multi-planet sections.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		// Persistent flags are only parsed once execution starts, so the
		// log level and config overlay apply here, not at construction.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := c.loadConfigFile(configFile); err != nil {
				return err
			}
			c.applyConfig(cmd)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.config/tilebeat/config.toml)")

	// Register all subcommands
	root.AddCommand(c.timesCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory, preferring the config file value.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	return defaultCacheDir()
}

// defaultCacheDir returns the cache directory using XDG standard
// (~/.cache/tilebeat/).
func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Source Helpers
// =============================================================================

// sourceOptions builds pipeline options from a CLI source argument, detecting
// whether it refers to a local file or a remote URL.
func sourceOptions(arg string, refresh bool) pipeline.Options {
	opts := pipeline.Options{Refresh: refresh}
	if isURL(arg) {
		opts.URL = arg
	} else {
		opts.Path = arg
	}
	return opts
}

// isURL reports whether arg names a remote source rather than a local file.
func isURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

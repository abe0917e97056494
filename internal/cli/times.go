package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	pkgio "github.com/adofai-tools/tilebeat/pkg/io"
	"github.com/adofai-tools/tilebeat/pkg/pipeline"
)

// timesCommand creates the times command for computing note timings.
func (c *CLI) timesCommand() *cobra.Command {
	var (
		format  string
		limit   int
		all     bool
		output  string
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "times [file-or-url]",
		Short: "Compute per-tile hit timestamps for a level",
		Long: `Compute the millisecond hit time of every tile in a level.

The source can be a local .adofai file or an http(s) URL. Remote levels and
computed timings are cached locally for faster subsequent runs.

Examples:
  tilebeat times level.adofai                    # First 20 tiles as text
  tilebeat times level.adofai --all              # Every tile
  tilebeat times level.adofai -f csv -o out.csv  # CSV export
  tilebeat times https://example.com/level.adofai`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				limit = -1
			}
			return c.runTimes(cmd.Context(), args[0], format, limit, output, refresh, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.DefaultFormat, "output format: text (default), json, csv")
	cmd.Flags().IntVarP(&limit, "limit", "n", pipeline.DefaultLimit, "number of tiles to print (text format)")
	cmd.Flags().BoolVar(&all, "all", false, "print every tile (same as --limit -1)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runTimes executes the pipeline for source and writes the result.
func (c *CLI) runTimes(ctx context.Context, source, format string, limit int, output string, refresh, noCache bool) error {
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := sourceOptions(source, refresh)
	opts.Format = format
	opts.Limit = limit
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Timing %s...", filepath.Base(source)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Timing failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "" {
		return pkgio.Write(result, os.Stdout, format, limit)
	}

	if err := pkgio.Export(result, output, format, limit); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Timings complete")
	printFile(output)
	printStats(result.Stats.TileCount, result.Stats.EventCount, result.CacheInfo.TimingsHit)
	printNewline()
	printNextStep("Inspect", "tilebeat inspect "+source)

	return nil
}

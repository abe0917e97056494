package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hako/durafmt"
	"github.com/spf13/cobra"

	pkgio "github.com/adofai-tools/tilebeat/pkg/io"
)

// shortUnits renders durations compactly (e.g. "1m 32s").
var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// infoCommand creates the info command for showing level metadata.
func (c *CLI) infoCommand() *cobra.Command {
	var (
		asJSON  bool
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "info [file-or-url]",
		Short: "Show level metadata and timing summary",
		Long: `Show a level's metadata together with its computed timing summary:
song, artist, BPM, pitch, tile count, total duration and the recommended
audio offset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), args[0], asJSON, refresh, noCache)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runInfo loads the level and prints its summary.
func (c *CLI) runInfo(ctx context.Context, source string, asJSON, refresh, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := sourceOptions(source, refresh)
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Reading level...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Read failed")
		return err
	}
	spinner.Stop()

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pkgio.NewReport(result))
	}

	info := result.Info

	title := info.Song
	if title == "" {
		title = filepath.Base(source)
	}
	printSuccess("%s", title)

	if info.Artist != "" {
		printKeyValue("Artist", info.Artist)
	}
	if info.Author != "" {
		printKeyValue("Author", info.Author)
	}
	printKeyValue("BPM", StyleNumber.Render(fmt.Sprintf("%.2f", info.BPM)))
	if info.Pitch != 100 {
		printKeyValue("Pitch", fmt.Sprintf("%.0f%% (%.2f effective BPM)",
			info.Pitch, result.Level.Settings.EffectiveBPM()))
	}
	printKeyValue("Offset", fmt.Sprintf("%d ms", info.Offset))
	if info.CountdownTicks > 0 {
		printKeyValue("Countdown", fmt.Sprintf("%d ticks", info.CountdownTicks))
	}
	printKeyValue("Tiles", StyleNumber.Render(fmt.Sprintf("%d", info.TotalTiles)))
	printKeyValue("Duration", formatDuration(info.TotalDuration))
	printKeyValue("Auto offset", fmt.Sprintf("%.2f ms", result.AutoOffset))
	printNewline()
	printStats(result.Stats.TileCount, result.Stats.EventCount, result.CacheInfo.TimingsHit)

	return nil
}

// formatDuration renders a duration in milliseconds as a short human string.
func formatDuration(ms float64) string {
	d := time.Duration(ms * float64(time.Millisecond)).Round(time.Millisecond)
	if d <= 0 {
		return "0s"
	}
	return durafmt.Parse(d).LimitFirstN(2).Format(shortUnits)
}

package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/adofai-tools/tilebeat/pkg/timing"
)

// inspectCommand creates the inspect command for browsing per-tile state.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain   bool
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file-or-url]",
		Short: "Browse per-tile engine state interactively",
		Long: `Browse the state the timing engine derives for every tile: destination
angle, effective BPM, rotation direction, extra hold rotations, midspin and
multi-planet flags, and the resulting hit time.

Use --plain to print the table directly instead of the interactive browser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], plain, refresh, noCache)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the table without the interactive browser")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runInspect loads the level and shows the tile state table.
func (c *CLI) runInspect(ctx context.Context, source string, plain, refresh, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := sourceOptions(source, refresh)
	opts.Logger = c.Logger

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	// Execute returns only the final timestamps. Rerun the engine passes to
	// keep the per-tile state they produce along the way.
	lv := result.Level
	tiles, markers := timing.DeriveTiles(lv.Angles)
	timing.ApplyEvents(tiles, markers, lv.Events, lv.Settings)
	timing.PropagateState(tiles, lv.Settings)
	times := timing.Integrate(tiles)

	if len(tiles) == 0 {
		printInfo("Level has no tiles")
		return nil
	}

	if plain {
		return writeTileTable(os.Stdout, tiles, times)
	}

	m := NewTileListModel(result.Info.Song, tiles, times)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/remeh/sizedwaitgroup"
	"github.com/spf13/cobra"

	pkgio "github.com/adofai-tools/tilebeat/pkg/io"
	"github.com/adofai-tools/tilebeat/pkg/pipeline"
)

// batchCommand creates the batch command for processing many levels.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		format      string
		outputDir   string
		concurrency int
		refresh     bool
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "batch [files-or-globs...]",
		Short: "Compute timings for many levels concurrently",
		Long: `Compute timings for many levels and write one output file per level.

Arguments may be file paths, glob patterns, or URLs. Output files are written
next to each level, or into --output-dir when set, with the format extension
replacing .adofai.

Examples:
  tilebeat batch levels/*.adofai
  tilebeat batch levels/*.adofai -f csv -d out/
  tilebeat batch a.adofai b.adofai --concurrency 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), args, format, outputDir, concurrency, refresh, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatJSON, "output format: json (default), csv, text")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "directory for output files (next to each level if empty)")
	cmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "maximum levels processed in parallel")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// batchResult records the outcome of one level for the summary.
type batchResult struct {
	source string
	output string
	tiles  int
	bytes  int64
	err    error
}

// runBatch expands the arguments, processes each level on a bounded worker
// pool, and prints a summary.
func (c *CLI) runBatch(ctx context.Context, args []string, format, outputDir string, concurrency int, refresh, noCache bool) error {
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}
	if concurrency < 1 {
		concurrency = 1
	}

	sources, err := expandSources(args)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no level files matched")
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	logger.Info("batch start", "levels", len(sources), "concurrency", concurrency)
	prog := newProgress(logger)

	var mu sync.Mutex
	results := make([]batchResult, 0, len(sources))

	swg := sizedwaitgroup.New(concurrency)
	for _, source := range sources {
		if ctx.Err() != nil {
			break
		}
		swg.Add()
		go func(source string) {
			defer swg.Done()
			res := c.processOne(ctx, runner, source, format, outputDir, refresh)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		}(source)
	}
	swg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	sort.Slice(results, func(i, j int) bool { return results[i].source < results[j].source })

	var ok, failed, tiles int
	var written int64
	for _, r := range results {
		if r.err != nil {
			failed++
			printError("%s: %v", r.source, r.err)
			continue
		}
		ok++
		tiles += r.tiles
		written += r.bytes
		printFile(r.output)
	}

	prog.done(fmt.Sprintf("Processed %d levels", ok))

	printNewline()
	if failed > 0 {
		printWarning("%d of %d levels failed", failed, len(results))
	}
	printSuccess("%d levels, %s tiles, %s written",
		ok, humanize.Comma(int64(tiles)), humanize.Bytes(uint64(written)))

	if failed > 0 {
		return fmt.Errorf("%d levels failed", failed)
	}
	return nil
}

// processOne runs the pipeline for a single source and writes its output file.
func (c *CLI) processOne(ctx context.Context, runner *pipeline.Runner, source, format, outputDir string, refresh bool) batchResult {
	res := batchResult{source: source}

	opts := sourceOptions(source, refresh)
	opts.Format = format
	opts.Limit = -1
	opts.Logger = loggerFromContext(ctx)

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		res.err = err
		return res
	}

	res.output = batchOutputPath(source, outputDir, format)
	if err := pkgio.Export(result, res.output, format, -1); err != nil {
		res.err = fmt.Errorf("write output: %w", err)
		return res
	}

	res.tiles = result.Stats.TileCount
	if fi, err := os.Stat(res.output); err == nil {
		res.bytes = fi.Size()
	}
	return res
}

// expandSources expands glob patterns into file paths. Plain paths and URLs
// pass through untouched.
func expandSources(args []string) ([]string, error) {
	var sources []string
	for _, arg := range args {
		if isURL(arg) || !strings.ContainsAny(arg, "*?[") {
			sources = append(sources, arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		sources = append(sources, matches...)
	}
	return sources, nil
}

// batchOutputPath derives the output file path for one level.
// Local levels default to a sibling file; URL levels default to the working
// directory.
func batchOutputPath(source, outputDir, format string) string {
	name := filepath.Base(source)
	if isURL(source) {
		if u, err := url.Parse(source); err == nil && u.Path != "" {
			name = path.Base(u.Path)
		}
	}
	name = strings.TrimSuffix(name, filepath.Ext(name)) + "." + formatExt(format)

	switch {
	case outputDir != "":
		return filepath.Join(outputDir, name)
	case isURL(source):
		return name
	default:
		return filepath.Join(filepath.Dir(source), name)
	}
}

// formatExt maps a pipeline format to its file extension.
func formatExt(format string) string {
	if format == pipeline.FormatText {
		return "txt"
	}
	return format
}

package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/adofai-tools/tilebeat/pkg/pipeline"
	"github.com/adofai-tools/tilebeat/pkg/timing"
)

// Report is the serialized form of a pipeline result.
type Report struct {
	Info        timing.Info `json:"info"`
	AutoOffset  float64     `json:"auto_offset_ms"`
	TileCount   int         `json:"tile_count"`
	Times       []float64   `json:"times_ms"`
	ContentHash string      `json:"content_hash,omitempty"`
}

// NewReport converts a pipeline result into its serialized form.
func NewReport(result *pipeline.Result) Report {
	return Report{
		Info:        result.Info,
		AutoOffset:  result.AutoOffset,
		TileCount:   len(result.Times),
		Times:       result.Times,
		ContentHash: result.ContentHash,
	}
}

// Write renders result to w in the given format (text, json or csv).
// The limit caps tile rows in text output; a negative limit prints all tiles.
func Write(result *pipeline.Result, w io.Writer, format string, limit int) error {
	switch format {
	case pipeline.FormatJSON:
		return WriteJSON(NewReport(result), w)
	case pipeline.FormatCSV:
		return WriteCSV(result.Times, w)
	case pipeline.FormatText:
		return WriteText(result, w, limit)
	default:
		return fmt.Errorf("unknown format: %q", format)
	}
}

// Export writes result to a file at path in the given format.
// This is a convenience wrapper around [Write] for file-based output.
func Export(result *pipeline.Result, path, format string, limit int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(result, f, format, limit)
}

// WriteJSON encodes a report as indented JSON and writes it to w.
// This format can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(rep Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteCSV writes one row per tile with the 1-based tile number and the hit
// time in milliseconds.
func WriteCSV(times []float64, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tile", "time_ms"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, tm := range times {
		row := []string{strconv.Itoa(i + 1), strconv.FormatFloat(tm, 'f', 2, 64)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText writes the classic calculator output: the level info block, the
// first limit tile timings, and the recommended auto offset. Tile numbers
// are 1-based. A negative limit prints every tile.
func WriteText(result *pipeline.Result, w io.Writer, limit int) error {
	var b strings.Builder

	b.WriteString(result.Info.String())
	b.WriteByte('\n')

	shown := len(result.Times)
	if limit >= 0 && limit < shown {
		shown = limit
	}
	if limit < 0 {
		b.WriteString("=== Note Timings ===\n")
	} else {
		fmt.Fprintf(&b, "=== Note Timings (first %d) ===\n", limit)
	}
	for i := 0; i < shown; i++ {
		fmt.Fprintf(&b, "Tile %3d: %8.2f ms\n", i+1, result.Times[i])
	}
	if rest := len(result.Times) - shown; rest > 0 {
		fmt.Fprintf(&b, "... (%d more tiles)\n", rest)
	}

	fmt.Fprintf(&b, "\nAuto Offset: %.2f ms\n", result.AutoOffset)

	_, err := io.WriteString(w, b.String())
	return err
}

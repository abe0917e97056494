package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line leaked at info level: %q", buf.String())
	}

	logger.Info("parsed level")
	if !strings.Contains(buf.String(), "parsed level") {
		t.Errorf("info line missing, got %q", buf.String())
	}
}

func TestNewLoggerDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)

	logger.Debug("cache probe")
	if !strings.Contains(buf.String(), "cache probe") {
		t.Errorf("debug line missing at debug level, got %q", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	time.Sleep(5 * time.Millisecond)
	prog.done("Processed 3 levels")

	out := buf.String()
	if !strings.Contains(out, "Processed 3 levels") {
		t.Errorf("done() output missing message: %q", out)
	}
	// Elapsed time is appended in parentheses.
	if !strings.Contains(out, "(") || !strings.Contains(out, ")") {
		t.Errorf("done() output missing elapsed duration: %q", out)
	}
}

func TestProgressElapsedGrows(t *testing.T) {
	prog := newProgress(log.Default())
	time.Sleep(5 * time.Millisecond)
	if prog.elapsed() <= 0 {
		t.Errorf("elapsed() = %v, want > 0", prog.elapsed())
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext() did not return the attached logger")
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext() on a bare context should fall back, not return nil")
	}
}

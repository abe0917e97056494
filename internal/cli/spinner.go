package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerInterval is the delay between animation frames.
const spinnerInterval = 100 * time.Millisecond

// spinnerFrames trace a dot orbiting a braille cell.
var spinnerFrames = []string{"⠈", "⠐", "⠠", "⢀", "⡀", "⠄", "⠂", "⠁"}

// Spinner animates a status line on stderr while a slow operation runs.
// It clears itself when stopped or when its context is cancelled, so it
// never leaves a partial line behind for the next print.
type Spinner struct {
	msg    string
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// newSpinnerWithContext creates a spinner bound to ctx. Cancelling ctx
// stops the animation without requiring a Stop call, which keeps
// interrupted commands from racing the shutdown path for the terminal.
func newSpinnerWithContext(ctx context.Context, msg string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{msg: msg, ctx: sctx, cancel: cancel}
}

// Start begins the animation. It must be paired with Stop or StopWithError
// unless the context is cancelled first.
func (s *Spinner) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-ticker.C:
				glyph := spinnerFrames[frame%len(spinnerFrames)]
				fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(glyph), StyleDim.Render(s.msg))
			}
		}
	}()
}

// Stop halts the animation and clears the status line. Calling Stop more
// than once is harmless.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		s.wg.Wait()
	})
}

// StopWithError halts the animation and prints msg as an error line.
func (s *Spinner) StopWithError(msg string) {
	s.Stop()
	printError("%s", msg)
}

// clear erases the status line. The width covers the glyph, the space and
// the message; messages are short command names, not user data.
func (s *Spinner) clear() {
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.msg)+4))
}

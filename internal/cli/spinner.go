package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// spinnerStyle supplies the frames and frame rate of the status spinner.
var spinnerStyle = spinner.Dot

// statusSpinner animates a one-line status on w while a slow step runs,
// such as computing a layout or converting a frame to SVG, PDF or PNG.
// It stops on Stop or when the parent context is cancelled.
type statusSpinner struct {
	w       io.Writer
	message string
	parent  context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
	mu      sync.Mutex
}

// startSpinner draws the first frame on w and keeps animating until the
// returned spinner is stopped or ctx is done.
func startSpinner(ctx context.Context, w io.Writer, message string) *statusSpinner {
	sctx, cancel := context.WithCancel(ctx)
	s := &statusSpinner{
		w:       w,
		message: message,
		parent:  ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	s.draw(0)
	go s.run(sctx)
	return s
}

func (s *statusSpinner) run(ctx context.Context) {
	defer close(s.stopped)
	fps := spinnerStyle.FPS
	if fps <= 0 {
		fps = 100 * time.Millisecond
	}
	ticker := time.NewTicker(fps)
	defer ticker.Stop()

	for i := 1; ; i++ {
		select {
		case <-ctx.Done():
			s.clearLine()
			return
		case <-ticker.C:
			s.draw(i)
		}
	}
}

func (s *statusSpinner) draw(i int) {
	frame := strings.TrimSpace(spinnerStyle.Frames[i%len(spinnerStyle.Frames)])
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *statusSpinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// Stop ends the animation and clears the status line. It is safe to call
// more than once.
func (s *statusSpinner) Stop() {
	s.once.Do(s.cancel)
	<-s.stopped
}

// Fail stops the spinner and prints message as an error.
func (s *statusSpinner) Fail(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended the spinner.
func (s *statusSpinner) Cancelled() bool {
	return s.parent.Err() != nil
}

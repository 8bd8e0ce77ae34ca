// Package cli implements the webgraph command-line interface.
//
// The commands wrap a headless session: render draws a frame as DOT or SVG,
// layout positions nodes with a cached layout algorithm, serve hosts sessions
// over HTTP, and explore opens an interactive terminal view with undo and
// redo. The CLI is built using cobra and logs with charmbracelet/log.
//
// # Commands
//
//   - render: Draw a graph frame as DOT, SVG, PDF or PNG
//   - layout: Apply circular, random or force layout (cached)
//   - serve: Run the HTTP session API
//   - explore: Interactive terminal session
//   - cache: Manage the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Applied force layout to 42 nodes (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

package session

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/webgraph/pkg/observability"
)

// Option configures a [Session].
type Option func(*Session)

// WithLogger sets the logger for lifecycle and history messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithHooks sets the observability hooks.
func WithHooks(h observability.SessionHooks) Option {
	return func(s *Session) {
		if h != nil {
			s.hooks = h
		}
	}
}

// WithClock sets the time source used to start layout transitions.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// RecordOption adjusts how a single mutation is recorded.
type RecordOption func(*recording)

type recording struct {
	skip bool
}

// NoHistory applies a mutation without recording it.
func NoHistory() RecordOption {
	return func(r *recording) { r.skip = true }
}

// Package observability provides hooks for metrics and logging.
//
// Hooks are plain interfaces with no-op defaults. They are injected where
// they are used (a session, a server) instead of being registered globally,
// so two sessions in one process can report to different backends.
//
//	reg := prometheus.NewRegistry()
//	hooks := observability.NewPrometheusHooks(reg)
//	s := session.New(g, cfg, session.WithHooks(hooks))
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Session Hooks
// =============================================================================

// SessionHooks receives events from an interactive graph session.
type SessionHooks interface {
	// OnAction records a completed mutation of the given action kind.
	OnAction(kind string, recorded bool)

	// OnUndo and OnRedo record a history step. ok is false when the log had
	// nothing to step over or the entry was malformed.
	OnUndo(kind string, ok bool)
	OnRedo(kind string, ok bool)

	// OnHighlight records the size of a hover highlight.
	OnHighlight(nodes, edges int)

	// OnLabels records how many labels a frame selected.
	OnLabels(count int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from layout caching.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// Hooks bundles every hook category.
type Hooks interface {
	SessionHooks
	CacheHooks
	HTTPHooks
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHooks implements every hook interface and does nothing.
type NoopHooks struct{}

func (NoopHooks) OnAction(string, bool) {}
func (NoopHooks) OnUndo(string, bool)   {}
func (NoopHooks) OnRedo(string, bool)   {}
func (NoopHooks) OnHighlight(int, int)  {}
func (NoopHooks) OnLabels(int)          {}

func (NoopHooks) OnCacheHit(context.Context, string)      {}
func (NoopHooks) OnCacheMiss(context.Context, string)     {}
func (NoopHooks) OnCacheSet(context.Context, string, int) {}

func (NoopHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var _ Hooks = NoopHooks{}

package session

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/webgraph/pkg/camera"
	"github.com/matzehuels/webgraph/pkg/config"
	"github.com/matzehuels/webgraph/pkg/errors"
	"github.com/matzehuels/webgraph/pkg/events"
	"github.com/matzehuels/webgraph/pkg/graph"
	"github.com/matzehuels/webgraph/pkg/highlight"
	"github.com/matzehuels/webgraph/pkg/history"
	"github.com/matzehuels/webgraph/pkg/layout"
	"github.com/matzehuels/webgraph/pkg/observability"
	"github.com/matzehuels/webgraph/pkg/render"
	"github.com/matzehuels/webgraph/pkg/store"
)

// Graph is the graph store contract a session edits.
// [*store.Graph] satisfies it.
type Graph interface {
	render.Graph
	highlight.Graph
	layout.Graph
	graph.Source

	MergeNode(key string, attrs store.Attributes) (bool, error)
	ReplaceNodeAttributes(key string, attrs store.Attributes) error
	DropNode(key string) error
	NodeAttributes(key string) (store.Attributes, error)

	HasEdge(key string) bool
	AddEdgeWithKey(key, source, target string, attrs store.Attributes) error
	MergeEdge(source, target string, attrs store.Attributes) (string, bool, error)
	MergeEdgeWithKey(key, source, target string, attrs store.Attributes) (bool, error)
	ReplaceEdgeAttributes(key string, attrs store.Attributes) error
	DropEdge(key string) error
	ClearEdges()
	EdgeAttributes(key string) (store.Attributes, error)
	Edges(node string) []string
}

var _ Graph = (*store.Graph)(nil)

// Session is an interactive view of one graph. See the package
// documentation for its lifecycle.
type Session struct {
	g     Graph
	cfg   config.Config
	log   *log.Logger
	hooks observability.SessionHooks
	now   func() time.Time

	active   bool
	renderer render.Renderer
	history  *history.Manager[Action]
	emitter  *events.Emitter
	subs     []*events.Subscription

	hideEdges     bool
	justImportant bool
	backdrop      bool

	highlightedNodes *highlight.Set
	highlightedEdges *highlight.Set
	hovered          string

	anim *layout.Animation
}

// New creates an inactive session over g. The configuration is validated.
func New(g Graph, cfg config.Config, opts ...Option) (*Session, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "graph is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		g:                g,
		cfg:              cfg,
		log:              log.Default(),
		hooks:            observability.NoopHooks{},
		now:              time.Now,
		emitter:          events.NewEmitter(),
		hideEdges:        cfg.Render.HideEdges,
		justImportant:    cfg.Render.RenderJustImportantEdges,
		backdrop:         cfg.Render.RenderNodeBackdrop,
		highlightedNodes: highlight.NewSet(),
		highlightedEdges: highlight.NewSet(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// FromSerialized imports gs into a new store graph and creates a session
// over it.
func FromSerialized(gs graph.Graph, cfg config.Config, opts ...Option) (*Session, error) {
	g, err := graph.ToStore(gs)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "import graph")
	}
	return New(g, cfg, opts...)
}

// =============================================================================
// Lifecycle
// =============================================================================

// Start builds the renderer with factory, wires pointer events and makes the
// session active. A nil factory builds a [render.Headless]. History is
// created here when enabled, and the edge and backdrop toggles are read back
// from the renderer's settings. Emits [events.Rendered].
func (s *Session) Start(factory render.Factory) error {
	if s.active {
		return errors.New(errors.ErrCodeAlreadyActive, "session is already rendering")
	}
	if factory == nil {
		factory = render.HeadlessFactory
	}

	s.active = true
	s.renderer = factory(s.g, s.renderSettings())
	s.bindEvents()

	if s.cfg.EnableHistory {
		var opts []history.Option
		if s.cfg.HistoryLimit > 0 {
			opts = append(opts, history.WithLimit(s.cfg.HistoryLimit))
		}
		s.history = history.New[Action](opts...)
	}

	rs := s.renderer.Settings()
	s.hideEdges = rs.HideEdges
	s.justImportant = rs.RenderJustImportantEdges
	s.backdrop = rs.RenderNodeBackdrop

	s.renderer.Refresh()
	s.log.Debug("session started", "nodes", s.g.Order(), "edges", s.g.Size(), "history", s.history != nil)
	s.emitter.Emit(events.Event{Type: events.Rendered})
	return nil
}

// Stop kills the renderer and returns to INACTIVE. Caller listeners,
// highlight state, the hovered node, history and a running layout
// transition are all discarded. Stopping an inactive session does nothing.
func (s *Session) Stop() {
	if !s.active {
		return
	}
	for _, sub := range s.subs {
		sub.Close()
	}
	s.subs = nil
	if s.anim != nil {
		s.anim.Stop()
		s.anim = nil
	}
	s.renderer.NodeEvents().RemoveAll()
	s.renderer.Captor().RemoveAll()
	s.renderer.Kill()
	s.renderer = nil
	s.active = false

	s.emitter.RemoveAll()
	s.highlightedNodes.Clear()
	s.highlightedEdges.Clear()
	s.hovered = ""
	s.history = nil
	s.log.Debug("session stopped")
}

// Active reports whether the session is rendering.
func (s *Session) Active() bool { return s.active }

// =============================================================================
// Accessors
// =============================================================================

// Graph returns the graph the session edits.
func (s *Session) Graph() Graph { return s.g }

// Config returns the current configuration, including changes made through
// mutations such as [Session.SetAppMode].
func (s *Session) Config() config.Config { return s.cfg }

// Renderer returns the active renderer, or nil while inactive.
func (s *Session) Renderer() render.Renderer { return s.renderer }

// Events returns the emitter callers subscribe to.
func (s *Session) Events() *events.Emitter { return s.emitter }

// Camera returns the renderer's camera. Camera moves are not recorded.
func (s *Session) Camera() (*camera.Camera, error) {
	if !s.active {
		return nil, errors.New(errors.ErrCodeInactive, "camera is unavailable while rendering is inactive")
	}
	return s.renderer.Camera(), nil
}

// AppMode returns the current application mode.
func (s *Session) AppMode() config.AppMode { return s.cfg.AppMode }

// EdgesHidden reports whether edge rendering is off.
func (s *Session) EdgesHidden() bool { return s.hideEdges }

// JustImportantEdges reports whether only important edges are drawn.
func (s *Session) JustImportantEdges() bool { return s.justImportant }

// NodeBackdrop reports whether cluster backdrops are drawn.
func (s *Session) NodeBackdrop() bool { return s.backdrop }

// History returns the action log, or nil when history is disabled or the
// session is inactive.
func (s *Session) History() *history.Manager[Action] { return s.history }

// ExportGraph snapshots the graph. With excludeEdges the result has no
// edges; the live graph is left untouched either way.
func (s *Session) ExportGraph(excludeEdges bool) graph.Graph {
	return graph.FromStore(s.g, excludeEdges)
}

// ExportLayoutMapping returns the current position of every node.
func (s *Session) ExportLayoutMapping() layout.Mapping {
	return layout.Export(s.g)
}

// HighlightNode asks the renderer to draw key with hover emphasis.
func (s *Session) HighlightNode(key string) {
	if s.renderer != nil {
		s.renderer.HighlightNode(key)
	}
}

// UnhighlightNode removes the emphasis set by [Session.HighlightNode].
func (s *Session) UnhighlightNode(key string) {
	if s.renderer != nil {
		s.renderer.UnhighlightNode(key)
	}
}

// =============================================================================
// Internal Helpers
// =============================================================================

// recording reports whether a mutation called with opts is recorded.
func (s *Session) recording(opts []RecordOption) bool {
	var r recording
	for _, o := range opts {
		o(&r)
	}
	return !r.skip && s.history != nil
}

// commit appends a to the history when record is set and reports the
// mutation to the hooks.
func (s *Session) commit(a Action, record bool) {
	if record {
		s.history.Append(a)
	}
	s.hooks.OnAction(string(a.Kind()), record)
}

// redraw re-reads the graph and repaints.
func (s *Session) redraw() {
	if s.renderer == nil {
		return
	}
	s.renderer.Process()
	s.renderer.Refresh()
}

// validHovered returns the hovered node if it still exists.
func (s *Session) validHovered() string {
	if s.hovered != "" && s.g.HasNode(s.hovered) {
		return s.hovered
	}
	return ""
}

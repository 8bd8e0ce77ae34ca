package session

import (
	"slices"
	"time"

	"github.com/matzehuels/webgraph/pkg/config"
	"github.com/matzehuels/webgraph/pkg/errors"
	"github.com/matzehuels/webgraph/pkg/events"
	"github.com/matzehuels/webgraph/pkg/graph"
	"github.com/matzehuels/webgraph/pkg/layout"
	"github.com/matzehuels/webgraph/pkg/render"
	"github.com/matzehuels/webgraph/pkg/store"
)

// =============================================================================
// Nodes
// =============================================================================

// MergeNodes adds missing nodes and merges attributes into existing ones.
// Nodes with an empty key are skipped. Returns false for empty input.
func (s *Session) MergeNodes(nodes []graph.Node, opts ...RecordOption) bool {
	if len(nodes) == 0 {
		return false
	}
	record := s.recording(opts)
	old := s.mergeNodes(nodes)
	s.redraw()
	s.commit(NodeUpsertAction{Old: old, New: cloneNodes(nodes)}, record)
	return true
}

// DropNodes removes nodes with every incident edge. Unknown keys are
// skipped. Returns false for empty input.
func (s *Session) DropNodes(keys []string, opts ...RecordOption) bool {
	if len(keys) == 0 {
		return false
	}
	record := s.recording(opts)
	old := s.dropNodes(keys)
	s.redraw()
	s.commit(NodeDropAction{Old: old}, record)
	return true
}

func (s *Session) mergeNodes(nodes []graph.Node) *NodeSnapshot {
	snap := &NodeSnapshot{}
	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.Key == "" {
			continue
		}
		if !seen[n.Key] {
			seen[n.Key] = true
			if attrs, err := s.g.NodeAttributes(n.Key); err == nil {
				snap.Nodes = append(snap.Nodes, graph.Node{Key: n.Key, Attributes: attrs})
			} else {
				snap.CreatedNodes = append(snap.CreatedNodes, n.Key)
			}
		}
		if _, err := s.g.MergeNode(n.Key, n.Attributes); err != nil {
			s.log.Warn("merge node failed", "node", n.Key, "err", err)
		}
	}
	return snap
}

// dropNodes snapshots each node together with its incident edges at the
// moment it is dropped, so edges between two dropped nodes appear once.
func (s *Session) dropNodes(keys []string) *NodeSnapshot {
	snap := &NodeSnapshot{}
	for _, key := range keys {
		attrs, err := s.g.NodeAttributes(key)
		if err != nil {
			continue
		}
		snap.Nodes = append(snap.Nodes, graph.Node{Key: key, Attributes: attrs})
		for _, e := range s.g.Edges(key) {
			if edge, ok := s.edgeOf(e); ok {
				snap.Edges = append(snap.Edges, edge)
			}
			s.highlightedEdges.Delete(e)
		}
		if err := s.g.DropNode(key); err != nil {
			s.log.Warn("drop node failed", "node", key, "err", err)
			continue
		}
		s.highlightedNodes.Delete(key)
	}
	return snap
}

// restoreNodes re-adds dropped nodes, then their edges under the original
// keys.
func (s *Session) restoreNodes(snap *NodeSnapshot) {
	for _, n := range snap.Nodes {
		if _, err := s.g.MergeNode(n.Key, n.Attributes); err != nil {
			s.log.Warn("restore node failed", "node", n.Key, "err", err)
		}
	}
	for _, e := range snap.Edges {
		if s.g.HasEdge(e.Key) {
			continue
		}
		if err := s.g.AddEdgeWithKey(e.Key, e.Source, e.Target, e.Attributes); err != nil {
			s.log.Warn("restore edge failed", "edge", e.Key, "err", err)
		}
	}
}

// dropCreated removes nodes a mutation created.
func (s *Session) dropCreated(keys []string) {
	for _, key := range keys {
		for _, e := range s.g.Edges(key) {
			s.highlightedEdges.Delete(e)
		}
		if s.g.HasNode(key) {
			_ = s.g.DropNode(key)
		}
		s.highlightedNodes.Delete(key)
	}
}

// =============================================================================
// Edges
// =============================================================================

// MergeEdges merges edges, creating missing endpoints. An edge without a key
// merges into the first edge between its ordered pair, or creates one.
// Edges whose key exists with other endpoints are skipped. Returns false for
// empty input.
func (s *Session) MergeEdges(edges []graph.Edge, opts ...RecordOption) bool {
	if len(edges) == 0 {
		return false
	}
	record := s.recording(opts)
	old, applied := s.mergeEdges(edges)
	s.redraw()
	s.commit(EdgeUpsertAction{Old: old, New: applied}, record)
	return true
}

// ReplaceEdges drops every edge, then merges edges. Empty input leaves the
// graph without edges and still returns true.
func (s *Session) ReplaceEdges(edges []graph.Edge, opts ...RecordOption) bool {
	record := s.recording(opts)

	old := &EdgeSnapshot{Edges: make([]EdgeState, 0, s.g.Size())}
	s.g.ForEachEdge(func(key, source, target string, attrs store.Attributes) {
		old.Edges = append(old.Edges, EdgeState{
			Edge:    graph.Edge{Key: key, Source: source, Target: target, Attributes: attrs.Clone()},
			Existed: true,
		})
	})
	s.g.ClearEdges()
	s.highlightedEdges.Clear()

	merged, applied := s.mergeEdges(edges)
	old.CreatedNodes = merged.CreatedNodes

	s.redraw()
	s.commit(EdgeReplaceAction{Old: old, New: applied}, record)
	return true
}

// mergeEdges applies edges and returns the pre-merge state of each touched
// edge plus the input with resolved keys.
func (s *Session) mergeEdges(edges []graph.Edge) (*EdgeSnapshot, []graph.Edge) {
	snap := &EdgeSnapshot{}
	applied := make([]graph.Edge, 0, len(edges))
	for _, e := range edges {
		if e.Source == "" || e.Target == "" {
			continue
		}

		key := e.Key
		if key == "" {
			if keys := s.g.EdgesBetween(e.Source, e.Target); len(keys) > 0 {
				key = keys[0]
			}
		}

		state := EdgeState{Edge: graph.Edge{Key: key, Source: e.Source, Target: e.Target}}
		if key != "" && s.g.HasEdge(key) {
			prev, ok := s.edgeOf(key)
			if !ok || prev.Source != e.Source || prev.Target != e.Target {
				s.log.Warn("edge endpoints differ, skipping", "edge", key, "source", e.Source, "target", e.Target)
				continue
			}
			state = EdgeState{Edge: prev, Existed: true}
		}

		var created []string
		for _, n := range []string{e.Source, e.Target} {
			if !s.g.HasNode(n) && !slices.Contains(created, n) {
				created = append(created, n)
			}
		}

		var err error
		if key != "" {
			_, err = s.g.MergeEdgeWithKey(key, e.Source, e.Target, e.Attributes)
		} else {
			key, _, err = s.g.MergeEdge(e.Source, e.Target, e.Attributes)
			state.Key = key
		}
		if err != nil {
			s.log.Warn("merge edge failed", "source", e.Source, "target", e.Target, "err", err)
			continue
		}

		snap.Edges = append(snap.Edges, state)
		snap.CreatedNodes = append(snap.CreatedNodes, created...)
		applied = append(applied, graph.Edge{
			Key:        key,
			Source:     e.Source,
			Target:     e.Target,
			Attributes: e.Attributes.Clone(),
		})
	}
	return snap, applied
}

// revertEdgeMerge walks the snapshot backwards, restoring overwritten
// attributes and dropping created edges, then drops created nodes.
func (s *Session) revertEdgeMerge(snap *EdgeSnapshot) {
	for i := len(snap.Edges) - 1; i >= 0; i-- {
		st := snap.Edges[i]
		if st.Existed {
			if err := s.g.ReplaceEdgeAttributes(st.Key, st.Attributes); err != nil {
				s.log.Warn("restore edge failed", "edge", st.Key, "err", err)
			}
			continue
		}
		if s.g.HasEdge(st.Key) {
			_ = s.g.DropEdge(st.Key)
		}
		s.highlightedEdges.Delete(st.Key)
	}
	s.dropCreated(snap.CreatedNodes)
}

// revertEdgeReplace restores the edge set a replacement discarded.
func (s *Session) revertEdgeReplace(snap *EdgeSnapshot) {
	s.g.ClearEdges()
	s.highlightedEdges.Clear()
	s.dropCreated(snap.CreatedNodes)
	for _, st := range snap.Edges {
		if err := s.g.AddEdgeWithKey(st.Key, st.Source, st.Target, st.Attributes); err != nil {
			s.log.Warn("restore edge failed", "edge", st.Key, "err", err)
		}
	}
}

func (s *Session) edgeOf(key string) (graph.Edge, bool) {
	source, target, ok := s.g.Endpoints(key)
	if !ok {
		return graph.Edge{}, false
	}
	attrs, err := s.g.EdgeAttributes(key)
	if err != nil {
		return graph.Edge{}, false
	}
	return graph.Edge{Key: key, Source: source, Target: target, Attributes: attrs}, true
}

// =============================================================================
// Edge Rendering
// =============================================================================

// SetEdgesHidden turns edge rendering off or on.
func (s *Session) SetEdgesHidden(hidden bool, opts ...RecordOption) bool {
	record := s.recording(opts)
	old := s.hideEdges
	s.hideEdges = hidden
	s.applyToggles()
	s.commit(EdgeRenderToggleAction{Old: &old, New: &hidden}, record)
	return true
}

// ToggleEdgeRendering flips edge visibility.
func (s *Session) ToggleEdgeRendering(opts ...RecordOption) bool {
	return s.SetEdgesHidden(!s.hideEdges, opts...)
}

// SetJustImportantEdges restricts rendering to important edges, or lifts
// the restriction. Either way edges become visible.
func (s *Session) SetJustImportantEdges(just bool, opts ...RecordOption) bool {
	record := s.recording(opts)
	old := &EdgeRendering{JustImportant: s.justImportant, HideEdges: s.hideEdges}
	s.justImportant = just
	s.hideEdges = false
	s.applyToggles()
	s.commit(ImportantEdgeRenderToggleAction{
		Old: old,
		New: &EdgeRendering{JustImportant: just},
	}, record)
	return true
}

// ToggleJustImportantEdgeRendering flips just-important edge rendering.
func (s *Session) ToggleJustImportantEdgeRendering(opts ...RecordOption) bool {
	return s.SetJustImportantEdges(!s.justImportant, opts...)
}

// SetNodeBackdropRendering turns cluster backdrops on or off. Non-nil
// colors replace the cluster palette. Not recorded.
func (s *Session) SetNodeBackdropRendering(enabled bool, colors map[int]string) (bool, error) {
	if !s.active {
		return false, errors.New(errors.ErrCodeInactive, "backdrop rendering requires an active session")
	}
	s.backdrop = enabled
	if colors != nil {
		s.renderer.Settings().ClusterColors = colors
	}
	s.applyToggles()
	return true, nil
}

// ToggleNodeBackdropRendering flips backdrop rendering.
func (s *Session) ToggleNodeBackdropRendering(colors map[int]string) (bool, error) {
	return s.SetNodeBackdropRendering(!s.backdrop, colors)
}

func (s *Session) applyToggles() {
	if s.renderer == nil {
		return
	}
	st := s.renderer.Settings()
	st.HideEdges = s.hideEdges
	st.RenderJustImportantEdges = s.justImportant
	st.RenderNodeBackdrop = s.backdrop
	s.redraw()
}

// =============================================================================
// Modes
// =============================================================================

// SetAndApplyDefaultNodeType changes the shape of nodes without an explicit
// type. Returns false while inactive or for an unknown type.
func (s *Session) SetAndApplyDefaultNodeType(t render.NodeType, opts ...RecordOption) bool {
	if s.renderer == nil {
		return false
	}
	nt, err := render.ParseNodeType(string(t))
	if err != nil {
		s.log.Warn("ignoring node type", "type", t, "err", err)
		return false
	}
	record := s.recording(opts)
	old := s.cfg.DefaultNodeType
	s.applyNodeType(nt)
	s.commit(NodeTypeAction{Old: old, New: nt}, record)
	return true
}

func (s *Session) applyNodeType(t render.NodeType) {
	s.cfg.DefaultNodeType = t
	if s.renderer != nil {
		s.renderer.Settings().DefaultNodeType = t
		s.redraw()
	}
}

// SetAppMode switches between static and dynamic mode. Returns false for
// an unknown mode.
func (s *Session) SetAppMode(mode config.AppMode, opts ...RecordOption) bool {
	m, err := config.ParseAppMode(string(mode))
	if err != nil {
		s.log.Warn("ignoring app mode", "mode", mode, "err", err)
		return false
	}
	record := s.recording(opts)
	old := s.cfg.AppMode
	s.cfg.AppMode = m
	s.commit(AppModeAction{Old: old, New: m}, record)
	return true
}

// =============================================================================
// Layout
// =============================================================================

// SetAndApplyLayout computes positions with fn and moves nodes there. See
// [Session.ApplyMapping].
func (s *Session) SetAndApplyLayout(fn layout.Func, lo layout.Options, opts ...RecordOption) bool {
	if fn == nil {
		return false
	}
	return s.ApplyMapping(fn(s.g, lo), opts...)
}

// ApplyMapping moves nodes to m. While active with a positive animation
// duration the move is a transition advanced by [Session.Tick]; otherwise
// positions change at once. Either way [events.SyncLayoutCompleted] is
// emitted when nodes arrive. A running transition is stopped first.
// Returns false for an empty mapping.
func (s *Session) ApplyMapping(m layout.Mapping, opts ...RecordOption) bool {
	if len(m) == 0 {
		return false
	}
	record := s.recording(opts)
	old := layout.Export(s.g)
	s.moveTo(m)
	s.commit(LayoutAction{Old: old, New: m}, record)
	return true
}

// Tick advances a running layout transition to now and reports whether it
// is still running.
func (s *Session) Tick(now time.Time) bool {
	if s.anim == nil {
		return false
	}
	done := s.anim.Step(s.g, now)
	s.redraw()
	if !done {
		return true
	}
	s.anim = nil
	s.emitter.Emit(events.Event{Type: events.SyncLayoutCompleted})
	return false
}

// Animating reports whether a layout transition is running.
func (s *Session) Animating() bool { return s.anim != nil }

func (s *Session) moveTo(m layout.Mapping) {
	if s.anim != nil {
		s.anim.Stop()
		s.anim = nil
	}
	d := s.cfg.Render.AnimationDuration()
	if !s.active || d <= 0 {
		layout.Apply(s.g, m)
		s.redraw()
		s.emitter.Emit(events.Event{Type: events.SyncLayoutCompleted})
		return
	}
	s.anim = layout.NewAnimation(s.g, m, s.now(), d, nil)
}

// =============================================================================
// Internal Helpers
// =============================================================================

func cloneNodes(nodes []graph.Node) []graph.Node {
	out := make([]graph.Node, len(nodes))
	for i, n := range nodes {
		out[i] = graph.Node{Key: n.Key, Attributes: n.Attributes.Clone()}
	}
	return out
}

package session

import (
	"github.com/matzehuels/webgraph/pkg/config"
	"github.com/matzehuels/webgraph/pkg/events"
	"github.com/matzehuels/webgraph/pkg/highlight"
	"github.com/matzehuels/webgraph/pkg/labels"
	"github.com/matzehuels/webgraph/pkg/render"
	"github.com/matzehuels/webgraph/pkg/store"
)

// =============================================================================
// Renderer Settings
// =============================================================================

func (s *Session) renderSettings() render.Settings {
	st := render.DefaultSettings()
	st.DefaultNodeType = s.cfg.DefaultNodeType
	st.LabelRenderedSizeThreshold = s.cfg.Render.LabelRenderedSizeThreshold
	st.HideEdges = s.hideEdges
	st.RenderJustImportantEdges = s.justImportant
	st.RenderNodeBackdrop = s.backdrop
	st.ClusterColors = s.cfg.Render.Clusters()
	st.DisableHover = s.cfg.DisableHover

	if sel := labels.For(s.cfg.LabelSelector); sel != nil {
		st.LabelSelector = func(p labels.Params) []string {
			out := sel(p)
			s.hooks.OnLabels(len(out))
			return out
		}
	}

	if s.cfg.HighlightSubGraphOnHover {
		st.NodeReducer = s.reduceNode
		st.EdgeReducer = s.reduceEdge
		st.ZIndex = true
	}
	return st
}

func (s *Session) colors() highlight.Colors {
	return highlight.Colors{
		Primary:   s.cfg.SubGraphHighlightColor,
		SecondHop: s.cfg.SecondHopColor(),
	}
}

// reduceNode paints highlighted nodes above the rest.
func (s *Session) reduceNode(key string, d render.NodeDisplay) render.NodeDisplay {
	if s.highlightedNodes.Has(key) {
		d.Color = s.colors().NodeColor(s.g, s.validHovered(), key)
		d.Z = 1
	}
	return d
}

func (s *Session) reduceEdge(key string, d render.EdgeDisplay) render.EdgeDisplay {
	if s.highlightedEdges.Has(key) {
		d.Color = s.colors().EdgeColor(s.g, s.validHovered(), key)
		d.Z = 1
	}
	return d
}

// =============================================================================
// Highlight State
// =============================================================================

// HoveredNode returns the hovered node, or "" when nothing is hovered or the
// hovered node has since been dropped.
func (s *Session) HoveredNode() string { return s.validHovered() }

// HighlightedNodes returns the emphasized nodes, the hovered one included.
func (s *Session) HighlightedNodes() []string { return s.highlightedNodes.Keys() }

// HighlightedEdges returns the emphasized edges.
func (s *Session) HighlightedEdges() []string { return s.highlightedEdges.Keys() }

// hover replaces the highlight state with the neighborhood of node.
func (s *Session) hover(node string) {
	s.hovered = node
	s.highlightedNodes.Clear()
	s.highlightedEdges.Clear()

	if s.g.HasNode(node) {
		hidden, _ := s.g.NodeAttribute(node, store.AttrHidden)
		if !s.hideEdges && hidden != true {
			res := highlight.Compute(node, s.g, highlight.Options{
				JustImportantEdges:        s.justImportant,
				IncludeImportantNeighbors: s.cfg.IncludeImportantNeighbors,
				Bidirectional:             s.cfg.ImportantNeighborsBidirectional,
			})
			for _, k := range res.Nodes.Keys() {
				s.highlightedNodes.Add(k)
			}
			for _, k := range res.Edges.Keys() {
				s.highlightedEdges.Add(k)
			}
		}
		// The hovered node is emphasized even when no edges are drawn.
		s.highlightedNodes.Add(node)
	}

	s.hooks.OnHighlight(s.highlightedNodes.Len(), s.highlightedEdges.Len())
	s.redraw()
}

func (s *Session) unhover() {
	s.hovered = ""
	s.highlightedNodes.Clear()
	s.highlightedEdges.Clear()
	s.redraw()
}

// =============================================================================
// Event Wiring
// =============================================================================

func (s *Session) bindEvents() {
	ne := s.renderer.NodeEvents()
	s.subs = append(s.subs,
		ne.On(events.ClickNode, s.forward(events.Click)),
		ne.On(events.RightClickNode, s.forward(events.Click)),
		ne.On(events.DownNode, s.onDown),
		ne.On(events.EnterNode, s.onEnter),
		ne.On(events.LeaveNode, s.onLeave),
	)
}

func (s *Session) forward(t events.Type) events.Handler {
	return func(ev events.Event) {
		ev.Type = t
		s.emitter.Emit(ev)
	}
}

// onEnter reports mouseenter on the next pointer move and highlights the
// neighborhood of the entered node.
func (s *Session) onEnter(ev events.Event) {
	node := ev.Node
	s.renderer.Captor().Once(events.MouseMove, func(move events.Event) {
		s.emitter.Emit(events.Event{Type: events.MouseEnter, Node: node, Pointer: move.Pointer})
	})
	if s.cfg.HighlightSubGraphOnHover {
		s.hover(node)
		return
	}
	s.hovered = node
}

func (s *Session) onLeave(ev events.Event) {
	node := ev.Node
	s.renderer.Captor().Once(events.MouseMove, func(move events.Event) {
		s.emitter.Emit(events.Event{Type: events.MouseLeave, Node: node, Pointer: move.Pointer})
	})
	s.unhover()
}

// onDown reports mousedown. In dynamic mode a primary-button press also
// streams mousemove until release and drags the node with the camera frozen.
func (s *Session) onDown(ev events.Event) {
	s.emitter.Emit(events.Event{Type: events.MouseDown, Node: ev.Node, Pointer: ev.Pointer})
	if s.cfg.AppMode != config.AppModeDynamic || ev.Pointer.Button != 0 {
		return
	}

	node := ev.Node
	captor := s.renderer.Captor()
	cam := s.renderer.Camera()
	cam.Disable()

	move := captor.On(events.MouseMove, func(m events.Event) {
		s.emitter.Emit(events.Event{Type: events.MouseMove, Node: node, Pointer: m.Pointer})
		if !s.g.HasNode(node) {
			return
		}
		x, y := s.renderer.ViewportToGraph(m.Pointer)
		_ = s.g.SetNodeAttribute(node, store.AttrX, x)
		_ = s.g.SetNodeAttribute(node, store.AttrY, y)
		s.redraw()
	})

	var up *events.Subscription
	up = captor.On(events.MouseUp, func(events.Event) {
		move.Close()
		up.Close()
		cam.Enable()
	})
}

package render

import (
	"slices"

	"github.com/matzehuels/webgraph/pkg/camera"
	"github.com/matzehuels/webgraph/pkg/events"
	"github.com/matzehuels/webgraph/pkg/labels"
	"github.com/matzehuels/webgraph/pkg/store"
)

// Default viewport of a headless renderer, in pixels.
const (
	DefaultViewportWidth  = 800.0
	DefaultViewportHeight = 600.0
)

// Frame is one drawn picture: what a screen renderer would paint.
type Frame struct {
	Camera    camera.State  `json:"camera"`
	Nodes     []NodeDisplay `json:"nodes"`
	Edges     []EdgeDisplay `json:"edges"`
	Labels    []string      `json:"labels"`
	Hovered   string        `json:"hovered,omitempty"`
	Backdrops []Backdrop    `json:"backdrops,omitempty"`
}

// Headless is a renderer that draws into [Frame] values instead of a screen.
// It backs the CLI, the HTTP server and tests. Pointer input is injected with
// Enter, Leave, Click, RightClick, Down, Move and Up.
type Headless struct {
	g        Graph
	settings Settings
	cam      *camera.Camera

	nodeEvents *events.Emitter
	captor     *events.Emitter

	width, height float64

	highlighted map[string]bool
	hovered     string

	nodes     []NodeDisplay
	edges     []EdgeDisplay
	cache     map[string]labels.NodeData
	displayed []string

	frame  Frame
	frames int
	killed bool
}

var _ Renderer = (*Headless)(nil)

// NewHeadless creates a headless renderer and processes g once.
func NewHeadless(g Graph, s Settings) *Headless {
	h := &Headless{
		g:           g,
		settings:    s,
		cam:         camera.New(),
		nodeEvents:  events.NewEmitter(),
		captor:      events.NewEmitter(),
		width:       DefaultViewportWidth,
		height:      DefaultViewportHeight,
		highlighted: make(map[string]bool),
	}
	h.Process()
	return h
}

// HeadlessFactory is a [Factory] producing [Headless] renderers.
func HeadlessFactory(g Graph, s Settings) Renderer {
	return NewHeadless(g, s)
}

func (h *Headless) Camera() *camera.Camera            { return h.cam }
func (h *Headless) Settings() *Settings               { return &h.settings }
func (h *Headless) NodeEvents() *events.Emitter       { return h.nodeEvents }
func (h *Headless) Captor() *events.Emitter           { return h.captor }
func (h *Headless) Frame() Frame                      { return h.frame }
func (h *Headless) Frames() int                       { return h.frames }
func (h *Headless) Hovered() string                   { return h.hovered }
func (h *Headless) Killed() bool                      { return h.killed }
func (h *Headless) SetViewport(width, height float64) { h.width, h.height = width, height }

// Process rebuilds display data and the label cache from the graph.
func (h *Headless) Process() {
	if h.killed {
		return
	}
	s := &h.settings

	h.nodes = h.nodes[:0]
	h.cache = make(map[string]labels.NodeData)
	visible := make(map[string]bool)

	h.g.ForEachNode(func(key string, attrs store.Attributes) {
		d := h.nodeDisplay(key, attrs)
		if s.NodeReducer != nil {
			d = s.NodeReducer(key, d)
		}
		h.cache[key] = labels.NodeData{Size: d.Size, Hidden: d.Hidden, Important: d.Important}
		if d.Hidden {
			return
		}
		visible[key] = true
		h.nodes = append(h.nodes, d)
	})

	h.edges = h.edges[:0]
	if !s.HideEdges {
		h.g.ForEachEdge(func(key, source, target string, attrs store.Attributes) {
			if !visible[source] || !visible[target] {
				return
			}
			d := edgeDisplay(key, source, target, attrs)
			if s.RenderJustImportantEdges && !d.Important {
				return
			}
			if s.EdgeReducer != nil {
				d = s.EdgeReducer(key, d)
			}
			if d.Hidden {
				return
			}
			h.edges = append(h.edges, d)
		})
	}

	if s.ZIndex {
		slices.SortStableFunc(h.nodes, func(a, b NodeDisplay) int { return a.Z - b.Z })
		slices.SortStableFunc(h.edges, func(a, b EdgeDisplay) int { return a.Z - b.Z })
	}
}

// Refresh processes the graph and produces a new frame.
func (h *Headless) Refresh() {
	if h.killed {
		return
	}
	h.Process()
	s := &h.settings

	visible := make([]string, len(h.nodes))
	for i, n := range h.nodes {
		visible[i] = n.Key
	}

	selector := s.LabelSelector
	if selector == nil {
		selector = labels.Threshold(s.LabelRenderedSizeThreshold)
	}
	h.displayed = selector(labels.Params{
		Cache:     h.cache,
		Camera:    h.cam,
		Displayed: h.displayed,
		Visible:   visible,
	})

	f := Frame{
		Camera: h.cam.State(),
		Nodes:  slices.Clone(h.nodes),
		Edges:  slices.Clone(h.edges),
		Labels: slices.Clone(h.displayed),
	}
	if !s.DisableHover && h.hovered != "" && h.g.HasNode(h.hovered) {
		f.Hovered = h.hovered
	}
	if s.RenderNodeBackdrop {
		for _, n := range h.nodes {
			if c, ok := s.ClusterColors[n.Category]; ok {
				f.Backdrops = append(f.Backdrops, Backdrop{Node: n.Key, Color: c})
			}
		}
	}
	h.frame = f
	h.frames++
}

// Kill releases every listener. Later calls are ignored.
func (h *Headless) Kill() {
	h.killed = true
	h.nodeEvents.RemoveAll()
	h.captor.RemoveAll()
	h.hovered = ""
}

// ViewportToGraph maps a pixel position to graph coordinates around the
// camera center, scaled by the zoom ratio.
func (h *Headless) ViewportToGraph(p events.Pointer) (float64, float64) {
	st := h.cam.State()
	x := st.X + (p.X/h.width-0.5)*st.Ratio
	y := st.Y + (p.Y/h.height-0.5)*st.Ratio
	return x, y
}

// HighlightNode draws key with hover emphasis until UnhighlightNode.
func (h *Headless) HighlightNode(key string) {
	h.highlighted[key] = true
	h.Refresh()
}

// UnhighlightNode removes the emphasis set by HighlightNode.
func (h *Headless) UnhighlightNode(key string) {
	delete(h.highlighted, key)
	h.Refresh()
}

// =============================================================================
// Pointer Input
// =============================================================================

// Enter moves the pointer onto node, leaving the previously hovered node.
func (h *Headless) Enter(node string, p events.Pointer) {
	if h.hovered == node {
		return
	}
	h.Leave(p)
	h.hovered = node
	h.nodeEvents.Emit(events.Event{Type: events.EnterNode, Node: node, Pointer: p})
}

// Leave moves the pointer off the hovered node, if any.
func (h *Headless) Leave(p events.Pointer) {
	if h.hovered == "" {
		return
	}
	node := h.hovered
	h.hovered = ""
	h.nodeEvents.Emit(events.Event{Type: events.LeaveNode, Node: node, Pointer: p})
}

// Click reports a primary click on node.
func (h *Headless) Click(node string, p events.Pointer) {
	h.nodeEvents.Emit(events.Event{Type: events.ClickNode, Node: node, Pointer: p})
}

// RightClick reports a secondary click on node.
func (h *Headless) RightClick(node string, p events.Pointer) {
	p.Button = 2
	h.nodeEvents.Emit(events.Event{Type: events.RightClickNode, Node: node, Pointer: p})
}

// Down reports a button press on node.
func (h *Headless) Down(node string, p events.Pointer) {
	h.nodeEvents.Emit(events.Event{Type: events.DownNode, Node: node, Pointer: p})
}

// Move reports a pointer move anywhere on the canvas.
func (h *Headless) Move(p events.Pointer) {
	h.captor.Emit(events.Event{Type: events.MouseMove, Pointer: p})
}

// Up reports a button release anywhere on the canvas.
func (h *Headless) Up(p events.Pointer) {
	h.captor.Emit(events.Event{Type: events.MouseUp, Pointer: p})
}

// =============================================================================
// Internal Helpers
// =============================================================================

func (h *Headless) nodeDisplay(key string, attrs store.Attributes) NodeDisplay {
	d := NodeDisplay{
		Key:         key,
		Size:        DefaultNodeSize,
		Color:       DefaultNodeColor,
		Type:        h.settings.DefaultNodeType,
		Hidden:      attrs.Bool(store.AttrHidden),
		Important:   attrs.Bool(store.AttrImportant),
		Highlighted: h.highlighted[key],
	}
	if d.Type == "" {
		d.Type = NodeRing
	}
	d.X, _ = attrs.Float(store.AttrX)
	d.Y, _ = attrs.Float(store.AttrY)
	d.Z, _ = attrs.Int(store.AttrZ)
	d.Category, _ = attrs.Int(store.AttrCategory)
	if v, ok := attrs.Float(store.AttrSize); ok {
		d.Size = v
	}
	if v, ok := attrs.String(store.AttrColor); ok {
		d.Color = v
	}
	if v, ok := attrs.String(store.AttrLabel); ok {
		d.Label = v
	}
	if v, ok := attrs.String(store.AttrType); ok {
		if t, err := ParseNodeType(v); err == nil {
			d.Type = t
		}
	}
	return d
}

func edgeDisplay(key, source, target string, attrs store.Attributes) EdgeDisplay {
	d := EdgeDisplay{
		Key:       key,
		Source:    source,
		Target:    target,
		Color:     DefaultEdgeColor,
		Hidden:    attrs.Bool(store.AttrHidden),
		Important: attrs.Bool(store.AttrImportant),
	}
	d.Weight, _ = attrs.Float(store.AttrWeight)
	d.Z, _ = attrs.Int(store.AttrZ)
	if v, ok := attrs.String(store.AttrColor); ok {
		d.Color = v
	}
	return d
}

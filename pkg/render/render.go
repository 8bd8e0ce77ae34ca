package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/webgraph/pkg/camera"
	"github.com/matzehuels/webgraph/pkg/events"
	"github.com/matzehuels/webgraph/pkg/labels"
	"github.com/matzehuels/webgraph/pkg/store"
)

// =============================================================================
// Node Types
// =============================================================================

// NodeType is the shape a node is drawn with.
type NodeType string

// Node shapes.
const (
	NodeRing      NodeType = "ring"
	NodeCircle    NodeType = "circle"
	NodeRectangle NodeType = "rectangle"
	NodeTriangle  NodeType = "triangle"
)

// NodeTypes lists every supported shape.
var NodeTypes = []NodeType{NodeRing, NodeCircle, NodeRectangle, NodeTriangle}

// ParseNodeType parses a node shape, case-insensitively.
func ParseNodeType(s string) (NodeType, error) {
	t := NodeType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range NodeTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown node type %q", s)
}

// =============================================================================
// Display Data
// =============================================================================

// NodeDisplay is the drawable state of a node, after reducers ran.
type NodeDisplay struct {
	Key         string   `json:"key"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Size        float64  `json:"size"`
	Color       string   `json:"color"`
	Label       string   `json:"label,omitempty"`
	Type        NodeType `json:"type"`
	Category    int      `json:"category,omitempty"`
	Hidden      bool     `json:"hidden,omitempty"`
	Important   bool     `json:"important,omitempty"`
	Highlighted bool     `json:"highlighted,omitempty"`
	Z           int      `json:"z,omitempty"`
}

// EdgeDisplay is the drawable state of an edge, after reducers ran.
type EdgeDisplay struct {
	Key       string  `json:"key"`
	Source    string  `json:"source"`
	Target    string  `json:"target"`
	Color     string  `json:"color"`
	Weight    float64 `json:"weight,omitempty"`
	Hidden    bool    `json:"hidden,omitempty"`
	Important bool    `json:"important,omitempty"`
	Z         int     `json:"z,omitempty"`
}

// Backdrop is a colored halo drawn behind a node of a known cluster.
type Backdrop struct {
	Node  string `json:"node"`
	Color string `json:"color"`
}

// NodeReducer rewrites a node's display data before drawing.
type NodeReducer func(key string, d NodeDisplay) NodeDisplay

// EdgeReducer rewrites an edge's display data before drawing.
type EdgeReducer func(key string, d EdgeDisplay) EdgeDisplay

// =============================================================================
// Settings
// =============================================================================

// Default display values.
const (
	DefaultNodeColor                  = "#999999"
	DefaultEdgeColor                  = "#cccccc"
	DefaultNodeSize                   = 6.0
	DefaultLabelRenderedSizeThreshold = 6.0
)

// Settings is the bag through which the session injects behavior into a
// renderer. Renderers read it on every Process/Refresh, so changes take
// effect on the next frame.
type Settings struct {
	DefaultNodeType NodeType

	// LabelSelector picks labels each frame. Nil falls back to
	// labels.Threshold(LabelRenderedSizeThreshold).
	LabelSelector              labels.Selector
	LabelRenderedSizeThreshold float64

	NodeReducer NodeReducer
	EdgeReducer EdgeReducer

	// ZIndex orders drawables by their Z value.
	ZIndex bool

	HideEdges                bool
	RenderJustImportantEdges bool
	RenderNodeBackdrop       bool
	ClusterColors            map[int]string

	// DisableHover suppresses the hover emphasis of the node under the
	// pointer.
	DisableHover bool
}

// DefaultSettings returns settings with ring nodes and no reducers.
func DefaultSettings() Settings {
	return Settings{
		DefaultNodeType:            NodeRing,
		LabelRenderedSizeThreshold: DefaultLabelRenderedSizeThreshold,
	}
}

// =============================================================================
// Renderer Contract
// =============================================================================

// Graph is the read-only graph view a renderer draws.
// [*store.Graph] satisfies it.
type Graph interface {
	HasNode(key string) bool
	ForEachNode(fn func(key string, attrs store.Attributes))
	ForEachEdge(fn func(key, source, target string, attrs store.Attributes))
	NodeAttribute(key, name string) (any, bool)
}

var _ Graph = (*store.Graph)(nil)

// Renderer paints a graph and reports pointer events.
//
// NodeEvents carries node-scoped events (clickNode, rightClickNode, downNode,
// enterNode, leaveNode). Captor carries raw pointer events (mousemove,
// mouseup) that are not tied to a node.
type Renderer interface {
	Camera() *camera.Camera
	Settings() *Settings

	// Process re-reads the graph after structural or attribute changes.
	Process()
	// Refresh redraws with the current settings and camera.
	Refresh()
	// Kill releases the renderer; it must not be used afterwards.
	Kill()

	NodeEvents() *events.Emitter
	Captor() *events.Emitter

	// ViewportToGraph maps a pointer position to graph coordinates.
	ViewportToGraph(p events.Pointer) (x, y float64)

	HighlightNode(key string)
	UnhighlightNode(key string)
}

// Factory builds a renderer over g with initial settings s.
type Factory func(g Graph, s Settings) Renderer

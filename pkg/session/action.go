package session

import (
	"github.com/matzehuels/webgraph/pkg/config"
	"github.com/matzehuels/webgraph/pkg/graph"
	"github.com/matzehuels/webgraph/pkg/layout"
	"github.com/matzehuels/webgraph/pkg/render"
)

// Kind names the mutation an [Action] records.
type Kind string

// Action kinds.
const (
	KindAppMode                   Kind = "APP_MODE"
	KindNodeUpsert                Kind = "NODE_UPSERT"
	KindNodeDrop                  Kind = "NODE_DROP"
	KindEdgeUpsert                Kind = "EDGE_UPSERT"
	KindEdgeReplace               Kind = "EDGE_REPLACE"
	KindEdgeRenderToggle          Kind = "EDGE_RENDER_TOGGLE"
	KindImportantEdgeRenderToggle Kind = "IMPORTANT_EDGE_RENDER_TOGGLE"
	KindNodeType                  Kind = "NODE_TYPE"
	KindLayout                    Kind = "LAYOUT"
)

// Action is a recorded, reversible mutation. The set of implementations is
// closed: exactly the nine *Action types of this package.
//
// Old holds full snapshots of everything the mutation overwrote; New holds
// what is needed to apply it again. A nil payload field is treated as
// malformed and makes undo or redo of that entry report false.
type Action interface {
	Kind() Kind
	sealed()
}

// AppModeAction records a change of the application mode.
type AppModeAction struct {
	Old, New config.AppMode
}

// NodeUpsertAction records [Session.MergeNodes].
type NodeUpsertAction struct {
	Old *NodeSnapshot // attributes of pre-existing nodes, keys of created ones
	New []graph.Node  // the merged input
}

// NodeDropAction records [Session.DropNodes].
type NodeDropAction struct {
	Old *NodeSnapshot // dropped nodes with every incident edge
}

// EdgeUpsertAction records [Session.MergeEdges].
type EdgeUpsertAction struct {
	Old *EdgeSnapshot
	New []graph.Edge // the merged input with resolved keys
}

// EdgeReplaceAction records [Session.ReplaceEdges].
type EdgeReplaceAction struct {
	Old *EdgeSnapshot // every edge before the replacement
	New []graph.Edge  // the replacement with resolved keys
}

// EdgeRenderToggleAction records a change of edge visibility.
type EdgeRenderToggleAction struct {
	Old, New *bool // hide edges
}

// ImportantEdgeRenderToggleAction records a change of just-important edge
// rendering, which also unhides edges.
type ImportantEdgeRenderToggleAction struct {
	Old, New *EdgeRendering
}

// NodeTypeAction records a change of the default node type.
type NodeTypeAction struct {
	Old, New render.NodeType
}

// LayoutAction records a relayout as node positions before and after.
type LayoutAction struct {
	Old, New layout.Mapping
}

func (AppModeAction) Kind() Kind                   { return KindAppMode }
func (NodeUpsertAction) Kind() Kind                { return KindNodeUpsert }
func (NodeDropAction) Kind() Kind                  { return KindNodeDrop }
func (EdgeUpsertAction) Kind() Kind                { return KindEdgeUpsert }
func (EdgeReplaceAction) Kind() Kind               { return KindEdgeReplace }
func (EdgeRenderToggleAction) Kind() Kind          { return KindEdgeRenderToggle }
func (ImportantEdgeRenderToggleAction) Kind() Kind { return KindImportantEdgeRenderToggle }
func (NodeTypeAction) Kind() Kind                  { return KindNodeType }
func (LayoutAction) Kind() Kind                    { return KindLayout }

func (AppModeAction) sealed()                   {}
func (NodeUpsertAction) sealed()                {}
func (NodeDropAction) sealed()                  {}
func (EdgeUpsertAction) sealed()                {}
func (EdgeReplaceAction) sealed()               {}
func (EdgeRenderToggleAction) sealed()          {}
func (ImportantEdgeRenderToggleAction) sealed() {}
func (NodeTypeAction) sealed()                  {}
func (LayoutAction) sealed()                    {}

// NodeSnapshot is the state needed to restore nodes.
type NodeSnapshot struct {
	Nodes        []graph.Node `json:"nodes"`
	Edges        []graph.Edge `json:"edges,omitempty"`
	CreatedNodes []string     `json:"created_nodes,omitempty"`
}

// EdgeSnapshot is the state needed to restore edges.
type EdgeSnapshot struct {
	Edges        []EdgeState `json:"edges"`
	CreatedNodes []string    `json:"created_nodes,omitempty"`
}

// EdgeState is an edge as it was before a merge. Existed is false for
// edges the merge created.
type EdgeState struct {
	graph.Edge
	Existed bool `json:"existed"`
}

// EdgeRendering is the pair of edge visibility flags.
type EdgeRendering struct {
	JustImportant bool `json:"just_important"`
	HideEdges     bool `json:"hide_edges"`
}

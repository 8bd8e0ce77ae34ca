package graph

import (
	"fmt"

	"github.com/matzehuels/webgraph/pkg/store"
)

// =============================================================================
// Graph - Serialized Form
// =============================================================================

// Graph is the serialized {nodes, edges} form of a [store.Graph].
// Used for export, import, API payloads and the batch mutation inputs of a
// session.
//
// The format is designed for round-trip fidelity: export → import → export
// produces identical results, including edge keys of multi-edges.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// =============================================================================
// Node
// =============================================================================

// Node is a node key with its attribute bag.
type Node struct {
	Key        string           `json:"key"`
	Attributes store.Attributes `json:"attributes,omitempty"`
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed edge. Key is optional on input; an empty key lets the
// store derive one from the endpoints. Exported edges always carry their key.
type Edge struct {
	Key        string           `json:"key,omitempty"`
	Source     string           `json:"source"`
	Target     string           `json:"target"`
	Attributes store.Attributes `json:"attributes,omitempty"`
}

// =============================================================================
// Store ↔ Graph Conversion
// =============================================================================

// Source is the read access [FromStore] needs. [*store.Graph] satisfies it.
type Source interface {
	Order() int
	Size() int
	ForEachNode(fn func(key string, attrs store.Attributes))
	ForEachEdge(fn func(key, source, target string, attrs store.Attributes))
}

var _ Source = (*store.Graph)(nil)

// FromStore snapshots a graph in iteration order. Attribute bags are
// copied, so the result stays valid while the store keeps changing. With
// excludeEdges the edge list is empty; the store itself is not touched.
func FromStore(g Source, excludeEdges bool) Graph {
	out := Graph{
		Nodes: make([]Node, 0, g.Order()),
		Edges: []Edge{},
	}

	g.ForEachNode(func(key string, attrs store.Attributes) {
		out.Nodes = append(out.Nodes, Node{Key: key, Attributes: attrs.Clone()})
	})

	if excludeEdges {
		return out
	}

	out.Edges = make([]Edge, 0, g.Size())
	g.ForEachEdge(func(key, source, target string, attrs store.Attributes) {
		out.Edges = append(out.Edges, Edge{
			Key:        key,
			Source:     source,
			Target:     target,
			Attributes: attrs.Clone(),
		})
	})
	return out
}

// ToStore builds a new store graph. Returns an error for duplicate keys or
// edges referencing unknown nodes.
func ToStore(gs Graph) (*store.Graph, error) {
	g := store.New()

	for _, n := range gs.Nodes {
		if err := g.AddNode(n.Key, n.Attributes); err != nil {
			return nil, fmt.Errorf("add node %s: %w", n.Key, err)
		}
	}

	for _, e := range gs.Edges {
		var err error
		if e.Key != "" {
			err = g.AddEdgeWithKey(e.Key, e.Source, e.Target, e.Attributes)
		} else {
			_, err = g.AddEdge(e.Source, e.Target, e.Attributes)
		}
		if err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", e.Source, e.Target, err)
		}
	}

	return g, nil
}

// NodeKeys returns the keys of all nodes in order.
func (g Graph) NodeKeys() []string {
	keys := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		keys[i] = n.Key
	}
	return keys
}

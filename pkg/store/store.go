package store

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidKey is returned when a node or edge key is empty.
	ErrInvalidKey = errors.New("key must not be empty")

	// ErrDuplicateNode is returned by [Graph.AddNode] when the key is taken.
	ErrDuplicateNode = errors.New("duplicate node key")

	// ErrDuplicateEdge is returned by [Graph.AddEdgeWithKey] when the key is taken.
	ErrDuplicateEdge = errors.New("duplicate edge key")

	// ErrNodeNotFound is returned when a node key does not exist.
	ErrNodeNotFound = errors.New("node not found")

	// ErrEdgeNotFound is returned when an edge key does not exist.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrUnknownSource is returned by the Add* edge methods when the
	// source node does not exist. Merge* methods create it instead.
	ErrUnknownSource = errors.New("unknown source node")

	// ErrUnknownTarget is returned by the Add* edge methods when the
	// target node does not exist. Merge* methods create it instead.
	ErrUnknownTarget = errors.New("unknown target node")

	// ErrEndpointMismatch is returned by [Graph.MergeEdgeWithKey] when the key
	// already names an edge between a different pair of nodes.
	ErrEndpointMismatch = errors.New("edge key bound to different endpoints")
)

type nodeEntry struct {
	attrs    Attributes
	incident []string            // edge keys, insertion order
	out      map[string][]string // target -> edge keys
	in       map[string][]string // source -> edge keys
}

type edgeEntry struct {
	source string
	target string
	attrs  Attributes
}

// Graph is a mutable, attributed, directed multigraph.
//
// Nodes and edges are addressed by string keys. Lookups are O(1) and neighbor
// iteration is O(degree). Edges are directed, but neighbor queries look in both
// directions because the graph is displayed as undirected. Several edges may
// connect the same ordered pair; edges added without an explicit key receive an
// implicit key derived from their endpoints and multiplicity ("a->b", "a->b#1").
//
// Iteration order is insertion order, which keeps exports, highlights and label
// tiers deterministic.
//
// The zero value is not usable; use New. Graph is not safe for concurrent use
// without external synchronization.
type Graph struct {
	nodes     map[string]*nodeEntry
	nodeOrder []string
	edges     map[string]*edgeEntry
	edgeOrder []string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*nodeEntry),
		edges: make(map[string]*edgeEntry),
	}
}

// Order returns the number of nodes.
func (g *Graph) Order() int { return len(g.nodes) }

// Size returns the number of edges.
func (g *Graph) Size() int { return len(g.edges) }

// =============================================================================
// Nodes
// =============================================================================

// HasNode reports whether a node with the given key exists.
func (g *Graph) HasNode(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

// AddNode adds a node. Returns ErrInvalidKey for an empty key and
// ErrDuplicateNode if the key already exists. Attributes are copied.
func (g *Graph) AddNode(key string, attrs Attributes) error {
	if key == "" {
		return ErrInvalidKey
	}
	if g.HasNode(key) {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, key)
	}
	g.insertNode(key, attrs.Clone())
	return nil
}

// MergeNode adds the node if it is missing, otherwise merges attrs into the
// existing attributes (keys in attrs overwrite). Reports whether the node
// was created.
func (g *Graph) MergeNode(key string, attrs Attributes) (bool, error) {
	if key == "" {
		return false, ErrInvalidKey
	}
	if n, ok := g.nodes[key]; ok {
		n.attrs.Merge(attrs)
		return false, nil
	}
	g.insertNode(key, attrs.Clone())
	return true, nil
}

// ReplaceNodeAttributes swaps the whole attribute bag of an existing node.
func (g *Graph) ReplaceNodeAttributes(key string, attrs Attributes) error {
	n, ok := g.nodes[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, key)
	}
	n.attrs = attrs.Clone()
	return nil
}

// DropNode removes the node and every edge incident to it.
func (g *Graph) DropNode(key string) error {
	n, ok := g.nodes[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, key)
	}
	for _, e := range slices.Clone(n.incident) {
		g.removeEdge(e)
	}
	delete(g.nodes, key)
	g.nodeOrder = slices.DeleteFunc(g.nodeOrder, func(k string) bool { return k == key })
	return nil
}

// NodeAttributes returns a copy of the node's attributes.
func (g *Graph) NodeAttributes(key string) (Attributes, error) {
	n, ok := g.nodes[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, key)
	}
	return n.attrs.Clone(), nil
}

// NodeAttribute returns a single attribute value. The second result is false
// when the node or the attribute does not exist.
func (g *Graph) NodeAttribute(key, name string) (any, bool) {
	n, ok := g.nodes[key]
	if !ok {
		return nil, false
	}
	v, ok := n.attrs[name]
	return v, ok
}

// SetNodeAttribute sets a single attribute on an existing node.
func (g *Graph) SetNodeAttribute(key, name string, value any) error {
	n, ok := g.nodes[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, key)
	}
	n.attrs[name] = value
	return nil
}

// Nodes returns all node keys in insertion order.
func (g *Graph) Nodes() []string { return slices.Clone(g.nodeOrder) }

// ForEachNode calls fn for every node in insertion order. The attributes
// passed to fn are the live map and must not be modified.
func (g *Graph) ForEachNode(fn func(key string, attrs Attributes)) {
	for _, k := range g.nodeOrder {
		fn(k, g.nodes[k].attrs)
	}
}

// Degree returns the number of edges incident to the node.
func (g *Graph) Degree(key string) int {
	if n, ok := g.nodes[key]; ok {
		return len(n.incident)
	}
	return 0
}

func (g *Graph) insertNode(key string, attrs Attributes) {
	g.nodes[key] = &nodeEntry{
		attrs: attrs,
		out:   make(map[string][]string),
		in:    make(map[string][]string),
	}
	g.nodeOrder = append(g.nodeOrder, key)
}

// =============================================================================
// Edges
// =============================================================================

// HasEdge reports whether an edge with the given key exists.
func (g *Graph) HasEdge(key string) bool {
	_, ok := g.edges[key]
	return ok
}

// HasDirectedEdge reports whether at least one edge source→target exists.
func (g *Graph) HasDirectedEdge(source, target string) bool {
	n, ok := g.nodes[source]
	return ok && len(n.out[target]) > 0
}

// AddEdge adds an edge with an implicit key and returns that key.
// Both endpoints must exist.
func (g *Graph) AddEdge(source, target string, attrs Attributes) (string, error) {
	if err := g.checkEndpoints(source, target); err != nil {
		return "", err
	}
	key := g.implicitKey(source, target)
	g.insertEdge(key, source, target, attrs.Clone())
	return key, nil
}

// AddEdgeWithKey adds an edge with an explicit key. Both endpoints must exist.
func (g *Graph) AddEdgeWithKey(key, source, target string, attrs Attributes) error {
	if key == "" {
		return ErrInvalidKey
	}
	if g.HasEdge(key) {
		return fmt.Errorf("%w: %s", ErrDuplicateEdge, key)
	}
	if err := g.checkEndpoints(source, target); err != nil {
		return err
	}
	g.insertEdge(key, source, target, attrs.Clone())
	return nil
}

// MergeEdge merges attrs into the first edge source→target, or adds a new
// edge with an implicit key when none exists. Missing endpoints are created.
// Returns the key of the merged or created edge and whether it was created.
func (g *Graph) MergeEdge(source, target string, attrs Attributes) (string, bool, error) {
	if source == "" || target == "" {
		return "", false, ErrInvalidKey
	}
	if n, ok := g.nodes[source]; ok {
		if keys := n.out[target]; len(keys) > 0 {
			g.edges[keys[0]].attrs.Merge(attrs)
			return keys[0], false, nil
		}
	}
	g.ensureNode(source)
	g.ensureNode(target)
	key := g.implicitKey(source, target)
	g.insertEdge(key, source, target, attrs.Clone())
	return key, true, nil
}

// MergeEdgeWithKey merges attrs into the edge with the given key, or adds it.
// Missing endpoints are created. Returns ErrEndpointMismatch when the key
// already connects a different pair.
func (g *Graph) MergeEdgeWithKey(key, source, target string, attrs Attributes) (bool, error) {
	if key == "" || source == "" || target == "" {
		return false, ErrInvalidKey
	}
	if e, ok := g.edges[key]; ok {
		if e.source != source || e.target != target {
			return false, fmt.Errorf("%w: %s is %s->%s", ErrEndpointMismatch, key, e.source, e.target)
		}
		e.attrs.Merge(attrs)
		return false, nil
	}
	g.ensureNode(source)
	g.ensureNode(target)
	g.insertEdge(key, source, target, attrs.Clone())
	return true, nil
}

// ReplaceEdgeAttributes swaps the whole attribute bag of an existing edge.
func (g *Graph) ReplaceEdgeAttributes(key string, attrs Attributes) error {
	e, ok := g.edges[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEdgeNotFound, key)
	}
	e.attrs = attrs.Clone()
	return nil
}

// DropEdge removes a single edge.
func (g *Graph) DropEdge(key string) error {
	if !g.HasEdge(key) {
		return fmt.Errorf("%w: %s", ErrEdgeNotFound, key)
	}
	g.removeEdge(key)
	return nil
}

// ClearEdges removes every edge and keeps the nodes.
func (g *Graph) ClearEdges() {
	g.edges = make(map[string]*edgeEntry)
	g.edgeOrder = nil
	for _, n := range g.nodes {
		n.incident = nil
		n.out = make(map[string][]string)
		n.in = make(map[string][]string)
	}
}

// Clear removes every node and edge.
func (g *Graph) Clear() {
	g.nodes = make(map[string]*nodeEntry)
	g.nodeOrder = nil
	g.edges = make(map[string]*edgeEntry)
	g.edgeOrder = nil
}

// EdgeAttributes returns a copy of the edge's attributes.
func (g *Graph) EdgeAttributes(key string) (Attributes, error) {
	e, ok := g.edges[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEdgeNotFound, key)
	}
	return e.attrs.Clone(), nil
}

// EdgeAttribute returns a single attribute value. The second result is false
// when the edge or the attribute does not exist.
func (g *Graph) EdgeAttribute(key, name string) (any, bool) {
	e, ok := g.edges[key]
	if !ok {
		return nil, false
	}
	v, ok := e.attrs[name]
	return v, ok
}

// SetEdgeAttribute sets a single attribute on an existing edge.
func (g *Graph) SetEdgeAttribute(key, name string, value any) error {
	e, ok := g.edges[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEdgeNotFound, key)
	}
	e.attrs[name] = value
	return nil
}

// Endpoints returns the source and target of an edge.
func (g *Graph) Endpoints(key string) (source, target string, ok bool) {
	e, ok := g.edges[key]
	if !ok {
		return "", "", false
	}
	return e.source, e.target, true
}

// Source returns the source of an edge, or "" if the edge does not exist.
func (g *Graph) Source(key string) string {
	s, _, _ := g.Endpoints(key)
	return s
}

// Target returns the target of an edge, or "" if the edge does not exist.
func (g *Graph) Target(key string) string {
	_, t, _ := g.Endpoints(key)
	return t
}

// EdgeKeys returns all edge keys in insertion order.
func (g *Graph) EdgeKeys() []string { return slices.Clone(g.edgeOrder) }

// Edges returns the keys of all edges incident to the node, in either
// direction. Returns nil for an unknown node.
func (g *Graph) Edges(node string) []string {
	if n, ok := g.nodes[node]; ok {
		return slices.Clone(n.incident)
	}
	return nil
}

// EdgesBetween returns the keys of the directed edges source→target.
func (g *Graph) EdgesBetween(source, target string) []string {
	if n, ok := g.nodes[source]; ok {
		return slices.Clone(n.out[target])
	}
	return nil
}

// ForEachEdge calls fn for every edge in insertion order. The attributes
// passed to fn are the live map and must not be modified.
func (g *Graph) ForEachEdge(fn func(key, source, target string, attrs Attributes)) {
	for _, k := range g.edgeOrder {
		e := g.edges[k]
		fn(k, e.source, e.target, e.attrs)
	}
}

// =============================================================================
// Neighborhood
// =============================================================================

// Neighbors returns the distinct nodes connected to node by an edge in either
// direction, ordered by first incident edge. The node itself is never
// included, even with a self-loop.
func (g *Graph) Neighbors(node string) []string {
	n, ok := g.nodes[node]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{}, len(n.incident))
	var out []string
	for _, k := range n.incident {
		e := g.edges[k]
		other := e.target
		if other == node {
			other = e.source
		}
		if other == node {
			continue
		}
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}
		out = append(out, other)
	}
	return out
}

// AreNeighbors reports whether an edge connects a and b in either direction.
func (g *Graph) AreNeighbors(a, b string) bool {
	n, ok := g.nodes[a]
	if !ok {
		return false
	}
	return len(n.out[b]) > 0 || len(n.in[b]) > 0
}

// ForEachNeighbor calls fn for every neighbor of node with the neighbor's
// live attributes, which must not be modified.
func (g *Graph) ForEachNeighbor(node string, fn func(neighbor string, attrs Attributes)) {
	for _, nb := range g.Neighbors(node) {
		fn(nb, g.nodes[nb].attrs)
	}
}

// Copy returns a deep copy of the graph structure with shallow-copied
// attribute bags.
func (g *Graph) Copy() *Graph {
	c := New()
	for _, k := range g.nodeOrder {
		c.insertNode(k, g.nodes[k].attrs.Clone())
	}
	for _, k := range g.edgeOrder {
		e := g.edges[k]
		c.insertEdge(k, e.source, e.target, e.attrs.Clone())
	}
	return c
}

// =============================================================================
// Internal Helpers
// =============================================================================

func (g *Graph) checkEndpoints(source, target string) error {
	if !g.HasNode(source) {
		return fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}
	if !g.HasNode(target) {
		return fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}
	return nil
}

func (g *Graph) ensureNode(key string) {
	if !g.HasNode(key) {
		g.insertNode(key, Attributes{})
	}
}

// implicitKey derives a key from the endpoints, appending the lowest free
// multiplicity suffix when the plain form is taken.
func (g *Graph) implicitKey(source, target string) string {
	base := source + "->" + target
	if !g.HasEdge(base) {
		return base
	}
	for i := 1; ; i++ {
		k := fmt.Sprintf("%s#%d", base, i)
		if !g.HasEdge(k) {
			return k
		}
	}
}

func (g *Graph) insertEdge(key, source, target string, attrs Attributes) {
	g.edges[key] = &edgeEntry{source: source, target: target, attrs: attrs}
	g.edgeOrder = append(g.edgeOrder, key)

	src := g.nodes[source]
	src.out[target] = append(src.out[target], key)
	src.incident = append(src.incident, key)

	dst := g.nodes[target]
	dst.in[source] = append(dst.in[source], key)
	if source != target {
		dst.incident = append(dst.incident, key)
	}
}

func (g *Graph) removeEdge(key string) {
	e := g.edges[key]
	is := func(k string) bool { return k == key }

	if src, ok := g.nodes[e.source]; ok {
		src.out[e.target] = slices.DeleteFunc(src.out[e.target], is)
		if len(src.out[e.target]) == 0 {
			delete(src.out, e.target)
		}
		src.incident = slices.DeleteFunc(src.incident, is)
	}
	if dst, ok := g.nodes[e.target]; ok {
		dst.in[e.source] = slices.DeleteFunc(dst.in[e.source], is)
		if len(dst.in[e.source]) == 0 {
			delete(dst.in, e.source)
		}
		dst.incident = slices.DeleteFunc(dst.incident, is)
	}

	delete(g.edges, key)
	g.edgeOrder = slices.DeleteFunc(g.edgeOrder, is)
}

// Package highlight computes the subgraph emphasized while a node is hovered.
//
// Membership is edge-driven: a neighbor joins the highlight only through at
// least one qualifying edge, never just for being adjacent. Neighbors marked
// hidden are skipped entirely.
//
// With [Options.IncludeImportantNeighbors], every first-hop neighbor reached
// through a qualifying edge contributes its own important, visible neighbors
// as second-hop members. Second-hop edges run neighbor→candidate, plus
// candidate→neighbor when [Options.Bidirectional] is set.
package highlight

import "github.com/matzehuels/webgraph/pkg/store"

// Graph is the read-only graph view the highlighter needs.
// [*store.Graph] satisfies it.
type Graph interface {
	HasNode(key string) bool
	Neighbors(node string) []string
	AreNeighbors(a, b string) bool
	EdgesBetween(source, target string) []string
	Endpoints(edge string) (source, target string, ok bool)
	NodeAttribute(key, name string) (any, bool)
	EdgeAttribute(key, name string) (any, bool)
}

var _ Graph = (*store.Graph)(nil)

// Options selects the highlight policy.
type Options struct {
	// JustImportantEdges restricts first-hop edges to those with
	// important == true, and drops second-hop edges whose important
	// attribute is explicitly false.
	JustImportantEdges bool

	// IncludeImportantNeighbors expands the highlight by one more hop
	// towards important nodes.
	IncludeImportantNeighbors bool

	// Bidirectional also follows candidate→neighbor edges on the second hop.
	Bidirectional bool
}

// Result holds the highlighted nodes and edges. The hovered node itself is
// not included; callers add it if they want it drawn emphasized.
type Result struct {
	Nodes *Set
	Edges *Set
}

// Compute returns the highlight of hovered. An unknown hovered node yields
// empty sets.
func Compute(hovered string, g Graph, opts Options) Result {
	res := Result{Nodes: NewSet(), Edges: NewSet()}
	if !g.HasNode(hovered) {
		return res
	}

	for _, nb := range g.Neighbors(hovered) {
		if isTrue(g.NodeAttribute(nb, store.AttrHidden)) {
			continue
		}

		visible := false
		for _, e := range pairEdges(g, hovered, nb) {
			if opts.JustImportantEdges && !isTrue(g.EdgeAttribute(e, store.AttrImportant)) {
				continue
			}
			res.Edges.Add(e)
			visible = true
		}
		if !visible {
			continue
		}
		res.Nodes.Add(nb)

		if opts.IncludeImportantNeighbors {
			secondHop(g, nb, opts, res)
		}
	}

	return res
}

// secondHop adds the important visible neighbors of nb that are reachable
// through at least one edge passing the filter.
func secondHop(g Graph, nb string, opts Options, res Result) {
	for _, c := range g.Neighbors(nb) {
		if !isTrue(g.NodeAttribute(c, store.AttrImportant)) || isTrue(g.NodeAttribute(c, store.AttrHidden)) {
			continue
		}

		edges := g.EdgesBetween(nb, c)
		if opts.Bidirectional {
			edges = append(edges, g.EdgesBetween(c, nb)...)
		}

		found := false
		for _, e := range edges {
			if opts.JustImportantEdges && isFalse(g.EdgeAttribute(e, store.AttrImportant)) {
				continue
			}
			res.Edges.Add(e)
			found = true
		}
		if found {
			res.Nodes.Add(c)
		}
	}
}

func pairEdges(g Graph, a, b string) []string {
	return append(g.EdgesBetween(a, b), g.EdgesBetween(b, a)...)
}

func isTrue(v any, ok bool) bool {
	b, isBool := v.(bool)
	return ok && isBool && b
}

func isFalse(v any, ok bool) bool {
	b, isBool := v.(bool)
	return ok && isBool && !b
}

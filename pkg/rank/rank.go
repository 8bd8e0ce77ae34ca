// Package rank scores nodes by PageRank and flags the highest ranked ones
// as important, which drives the important-edge rendering and the
// IMPORTANT label selector.
package rank

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/webgraph/pkg/store"
)

// PageRank parameters.
const (
	Damping   = 0.85
	Tolerance = 1e-6
)

// Graph is the graph view ranking reads and annotates.
type Graph interface {
	ForEachNode(fn func(key string, attrs store.Attributes))
	ForEachEdge(fn func(key, source, target string, attrs store.Attributes))
	SetNodeAttribute(key, name string, value any) error
}

var _ Graph = (*store.Graph)(nil)

// Score is a node's PageRank.
type Score struct {
	Key  string
	Rank float64
}

// PageRank returns every node's rank, highest first. Ties are broken by key.
// Edge multiplicity and self-loops do not count.
func PageRank(g Graph) []Score {
	dg := simple.NewDirectedGraph()
	ids := make(map[string]int64)
	var keys []string
	g.ForEachNode(func(key string, _ store.Attributes) {
		n := dg.NewNode()
		dg.AddNode(n)
		ids[key] = n.ID()
		keys = append(keys, key)
	})
	if len(keys) == 0 {
		return nil
	}
	g.ForEachEdge(func(_, source, target string, _ store.Attributes) {
		u, v := ids[source], ids[target]
		if u == v {
			return
		}
		dg.SetEdge(dg.NewEdge(dg.Node(u), dg.Node(v)))
	})

	ranks := network.PageRank(dg, Damping, Tolerance)
	scores := make([]Score, len(keys))
	for i, key := range keys {
		scores[i] = Score{Key: key, Rank: ranks[ids[key]]}
	}
	slices.SortFunc(scores, func(a, b Score) int {
		if c := cmp.Compare(b.Rank, a.Rank); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return scores
}

// MarkImportant sets important=true on the top n nodes by PageRank and
// important=false on all others. It returns the keys marked important.
func MarkImportant(g Graph, n int) ([]string, error) {
	scores := PageRank(g)
	var top []string
	for i, s := range scores {
		important := i < n
		if important {
			top = append(top, s.Key)
		}
		if err := g.SetNodeAttribute(s.Key, store.AttrImportant, important); err != nil {
			return nil, err
		}
	}
	return top, nil
}

package session_test

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/matzehuels/webgraph/pkg/config"
	"github.com/matzehuels/webgraph/pkg/graph"
	"github.com/matzehuels/webgraph/pkg/layout"
	"github.com/matzehuels/webgraph/pkg/render"
	"github.com/matzehuels/webgraph/pkg/session"
	"github.com/matzehuels/webgraph/pkg/store"
)

var pool = []string{"a", "b", "c", "d", "e", "f"}

type view struct {
	g            graph.Graph
	hidden, just bool
	nodeType     render.NodeType
	mode         config.AppMode
}

func snapshot(s *session.Session) view {
	return view{
		g:        s.ExportGraph(false),
		hidden:   s.EdgesHidden(),
		just:     s.JustImportantEdges(),
		nodeType: s.Config().DefaultNodeType,
		mode:     s.AppMode(),
	}
}

func assertSameView(t *rapid.T, label string, want, got view) {
	if !sameGraph(want.g, got.g) {
		t.Fatalf("%s: graph differs\n got %v %v\nwant %v %v", label,
			nodeIndex(got.g), edgeIndex(got.g), nodeIndex(want.g), edgeIndex(want.g))
	}
	if want.hidden != got.hidden || want.just != got.just || want.nodeType != got.nodeType || want.mode != got.mode {
		t.Fatalf("%s: settings differ: got %+v want %+v", label, got, want)
	}
}

// TestUndoRedoRoundTrip checks that undoing every recorded mutation restores
// the initial state and redoing them restores the final one.
func TestUndoRedoRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := store.New()
		for _, k := range pool[:4] {
			_ = g.AddNode(k, store.Attributes{
				store.AttrX:    float64(rapid.IntRange(-5, 5).Draw(t, "x")),
				store.AttrY:    float64(rapid.IntRange(-5, 5).Draw(t, "y")),
				store.AttrSize: float64(rapid.IntRange(1, 9).Draw(t, "size")),
			})
		}
		for i := range rapid.IntRange(0, 6).Draw(t, "edges") {
			src := rapid.SampledFrom(pool[:4]).Draw(t, "src")
			dst := rapid.SampledFrom(pool[:4]).Draw(t, "dst")
			_, _ = g.AddEdge(src, dst, store.Attributes{store.AttrImportant: i%2 == 0})
		}

		s, err := session.New(g, historyConfig(), session.WithLogger(quiet))
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Start(nil); err != nil {
			t.Fatal(err)
		}
		initial := snapshot(s)

		steps := rapid.IntRange(1, 12).Draw(t, "steps")
		recorded := 0
		for range steps {
			if mutate(t, s) {
				recorded++
			}
		}
		if s.History().Len() != recorded {
			t.Fatalf("history len = %d, want %d", s.History().Len(), recorded)
		}
		final := snapshot(s)

		for range recorded {
			if ok, err := s.Undo(); !ok || err != nil {
				t.Fatalf("Undo() = %v, %v", ok, err)
			}
		}
		if ok, _ := s.Undo(); ok {
			t.Fatal("undo past the start returned true")
		}
		assertSameView(t, "after undo", initial, snapshot(s))

		for range recorded {
			if ok, err := s.Redo(); !ok || err != nil {
				t.Fatalf("Redo() = %v, %v", ok, err)
			}
		}
		assertSameView(t, "after redo", final, snapshot(s))
	})
}

// mutate applies one random mutation and reports whether it returned true.
func mutate(t *rapid.T, s *session.Session) bool {
	switch rapid.IntRange(0, 8).Draw(t, "op") {
	case 0:
		keys := rapid.SliceOfN(rapid.SampledFrom(pool), 1, 3).Draw(t, "merge")
		nodes := make([]graph.Node, len(keys))
		for i, k := range keys {
			nodes[i] = graph.Node{Key: k, Attributes: store.Attributes{
				store.AttrSize:      float64(rapid.IntRange(1, 9).Draw(t, "size")),
				store.AttrImportant: rapid.Bool().Draw(t, "important"),
			}}
		}
		return s.MergeNodes(nodes)
	case 1:
		return s.DropNodes(rapid.SliceOfN(rapid.SampledFrom(pool), 1, 2).Draw(t, "drop"))
	case 2:
		return s.MergeEdges(drawEdges(t, "merge"))
	case 3:
		return s.ReplaceEdges(drawEdges(t, "replace"))
	case 4:
		return s.ToggleEdgeRendering()
	case 5:
		return s.ToggleJustImportantEdgeRendering()
	case 6:
		return s.SetAndApplyDefaultNodeType(rapid.SampledFrom(render.NodeTypes).Draw(t, "type"))
	case 7:
		return s.SetAppMode(rapid.SampledFrom([]config.AppMode{config.AppModeStatic, config.AppModeDynamic}).Draw(t, "mode"))
	default:
		return s.SetAndApplyLayout(layout.Circular, layout.Options{
			Center: float64(rapid.IntRange(1, 3).Draw(t, "center")),
			Scale:  1,
		})
	}
}

func drawEdges(t *rapid.T, label string) []graph.Edge {
	n := rapid.IntRange(0, 3).Draw(t, label+"-count")
	edges := make([]graph.Edge, n)
	for i := range edges {
		edges[i] = graph.Edge{
			Key:    rapid.SampledFrom([]string{"", "", "e1", "e2"}).Draw(t, label+"-key"),
			Source: rapid.SampledFrom(pool).Draw(t, label+"-src"),
			Target: rapid.SampledFrom(pool).Draw(t, label+"-dst"),
			Attributes: store.Attributes{
				store.AttrWeight: float64(rapid.IntRange(1, 5).Draw(t, label+"-weight")),
			},
		}
	}
	return edges
}

func sameGraph(a, b graph.Graph) bool {
	return reflect.DeepEqual(nodeIndex(a), nodeIndex(b)) && reflect.DeepEqual(edgeIndex(a), edgeIndex(b))
}

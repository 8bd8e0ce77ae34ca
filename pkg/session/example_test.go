package session_test

import (
	"fmt"

	"github.com/matzehuels/webgraph/pkg/config"
	"github.com/matzehuels/webgraph/pkg/events"
	"github.com/matzehuels/webgraph/pkg/graph"
	"github.com/matzehuels/webgraph/pkg/render"
	"github.com/matzehuels/webgraph/pkg/session"
	"github.com/matzehuels/webgraph/pkg/store"
)

func ExampleSession_Undo() {
	cfg := config.Default()
	cfg.EnableHistory = true

	s, _ := session.New(store.New(), cfg)
	_ = s.Start(nil)

	s.MergeEdges([]graph.Edge{{Source: "app", Target: "lib"}})
	fmt.Println("after merge:", s.Graph().Order(), s.Graph().Size())

	ok, _ := s.Undo()
	fmt.Println("undo:", ok, s.Graph().Order(), s.Graph().Size())

	ok, _ = s.Undo()
	fmt.Println("undo again:", ok)
	// Output:
	// after merge: 2 1
	// undo: true 0 0
	// undo again: false
}

func ExampleSession_HighlightedNodes() {
	g := store.New()
	_, _, _ = g.MergeEdge("A", "B", store.Attributes{store.AttrImportant: false})
	_, _, _ = g.MergeEdge("A", "C", store.Attributes{store.AttrImportant: true})

	s, _ := session.New(g, config.Default())
	_ = s.Start(nil)
	h := s.Renderer().(*render.Headless)

	h.Enter("A", events.Pointer{})
	fmt.Println(s.HighlightedNodes(), s.HighlightedEdges())

	h.Leave(events.Pointer{})
	s.SetJustImportantEdges(true)
	h.Enter("A", events.Pointer{})
	fmt.Println(s.HighlightedNodes(), s.HighlightedEdges())
	// Output:
	// [B C A] [A->B A->C]
	// [C A] [A->C]
}

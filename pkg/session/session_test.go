package session_test

import (
	"io"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/webgraph/pkg/config"
	"github.com/matzehuels/webgraph/pkg/errors"
	"github.com/matzehuels/webgraph/pkg/events"
	"github.com/matzehuels/webgraph/pkg/graph"
	"github.com/matzehuels/webgraph/pkg/layout"
	"github.com/matzehuels/webgraph/pkg/render"
	"github.com/matzehuels/webgraph/pkg/session"
	"github.com/matzehuels/webgraph/pkg/store"
)

var quiet = log.New(io.Discard)

// abc builds A→B (not important) and A→C (important).
func abc(t testing.TB) *store.Graph {
	t.Helper()
	g := store.New()
	for _, k := range []string{"A", "B", "C"} {
		if err := g.AddNode(k, store.Attributes{store.AttrX: 0.0, store.AttrY: 0.0, store.AttrSize: 4.0}); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddEdgeWithKey("ab", "A", "B", store.Attributes{store.AttrImportant: false}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdgeWithKey("ac", "A", "C", store.Attributes{store.AttrImportant: true}); err != nil {
		t.Fatal(err)
	}
	return g
}

func historyConfig() config.Config {
	cfg := config.Default()
	cfg.EnableHistory = true
	cfg.Render.AnimationMillis = 0
	return cfg
}

func start(t testing.TB, g session.Graph, cfg config.Config, opts ...session.Option) (*session.Session, *render.Headless) {
	t.Helper()
	s, err := session.New(g, cfg, append([]session.Option{session.WithLogger(quiet)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Start(nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s, s.Renderer().(*render.Headless)
}

func undo(t testing.TB, s *session.Session) bool {
	t.Helper()
	ok, err := s.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	return ok
}

func redo(t testing.TB, s *session.Session) bool {
	t.Helper()
	ok, err := s.Redo()
	if err != nil {
		t.Fatalf("Redo: %v", err)
	}
	return ok
}

// =============================================================================
// Lifecycle
// =============================================================================

func TestLifecycleErrors(t *testing.T) {
	s, err := session.New(abc(t), historyConfig(), session.WithLogger(quiet))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Undo(); !errors.Is(err, errors.ErrCodeInactive) {
		t.Errorf("Undo inactive err = %v, want INACTIVE", err)
	}
	if _, err := s.Camera(); !errors.Is(err, errors.ErrCodeInactive) {
		t.Errorf("Camera inactive err = %v, want INACTIVE", err)
	}
	if _, err := s.SetNodeBackdropRendering(true, nil); !errors.Is(err, errors.ErrCodeInactive) {
		t.Errorf("backdrop inactive err = %v, want INACTIVE", err)
	}

	if err := s.Start(nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(nil); !errors.Is(err, errors.ErrCodeAlreadyActive) {
		t.Errorf("second Start err = %v, want ALREADY_ACTIVE", err)
	}

	s.Stop()
	if s.Active() {
		t.Error("Active() after Stop")
	}
	if err := s.Start(nil); err != nil {
		t.Errorf("restart: %v", err)
	}
}

func TestHistoryDisabled(t *testing.T) {
	cfg := historyConfig()
	cfg.EnableHistory = false
	s, _ := start(t, abc(t), cfg)

	if !s.MergeNodes([]graph.Node{{Key: "D"}}) {
		t.Fatal("MergeNodes returned false")
	}
	for name, fn := range map[string]func() (bool, error){
		"undo":  s.Undo,
		"redo":  s.Redo,
		"clear": s.ClearHistory,
	} {
		if _, err := fn(); !errors.Is(err, errors.ErrCodeHistoryDisabled) {
			t.Errorf("%s err = %v, want HISTORY_DISABLED", name, err)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.AppMode = "sideways"
	if _, err := session.New(abc(t), cfg); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestStopClearsState(t *testing.T) {
	s, h := start(t, abc(t), historyConfig())
	var rendered int
	s.Events().On(events.Rendered, func(events.Event) { rendered++ })

	h.Enter("A", events.Pointer{})
	s.MergeNodes([]graph.Node{{Key: "D"}})
	s.Stop()

	if !h.Killed() {
		t.Error("renderer not killed")
	}
	if s.HoveredNode() != "" || len(s.HighlightedNodes()) != 0 || len(s.HighlightedEdges()) != 0 {
		t.Error("highlight state survives Stop")
	}
	if s.History() != nil {
		t.Error("history survives Stop")
	}
	if s.Events().ListenerCount(events.Rendered) != 0 {
		t.Error("caller listeners survive Stop")
	}

	_ = s.Start(nil)
	if rendered != 0 {
		t.Errorf("rendered = %d after restart, want 0", rendered)
	}
	if ok, _ := s.Undo(); ok {
		t.Error("undo after restart reverted a pre-Stop action")
	}
}

// =============================================================================
// Undo / Redo
// =============================================================================

func TestNodeUpsertUndoRedo(t *testing.T) {
	g := abc(t)
	s, _ := start(t, g, historyConfig())

	ok := s.MergeNodes([]graph.Node{
		{Key: "A", Attributes: store.Attributes{store.AttrColor: "#f00"}},
		{Key: "D", Attributes: store.Attributes{store.AttrSize: 2.0}},
	})
	if !ok {
		t.Fatal("MergeNodes returned false")
	}
	if c, _ := g.NodeAttribute("A", store.AttrColor); c != "#f00" || !g.HasNode("D") {
		t.Fatal("merge not applied")
	}

	if !undo(t, s) {
		t.Fatal("undo returned false")
	}
	if _, ok := g.NodeAttribute("A", store.AttrColor); ok {
		t.Error("color survives undo")
	}
	if g.HasNode("D") {
		t.Error("created node survives undo")
	}

	if !redo(t, s) {
		t.Fatal("redo returned false")
	}
	if c, _ := g.NodeAttribute("A", store.AttrColor); c != "#f00" || !g.HasNode("D") {
		t.Error("redo did not re-apply")
	}
	if redo(t, s) {
		t.Error("second redo returned true")
	}
}

func TestDropNodesRestoresMultiEdges(t *testing.T) {
	g := abc(t)
	_ = g.AddEdgeWithKey("ab2", "A", "B", store.Attributes{store.AttrWeight: 2.0})
	_ = g.AddEdgeWithKey("ba", "B", "A", nil)
	_ = g.AddEdgeWithKey("aa", "A", "A", nil)
	before := graph.FromStore(g, false)

	s, _ := start(t, g, historyConfig())
	if !s.DropNodes([]string{"A", "missing"}) {
		t.Fatal("DropNodes returned false")
	}
	if g.HasNode("A") || g.Size() != 0 {
		t.Fatalf("after drop: A=%v size=%d", g.HasNode("A"), g.Size())
	}

	undo(t, s)
	assertSameGraph(t, before, graph.FromStore(g, false))

	redo(t, s)
	if g.HasNode("A") || g.Size() != 0 {
		t.Error("redo did not drop again")
	}
}

func TestDropUnknownRecordsAction(t *testing.T) {
	s, _ := start(t, abc(t), historyConfig())
	if !s.DropNodes([]string{"nope"}) {
		t.Fatal("DropNodes returned false")
	}
	if s.History().Len() != 1 {
		t.Fatalf("history len = %d, want 1", s.History().Len())
	}
	if !undo(t, s) {
		t.Error("undo of empty drop returned false")
	}
}

func TestMergeEdgesUndo(t *testing.T) {
	g := abc(t)
	before := graph.FromStore(g, false)
	s, _ := start(t, g, historyConfig())

	ok := s.MergeEdges([]graph.Edge{
		{Source: "A", Target: "B", Attributes: store.Attributes{store.AttrImportant: true}},
		{Source: "C", Target: "X"},
		{Key: "ac", Source: "C", Target: "A"}, // endpoint mismatch, skipped
	})
	if !ok {
		t.Fatal("MergeEdges returned false")
	}
	if v, _ := g.EdgeAttribute("ab", store.AttrImportant); v != true {
		t.Error("merge into first A→B edge not applied")
	}
	if !g.HasNode("X") || len(g.EdgesBetween("C", "X")) != 1 {
		t.Error("C→X not created")
	}
	if src, dst, _ := g.Endpoints("ac"); src != "A" || dst != "C" {
		t.Error("mismatched merge changed ac")
	}

	undo(t, s)
	assertSameGraph(t, before, graph.FromStore(g, false))

	redo(t, s)
	if !g.HasNode("X") {
		t.Error("redo did not recreate X")
	}
}

func TestReplaceEdgesUndo(t *testing.T) {
	g := abc(t)
	before := graph.FromStore(g, false)
	s, _ := start(t, g, historyConfig())

	if !s.ReplaceEdges(nil) {
		t.Fatal("ReplaceEdges(nil) returned false")
	}
	if g.Size() != 0 {
		t.Fatalf("size = %d, want 0", g.Size())
	}
	undo(t, s)
	assertSameGraph(t, before, graph.FromStore(g, false))

	s.ReplaceEdges([]graph.Edge{{Source: "B", Target: "Z"}})
	if g.Size() != 1 || !g.HasNode("Z") {
		t.Fatalf("replace not applied: size=%d", g.Size())
	}
	undo(t, s)
	assertSameGraph(t, before, graph.FromStore(g, false))
}

func TestRenderTogglesUndo(t *testing.T) {
	s, h := start(t, abc(t), historyConfig())

	s.ToggleEdgeRendering()
	if !s.EdgesHidden() || !h.Settings().HideEdges {
		t.Fatal("edges not hidden")
	}
	s.ToggleJustImportantEdgeRendering()
	if s.EdgesHidden() || !s.JustImportantEdges() {
		t.Fatal("just-important toggle must unhide edges")
	}
	if got := len(h.Frame().Edges); got != 1 {
		t.Errorf("drawn edges = %d, want 1", got)
	}

	undo(t, s)
	if !s.EdgesHidden() || s.JustImportantEdges() {
		t.Errorf("after undo: hidden=%v just=%v", s.EdgesHidden(), s.JustImportantEdges())
	}
	undo(t, s)
	if s.EdgesHidden() || h.Settings().HideEdges {
		t.Error("edges still hidden after second undo")
	}
}

func TestNodeTypeAndAppModeUndo(t *testing.T) {
	s, h := start(t, abc(t), historyConfig())

	if s.SetAndApplyDefaultNodeType("hexagon") {
		t.Error("unknown node type accepted")
	}
	if s.SetAppMode("sideways") {
		t.Error("unknown app mode accepted")
	}
	s.SetAndApplyDefaultNodeType(render.NodeTriangle)
	s.SetAppMode(config.AppModeDynamic)

	if h.Frame().Nodes[0].Type != render.NodeTriangle {
		t.Errorf("type = %s, want triangle", h.Frame().Nodes[0].Type)
	}

	undo(t, s)
	if s.AppMode() != config.AppModeStatic {
		t.Errorf("mode = %s, want static", s.AppMode())
	}
	undo(t, s)
	if h.Settings().DefaultNodeType != render.NodeRing {
		t.Errorf("type = %s, want ring", h.Settings().DefaultNodeType)
	}
	if s.History().Len() != 2 {
		t.Errorf("history len = %d, want 2", s.History().Len())
	}
}

func TestNoHistoryOption(t *testing.T) {
	s, _ := start(t, abc(t), historyConfig())
	s.MergeNodes([]graph.Node{{Key: "D"}}, session.NoHistory())
	s.ToggleEdgeRendering(session.NoHistory())
	if s.History().Len() != 0 {
		t.Errorf("history len = %d, want 0", s.History().Len())
	}
	if undo(t, s) {
		t.Error("undo returned true on empty history")
	}
}

func TestClearHistory(t *testing.T) {
	s, _ := start(t, abc(t), historyConfig())
	s.MergeNodes([]graph.Node{{Key: "D"}})
	s.DropNodes([]string{"B"})

	if ok, err := s.ClearHistory(); !ok || err != nil {
		t.Fatalf("ClearHistory() = %v, %v", ok, err)
	}
	if undo(t, s) {
		t.Error("undo after clear returned true")
	}
}

func TestHistoryLimit(t *testing.T) {
	cfg := historyConfig()
	cfg.HistoryLimit = 2
	s, _ := start(t, abc(t), cfg)
	for _, k := range []string{"D", "E", "F"} {
		s.MergeNodes([]graph.Node{{Key: k}})
	}
	if s.History().Len() != 2 {
		t.Errorf("history len = %d, want 2", s.History().Len())
	}
}

func TestMalformedActionLeavesBoundary(t *testing.T) {
	tests := []struct {
		name   string
		action session.Action
	}{
		{"node upsert", session.NodeUpsertAction{}},
		{"node drop", session.NodeDropAction{}},
		{"edge upsert", session.EdgeUpsertAction{}},
		{"edge replace", session.EdgeReplaceAction{}},
		{"edge toggle", session.EdgeRenderToggleAction{}},
		{"important toggle", session.ImportantEdgeRenderToggleAction{}},
		{"node type", session.NodeTypeAction{}},
		{"app mode", session.AppModeAction{}},
		{"layout", session.LayoutAction{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := start(t, abc(t), historyConfig())
			s.History().Append(tt.action)

			if undo(t, s) {
				t.Error("undo of malformed action returned true")
			}
			if s.History().Boundary() != 1 {
				t.Errorf("boundary = %d, want 1", s.History().Boundary())
			}

			s.History().MarkLatestActiveAsReverted()
			if redo(t, s) {
				t.Error("redo of malformed action returned true")
			}
			if s.History().Boundary() != 0 {
				t.Errorf("boundary = %d, want 0", s.History().Boundary())
			}
		})
	}
}

// =============================================================================
// Layout
// =============================================================================

func TestApplyMappingImmediate(t *testing.T) {
	g := abc(t)
	s, _ := start(t, g, historyConfig())
	var synced int
	s.Events().On(events.SyncLayoutCompleted, func(events.Event) { synced++ })

	if s.ApplyMapping(nil) {
		t.Error("empty mapping accepted")
	}
	if !s.SetAndApplyLayout(layout.Circular, layout.DefaultOptions()) {
		t.Fatal("SetAndApplyLayout returned false")
	}
	if synced != 1 || s.Animating() {
		t.Fatalf("synced = %d animating = %v", synced, s.Animating())
	}
	if x, _ := g.NodeAttribute("A", store.AttrX); x != 1.5 {
		t.Errorf("A.x = %v, want 1.5", x)
	}

	undo(t, s)
	if got := s.ExportLayoutMapping()["A"]; got != (layout.Position{}) {
		t.Errorf("A after undo = %+v, want origin", got)
	}
}

func TestApplyMappingAnimated(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := historyConfig()
	cfg.Render.AnimationMillis = 1000

	g := abc(t)
	s, _ := start(t, g, cfg, session.WithClock(func() time.Time { return t0 }))
	var synced int
	s.Events().On(events.SyncLayoutCompleted, func(events.Event) { synced++ })

	s.ApplyMapping(layout.Mapping{"A": {X: 10, Y: 10}})
	if !s.Animating() || synced != 0 {
		t.Fatalf("animating = %v synced = %d", s.Animating(), synced)
	}

	if !s.Tick(t0.Add(500 * time.Millisecond)) {
		t.Fatal("Tick at half time reported done")
	}
	x, _ := g.NodeAttribute("A", store.AttrX)
	if f, _ := store.AsFloat(x); f <= 0 || f >= 10 {
		t.Errorf("A.x mid-flight = %v", x)
	}

	if s.Tick(t0.Add(time.Second)) {
		t.Fatal("Tick at end reported running")
	}
	if x, _ := g.NodeAttribute("A", store.AttrX); x != 10.0 {
		t.Errorf("A.x = %v, want 10", x)
	}
	if synced != 1 {
		t.Errorf("synced = %d, want 1", synced)
	}
	if s.Tick(t0.Add(2 * time.Second)) {
		t.Error("Tick without animation reported running")
	}
}

// =============================================================================
// Highlight and Events
// =============================================================================

func TestHoverHighlight(t *testing.T) {
	tests := []struct {
		name      string
		important bool
		nodes     []string
		edges     []string
	}{
		{"all edges", false, []string{"A", "B", "C"}, []string{"ab", "ac"}},
		{"just important", true, []string{"A", "C"}, []string{"ac"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, h := start(t, abc(t), historyConfig())
			if tt.important {
				s.SetJustImportantEdges(true)
			}
			h.Enter("A", events.Pointer{})

			if got := sorted(s.HighlightedNodes()); !reflect.DeepEqual(got, tt.nodes) {
				t.Errorf("nodes = %v, want %v", got, tt.nodes)
			}
			if got := sorted(s.HighlightedEdges()); !reflect.DeepEqual(got, tt.edges) {
				t.Errorf("edges = %v, want %v", got, tt.edges)
			}
			if s.HoveredNode() != "A" {
				t.Errorf("hovered = %q", s.HoveredNode())
			}

			h.Leave(events.Pointer{})
			if len(s.HighlightedNodes()) != 0 || len(s.HighlightedEdges()) != 0 || s.HoveredNode() != "" {
				t.Error("leave did not clear highlight")
			}
		})
	}
}

func TestHoverSkipsHiddenNeighbor(t *testing.T) {
	g := abc(t)
	_ = g.SetNodeAttribute("B", store.AttrHidden, true)
	s, h := start(t, g, historyConfig())

	h.Enter("A", events.Pointer{})
	if got := sorted(s.HighlightedNodes()); !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Errorf("nodes = %v, want [A C]", got)
	}
}

func TestHoverWithHiddenEdgesKeepsHoveredNode(t *testing.T) {
	s, h := start(t, abc(t), historyConfig())
	s.SetEdgesHidden(true)

	h.Enter("A", events.Pointer{})
	if got := s.HighlightedNodes(); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("nodes = %v, want [A]", got)
	}
	if got := s.HighlightedEdges(); len(got) != 0 {
		t.Errorf("edges = %v, want none", got)
	}
}

func TestHighlightColorsFrame(t *testing.T) {
	_, h := start(t, abc(t), historyConfig())
	h.Enter("A", events.Pointer{})

	for _, n := range h.Frame().Nodes {
		if n.Color != config.DefaultHighlightColor || n.Z != 1 {
			t.Errorf("node %s color=%s z=%d", n.Key, n.Color, n.Z)
		}
	}
}

func TestDroppedHoveredNode(t *testing.T) {
	s, h := start(t, abc(t), historyConfig())
	h.Enter("A", events.Pointer{})
	s.DropNodes([]string{"A"})

	if s.HoveredNode() != "" {
		t.Errorf("hovered = %q after drop", s.HoveredNode())
	}
	if len(s.HighlightedEdges()) != 0 {
		t.Errorf("edges = %v after drop", s.HighlightedEdges())
	}
}

func TestEnterLeaveEmitOnNextMove(t *testing.T) {
	s, h := start(t, abc(t), historyConfig())
	var got []events.Type
	for _, typ := range []events.Type{events.MouseEnter, events.MouseLeave, events.Click} {
		s.Events().On(typ, func(ev events.Event) { got = append(got, ev.Type) })
	}

	h.Enter("A", events.Pointer{})
	if len(got) != 0 {
		t.Fatalf("emitted before move: %v", got)
	}
	h.Move(events.Pointer{X: 1})
	h.Move(events.Pointer{X: 2})
	h.Leave(events.Pointer{})
	h.Move(events.Pointer{X: 3})
	h.Click("B", events.Pointer{})
	h.RightClick("B", events.Pointer{})

	want := []events.Type{events.MouseEnter, events.MouseLeave, events.Click, events.Click}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if n := h.Captor().ListenerCount(events.MouseMove); n != 0 {
		t.Errorf("%d move listeners leaked", n)
	}
}

func TestDragDynamicMode(t *testing.T) {
	cfg := historyConfig()
	cfg.AppMode = config.AppModeDynamic
	g := abc(t)
	s, h := start(t, g, cfg)
	var moves int
	s.Events().On(events.MouseMove, func(events.Event) { moves++ })

	h.Down("A", events.Pointer{X: 400, Y: 300})
	if s.Renderer().Camera().Enabled() {
		t.Error("camera enabled during drag")
	}
	h.Move(events.Pointer{X: 800, Y: 600})

	if x, _ := g.NodeAttribute("A", store.AttrX); x != 1.0 {
		t.Errorf("A.x = %v, want 1", x)
	}
	if y, _ := g.NodeAttribute("A", store.AttrY); y != 1.0 {
		t.Errorf("A.y = %v, want 1", y)
	}

	h.Up(events.Pointer{})
	if !s.Renderer().Camera().Enabled() {
		t.Error("camera disabled after release")
	}
	h.Move(events.Pointer{X: 0, Y: 0})
	if moves != 1 {
		t.Errorf("moves = %d, want 1", moves)
	}
	if n := h.Captor().ListenerCount(events.MouseUp); n != 0 {
		t.Errorf("%d up listeners leaked", n)
	}
	if s.History().Len() != 0 {
		t.Error("drag was recorded")
	}
}

func TestStaticModeDoesNotDrag(t *testing.T) {
	g := abc(t)
	s, h := start(t, g, historyConfig())
	var downs int
	s.Events().On(events.MouseDown, func(events.Event) { downs++ })

	h.Down("A", events.Pointer{X: 400, Y: 300})
	h.Move(events.Pointer{X: 800, Y: 600})
	if x, _ := g.NodeAttribute("A", store.AttrX); x != 0.0 {
		t.Errorf("A.x = %v, want 0", x)
	}
	if downs != 1 {
		t.Errorf("downs = %d, want 1", downs)
	}
}

func TestSecondaryButtonDoesNotDrag(t *testing.T) {
	cfg := historyConfig()
	cfg.AppMode = config.AppModeDynamic
	g := abc(t)
	s, h := start(t, g, cfg)
	var downs, moves int
	s.Events().On(events.MouseDown, func(events.Event) { downs++ })
	s.Events().On(events.MouseMove, func(events.Event) { moves++ })

	h.Down("A", events.Pointer{X: 400, Y: 300, Button: 2})
	if !s.Renderer().Camera().Enabled() {
		t.Error("camera disabled by secondary button")
	}
	h.Move(events.Pointer{X: 800, Y: 600})

	if x, _ := g.NodeAttribute("A", store.AttrX); x != 0.0 {
		t.Errorf("A.x = %v, want 0", x)
	}
	if downs != 1 || moves != 0 {
		t.Errorf("downs = %d moves = %d, want 1 and 0", downs, moves)
	}
	if n := h.Captor().ListenerCount(events.MouseUp); n != 0 {
		t.Errorf("%d up listeners registered", n)
	}
}

func TestBackdropRendering(t *testing.T) {
	g := abc(t)
	_ = g.SetNodeAttribute("A", store.AttrCategory, 1)
	s, h := start(t, g, historyConfig())

	ok, err := s.ToggleNodeBackdropRendering(map[int]string{1: "#123456"})
	if !ok || err != nil {
		t.Fatalf("toggle = %v, %v", ok, err)
	}
	want := []render.Backdrop{{Node: "A", Color: "#123456"}}
	if got := h.Frame().Backdrops; !reflect.DeepEqual(got, want) {
		t.Errorf("backdrops = %v, want %v", got, want)
	}
	if s.History().Len() != 0 {
		t.Error("backdrop toggle was recorded")
	}
}

func TestExportGraphExcludeEdges(t *testing.T) {
	g := abc(t)
	s, _ := start(t, g, historyConfig())

	out := s.ExportGraph(true)
	if len(out.Nodes) != 3 || len(out.Edges) != 0 {
		t.Errorf("export = %d nodes %d edges", len(out.Nodes), len(out.Edges))
	}
	if g.Size() != 2 {
		t.Error("export removed edges from the live graph")
	}
}

func TestFromSerialized(t *testing.T) {
	s, err := session.FromSerialized(graph.Graph{
		Nodes: []graph.Node{{Key: "a"}, {Key: "b"}},
		Edges: []graph.Edge{{Source: "a", Target: "b"}},
	}, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if s.Graph().Order() != 2 || s.Graph().Size() != 1 {
		t.Errorf("order=%d size=%d", s.Graph().Order(), s.Graph().Size())
	}

	_, err = session.FromSerialized(graph.Graph{
		Edges: []graph.Edge{{Source: "a", Target: "b"}},
	}, config.Default())
	if !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("err = %v, want INVALID_GRAPH", err)
	}
}

// =============================================================================
// Helpers
// =============================================================================

func sorted(keys []string) []string {
	out := slices.Clone(keys)
	slices.Sort(out)
	return out
}

// assertSameGraph compares two snapshots ignoring iteration order.
func assertSameGraph(t testing.TB, want, got graph.Graph) {
	t.Helper()
	if !reflect.DeepEqual(nodeIndex(want), nodeIndex(got)) {
		t.Errorf("nodes differ:\n got %v\nwant %v", nodeIndex(got), nodeIndex(want))
	}
	if !reflect.DeepEqual(edgeIndex(want), edgeIndex(got)) {
		t.Errorf("edges differ:\n got %v\nwant %v", edgeIndex(got), edgeIndex(want))
	}
}

func nodeIndex(g graph.Graph) map[string]store.Attributes {
	out := make(map[string]store.Attributes, len(g.Nodes))
	for _, n := range g.Nodes {
		out[n.Key] = n.Attributes.Clone()
	}
	return out
}

func edgeIndex(g graph.Graph) map[string]graph.Edge {
	out := make(map[string]graph.Edge, len(g.Edges))
	for _, e := range g.Edges {
		e.Attributes = e.Attributes.Clone()
		out[e.Key] = e
	}
	return out
}

package layout

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/matzehuels/webgraph/pkg/cache"
	"github.com/matzehuels/webgraph/pkg/store"
)

func ring(n int) *store.Graph {
	g := store.New()
	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}[:n]
	for i, k := range keys {
		_ = g.AddNode(k, store.Attributes{store.AttrX: float64(i), store.AttrY: 0.0})
	}
	for i := range keys {
		_, _ = g.AddEdge(keys[i], keys[(i+1)%len(keys)], nil)
	}
	return g
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestExportApply(t *testing.T) {
	g := store.New()
	_ = g.AddNode("a", store.Attributes{store.AttrX: 1.0, store.AttrY: 2})
	_ = g.AddNode("b", nil)

	m := Export(g)
	if m["a"] != (Position{1, 2}) || m["b"] != (Position{}) {
		t.Fatalf("Export() = %v", m)
	}

	Apply(g, Mapping{"a": {5, 6}, "gone": {7, 8}})
	if got := Export(g)["a"]; got != (Position{5, 6}) {
		t.Errorf("after Apply a = %v", got)
	}
	if g.HasNode("gone") {
		t.Error("Apply created a node")
	}
}

func TestCircular(t *testing.T) {
	g := ring(4)
	m := Circular(g, DefaultOptions())
	if len(m) != 4 {
		t.Fatalf("len = %d", len(m))
	}
	for k, p := range m {
		r := math.Hypot(p.X-0.5, p.Y-0.5)
		if !near(r, 1) {
			t.Errorf("%s radius = %v, want 1", k, r)
		}
	}
	if !near(m["a"].X, 1.5) || !near(m["a"].Y, 0.5) {
		t.Errorf("first node = %v, want (1.5, 0.5)", m["a"])
	}
	if x, _ := g.NodeAttribute("a", store.AttrX); x != 0.0 {
		t.Error("Circular mutated the graph")
	}
}

func TestRandomSeeded(t *testing.T) {
	g := ring(5)
	opts := Options{Seed: 42}
	m1, m2 := Random(g, opts), Random(g, opts)
	for k := range m1 {
		if m1[k] != m2[k] {
			t.Errorf("%s differs between runs: %v vs %v", k, m1[k], m2[k])
		}
		p := m1[k]
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			t.Errorf("%s = %v outside unit square", k, p)
		}
	}
	m3 := Random(g, Options{Seed: 43})
	if m3["a"] == m1["a"] {
		t.Error("different seeds gave the same position")
	}
}

func TestForce(t *testing.T) {
	g := ring(6)
	_, _ = g.AddEdge("a", "a", nil)
	_, _ = g.AddEdge("a", "b", nil)

	m := Force(g, Options{Iterations: 20})
	if len(m) != 6 {
		t.Fatalf("len = %d", len(m))
	}
	for k, p := range m {
		if !finite(p) {
			t.Errorf("%s = %v not finite", k, p)
		}
		if p.X < -1e-9 || p.X > 1+1e-9 || p.Y < -1e-9 || p.Y > 1+1e-9 {
			t.Errorf("%s = %v outside unit square", k, p)
		}
	}
}

func TestForceSmallGraphs(t *testing.T) {
	if m := Force(store.New(), Options{}); len(m) != 0 {
		t.Errorf("empty graph mapping = %v", m)
	}
	g := store.New()
	_ = g.AddNode("solo", nil)
	if m := Force(g, Options{}); m["solo"] != (Position{0.5, 0.5}) {
		t.Errorf("single node = %v", m["solo"])
	}
}

func TestFit(t *testing.T) {
	m := fit(Mapping{"a": {-10, 0}, "b": {10, 5}, "c": {math.NaN(), 0}}, DefaultOptions())
	if !near(m["a"].X, 0) || !near(m["b"].X, 1) {
		t.Errorf("x range = %v..%v, want 0..1", m["a"].X, m["b"].X)
	}
	if !near(m["a"].Y, 0.375) || !near(m["b"].Y, 0.625) {
		t.Errorf("y = %v, %v; want aspect kept around 0.5", m["a"].Y, m["b"].Y)
	}
	if m["c"] != (Position{0.5, 0.5}) {
		t.Errorf("NaN node = %v, want center", m["c"])
	}
}

func TestByName(t *testing.T) {
	for _, name := range append(Algorithms, "FORCE", " circular ") {
		if _, err := ByName(name); err != nil {
			t.Errorf("ByName(%q): %v", name, err)
		}
	}
	if _, err := ByName("spiral"); err == nil {
		t.Error("ByName(spiral) succeeded")
	}
}

func TestMappingJSON(t *testing.T) {
	data, err := MarshalMapping(Mapping{"a": {1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	m, err := UnmarshalMapping(data)
	if err != nil || m["a"] != (Position{1, 2}) {
		t.Errorf("decoded = %v, %v", m, err)
	}
	if _, err := UnmarshalMapping([]byte("[")); err == nil {
		t.Error("garbage decoded")
	}
	if keys := (Mapping{"b": {}, "a": {}}).Keys(); keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestCubicInOut(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{0.25, 0.0625},
		{0.5, 0.5},
		{0.75, 0.9375},
		{1, 1},
	}
	for _, tt := range tests {
		if got := CubicInOut(tt.in); !near(got, tt.want) {
			t.Errorf("CubicInOut(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAnimation(t *testing.T) {
	g := store.New()
	_ = g.AddNode("a", store.Attributes{store.AttrX: 0.0, store.AttrY: 0.0})
	_ = g.AddNode("b", store.Attributes{store.AttrX: 1.0, store.AttrY: 1.0})
	start := time.Unix(0, 0)

	a := NewAnimation(g, Mapping{"a": {10, 20}, "b": {1, 1}}, start, time.Second, Linear)
	if a.Step(g, start.Add(500*time.Millisecond)) {
		t.Fatal("finished at half time")
	}
	if p := Export(g)["a"]; !near(p.X, 5) || !near(p.Y, 10) {
		t.Errorf("halfway a = %v, want (5, 10)", p)
	}

	_ = g.DropNode("b")
	if !a.Step(g, start.Add(time.Second)) {
		t.Fatal("not finished at end")
	}
	if p := Export(g)["a"]; p != (Position{10, 20}) {
		t.Errorf("final a = %v", p)
	}
	if g.HasNode("b") {
		t.Error("animation recreated dropped node")
	}
	if !a.Done() || !a.Step(g, start) {
		t.Error("finished animation kept running")
	}
}

func TestAnimationStopAndImmediate(t *testing.T) {
	g := store.New()
	_ = g.AddNode("a", store.Attributes{store.AttrX: 0.0, store.AttrY: 0.0})
	start := time.Unix(0, 0)

	a := NewAnimation(g, Mapping{"a": {10, 10}}, start, time.Second, nil)
	a.Stop()
	a.Step(g, start.Add(2*time.Second))
	if p := Export(g)["a"]; p != (Position{}) {
		t.Errorf("stopped animation moved a to %v", p)
	}

	b := NewAnimation(g, Mapping{"a": {3, 4}}, start, 0, nil)
	if !b.Step(g, start) {
		t.Error("zero duration did not finish at once")
	}
	if p := Export(g)["a"]; p != (Position{3, 4}) {
		t.Errorf("a = %v, want (3, 4)", p)
	}
	if len(b.Target()) != 1 {
		t.Error("Target() lost entries")
	}
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	calls := 0
	compute := func() (Mapping, error) {
		calls++
		return Mapping{"a": {1, 1}}, nil
	}

	m, hit, err := Cached(ctx, c, "k", time.Hour, compute)
	if err != nil || hit || m["a"] != (Position{1, 1}) {
		t.Fatalf("first Cached() = %v, %v, %v", m, hit, err)
	}
	m, hit, err = Cached(ctx, c, "k", time.Hour, compute)
	if err != nil || !hit || m["a"] != (Position{1, 1}) {
		t.Fatalf("second Cached() = %v, %v, %v", m, hit, err)
	}
	if calls != 1 {
		t.Errorf("compute calls = %d, want 1", calls)
	}

	boom := errors.New("boom")
	if _, _, err := Cached(ctx, nil, "x", 0, func() (Mapping, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

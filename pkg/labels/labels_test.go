package labels

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/matzehuels/webgraph/pkg/camera"
)

// distinctSizes returns params with n nodes of sizes n..1, named by size.
func distinctSizes(n int) Params {
	p := Params{Cache: make(map[string]NodeData)}
	for s := n; s >= 1; s-- {
		key := fmt.Sprintf("n%d", s)
		p.Cache[key] = NodeData{Size: float64(s)}
		p.Visible = append(p.Visible, key)
	}
	return p
}

// moved returns a camera that moved from prev to cur.
func moved(prev, cur camera.State) *camera.Camera {
	c := camera.New()
	c.SetState(prev)
	c.SetState(cur)
	return c
}

func zoomTo(ratio float64) *camera.Camera {
	return moved(camera.DefaultState, camera.State{X: 0.5, Y: 0.5, Ratio: ratio})
}

func TestLevelsQuartileBoundaries(t *testing.T) {
	ratios := []float64{0.9, 0.6, 0.3, 0.1}
	tests := []struct {
		count int
		want  []int
	}{
		{1, []int{1, 1, 1, 1}},
		{2, []int{1, 1, 2, 2}},
		{3, []int{1, 2, 3, 3}},
		{4, []int{1, 2, 3, 4}},
		{5, []int{2, 3, 4, 5}},
		{8, []int{2, 4, 6, 8}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d sizes", tt.count), func(t *testing.T) {
			for i, r := range ratios {
				p := distinctSizes(tt.count)
				p.Camera = zoomTo(r)
				if got := len(Levels(p)); got != tt.want[i] {
					t.Errorf("ratio %v: %d labels, want %d", r, got, tt.want[i])
				}
			}
		})
	}
}

func TestLevelsTiersLargestFirst(t *testing.T) {
	p := Params{
		Cache: map[string]NodeData{
			"small":  {Size: 1},
			"big":    {Size: 10},
			"big2":   {Size: 10},
			"medium": {Size: 5},
		},
		Visible: []string{"small", "big", "medium", "big2"},
		Camera:  moved(camera.DefaultState, camera.State{X: 0.5, Y: 0.5, Ratio: 2}),
	}

	if got := Levels(p); !reflect.DeepEqual(got, []string{"big", "big2"}) {
		t.Errorf("ratio 2: %v, want [big big2]", got)
	}

	p.Camera = zoomTo(0.1)
	if got := Levels(p); !reflect.DeepEqual(got, []string{"big", "big2", "medium", "small"}) {
		t.Errorf("ratio 0.1: %v", got)
	}
}

func TestLevelsZoomSequenceIsMonotonic(t *testing.T) {
	p := distinctSizes(4)
	// Two nodes per tier.
	for s := 4; s >= 1; s-- {
		key := fmt.Sprintf("m%d", s)
		p.Cache[key] = NodeData{Size: float64(s)}
		p.Visible = append(p.Visible, key)
	}

	c := camera.New()
	p.Camera = c
	prev := -1
	for _, r := range []float64{2.0, 1.8, 1.2, 0.9, 0.6, 0.3, 0.1} {
		c.SetState(camera.State{X: 0.5, Y: 0.5, Ratio: r})
		p.Displayed = Levels(p)
		if len(p.Displayed) < prev {
			t.Fatalf("ratio %v: %d labels after %d", r, len(p.Displayed), prev)
		}
		prev = len(p.Displayed)
	}
	if prev != 8 {
		t.Errorf("final selection = %d, want 8", prev)
	}

	c.SetState(camera.State{X: 0.5, Y: 0.5, Ratio: 15})
	if got := Levels(p); len(got) != 0 {
		t.Errorf("ratio 15: %v, want empty", got)
	}
}

func TestLevelsTransitionRules(t *testing.T) {
	prevSel := []string{"kept"}
	base := camera.State{X: 0.5, Y: 0.5, Ratio: 0.5}

	tests := []struct {
		name      string
		from, to  camera.State
		displayed []string
		wantKept  bool
	}{
		{"Panning", base, camera.State{X: 0.7, Y: 0.5, Ratio: 0.5}, prevSel, true},
		{"PanningWithoutSelection", base, camera.State{X: 0.7, Y: 0.5, Ratio: 0.5}, nil, true},
		{"UnzoomOffStep", base, camera.State{X: 0.5, Y: 0.5, Ratio: 0.52}, prevSel, true},
		{"UnzoomOnStep", base, camera.State{X: 0.5, Y: 0.5, Ratio: 0.55}, prevSel, false},
		{"StillWithSelection", base, base, prevSel, true},
		{"StillWithoutSelection", base, base, nil, false},
		{"ZoomingWhileZoomedOut", camera.State{Ratio: 3}, camera.State{Ratio: 2}, prevSel, true},
		{"ZoomingIn", base, camera.State{X: 0.5, Y: 0.5, Ratio: 0.4}, prevSel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := distinctSizes(4)
			p.Camera = moved(tt.from, tt.to)
			p.Displayed = tt.displayed

			got := Levels(p)
			kept := reflect.DeepEqual(got, keep(tt.displayed))
			if kept != tt.wantKept {
				t.Errorf("Levels() = %v, kept = %v, want kept %v", got, kept, tt.wantKept)
			}
		})
	}
}

func TestLevelsFarOutAndEmpty(t *testing.T) {
	p := distinctSizes(3)
	p.Camera = moved(camera.State{Ratio: 10}, camera.State{Ratio: 20})
	if got := Levels(p); len(got) != 0 {
		t.Errorf("ratio 20: %v, want empty", got)
	}

	hidden := Params{
		Cache:   map[string]NodeData{"a": {Size: 3, Hidden: true}},
		Visible: []string{"a"},
		Camera:  zoomTo(0.1),
	}
	if got := Levels(hidden); len(got) != 0 {
		t.Errorf("all hidden: %v, want empty", got)
	}

	none := Params{Cache: map[string]NodeData{}, Camera: moved(camera.DefaultState, camera.State{Ratio: 2})}
	if got := Levels(none); len(got) != 0 {
		t.Errorf("no visible nodes: %v, want empty", got)
	}
}

func TestLevelsWithoutCamera(t *testing.T) {
	p := distinctSizes(4)
	if got := Levels(p); !reflect.DeepEqual(got, []string{"n4"}) {
		t.Errorf("nil camera: %v, want [n4]", got)
	}

	p.Displayed = []string{"n1"}
	if got := Levels(p); !reflect.DeepEqual(got, []string{"n1"}) {
		t.Errorf("nil camera with selection: %v, want [n1]", got)
	}
}

func TestAllAndImportant(t *testing.T) {
	p := Params{
		Cache: map[string]NodeData{
			"a": {Important: true},
			"b": {Hidden: true, Important: true},
			"c": {},
		},
		Visible: []string{"a", "b", "c"},
	}

	if got := All(p); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("All() = %v", got)
	}
	if got := Important(p); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Important() = %v", got)
	}
}

func TestThreshold(t *testing.T) {
	p := Params{
		Cache:   map[string]NodeData{"big": {Size: 12}, "small": {Size: 4}},
		Visible: []string{"big", "small"},
		Camera:  zoomTo(4),
	}
	// Rendered sizes at ratio 4 are 6 and 2.
	if got := Threshold(6)(p); !reflect.DeepEqual(got, []string{"big"}) {
		t.Errorf("Threshold(6) = %v, want [big]", got)
	}
}

func TestParseKindAndFor(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantNil bool
		wantErr bool
	}{
		{"all", KindAll, false, false},
		{"LEVELS", KindLevels, false, false},
		{" important ", KindImportant, false, false},
		{"default", KindDefault, true, false},
		{"sigma", "", true, true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if (For(got) == nil) != tt.wantNil {
			t.Errorf("For(%q) nil = %v, want %v", got, For(got) == nil, tt.wantNil)
		}
	}
}

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/webgraph/pkg/config"
)

func TestRenderDOT(t *testing.T) {
	input := writeTestGraph(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "plain",
			want: []string{"digraph G", `"A" -> "B"`, `"A" -> "C"`},
		},
		{
			name: "hover highlights the neighborhood",
			args: []string{"--hover", "B"},
			want: []string{`"A" -> "B" [color="` + config.DefaultHighlightColor + `"`},
		},
		{
			name:    "hidden edges",
			args:    []string{"--hide-edges"},
			notWant: []string{"->"},
		},
		{
			name:    "just important edges",
			args:    []string{"--just-important"},
			want:    []string{`"A" -> "C"`},
			notWant: []string{`"A" -> "B"`},
		},
		{
			name: "node type",
			args: []string{"--node-type", "rectangle"},
			want: []string{"shape=box"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.dot")
			args := append([]string{"render", input, "-f", "dot", "-o", out}, tt.args...)
			if err := run(t, args...); err != nil {
				t.Fatalf("render: %v", err)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			dot := string(data)
			for _, w := range tt.want {
				if !strings.Contains(dot, w) {
					t.Errorf("missing %q in:\n%s", w, dot)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(dot, w) {
					t.Errorf("unexpected %q in:\n%s", w, dot)
				}
			}
		})
	}
}

func TestRenderDefaultOutputPath(t *testing.T) {
	input := writeTestGraph(t)
	if err := run(t, "render", input, "-f", "dot"); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := strings.TrimSuffix(input, ".json") + ".dot"
	if _, err := os.Stat(want); err != nil {
		t.Errorf("default output %s not written: %v", want, err)
	}
}

func TestRenderErrors(t *testing.T) {
	input := writeTestGraph(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"render", input, "-f", "gif"}},
		{"unknown hover node", []string{"render", input, "-f", "dot", "--hover", "Z"}},
		{"missing graph", []string{"render", filepath.Join(t.TempDir(), "none.json")}},
		{"invalid node type", []string{"render", input, "-f", "dot", "--node-type", "hexagon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(t, tt.args...); err == nil {
				t.Error("render succeeded, want error")
			}
		})
	}
}

package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/webgraph/pkg/render"
)

// DefaultScale is the number of points per graph unit.
const DefaultScale = 400.0

// Options configures frame rendering.
type Options struct {
	// Scale maps graph coordinates to points. Zero means DefaultScale.
	Scale float64
}

var shapes = map[render.NodeType]string{
	render.NodeRing:      "circle",
	render.NodeCircle:    "circle",
	render.NodeRectangle: "box",
	render.NodeTriangle:  "triangle",
}

// ToDOT converts a frame to Graphviz DOT with pinned node positions.
// Only labels selected for the frame are written; highlighted and hovered
// nodes get a heavier outline and backdrops become an extra periphery.
func ToDOT(f render.Frame, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	labeled := make(map[string]bool, len(f.Labels))
	for _, k := range f.Labels {
		labeled[k] = true
	}
	backdrops := make(map[string]string, len(f.Backdrops))
	for _, b := range f.Backdrops {
		backdrops[b.Node] = b.Color
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fixedsize=true, fontsize=10];\n")
	buf.WriteString("  edge [arrowsize=0.5];\n")
	buf.WriteString("\n")

	for _, n := range f.Nodes {
		attrs := nodeAttrs(n, scale, labeled[n.Key], backdrops[n.Key], n.Key == f.Hovered)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Key, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range f.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n render.NodeDisplay, scale float64, labeled bool, backdrop string, hovered bool) []string {
	shape, ok := shapes[n.Type]
	if !ok {
		shape = "circle"
	}
	// size is a radius in pixels; graphviz wants a diameter in inches.
	width := strconv.FormatFloat(n.Size*2/72, 'f', 3, 64)

	attrs := []string{
		fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(n.X*scale), fmtFloat(n.Y*scale)),
		"shape=" + shape,
		"width=" + width,
		"height=" + width,
		"label=\"\"",
	}
	if n.Type == render.NodeRing {
		attrs = append(attrs, "fillcolor=white", fmt.Sprintf("color=%q", n.Color), "penwidth=2")
	} else {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Color))
	}
	if labeled {
		label := n.Label
		if label == "" {
			label = n.Key
		}
		attrs = append(attrs, fmt.Sprintf("xlabel=%q", label))
	}
	if backdrop != "" {
		attrs = append(attrs, "peripheries=2", fmt.Sprintf("color=%q", backdrop))
	}
	if n.Highlighted || hovered {
		attrs = append(attrs, "penwidth=4")
	}
	return attrs
}

func edgeAttrs(e render.EdgeDisplay) []string {
	width := max(e.Weight, 1)
	return []string{
		fmt.Sprintf("color=%q", e.Color),
		"penwidth=" + fmtFloat(width),
	}
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG lays out a DOT graph with pinned positions and renders SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderFrame is ToDOT followed by RenderSVG.
func RenderFrame(ctx context.Context, f render.Frame, opts Options) ([]byte, error) {
	return RenderSVG(ctx, ToDOT(f, opts))
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces graphviz's pt-sized root element with a
// scalable one.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

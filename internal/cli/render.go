package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/webgraph/pkg/camera"
	"github.com/matzehuels/webgraph/pkg/config"
	"github.com/matzehuels/webgraph/pkg/events"
	"github.com/matzehuels/webgraph/pkg/render"
	"github.com/matzehuels/webgraph/pkg/render/nodelink"
	"github.com/matzehuels/webgraph/pkg/session"
)

// Output formats of the render command.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

var renderFormats = []string{formatDOT, formatSVG, formatPDF, formatPNG}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string  // output file path, "-" for stdout
	format     string  // dot, svg, pdf or png
	configPath string  // TOML or YAML session config
	hover      string  // node to hover before drawing
	ratio      float64 // camera zoom ratio, 0 keeps the default
	scale      float64 // graph units to points
	pngScale   float64 // rasterization factor for png

	nodeType      string
	hideEdges     bool
	justImportant bool
	backdrop      bool
}

// renderCommand creates the render command, which draws one frame of a
// headless session.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: formatSVG, pngScale: 2}

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a graph frame to DOT, SVG, PDF or PNG",
		Long: `Render a graph frame to DOT, SVG, PDF or PNG.

The graph is loaded into a headless session using the given config. With
--hover the frame shows the hovered node's highlighted neighborhood, colored
the way an interactive session would draw it.

SVG output needs no external tools. PDF and PNG need rsvg-convert on PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(renderFormats, opts.format) {
				return fmt.Errorf("invalid format %q (want one of: %s)", opts.format, strings.Join(renderFormats, ", "))
			}
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			opts.override(cmd, &cfg)
			return c.runRender(cmd.Context(), args[0], cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout (default: <input>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot, pdf, png")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "session config file (.toml or .yaml)")
	cmd.Flags().StringVar(&opts.hover, "hover", "", "hover this node before drawing")
	cmd.Flags().Float64Var(&opts.ratio, "ratio", 0, "camera zoom ratio (default: 1)")
	cmd.Flags().Float64Var(&opts.scale, "scale", nodelink.DefaultScale, "points per graph unit")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", opts.pngScale, "png rasterization factor")
	cmd.Flags().StringVar(&opts.nodeType, "node-type", "", "default node type: ring, circle, rectangle, triangle")
	cmd.Flags().BoolVar(&opts.hideEdges, "hide-edges", false, "do not draw edges")
	cmd.Flags().BoolVar(&opts.justImportant, "just-important", false, "draw only important edges")
	cmd.Flags().BoolVar(&opts.backdrop, "backdrop", false, "draw cluster backdrops behind nodes")
	completeRenderFlags(cmd)

	return cmd
}

// override applies explicitly set flags on top of the config file.
func (o *renderOpts) override(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("node-type") {
		cfg.DefaultNodeType = render.NodeType(o.nodeType)
	}
	if flags.Changed("hide-edges") {
		cfg.Render.HideEdges = o.hideEdges
	}
	if flags.Changed("just-important") {
		cfg.Render.RenderJustImportantEdges = o.justImportant
	}
	if flags.Changed("backdrop") {
		cfg.Render.RenderNodeBackdrop = o.backdrop
	}
	if o.hover != "" {
		cfg.HighlightSubGraphOnHover = true
	}
}

// runRender loads the graph, draws a frame and writes it in the requested format.
func (c *CLI) runRender(ctx context.Context, input string, cfg config.Config, opts renderOpts) error {
	g, err := loadGraph(input)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	sess, err := session.New(g, cfg, session.WithLogger(c.Logger))
	if err != nil {
		return err
	}
	if err := sess.Start(render.HeadlessFactory); err != nil {
		return err
	}
	defer sess.Stop()

	h := sess.Renderer().(*render.Headless)
	if opts.ratio > 0 {
		st := camera.DefaultState
		st.Ratio = opts.ratio
		h.Camera().SetState(st)
		h.Refresh()
	}
	if opts.hover != "" {
		if !g.HasNode(opts.hover) {
			return fmt.Errorf("hover: node %q not found", opts.hover)
		}
		h.Enter(opts.hover, events.Pointer{})
		c.Logger.Debug("hovered", "node", opts.hover,
			"nodes", len(sess.HighlightedNodes()), "edges", len(sess.HighlightedEdges()))
	}

	var sp *statusSpinner
	if spinsFor(opts.format) {
		sp = startSpinner(ctx, c.status, fmt.Sprintf("Rendering %s...", opts.format))
	}
	data, err := encodeFrame(ctx, h.Frame(), opts)
	if sp != nil {
		if err != nil {
			sp.Fail("Render failed")
		} else {
			sp.Stop()
		}
	}
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}
	prog.done(fmt.Sprintf("Rendered %s", opts.format))

	printSuccess("Render complete")
	printFile(out)
	var tags []string
	if opts.hover != "" {
		tags = append(tags, highlightTag(opts.hover, len(sess.HighlightedNodes()), len(sess.HighlightedEdges())))
	}
	printStats(g.Order(), g.Size(), tags...)
	return nil
}

// spinsFor reports whether encoding format goes through graphviz, which is
// slow enough to show a spinner. DOT is written directly.
func spinsFor(format string) bool {
	return format != formatDOT
}

// encodeFrame converts a frame to the bytes of the requested format.
func encodeFrame(ctx context.Context, f render.Frame, opts renderOpts) ([]byte, error) {
	nopts := nodelink.Options{Scale: opts.scale}
	if opts.format == formatDOT {
		return []byte(nodelink.ToDOT(f, nopts)), nil
	}

	svg, err := nodelink.RenderFrame(ctx, f, nopts)
	if err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	switch opts.format {
	case formatPDF:
		return render.ToPDF(svg)
	case formatPNG:
		return render.ToPNG(svg, opts.pngScale)
	}
	return svg, nil
}

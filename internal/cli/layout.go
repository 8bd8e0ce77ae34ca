package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/webgraph/pkg/cache"
	"github.com/matzehuels/webgraph/pkg/graph"
	"github.com/matzehuels/webgraph/pkg/layout"
	"github.com/matzehuels/webgraph/pkg/rank"
	"github.com/matzehuels/webgraph/pkg/store"
)

// defaultLayoutTTL is how long computed layouts stay in the cache.
const defaultLayoutTTL = 7 * 24 * time.Hour

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	output      string
	algorithm   string
	rank        int  // mark the top N nodes by PageRank important, 0 skips ranking
	mappingOnly bool // write {key: {x, y}} instead of the full graph
	ttl         time.Duration
	layout      layout.Options
	cache       cacheFlags
}

// layoutCommand creates the layout command for positioning graph nodes.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{
		algorithm: layout.AlgorithmCircular,
		ttl:       defaultLayoutTTL,
		layout:    layout.DefaultOptions(),
	}

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Position graph nodes with a layout algorithm",
		Long: `Position graph nodes with a layout algorithm.

The layout command reads a graph JSON file, computes x and y for every node
with the chosen algorithm (circular, random or force), and writes the graph
back with the new positions.

Results are keyed by the graph structure and the layout options, so running
the command again on an unchanged graph reuses the cached positions. Use
--redis to share the cache with a running server.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := layout.ByName(opts.algorithm); err != nil {
				return err
			}
			if opts.rank < 0 {
				return fmt.Errorf("--rank must not be negative")
			}
			return c.runLayout(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", opts.algorithm, "layout algorithm: "+strings.Join(layout.Algorithms, ", "))
	cmd.Flags().IntVar(&opts.rank, "rank", 0, "mark the top N nodes by PageRank as important")
	cmd.Flags().BoolVar(&opts.mappingOnly, "mapping", false, "write only the position mapping")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", opts.ttl, "cache entry lifetime")
	cmd.Flags().Float64Var(&opts.layout.Center, "center", opts.layout.Center, "layout midpoint on both axes")
	cmd.Flags().Float64Var(&opts.layout.Scale, "scale", opts.layout.Scale, "layout radius (circular) or side (random, force)")
	cmd.Flags().Uint64Var(&opts.layout.Seed, "seed", 0, "random seed (random)")
	cmd.Flags().IntVar(&opts.layout.Iterations, "iterations", opts.layout.Iterations, "optimizer iterations (force)")
	opts.cache.register(cmd)
	completeLayoutFlags(cmd)

	return cmd
}

// runLayout loads the graph, computes or fetches the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts layoutOpts) error {
	g, err := loadGraph(input)
	if err != nil {
		return err
	}

	if opts.rank > 0 {
		top, err := rank.MarkImportant(g, opts.rank)
		if err != nil {
			return fmt.Errorf("rank: %w", err)
		}
		c.Logger.Debug("ranked", "important", top)
	}

	lc, err := opts.cache.open(ctx, c.Logger)
	if err != nil {
		return err
	}
	defer lc.Close()

	sp := startSpinner(ctx, c.status, fmt.Sprintf("Computing %s layout...", opts.algorithm))

	prog := newProgress(c.Logger)
	m, cacheHit, err := computeLayout(ctx, g, lc, opts)
	if err != nil && m == nil {
		sp.Fail("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	sp.Stop()
	if err != nil {
		c.Logger.Warn("layout not cached", "err", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Applied %s layout to %d nodes", opts.algorithm, g.Order()))

	layout.Apply(g, m)

	var data []byte
	if opts.mappingOnly {
		data, err = layout.MarshalMapping(m)
	} else {
		data, err = graph.MarshalGraph(g)
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	if opts.output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Layout complete")
	printFile(out)
	printStats(g.Order(), g.Size(), cacheTag(cacheHit))
	printNewline()
	printNextStep("Render", appName+" render "+out)
	return nil
}

// computeLayout returns the cached mapping for g's structure, computing it on a miss.
func computeLayout(ctx context.Context, g *store.Graph, c cache.Cache, opts layoutOpts) (layout.Mapping, bool, error) {
	fn, err := layout.ByName(opts.algorithm)
	if err != nil {
		return nil, false, err
	}
	structure, err := graph.Structure(graph.FromStore(g, false))
	if err != nil {
		return nil, false, err
	}
	key := cache.LayoutKey(cache.Hash(structure), opts.algorithm, opts.layout)
	return layout.Cached(ctx, c, key, opts.ttl, func() (layout.Mapping, error) {
		return fn(g, opts.layout), nil
	})
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/webgraph/pkg/observability"
	"github.com/matzehuels/webgraph/pkg/server"
)

// shutdownTimeout bounds how long in-flight requests may finish on exit.
const shutdownTimeout = 10 * time.Second

type serveOpts struct {
	addr       string
	configPath string
	metrics    bool
	ttl        time.Duration
	cache      cacheFlags
}

// serveCommand creates the serve command, which hosts sessions over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", metrics: true, ttl: server.DefaultLayoutTTL}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the session HTTP API",
		Long: `Serve the session HTTP API.

Each POST /sessions creates a headless session from a graph and an optional
config. Sessions are edited, laid out, hovered and undone through their
/sessions/{id}/... routes. Prometheus metrics are served on /metrics.

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "default session config file (.toml or .yaml)")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", opts.metrics, "expose Prometheus metrics on /metrics")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", opts.ttl, "layout cache entry lifetime")
	opts.cache.register(cmd)
	completeConfigFlag(cmd)

	return cmd
}

// runServe runs the HTTP server until ctx is cancelled or the listener fails.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	lc, err := opts.cache.open(ctx, c.Logger)
	if err != nil {
		return err
	}

	srvOpts := []server.Option{
		server.WithConfig(cfg),
		server.WithCache(lc, opts.ttl),
		server.WithLogger(c.Logger),
	}
	if opts.metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		srvOpts = append(srvOpts,
			server.WithHooks(observability.NewPrometheusHooks(reg)),
			server.WithGatherer(reg),
		)
	}
	srv := server.New(srvOpts...)
	defer srv.Close()

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.Logger.Info("listening", "addr", opts.addr, "metrics", opts.metrics)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", opts.addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		c.Logger.Info("shutting down", "sessions", len(srv.IDs()))
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

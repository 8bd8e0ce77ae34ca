package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks exports hook events as Prometheus metrics.
type PrometheusHooks struct {
	actions   *prometheus.CounterVec
	steps     *prometheus.CounterVec
	highlight *prometheus.HistogramVec
	labels    prometheus.Histogram
	cache     *prometheus.CounterVec
	cacheSize prometheus.Counter
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

var _ Hooks = (*PrometheusHooks)(nil)

// NewPrometheusHooks creates the webgraph metrics and registers them on reg.
// A nil reg uses the default registerer.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	sizes := prometheus.ExponentialBuckets(1, 2, 10)
	h := &PrometheusHooks{
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webgraph_actions_total",
				Help: "Mutations applied to a session",
			},
			[]string{"kind", "recorded"},
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webgraph_history_steps_total",
				Help: "Undo and redo calls",
			},
			[]string{"direction", "kind", "ok"},
		),
		highlight: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webgraph_highlight_members",
				Help:    "Members of a hover highlight",
				Buckets: sizes,
			},
			[]string{"element"},
		),
		labels: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "webgraph_labels_selected",
			Help:    "Labels selected per frame",
			Buckets: sizes,
		}),
		cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webgraph_cache_requests_total",
				Help: "Layout cache lookups and writes",
			},
			[]string{"key_type", "result"},
		),
		cacheSize: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webgraph_cache_written_bytes_total",
			Help: "Bytes written to the layout cache",
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webgraph_http_requests_total",
				Help: "HTTP API responses",
			},
			[]string{"method", "route", "code"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webgraph_http_request_duration_seconds",
				Help:    "HTTP API latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	reg.MustRegister(h.actions, h.steps, h.highlight, h.labels, h.cache, h.cacheSize, h.requests, h.latency)
	return h
}

func (h *PrometheusHooks) OnAction(kind string, recorded bool) {
	h.actions.WithLabelValues(kind, strconv.FormatBool(recorded)).Inc()
}

func (h *PrometheusHooks) OnUndo(kind string, ok bool) {
	h.steps.WithLabelValues("undo", kind, strconv.FormatBool(ok)).Inc()
}

func (h *PrometheusHooks) OnRedo(kind string, ok bool) {
	h.steps.WithLabelValues("redo", kind, strconv.FormatBool(ok)).Inc()
}

func (h *PrometheusHooks) OnHighlight(nodes, edges int) {
	h.highlight.WithLabelValues("node").Observe(float64(nodes))
	h.highlight.WithLabelValues("edge").Observe(float64(edges))
}

func (h *PrometheusHooks) OnLabels(count int) {
	h.labels.Observe(float64(count))
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cache.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cache.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cache.WithLabelValues(keyType, "set").Inc()
	h.cacheSize.Add(float64(size))
}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, statusCode int, d time.Duration) {
	h.requests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	h.latency.WithLabelValues(method, route).Observe(d.Seconds())
}

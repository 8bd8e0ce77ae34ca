package server

import (
	"cmp"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/webgraph/pkg/buildinfo"
	"github.com/matzehuels/webgraph/pkg/cache"
	"github.com/matzehuels/webgraph/pkg/config"
	"github.com/matzehuels/webgraph/pkg/errors"
	"github.com/matzehuels/webgraph/pkg/graph"
	"github.com/matzehuels/webgraph/pkg/observability"
	"github.com/matzehuels/webgraph/pkg/session"
)

// DefaultLayoutTTL is how long computed layouts stay cached.
const DefaultLayoutTTL = 24 * time.Hour

// Server hosts sessions. Create one with [New] and mount [Server.Handler].
type Server struct {
	cfg      config.Config
	cache    cache.Cache
	ttl      time.Duration
	log      *log.Logger
	hooks    observability.Hooks
	gatherer prometheus.Gatherer

	mu       sync.RWMutex
	sessions map[string]*hosted
}

// hosted is one session with the lock that serializes its operations.
type hosted struct {
	mu      sync.Mutex
	s       *session.Session
	created time.Time
}

// Option configures a [Server].
type Option func(*Server)

// WithConfig sets the configuration new sessions start from.
func WithConfig(cfg config.Config) Option {
	return func(s *Server) { s.cfg = cfg }
}

// WithCache sets the layout cache and its TTL.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) {
		if c != nil {
			s.cache = c
		}
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the request and session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithHooks sets the hooks that receive session, cache and HTTP events.
func WithHooks(h observability.Hooks) Option {
	return func(s *Server) {
		if h != nil {
			s.hooks = h
		}
	}
}

// WithGatherer serves g on /metrics. Without it /metrics reports 404.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// New creates a server with no sessions.
func New(opts ...Option) *Server {
	s := &Server{
		cfg:      config.Default(),
		cache:    cache.NewNullCache(),
		ttl:      DefaultLayoutTTL,
		log:      log.Default(),
		hooks:    observability.NoopHooks{},
		sessions: make(map[string]*hosted),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)

		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.handleDelete)
			r.Get("/graph", s.with(handleGraph))
			r.Get("/frame", s.with(handleFrame))
			r.Get("/frame.svg", s.with(handleFrameSVG))

			r.Post("/nodes", s.with(handleMergeNodes))
			r.Post("/nodes/drop", s.with(handleDropNodes))
			r.Post("/edges", s.with(handleMergeEdges))
			r.Put("/edges", s.with(handleReplaceEdges))

			r.Post("/toggles/{name}", s.with(handleToggle))
			r.Put("/node-type", s.with(handleNodeType))
			r.Put("/app-mode", s.with(handleAppMode))

			r.Get("/layout", s.with(handleGetLayout))
			r.Post("/layout", s.with(s.handleLayout))
			r.Post("/rank", s.with(handleRank))

			r.Post("/hover", s.with(handleHover))
			r.Get("/camera", s.with(handleGetCamera))
			r.Put("/camera", s.with(handleSetCamera))

			r.Post("/undo", s.with(handleUndo))
			r.Post("/redo", s.with(handleRedo))
			r.Delete("/history", s.with(handleClearHistory))
		})
	})
	return r
}

// =============================================================================
// Session Registry
// =============================================================================

// Create starts a session over gs. A nil cfg uses the server configuration.
func (s *Server) Create(gs graph.Graph, cfg *config.Config) (string, error) {
	c := s.cfg
	if cfg != nil {
		c = *cfg
	}
	sess, err := session.FromSerialized(gs, c,
		session.WithLogger(s.log),
		session.WithHooks(s.hooks),
	)
	if err != nil {
		return "", err
	}
	if err := sess.Start(nil); err != nil {
		return "", err
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &hosted{s: sess, created: time.Now()}
	s.mu.Unlock()

	s.log.Info("session created", "id", id, "nodes", len(gs.Nodes), "edges", len(gs.Edges))
	return id, nil
}

// Delete stops and forgets a session. Reports whether it existed.
func (s *Server) Delete(id string) bool {
	s.mu.Lock()
	h, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return false
	}
	h.mu.Lock()
	h.s.Stop()
	h.mu.Unlock()
	s.log.Info("session deleted", "id", id)
	return true
}

// IDs returns the hosted session IDs, oldest first.
func (s *Server) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		if c := s.sessions[a].created.Compare(s.sessions[b].created); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return ids
}

// Close stops every session and the layout cache.
func (s *Server) Close() error {
	for _, id := range s.IDs() {
		s.Delete(id)
	}
	return s.cache.Close()
}

// Do runs fn on the session id while holding its lock.
func (s *Server) Do(id string, fn func(*session.Session) error) error {
	s.mu.RLock()
	h, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.s)
}

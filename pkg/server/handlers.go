package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/matzehuels/webgraph/pkg/buildinfo"
	"github.com/matzehuels/webgraph/pkg/cache"
	"github.com/matzehuels/webgraph/pkg/camera"
	"github.com/matzehuels/webgraph/pkg/config"
	"github.com/matzehuels/webgraph/pkg/errors"
	"github.com/matzehuels/webgraph/pkg/events"
	"github.com/matzehuels/webgraph/pkg/graph"
	"github.com/matzehuels/webgraph/pkg/layout"
	"github.com/matzehuels/webgraph/pkg/rank"
	"github.com/matzehuels/webgraph/pkg/render"
	"github.com/matzehuels/webgraph/pkg/render/nodelink"
	"github.com/matzehuels/webgraph/pkg/session"
	"github.com/matzehuels/webgraph/pkg/store"
)

// =============================================================================
// Request and Response Bodies
// =============================================================================

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type createRequest struct {
	Graph graph.Graph `json:"graph"`
	// Config overrides the server configuration field by field.
	Config json.RawMessage `json:"config,omitempty"`
}

type createResponse struct {
	ID string `json:"id"`
}

type dropRequest struct {
	Keys []string `json:"keys"`
}

type nodeTypeRequest struct {
	Type render.NodeType `json:"type"`
}

type appModeRequest struct {
	Mode config.AppMode `json:"mode"`
}

type backdropRequest struct {
	Enabled *bool             `json:"enabled,omitempty"`
	Colors  map[string]string `json:"colors,omitempty"`
}

type layoutRequest struct {
	Algorithm string         `json:"algorithm"`
	Options   layout.Options `json:"options"`
}

type layoutResponse struct {
	Mapping layout.Mapping `json:"mapping"`
	Cached  bool           `json:"cached"`
}

type rankRequest struct {
	Top int `json:"top"`
}

type rankResponse struct {
	Important []string `json:"important"`
}

type hoverRequest struct {
	Node string `json:"node"`
}

type hoverResponse struct {
	Hovered string   `json:"hovered,omitempty"`
	Nodes   []string `json:"nodes"`
	Edges   []string `json:"edges"`
}

type resultResponse struct {
	OK bool `json:"ok"`
}

// =============================================================================
// Registry Handlers
// =============================================================================

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	var cfg *config.Config
	if len(req.Config) > 0 {
		c := s.cfg
		if err := json.Unmarshal(req.Config, &c); err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config"))
			return
		}
		cfg = &c
	}
	id, err := s.Create(req.Graph, cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createResponse{ID: id})
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": s.IDs()})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.Delete(id) {
		writeError(w, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sessionHandler handles a request on a locked session.
type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *session.Session) error

// with resolves {id} and runs h under the session lock. Errors returned by
// h are written as JSON.
func (s *Server) with(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.Do(chi.URLParam(r, "id"), func(sess *session.Session) error {
			return h(w, r, sess)
		})
		if err != nil {
			writeError(w, err)
		}
	}
}

// =============================================================================
// Read Handlers
// =============================================================================

func handleGraph(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	exclude, _ := strconv.ParseBool(r.URL.Query().Get("exclude_edges"))
	writeJSON(w, http.StatusOK, sess.ExportGraph(exclude))
	return nil
}

func handleFrame(w http.ResponseWriter, _ *http.Request, sess *session.Session) error {
	h, err := headless(sess)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, h.Frame())
	return nil
}

func handleFrameSVG(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	h, err := headless(sess)
	if err != nil {
		return err
	}
	svg, err := nodelink.RenderFrame(r.Context(), h.Frame(), nodelink.Options{})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
	return nil
}

func handleGetLayout(w http.ResponseWriter, _ *http.Request, sess *session.Session) error {
	writeJSON(w, http.StatusOK, sess.ExportLayoutMapping())
	return nil
}

func handleGetCamera(w http.ResponseWriter, _ *http.Request, sess *session.Session) error {
	cam, err := sess.Camera()
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, cam.State())
	return nil
}

// =============================================================================
// Mutation Handlers
// =============================================================================

func handleMergeNodes(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	var nodes []graph.Node
	if err := decode(r, &nodes); err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resultResponse{OK: sess.MergeNodes(nodes)})
	return nil
}

func handleDropNodes(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	var req dropRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resultResponse{OK: sess.DropNodes(req.Keys)})
	return nil
}

func handleMergeEdges(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	var edges []graph.Edge
	if err := decode(r, &edges); err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resultResponse{OK: sess.MergeEdges(edges)})
	return nil
}

func handleReplaceEdges(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	var edges []graph.Edge
	if err := decode(r, &edges); err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resultResponse{OK: sess.ReplaceEdges(edges)})
	return nil
}

func handleToggle(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	var ok bool
	switch name := chi.URLParam(r, "name"); name {
	case "edges":
		ok = sess.ToggleEdgeRendering()
	case "important-edges":
		ok = sess.ToggleJustImportantEdgeRendering()
	case "backdrop":
		var req backdropRequest
		if r.ContentLength != 0 {
			if err := decode(r, &req); err != nil {
				return err
			}
		}
		colors := config.Render{ClusterColors: req.Colors}.Clusters()
		var err error
		if req.Enabled != nil {
			ok, err = sess.SetNodeBackdropRendering(*req.Enabled, colors)
		} else {
			ok, err = sess.ToggleNodeBackdropRendering(colors)
		}
		if err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeNotFound, "unknown toggle %q", name)
	}
	writeJSON(w, http.StatusOK, resultResponse{OK: ok})
	return nil
}

func handleNodeType(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	var req nodeTypeRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	if _, err := render.ParseNodeType(string(req.Type)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "node type")
	}
	writeJSON(w, http.StatusOK, resultResponse{OK: sess.SetAndApplyDefaultNodeType(req.Type)})
	return nil
}

func handleAppMode(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	var req appModeRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	if _, err := config.ParseAppMode(string(req.Mode)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "app mode")
	}
	writeJSON(w, http.StatusOK, resultResponse{OK: sess.SetAppMode(req.Mode)})
	return nil
}

// handleLayout computes a layout, memoized by graph content, algorithm and
// options, and moves nodes there. Transitions are completed before the
// response is written.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	var req layoutRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	fn, err := layout.ByName(req.Algorithm)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLayout, err, "layout")
	}

	hash, err := structureHash(sess.ExportGraph(false))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "hash graph")
	}
	key := cache.LayoutKey(hash, req.Algorithm, req.Options)

	ctx := r.Context()
	m, hit, err := layout.Cached(ctx, s.cache, key, s.ttl, func() (layout.Mapping, error) {
		return fn(sess.Graph(), req.Options), nil
	})
	if err != nil && m == nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "compute layout")
	}
	if err != nil {
		s.log.Warn("layout not cached", "err", err)
	}
	if hit {
		s.hooks.OnCacheHit(ctx, "layout")
	} else {
		s.hooks.OnCacheMiss(ctx, "layout")
		if data, err := layout.MarshalMapping(m); err == nil {
			s.hooks.OnCacheSet(ctx, "layout", len(data))
		}
	}

	sess.ApplyMapping(m)
	finish(sess)
	writeJSON(w, http.StatusOK, layoutResponse{Mapping: m, Cached: hit})
	return nil
}

func handleRank(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	var req rankRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	if req.Top < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "top must be >= 0, got %d", req.Top)
	}

	scores := rank.PageRank(sess.Graph())
	nodes := make([]graph.Node, len(scores))
	important := make([]string, 0, req.Top)
	for i, sc := range scores {
		top := i < req.Top
		nodes[i] = graph.Node{Key: sc.Key, Attributes: store.Attributes{store.AttrImportant: top}}
		if top {
			important = append(important, sc.Key)
		}
	}
	if len(nodes) > 0 {
		sess.MergeNodes(nodes)
	}
	writeJSON(w, http.StatusOK, rankResponse{Important: important})
	return nil
}

func handleHover(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	var req hoverRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	h, err := headless(sess)
	if err != nil {
		return err
	}
	if req.Node == "" {
		h.Leave(events.Pointer{})
	} else {
		if !sess.Graph().HasNode(req.Node) {
			return errors.New(errors.ErrCodeNotFound, "node %s not found", req.Node)
		}
		h.Enter(req.Node, events.Pointer{})
	}
	writeJSON(w, http.StatusOK, hoverResponse{
		Hovered: sess.HoveredNode(),
		Nodes:   sess.HighlightedNodes(),
		Edges:   sess.HighlightedEdges(),
	})
	return nil
}

func handleSetCamera(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	var st camera.State
	if err := decode(r, &st); err != nil {
		return err
	}
	if st.Ratio <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "camera ratio must be > 0")
	}
	cam, err := sess.Camera()
	if err != nil {
		return err
	}
	ok := cam.SetState(st)
	sess.Renderer().Refresh()
	writeJSON(w, http.StatusOK, resultResponse{OK: ok})
	return nil
}

// =============================================================================
// History Handlers
// =============================================================================

func handleUndo(w http.ResponseWriter, _ *http.Request, sess *session.Session) error {
	ok, err := sess.Undo()
	if err != nil {
		return err
	}
	finish(sess)
	writeJSON(w, http.StatusOK, resultResponse{OK: ok})
	return nil
}

func handleRedo(w http.ResponseWriter, _ *http.Request, sess *session.Session) error {
	ok, err := sess.Redo()
	if err != nil {
		return err
	}
	finish(sess)
	writeJSON(w, http.StatusOK, resultResponse{OK: ok})
	return nil
}

func handleClearHistory(w http.ResponseWriter, _ *http.Request, sess *session.Session) error {
	ok, err := sess.ClearHistory()
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resultResponse{OK: ok})
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// finish jumps a running layout transition to its end. HTTP clients see
// whole states, never intermediate animation frames.
func finish(sess *session.Session) {
	if sess.Animating() {
		sess.Tick(time.Now().Add(sess.Config().Render.AnimationDuration()))
	}
}

// structureHash hashes a graph without node positions, so a layout stays
// cached after it has been applied.
func structureHash(g graph.Graph) (string, error) {
	data, err := graph.Structure(g)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

func headless(sess *session.Session) (*render.Headless, error) {
	h, ok := sess.Renderer().(*render.Headless)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "session renderer is not headless")
	}
	return h, nil
}

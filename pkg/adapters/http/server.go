package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/longboard/internal/logging"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/aretw0/longboard/pkg/ports"
	"github.com/aretw0/longboard/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes a session.Manager as a JSON API.
type Server struct {
	Manager *session.Manager
	Streams *StreamManager

	version  string
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithMetrics serves GET /metrics from g.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithLogger configures a logger for request errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a Server over mgr.
func NewServer(mgr *session.Manager, opts ...Option) *Server {
	s := &Server{
		Manager: mgr,
		version: "dev",
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates a new HTTP handler for the manager.
func NewHandler(mgr *session.Manager, opts ...Option) http.Handler {
	return NewServer(mgr, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/documents", s.ListDocuments)
	r.Route("/documents/{documentID}", func(r chi.Router) {
		r.Get("/", s.GetDocument)
		r.Get("/frame", s.GetFrame)
		r.Get("/events", s.SubscribeEvents)

		r.Put("/preview", s.SetPreview)
		r.Post("/preview/reset", s.ResetPreview)
		r.Post("/preview/random", s.RandomPreview)
		r.Post("/preview/jump", s.JumpTo)
		r.Put("/axes/{axis}", s.SetAxisValue)

		r.Get("/roles", s.GetRoles)
		r.Put("/roles", s.SetRoles)

		r.Post("/instances", s.AddInstance)

		r.Post("/gesture/begin", s.BeginGesture)
		r.Post("/gesture/sample", s.SampleGesture)
		r.Post("/gesture/end", s.EndGesture)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// DocumentView is the GET /documents/{id} response.
type DocumentView struct {
	ID              string                       `json:"id"`
	Axes            []domain.Axis                `json:"axes"`
	Preview         domain.Location              `json:"preview"`
	IsExtrapolating bool                         `json:"is_extrapolating"`
	Roles           []navigation.RoleRow         `json:"roles"`
	Interesting     []domain.InterestingLocation `json:"interesting"`
	PreviewFilename string                       `json:"preview_filename"`
	Glyph           string                       `json:"glyph,omitempty"`
	Dragging        bool                         `json:"dragging"`
}

func viewOf(c *navigation.Coordinator) DocumentView {
	doc := c.Document()
	preview := doc.PreviewLocation()
	return DocumentView{
		ID:              doc.ID(),
		Axes:            doc.Axes(),
		Preview:         preview,
		IsExtrapolating: c.Space().IsExtrapolated(preview),
		Roles:           c.RoleTable(),
		Interesting:     c.InterestingLocations(),
		PreviewFilename: c.PreviewFilename(),
		Glyph:           c.Glyph(),
		Dragging:        c.Dragging(),
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "longboard-http",
		"version": s.version,
	})
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"documents": s.Manager.Documents()})
}

// GetDocument handles GET /documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	var view DocumentView
	err := s.Manager.View(r.Context(), documentID(r), func(_ context.Context, c *navigation.Coordinator) error {
		view = viewOf(c)
		return nil
	})
	s.respond(w, view, err)
}

// GetFrame handles GET /documents/{id}/frame, rendering the preview location.
func (s *Server) GetFrame(w http.ResponseWriter, r *http.Request) {
	s.frameAction(w, r, false, func(ctx context.Context, c *navigation.Coordinator) (*ports.Frame, error) {
		if glyph := r.URL.Query().Get("glyph"); glyph != "" {
			c.SetGlyph(glyph)
		}
		return c.Render(ctx)
	})
}

type locationRequest struct {
	Location domain.Location `json:"location"`
}

// SetPreview handles PUT /documents/{id}/preview, merging the given values
// into the preview location.
func (s *Server) SetPreview(w http.ResponseWriter, r *http.Request) {
	var body locationRequest
	if !s.decode(w, r, &body) {
		return
	}
	s.frameAction(w, r, true, func(ctx context.Context, c *navigation.Coordinator) (*ports.Frame, error) {
		return c.SetPreviewLocation(ctx, body.Location)
	})
}

// ResetPreview handles POST /documents/{id}/preview/reset.
func (s *Server) ResetPreview(w http.ResponseWriter, r *http.Request) {
	s.frameAction(w, r, true, func(ctx context.Context, c *navigation.Coordinator) (*ports.Frame, error) {
		return c.ResetPreview(ctx)
	})
}

type randomRequest struct {
	Margin *float64 `json:"margin"`
}

// RandomPreview handles POST /documents/{id}/preview/random. Without a
// margin the configured one is used.
func (s *Server) RandomPreview(w http.ResponseWriter, r *http.Request) {
	var body randomRequest
	if r.ContentLength != 0 && !s.decode(w, r, &body) {
		return
	}
	margin := -1.0
	if body.Margin != nil {
		margin = *body.Margin
	}
	s.frameAction(w, r, true, func(ctx context.Context, c *navigation.Coordinator) (*ports.Frame, error) {
		return c.RandomPreview(ctx, margin)
	})
}

type jumpRequest struct {
	Name string `json:"name"`
}

// JumpTo handles POST /documents/{id}/preview/jump.
func (s *Server) JumpTo(w http.ResponseWriter, r *http.Request) {
	var body jumpRequest
	if !s.decode(w, r, &body) {
		return
	}
	s.frameAction(w, r, true, func(ctx context.Context, c *navigation.Coordinator) (*ports.Frame, error) {
		return c.JumpTo(ctx, body.Name)
	})
}

type valueRequest struct {
	Value float64 `json:"value"`
}

// SetAxisValue handles PUT /documents/{id}/axes/{axis}.
func (s *Server) SetAxisValue(w http.ResponseWriter, r *http.Request) {
	var body valueRequest
	if !s.decode(w, r, &body) {
		return
	}
	axis := chi.URLParam(r, "axis")
	s.frameAction(w, r, true, func(ctx context.Context, c *navigation.Coordinator) (*ports.Frame, error) {
		return c.SetAxisValue(ctx, axis, body.Value)
	})
}

// GetRoles handles GET /documents/{id}/roles.
func (s *Server) GetRoles(w http.ResponseWriter, r *http.Request) {
	var rows []navigation.RoleRow
	err := s.Manager.View(r.Context(), documentID(r), func(_ context.Context, c *navigation.Coordinator) error {
		rows = c.RoleTable()
		return nil
	})
	s.respond(w, rows, err)
}

// SetRoles handles PUT /documents/{id}/roles with a list of {axis, role}.
func (s *Server) SetRoles(w http.ResponseWriter, r *http.Request) {
	var roles domain.Roles
	if !s.decode(w, r, &roles) {
		return
	}
	for _, ra := range roles {
		if _, err := domain.ParseAxisRole(string(ra.Role)); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	var rows []navigation.RoleRow
	err := s.Manager.Update(r.Context(), documentID(r), func(_ context.Context, c *navigation.Coordinator) error {
		for _, ra := range roles {
			if _, ok := c.Space().Axis(ra.Axis); !ok {
				return fmt.Errorf("%w: %q", domain.ErrUnknownAxis, ra.Axis)
			}
		}
		if err := c.SetRoles(roles); err != nil {
			return err
		}
		rows = c.RoleTable()
		return nil
	})
	s.respond(w, rows, err)
}

// AddInstance handles POST /documents/{id}/instances.
func (s *Server) AddInstance(w http.ResponseWriter, r *http.Request) {
	var inst domain.Instance
	err := s.Manager.Update(r.Context(), documentID(r), func(ctx context.Context, c *navigation.Coordinator) error {
		var err error
		inst, err = c.AddInstance(ctx)
		return err
	})
	if err != nil {
		s.respond(w, nil, err)
		return
	}
	writeJSON(w, http.StatusCreated, inst)
}

type beginRequest struct {
	Glyph string `json:"glyph"`
}

// BeginGesture handles POST /documents/{id}/gesture/begin.
func (s *Server) BeginGesture(w http.ResponseWriter, r *http.Request) {
	var body beginRequest
	if r.ContentLength != 0 && !s.decode(w, r, &body) {
		return
	}
	var view DocumentView
	err := s.Manager.Update(r.Context(), documentID(r), func(ctx context.Context, c *navigation.Coordinator) error {
		if err := c.OnGestureBegin(ctx, body.Glyph); err != nil {
			return err
		}
		view = viewOf(c)
		return nil
	})
	s.respond(w, view, err)
}

// SampleGesture handles POST /documents/{id}/gesture/sample. It answers 204
// when the sample only set the baseline or was dropped.
func (s *Server) SampleGesture(w http.ResponseWriter, r *http.Request) {
	var sample domain.Sample
	if !s.decode(w, r, &sample) {
		return
	}
	s.frameAction(w, r, false, func(ctx context.Context, c *navigation.Coordinator) (*ports.Frame, error) {
		return c.OnGestureSample(ctx, sample)
	})
}

type endRequest struct {
	Commit bool `json:"commit"`
}

// EndGesture handles POST /documents/{id}/gesture/end.
func (s *Server) EndGesture(w http.ResponseWriter, r *http.Request) {
	var body endRequest
	if !s.decode(w, r, &body) {
		return
	}
	id := documentID(r)
	var before, after domain.Location
	var view DocumentView
	err := s.Manager.Update(r.Context(), id, func(ctx context.Context, c *navigation.Coordinator) error {
		before = c.Document().PreviewLocation()
		if err := c.OnGestureEnd(ctx, body.Commit); err != nil {
			return err
		}
		after = c.Document().PreviewLocation()
		view = viewOf(c)
		return nil
	})
	if err == nil {
		s.broadcastDiff(id, before, after)
	}
	s.respond(w, view, err)
}

// frameAction runs fn under the document lock and answers with its frame.
// Mutating actions persist state and broadcast the preview diff.
func (s *Server) frameAction(w http.ResponseWriter, r *http.Request, mutates bool, fn func(context.Context, *navigation.Coordinator) (*ports.Frame, error)) {
	id := documentID(r)
	var frame *ports.Frame
	var before, after domain.Location
	run := func(ctx context.Context, c *navigation.Coordinator) error {
		before = c.Document().PreviewLocation()
		var err error
		frame, err = fn(ctx, c)
		after = c.Document().PreviewLocation()
		return err
	}

	var err error
	if mutates {
		err = s.Manager.Update(r.Context(), id, run)
	} else {
		err = s.Manager.View(r.Context(), id, run)
	}
	if err != nil {
		s.respond(w, nil, err)
		return
	}

	s.broadcastDiff(id, before, after)
	if frame == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.Streams.Publish(id, EventFrame, frame)
	writeJSON(w, http.StatusOK, frame)
}

func (s *Server) broadcastDiff(id string, before, after domain.Location) {
	if diff := domain.DiffLocations(id, before, after); diff != nil {
		s.Streams.Publish(id, EventPreview, diff)
	}
}

func documentID(r *http.Request) string {
	return chi.URLParam(r, "documentID")
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, v any, err error) {
	if err != nil {
		status := StatusOf(err)
		if status >= 500 {
			s.logger.Error("request failed", "err", err)
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// StatusOf maps engine errors to HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound), errors.Is(err, domain.ErrUnknownLocationName):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrGestureActive), errors.Is(err, domain.ErrNoGesture), errors.Is(err, domain.ErrDuplicateInstance):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnknownAxis):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnreachableLocation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// Package server exposes the form catalog over HTTP: browse, save, load, and
// render.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/adas26/txfb/pkg/builder"
	"github.com/adas26/txfb/pkg/render"
	"github.com/adas26/txfb/pkg/schema"
	"github.com/adas26/txfb/pkg/store"
)

// Server wires the catalog and renderer registry into an HTTP handler.
type Server struct {
	catalog         *store.Catalog
	renderers       *render.Registry
	defaultRenderer string
	logger          *zap.Logger
	router          chi.Router
}

// New constructs a Server. A nil logger falls back to a nop logger; an empty
// defaultRenderer falls back to "html".
func New(catalog *store.Catalog, renderers *render.Registry, defaultRenderer string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultRenderer == "" {
		defaultRenderer = "html"
	}

	s := &Server{
		catalog:         catalog,
		renderers:       renderers,
		defaultRenderer: defaultRenderer,
		logger:          logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Route("/forms", func(r chi.Router) {
		r.Get("/", s.handleListForms)
		r.Post("/", s.handleSaveForm)
		r.Get("/{id}", s.handleGetForm)
		r.Get("/{id}/render", s.handleRenderForm)
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler for mounting or serving.
func (s *Server) Handler() http.Handler {
	return s.router
}

// handleListForms returns the browsable catalog.
// GET /forms
func (s *Server) handleListForms(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "LIST_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Forms []store.ListItem `json:"forms"`
	}{Forms: items})
}

// handleSaveForm persists a schema document.
// POST /forms
func (s *Server) handleSaveForm(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "READ_FAILED", err.Error())
		return
	}

	form, err := schema.Unmarshal(payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_SCHEMA", err.Error())
		return
	}

	id, err := s.catalog.Save(r.Context(), form)
	if err != nil {
		if builder.IsValidation(err) {
			writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "SAVE_FAILED", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		ID int64 `json:"id"`
	}{ID: id})
}

// handleGetForm returns one parsed schema document.
// GET /forms/{id}
func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	id, ok := formID(w, r)
	if !ok {
		return
	}

	form, err := s.catalog.Load(r.Context(), id)
	if err != nil {
		s.writeLoadError(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// handleRenderForm renders a stored form with the requested renderer.
// GET /forms/{id}/render?renderer=html
func (s *Server) handleRenderForm(w http.ResponseWriter, r *http.Request) {
	id, ok := formID(w, r)
	if !ok {
		return
	}

	name := r.URL.Query().Get("renderer")
	if name == "" {
		name = s.defaultRenderer
	}
	renderer, err := s.renderers.Get(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "UNKNOWN_RENDERER", err.Error())
		return
	}

	form, err := s.catalog.Load(r.Context(), id)
	if err != nil {
		s.writeLoadError(w, id, err)
		return
	}

	output, err := renderer.Render(r.Context(), form, render.Options{
		ReadOnly: r.URL.Query().Get("readonly") == "true",
		Logger:   s.logger,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "RENDER_FAILED", err.Error())
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(output)
}

func (s *Server) writeLoadError(w http.ResponseWriter, id int64, err error) {
	var parseErr *schema.ParseError
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.As(err, &parseErr):
		s.logger.Warn("stored configuration failed to parse",
			zap.Int64("id", id),
			zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, "MALFORMED_CONFIGURATION", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "LOAD_FAILED", err.Error())
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

func formID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "form id must be a positive integer")
		return 0, false
	}
	return id, true
}

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{Code: code, Message: message})
}

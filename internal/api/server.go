// Package api exposes the editing session, validator, and export pipeline
// over a local HTTP surface.
//
// The API is a thin collaborator layer: every handler delegates to the
// pure core (editor session, validator, export transformer) and maps
// structured error codes to HTTP status codes. State lives in the session
// and the draft store, never in handlers.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fixturelab/planogram/pkg/editor"
	"github.com/fixturelab/planogram/pkg/errors"
	"github.com/fixturelab/planogram/pkg/pipeline"
	"github.com/fixturelab/planogram/pkg/store"
)

// Server wires the editing session, draft store, and pipeline runner
// behind HTTP handlers.
type Server struct {
	session *editor.Session
	store   store.Store
	runner  *pipeline.Runner
	logger  *log.Logger
}

// NewServer creates a server over an existing session. A nil store
// disables the draft endpoints; a nil runner gets a cache-less default.
func NewServer(session *editor.Session, st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{session: session, store: st, runner: runner, logger: logger}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/layout", s.handleLayout)
		r.Post("/actions", s.handleAction)
		r.Post("/undo", s.handleUndo)
		r.Post("/redo", s.handleRedo)
		r.Get("/conflicts", s.handleConflicts)
		r.Get("/export", s.handleExport)

		if s.store != nil {
			r.Route("/drafts", func(r chi.Router) {
				r.Get("/", s.handleListDrafts)
				r.Post("/", s.handleSaveDraft)
				r.Get("/{id}", s.handleGetDraft)
				r.Delete("/{id}", s.handleDeleteDraft)
				r.Post("/{id}/load", s.handleLoadDraft)
			})
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Current())
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var a editor.Action
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidAction, err, "malformed action"))
		return
	}

	next, err := s.session.Apply(a)
	if err != nil {
		writeError(w, err)
		return
	}
	s.logger.Info("applied action", "type", a.Type, "compartment", a.At.Compartment)
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Undo())
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Redo())
}

func (s *Server) handleConflicts(w http.ResponseWriter, r *http.Request) {
	l := s.session.Current()
	set, err := s.runner.Conflicts(r.Context(), l, pipeline.Options{Layout: &l})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"conflicts": set,
		"ids":       set.IDs(),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{Refresh: r.URL.Query().Get("refresh") == "true"}
	if v := r.URL.Query().Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidAction, "invalid scale %q", v))
			return
		}
		opts.Scale = scale
	}

	l := s.session.Current()
	opts.Layout = &l
	doc, err := s.runner.Export(r.Context(), l, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	drafts, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, drafts)
}

func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidDraft, err, "malformed draft request"))
		return
	}

	d := store.NewDraft(req.Name, s.session.Current())
	if err := s.store.Set(r.Context(), d); err != nil {
		writeError(w, err)
		return
	}
	s.logger.Info("saved draft", "id", d.ID, "name", d.Name)
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if d == nil {
		writeError(w, errors.New(errors.ErrCodeDraftNotFound, "draft %q not found", chi.URLParam(r, "id")))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLoadDraft(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if d == nil {
		writeError(w, errors.New(errors.ErrCodeDraftNotFound, "draft %q not found", chi.URLParam(r, "id")))
		return
	}

	// Loading a draft discards the current history.
	s.session.Reset(d.Layout)
	s.logger.Info("loaded draft", "id", d.ID, "name", d.Name)
	writeJSON(w, http.StatusOK, s.session.Current())
}

// ==== Response helpers ====

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(code),
	})
}

// statusFor maps structured error codes to HTTP statuses. Placement-rule
// rejections are conflicts, dangling references are not-found, malformed
// input is a bad request.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeCapacityExceeded,
		errors.ErrCodeHeightExceeded,
		errors.ErrCodeTypeMismatch,
		errors.ErrCodeNotStackable:
		return http.StatusConflict
	case errors.ErrCodeInvalidTarget,
		errors.ErrCodeNotFound,
		errors.ErrCodeTemplateNotFound,
		errors.ErrCodeDraftNotFound,
		errors.ErrCodeEntryNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidAction,
		errors.ErrCodeInvalidDraft,
		errors.ErrCodeInvalidTemplate,
		errors.ErrCodeInvalidCatalog,
		errors.ErrCodeInvalidCompartmentConfig:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

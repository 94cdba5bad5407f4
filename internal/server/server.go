package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"timegate/internal/api"
	"timegate/internal/config"
	"timegate/internal/errors"
	"timegate/internal/logging"
)

// Server is the HTTP surface over the API facade. All rule outcomes
// travel as data: a rejected entry is a 422 with the violation list,
// never a 500.
type Server struct {
	api  api.API
	http *http.Server
}

// New builds the server with its router and middleware stack.
func New(a api.API, cfg config.ServerConfig) *Server {
	s := &Server{api: a}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/timesheets", func(r chi.Router) {
			r.Get("/", s.listTimesheets)
			r.Post("/", s.startTimesheet)
			r.Post("/validate", s.validateTimesheet)
			r.Get("/{id}", s.getTimesheet)
			r.Patch("/{id}/stop", s.stopTimesheet)
			r.Post("/{id}/restart", s.restartTimesheet)
		})
		r.Get("/budgets/{scope}/{id}", s.budgetStatistic)
	})

	return r
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	logging.Debugf("listening on %s\n", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) startTimesheet(w http.ResponseWriter, r *http.Request) {
	candidate, ok := decodeCandidate(w, r)
	if !ok {
		return
	}

	outcome, err := s.api.Start(r.Context(), candidate)
	if err != nil {
		writeError(w, err)
		return
	}
	if !outcome.Saved {
		writeJSON(w, http.StatusUnprocessableEntity, outcome)
		return
	}
	writeJSON(w, http.StatusCreated, outcome)
}

func (s *Server) validateTimesheet(w http.ResponseWriter, r *http.Request) {
	candidate, ok := decodeCandidate(w, r)
	if !ok {
		return
	}

	result, err := s.api.Check(r.Context(), candidate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) stopTimesheet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	outcome, err := s.api.Stop(r.Context(), id, time.Time{})
	if err != nil {
		writeError(w, err)
		return
	}
	if !outcome.Saved {
		writeJSON(w, http.StatusUnprocessableEntity, outcome)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) restartTimesheet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	outcome, err := s.api.Restart(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !outcome.Saved {
		writeJSON(w, http.StatusUnprocessableEntity, outcome)
		return
	}
	writeJSON(w, http.StatusCreated, outcome)
}

func (s *Server) getTimesheet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entry, err := s.api.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) listTimesheets(w http.ResponseWriter, r *http.Request) {
	running := r.URL.Query().Get("running") == "true"
	entries, err := s.api.List(r.Context(), r.URL.Query().Get("user"), running)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []*api.TimesheetDTO{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) budgetStatistic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	dto, err := s.api.Budget(r.Context(), chi.URLParam(r, "scope"), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func decodeCandidate(w http.ResponseWriter, r *http.Request) (*api.Candidate, bool) {
	var candidate api.Candidate
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		writeError(w, errors.NewInvalidInputError("body", nil, "request body must be a JSON timesheet"))
		return nil, false
	}
	return &candidate, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, errors.NewInvalidInputError("id", raw, "id must be a positive integer"))
		return 0, false
	}
	return id, true
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if appErr, ok := errors.AsAppError(err); ok {
		switch appErr.Type {
		case errors.ErrorTypeInvalidInput, errors.ErrorTypeValidation:
			status = http.StatusBadRequest
		case errors.ErrorTypeNotFound:
			status = http.StatusNotFound
		case errors.ErrorTypePermission:
			status = http.StatusForbidden
		}
	}
	if errors.ShouldLogError(err) {
		logging.Debugf("request failed: %v\n", err)
	}
	writeJSON(w, status, errorBody{Error: errors.GetUserMessage(err), Code: errors.GetErrorCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

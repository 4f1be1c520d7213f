// Package mockapi serves the notes REST API over an in-memory store.
// It speaks the same envelope contract as the hosted API and backs both the
// remote client tests and "notekeeper serve".
package mockapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/notekeeper/pkg/adapters/memory"
	"github.com/aretw0/notekeeper/pkg/adapters/remote"
	"github.com/aretw0/notekeeper/pkg/core"
)

type server struct {
	store  *memory.Store
	logger *slog.Logger
}

// NewServer returns a handler for the /notes routes backed by store.
func NewServer(store *memory.Store, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &server{store: store, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /notes", s.handleListActive)
	mux.HandleFunc("GET /notes/archived", s.handleListArchived)
	mux.HandleFunc("GET /notes/{id}", s.handleGet)
	mux.HandleFunc("POST /notes", s.handleCreate)
	mux.HandleFunc("DELETE /notes/{id}", s.handleDelete)
	mux.HandleFunc("POST /notes/{id}/archive", s.handleArchive(true))
	mux.HandleFunc("POST /notes/{id}/unarchive", s.handleArchive(false))

	return s.logRequests(mux)
}

func (s *server) handleListActive(w http.ResponseWriter, r *http.Request) {
	notes, err := s.store.ListActive(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Notes retrieved", notes)
}

func (s *server) handleListArchived(w http.ResponseWriter, r *http.Request) {
	notes, err := s.store.ListArchived(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Archived notes retrieved", notes)
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Note retrieved", n)
}

func (s *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	if title == "" || body == "" {
		writeJSON(w, http.StatusBadRequest, "title and body are required", nil)
		return
	}

	n, err := s.store.Create(r.Context(), title, body)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Note created", n)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Remove(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Note deleted", nil)
}

func (s *server) handleArchive(archived bool) http.HandlerFunc {
	msg := "Note unarchived"
	if archived {
		msg = "Note archived"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.SetArchived(r.Context(), r.PathValue("id"), archived); err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, msg, nil)
	}
}

// fail maps a store error onto the envelope contract.
func (s *server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeJSON(w, http.StatusNotFound, core.ErrNotFound.Error(), nil)
	case errors.Is(err, core.ErrValidation):
		writeJSON(w, http.StatusBadRequest, err.Error(), nil)
	default:
		s.logger.Error("store failure", "error", err)
		writeJSON(w, http.StatusInternalServerError, err.Error(), nil)
	}
}

func writeJSON(w http.ResponseWriter, code int, message string, data any) {
	status := remote.StatusSuccess
	switch {
	case code >= 500:
		status = remote.StatusError
	case code >= 400:
		status = remote.StatusFail
	}

	env := struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    any    `json:"data,omitempty"`
	}{Status: status, Message: message, Data: data}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(env)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

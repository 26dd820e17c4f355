// Package api serves job status and results over HTTP, so processes that do
// not hold the corpus database can poll a running worker.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/multitext"
	"github.com/poiesic/intertext/storage"
)

// Jobs answers status and results queries by results id.
type Jobs interface {
	Status(ctx context.Context, resultsID string) (*core.Search, error)
	Results(ctx context.Context, resultsID string) ([]*core.MultiResult, error)
}

type Handler struct {
	jobs   Jobs
	logger *slog.Logger
}

func NewHandler(jobs Jobs, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{jobs: jobs, logger: logger.With("component", "api")}
}

// Mount registers the job routes on mux.
func (h *Handler) Mount(mux *http.ServeMux) {
	mux.HandleFunc("GET /jobs/{id}", h.Status)
	mux.HandleFunc("GET /jobs/{id}/results", h.Results)
	mux.HandleFunc("GET /healthz", h.Health)
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	search, err := h.jobs.Status(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, search)
}

func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.jobs.Results(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if results == nil {
		results = []*core.MultiResult{}
	}
	h.writeJSON(w, http.StatusOK, results)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, multitext.ErrJobNotDone):
		h.writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("job query failed", "path", r.URL.Path, "error", err)
		h.writeError(w, http.StatusInternalServerError, "job query failed")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorBody{Error: message})
}

type errorBody struct {
	Error string `json:"error"`
}

// Package api exposes the suggestion service over HTTP. It is a thin
// adapter: request decoding, error mapping and JSON encoding only; all
// business rules live in the core packages.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sportsync/refassign/pkg/core/suggest"
	"github.com/sportsync/refassign/pkg/metrics"
)

// Server wires the suggestion service into an HTTP handler
type Server struct {
	service *suggest.Service
	logger  *zap.Logger
}

// NewServer creates an HTTP server around the suggestion service
func NewServer(service *suggest.Service, logger *zap.Logger) *Server {
	return &Server{
		service: service,
		logger:  logger,
	}
}

// Handler returns the routed HTTP handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/suggestions/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/v1/suggestions/{id}/accept", s.handleAccept)
	mux.HandleFunc("POST /api/v1/suggestions/{id}/reject", s.handleReject)
	mux.HandleFunc("POST /api/v1/suggestions/cleanup", s.handleCleanup)
	mux.HandleFunc("GET /api/v1/conflicts", s.handleCheckConflicts)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	return mux
}

type generateRequest struct {
	GameIDs   []string         `json:"gameIds"`
	Weights   *suggest.Weights `json:"weights,omitempty"`
	CreatedBy string           `json:"createdBy"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	suggestions, err := s.service.GenerateSuggestions(r.Context(), req.GameIDs, req.Weights, req.CreatedBy)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

type processRequest struct {
	ProcessedBy string `json:"processedBy"`
	Reason      string `json:"reason,omitempty"`
}

func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	assignment, err := s.service.AcceptSuggestion(r.Context(), r.PathValue("id"), req.ProcessedBy)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"assignment": assignment})
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	if err := s.service.RejectSuggestion(r.Context(), r.PathValue("id"), req.ProcessedBy, req.Reason); err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"status": "rejected"})
}

func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	count, err := s.service.CleanupExpired(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"expired": count})
}

func (s *Server) handleCheckConflicts(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	refereeID := r.URL.Query().Get("refereeId")

	result, err := s.service.CheckConflicts(r.Context(), gameID, refereeID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"hasConflict": result.HasConflict,
		"conflicts":   result.Conflicts,
		"warnings":    result.Warnings,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// writeServiceError maps the error taxonomy onto HTTP statuses with a
// stable error kind. Internal detail never leaves the process.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, suggest.ErrValidation):
		s.writeError(w, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, suggest.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, suggest.ErrConflict):
		s.writeError(w, http.StatusConflict, "conflict", err.Error())
	default:
		s.logger.Error("Unhandled service error", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, kind, message string) {
	s.writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"kind":    kind,
			"message": message,
		},
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("Failed to encode response", zap.Error(err))
	}
}

package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	internal "release-notes-drafter/internal"
	"release-notes-drafter/internal/git/types"
	llmerrors "release-notes-drafter/internal/llm/errors"
	"release-notes-drafter/internal/releases"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, "Request failed", "path", r.URL.Path, "status", status, "error", err)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// compareStatus passes source API statuses through; everything else is a bad request
func compareStatus(err error) int {
	var upstream *types.UpstreamError
	if errors.As(err, &upstream) && upstream.StatusCode >= 400 {
		return upstream.StatusCode
	}
	return http.StatusBadRequest
}

// generateStatus maps generation failures to HTTP statuses
func generateStatus(err error) int {
	var contextErr *llmerrors.ContextWindowError
	var apiErr *llmerrors.APIError
	switch {
	case errors.As(err, &contextErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, internal.ErrModelNotConfigured):
		return http.StatusBadRequest
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

// storeStatus separates unknown IDs from store failures
func storeStatus(err error) int {
	if errors.Is(err, releases.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

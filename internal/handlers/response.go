package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"dconn.dev/portfolio/internal/apperrors"
)

// responder writes JSON responses and logs encoding failures
type responder struct {
	logger *zap.Logger
}

// respondJSON writes a JSON response
func (rs responder) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError writes an error JSON response with a machine-readable code
func (rs responder) respondError(w http.ResponseWriter, status int, code, message string) {
	rs.respondJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

// respondServiceError maps service errors to HTTP responses
func (rs responder) respondServiceError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		rs.respondError(w, http.StatusNotFound, "not_found", "Project not found")
	case errors.Is(err, apperrors.ErrMissingImage):
		rs.respondError(w, http.StatusBadRequest, "missing_image", "You must upload an image or provide a URL")
	case errors.As(err, &tooLarge):
		rs.respondError(w, http.StatusRequestEntityTooLarge, "too_large", "Request body too large")
	default:
		rs.logger.Error("Request failed", zap.Error(err))
		rs.respondError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}

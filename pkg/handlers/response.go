package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/adamphillips/atlas/pkg/apperrors"
	"github.com/adamphillips/atlas/pkg/llm"
)

// ApiResponse is the envelope for all JSON responses.
type ApiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(ApiResponse{
		Success: false,
		Error:   errorCode,
		Message: message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// writeServiceError maps service-layer errors to HTTP statuses. fallback
// is the error code used for unclassified failures.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	status := http.StatusInternalServerError
	code := fallback

	var llmErr *llm.Error
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
		code = "validation_error"
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
		code = "email_conflict"
	case errors.Is(err, apperrors.ErrFeatureDisabled):
		status = http.StatusServiceUnavailable
		code = "feature_disabled"
	case errors.Is(err, apperrors.ErrWebsiteUnavailable):
		status = http.StatusBadGateway
		code = "website_unavailable"
	case errors.As(err, &llmErr):
		status = http.StatusBadGateway
		code = "ai_generation_failed"
	}

	if writeErr := ErrorResponse(w, status, code, err.Error()); writeErr != nil {
		logger.Error("Failed to write error response", zap.Error(writeErr))
	}
}

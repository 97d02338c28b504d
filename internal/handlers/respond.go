package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"recallr/internal/contextutil"
	"recallr/internal/quota"
	"recallr/internal/service"
	"recallr/internal/storage"
)

// ErrorResponse carries a machine-readable error tag and a human-readable
// message. Internal detail stays in the logs, never in the message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`

	// Existing is set on duplicate-save conflicts so clients can show
	// "already saved".
	Existing *storage.SavedItem `json:"existing,omitempty"`
	// Quota is set on quota-exceeded rejections.
	Quota *quota.Snapshot `json:"quota,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, tag, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: tag, Message: message})
}

// writeServiceError maps service errors to HTTP status codes and responses.
func writeServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", validationErr.Error())
		return
	}

	var dupErr *service.DuplicateError
	if errors.As(err, &dupErr) {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:    "DUPLICATE",
			Message:  "This URL is already saved",
			Existing: dupErr.Existing,
		})
		return
	}

	var quotaErr *service.QuotaExceededError
	if errors.As(err, &quotaErr) {
		writeJSON(w, http.StatusTooManyRequests, ErrorResponse{
			Error:   "QUOTA_EXCEEDED",
			Message: "Daily quota exceeded, please try again tomorrow",
			Quota:   &quotaErr.Quota,
		})
		return
	}

	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "Invalid input")
		return
	}

	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return
	}

	logger.ErrorContext(ctx, "service error", "error", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", defaultMsg)
}

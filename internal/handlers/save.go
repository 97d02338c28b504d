package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"recallr/internal/auth"
	"recallr/internal/contextutil"
	"recallr/internal/service"
	"recallr/internal/storage"
)

// SaveHandler handles HTTP requests for content ingestion.
type SaveHandler struct {
	pipeline *service.Pipeline
}

// NewSaveHandler creates a new SaveHandler.
func NewSaveHandler(pipeline *service.Pipeline) *SaveHandler {
	return &SaveHandler{pipeline: pipeline}
}

// SaveResponse is the payload returned for a successful save.
type SaveResponse struct {
	ID      string             `json:"id"`
	Message string             `json:"message"`
	Data    *storage.SavedItem `json:"data"`
}

// ServeHTTP runs the ingestion pipeline for the authenticated user.
func (h *SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	identity := auth.IdentityFromContext(ctx)

	var req service.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body")
		return
	}

	item, snap, err := h.pipeline.Save(ctx, identity.UserID, req)

	// The quota snapshot exists whenever the attempt reached the quota
	// check, including the rejected case.
	if snap.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(snap.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(snap.Remaining))
		w.Header().Set("X-RateLimit-Reset", snap.ResetAt.Format(time.RFC3339))
	}

	if err != nil {
		writeServiceError(w, ctx, err, "Failed to save content")
		return
	}

	writeJSON(w, http.StatusCreated, SaveResponse{
		ID:      item.ID,
		Message: "Content saved and processed successfully",
		Data:    item,
	})
}

package handlers

import (
	"net/http"

	"recallr/internal/auth"
	"recallr/internal/quota"
)

// QuotaHandler reports the authenticated user's current quota snapshot.
type QuotaHandler struct {
	tracker *quota.Tracker
}

// NewQuotaHandler creates a new QuotaHandler.
func NewQuotaHandler(tracker *quota.Tracker) *QuotaHandler {
	return &QuotaHandler{tracker: tracker}
}

// ServeHTTP returns today's usage without consuming quota.
func (h *QuotaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := auth.IdentityFromContext(ctx)

	snap, err := h.tracker.Peek(ctx, identity.UserID)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to read quota")
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

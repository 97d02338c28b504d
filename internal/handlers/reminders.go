package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"recallr/internal/auth"
	"recallr/internal/service"
	"recallr/internal/storage"
)

// RemindersHandler serves the pull-based review reminder endpoints.
type RemindersHandler struct {
	reminders *service.ReminderService
}

// NewRemindersHandler creates a new RemindersHandler.
func NewRemindersHandler(reminders *service.ReminderService) *RemindersHandler {
	return &RemindersHandler{reminders: reminders}
}

// DueResponse lists items currently due for review.
type DueResponse struct {
	Items []*storage.SavedItem `json:"items"`
	Count int                  `json:"count"`
}

// Due returns items due for review, computed from timestamps at call time.
func (h *RemindersHandler) Due(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := auth.IdentityFromContext(ctx)

	items, err := h.reminders.DueItems(ctx, identity.UserID)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to compute reminders")
		return
	}
	if items == nil {
		items = []*storage.SavedItem{}
	}
	writeJSON(w, http.StatusOK, DueResponse{Items: items, Count: len(items)})
}

// MarkRead records that the user opened an item.
func (h *RemindersHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := auth.IdentityFromContext(ctx)
	itemID := chi.URLParam(r, "itemId")

	if err := h.reminders.MarkViewed(ctx, identity.UserID, itemID); err != nil {
		writeServiceError(w, ctx, err, "Failed to mark item as read")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Item marked as read",
		"itemId":  itemID,
	})
}

// StatsResponse summarizes the review backlog for client notification
// badges.
type StatsResponse struct {
	UnreadCount int    `json:"unreadCount"`
	Message     string `json:"message"`
}

// Stats returns the unread-review summary. Clients poll this periodically.
func (h *RemindersHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := auth.IdentityFromContext(ctx)

	count, message, err := h.reminders.Stats(ctx, identity.UserID)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to compute reminder stats")
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{UnreadCount: count, Message: message})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recallr/internal/auth"
	"recallr/internal/contextutil"
	"recallr/internal/service"
	"recallr/internal/storage"
)

// ItemsHandler handles deletion and field updates for saved items.
type ItemsHandler struct {
	items       storage.ItemStore
	collections *service.CollectionService
}

// NewItemsHandler creates a new ItemsHandler.
func NewItemsHandler(items storage.ItemStore, collections *service.CollectionService) *ItemsHandler {
	return &ItemsHandler{items: items, collections: collections}
}

// Delete removes a saved item.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	identity := auth.IdentityFromContext(ctx)
	id := chi.URLParam(r, "id")

	if err := h.items.Delete(ctx, identity.UserID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Item not found")
			return
		}
		logger.ErrorContext(ctx, "failed to delete item", "item_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete item")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Item deleted successfully",
		"id":      id,
	})
}

// UpdateItemRequest carries the mutable fields of a saved item. A present
// collectionId moves the item; an explicit null clears its membership.
type UpdateItemRequest struct {
	CollectionID *string `json:"collectionId"`
}

// UpdateItemResponse is the payload returned by an item update.
type UpdateItemResponse struct {
	Message string             `json:"message"`
	ID      string             `json:"id"`
	Data    *storage.SavedItem `json:"data"`
}

// Update applies mutable-field changes to an item. Collection reassignment
// goes through the counter maintainer so both collections' item counts stay
// consistent.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	identity := auth.IdentityFromContext(ctx)
	id := chi.URLParam(r, "id")

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body")
		return
	}

	item, err := h.collections.AssignItem(ctx, identity.UserID, id, req.CollectionID)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to update item")
		return
	}

	writeJSON(w, http.StatusOK, UpdateItemResponse{
		Message: "Item updated successfully",
		ID:      id,
		Data:    item,
	})
}

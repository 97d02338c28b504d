package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recallr/internal/auth"
	"recallr/internal/contextutil"
	"recallr/internal/service"
	"recallr/internal/storage"
)

// CollectionsHandler handles collection CRUD and membership endpoints.
type CollectionsHandler struct {
	collections *service.CollectionService
}

// NewCollectionsHandler creates a new CollectionsHandler.
func NewCollectionsHandler(collections *service.CollectionService) *CollectionsHandler {
	return &CollectionsHandler{collections: collections}
}

// CreateCollectionRequest is the payload for creating a collection.
type CreateCollectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// CollectionResponse wraps a collection mutation result.
type CollectionResponse struct {
	ID      string              `json:"id"`
	Message string              `json:"message"`
	Data    *storage.Collection `json:"data,omitempty"`
}

// List returns all of the user's collections.
func (h *CollectionsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := auth.IdentityFromContext(ctx)

	collections, err := h.collections.List(ctx, identity.UserID)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to list collections")
		return
	}
	if collections == nil {
		collections = []*storage.Collection{}
	}
	writeJSON(w, http.StatusOK, collections)
}

// Create stores a new collection.
func (h *CollectionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	identity := auth.IdentityFromContext(ctx)

	var req CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body")
		return
	}

	c, err := h.collections.Create(ctx, identity.UserID, req.Name, req.Description, req.Color)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to create collection")
		return
	}

	writeJSON(w, http.StatusCreated, CollectionResponse{
		ID:      c.ID,
		Message: "Collection created successfully",
		Data:    c,
	})
}

// Update applies a partial update to a collection.
func (h *CollectionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	identity := auth.IdentityFromContext(ctx)
	id := chi.URLParam(r, "id")

	var req service.UpdateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body")
		return
	}

	c, err := h.collections.Update(ctx, identity.UserID, id, req)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to update collection")
		return
	}

	writeJSON(w, http.StatusOK, CollectionResponse{
		ID:      c.ID,
		Message: "Collection updated successfully",
		Data:    c,
	})
}

// Delete removes a collection. Member items are left in place with a
// dangling reference.
func (h *CollectionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := auth.IdentityFromContext(ctx)
	id := chi.URLParam(r, "id")

	if err := h.collections.Delete(ctx, identity.UserID, id); err != nil {
		writeServiceError(w, ctx, err, "Failed to delete collection")
		return
	}

	writeJSON(w, http.StatusOK, CollectionResponse{
		ID:      id,
		Message: "Collection deleted successfully",
	})
}

// AddItemRequest is the payload for adding an item to a collection.
type AddItemRequest struct {
	ItemID string `json:"itemId"`
}

// MembershipResponse reports the result of a membership change.
type MembershipResponse struct {
	Message      string `json:"message"`
	CollectionID string `json:"collectionId"`
	ItemID       string `json:"itemId"`
}

// AddItem assigns an item to a collection and bumps its item count.
func (h *CollectionsHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	identity := auth.IdentityFromContext(ctx)
	collectionID := chi.URLParam(r, "id")

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body")
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "itemId is required")
		return
	}

	if err := h.collections.AddItem(ctx, identity.UserID, collectionID, req.ItemID); err != nil {
		writeServiceError(w, ctx, err, "Failed to add item to collection")
		return
	}

	writeJSON(w, http.StatusOK, MembershipResponse{
		Message:      "Item added to collection successfully",
		CollectionID: collectionID,
		ItemID:       req.ItemID,
	})
}

// RemoveItem clears an item's membership and decrements the item count.
func (h *CollectionsHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := auth.IdentityFromContext(ctx)
	collectionID := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemId")

	if err := h.collections.RemoveItem(ctx, identity.UserID, collectionID, itemID); err != nil {
		writeServiceError(w, ctx, err, "Failed to remove item from collection")
		return
	}

	writeJSON(w, http.StatusOK, MembershipResponse{
		Message:      "Item removed from collection successfully",
		CollectionID: collectionID,
		ItemID:       itemID,
	})
}

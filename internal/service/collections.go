package service

import (
	"context"
	"errors"
	"time"

	"recallr/internal/storage"
)

// DefaultCollectionColor is the display hint used when none is supplied.
const DefaultCollectionColor = "#8B5CF6"

// Maintainer keeps the denormalized item_count on collections in sync with
// membership changes by increment/decrement, never by recount.
//
// The read-increment-write sequence is not atomic: concurrent membership
// changes on the same collection can lose increments. Accepted, not
// prevented.
type Maintainer struct {
	items       storage.ItemStore
	collections storage.CollectionStore
	now         func() time.Time
}

// NewMaintainer creates a collection counter Maintainer.
func NewMaintainer(items storage.ItemStore, collections storage.CollectionStore) *Maintainer {
	return &Maintainer{
		items:       items,
		collections: collections,
		now:         time.Now,
	}
}

// AddItem sets the item's collection membership and increments the
// collection's item count if the collection exists.
func (m *Maintainer) AddItem(ctx context.Context, userID, collectionID, itemID string) error {
	now := m.now().UTC()
	if err := m.items.SetCollection(ctx, userID, itemID, &collectionID, now); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to assign item")
	}
	return m.adjustCount(ctx, userID, collectionID, 1)
}

// RemoveItem clears the item's collection membership and decrements the
// collection's item count, floored at zero.
func (m *Maintainer) RemoveItem(ctx context.Context, userID, collectionID, itemID string) error {
	now := m.now().UTC()
	if err := m.items.SetCollection(ctx, userID, itemID, nil, now); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to unassign item")
	}
	return m.adjustCount(ctx, userID, collectionID, -1)
}

// adjustCount applies a delta to a collection's item count. A missing
// collection is a no-op: dangling references are tolerated.
func (m *Maintainer) adjustCount(ctx context.Context, userID, collectionID string, delta int) error {
	c, err := m.collections.Get(ctx, userID, collectionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return WrapError(err, "failed to read collection")
	}

	c.ItemCount += delta
	if c.ItemCount < 0 {
		c.ItemCount = 0
	}
	c.UpdatedAt = m.now().UTC()
	if err := m.collections.Update(ctx, c); err != nil {
		return WrapError(err, "failed to update collection count")
	}
	return nil
}

// UpdateCollectionRequest carries partial updates for a collection. Nil
// Description means "leave unchanged"; empty Name and Color are ignored too,
// matching the loose PUT semantics of the dashboard client.
type UpdateCollectionRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
}

// CollectionService provides collection CRUD and membership operations.
type CollectionService struct {
	collections storage.CollectionStore
	items       storage.ItemStore
	maintainer  *Maintainer
	now         func() time.Time
}

// NewCollectionService creates a CollectionService.
func NewCollectionService(collections storage.CollectionStore, items storage.ItemStore, maintainer *Maintainer) *CollectionService {
	return &CollectionService{
		collections: collections,
		items:       items,
		maintainer:  maintainer,
		now:         time.Now,
	}
}

// Create stores a new, empty collection. Name is required.
func (s *CollectionService) Create(ctx context.Context, userID, name, description, color string) (*storage.Collection, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if color == "" {
		color = DefaultCollectionColor
	}

	now := s.now().UTC()
	c := &storage.Collection{
		UserID:      userID,
		Name:        name,
		Description: description,
		Color:       color,
		ItemCount:   0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.collections.Insert(ctx, c); err != nil {
		return nil, WrapError(err, "failed to create collection")
	}
	return c, nil
}

// List returns all of a user's collections, newest first.
func (s *CollectionService) List(ctx context.Context, userID string) ([]*storage.Collection, error) {
	collections, err := s.collections.List(ctx, userID)
	if err != nil {
		return nil, WrapError(err, "failed to list collections")
	}
	return collections, nil
}

// Update applies a partial update to a collection.
func (s *CollectionService) Update(ctx context.Context, userID, id string, req UpdateCollectionRequest) (*storage.Collection, error) {
	c, err := s.collections.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to read collection")
	}

	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Color != "" {
		c.Color = req.Color
	}
	c.UpdatedAt = s.now().UTC()

	if err := s.collections.Update(ctx, c); err != nil {
		return nil, WrapError(err, "failed to update collection")
	}
	return c, nil
}

// Delete removes a collection entity. Member items keep their collection
// reference; the dangling id is tolerated, not cleaned up.
func (s *CollectionService) Delete(ctx context.Context, userID, id string) error {
	if err := s.collections.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to delete collection")
	}
	return nil
}

// AddItem assigns an item to a collection.
func (s *CollectionService) AddItem(ctx context.Context, userID, collectionID, itemID string) error {
	return s.maintainer.AddItem(ctx, userID, collectionID, itemID)
}

// RemoveItem removes an item from a collection.
func (s *CollectionService) RemoveItem(ctx context.Context, userID, collectionID, itemID string) error {
	return s.maintainer.RemoveItem(ctx, userID, collectionID, itemID)
}

// AssignItem moves an item to a new collection (or out of any collection
// when collectionID is nil), keeping both the old and new collections' item
// counts consistent. Backs the generic item-update endpoint.
func (s *CollectionService) AssignItem(ctx context.Context, userID, itemID string, collectionID *string) (*storage.SavedItem, error) {
	item, err := s.items.Get(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to read item")
	}

	old := item.CollectionID
	if !collectionChanged(old, collectionID) {
		return item, nil
	}

	now := s.now().UTC()
	if err := s.items.SetCollection(ctx, userID, itemID, collectionID, now); err != nil {
		return nil, WrapError(err, "failed to assign item")
	}

	if old != nil {
		if err := s.maintainer.adjustCount(ctx, userID, *old, -1); err != nil {
			return nil, err
		}
	}
	if collectionID != nil {
		if err := s.maintainer.adjustCount(ctx, userID, *collectionID, 1); err != nil {
			return nil, err
		}
	}

	item.CollectionID = collectionID
	item.UpdatedAt = now
	return item, nil
}

func collectionChanged(old, new *string) bool {
	if old == nil && new == nil {
		return false
	}
	if old != nil && new != nil {
		return *old != *new
	}
	return true
}

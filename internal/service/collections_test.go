package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newCollectionService(s *stores) *CollectionService {
	return NewCollectionService(s.collections, s.items, NewMaintainer(s.items, s.collections))
}

func TestCollectionService_Create(t *testing.T) {
	svc := newCollectionService(newStores(t))
	ctx := context.Background()

	c, err := svc.Create(ctx, testUser, "Reading List", "Long reads", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if c.Color != DefaultCollectionColor {
		t.Errorf("Create() color = %q, want default %q", c.Color, DefaultCollectionColor)
	}
	if c.ItemCount != 0 {
		t.Errorf("Create() item count = %d, want 0", c.ItemCount)
	}

	_, err = svc.Create(ctx, testUser, "", "", "")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Create() with empty name error = %v, want ValidationError", err)
	}
}

func TestCollectionService_Update(t *testing.T) {
	svc := newCollectionService(newStores(t))
	ctx := context.Background()

	c, err := svc.Create(ctx, testUser, "Old name", "Old description", "#111111")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	emptied := ""
	updated, err := svc.Update(ctx, testUser, c.ID, UpdateCollectionRequest{
		Name:        "New name",
		Description: &emptied,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "New name" {
		t.Errorf("Update() name = %q, want New name", updated.Name)
	}
	if updated.Description != "" {
		t.Errorf("Update() description = %q, want cleared", updated.Description)
	}
	// Omitted fields stay untouched.
	if updated.Color != "#111111" {
		t.Errorf("Update() color = %q, want unchanged", updated.Color)
	}

	if _, err := svc.Update(ctx, testUser, "missing", UpdateCollectionRequest{Name: "X"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() on missing collection error = %v, want ErrNotFound", err)
	}
}

func TestMaintainer_AddAndRemoveItem(t *testing.T) {
	s := newStores(t)
	svc := newCollectionService(s)
	ctx := context.Background()

	c, err := svc.Create(ctx, testUser, "Reading", "", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	item := seedItem(t, s, time.Now().UTC(), nil)

	if err := svc.AddItem(ctx, testUser, c.ID, item.ID); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	got, err := s.collections.Get(ctx, testUser, c.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ItemCount != 1 {
		t.Errorf("item count after add = %d, want 1", got.ItemCount)
	}

	if err := svc.RemoveItem(ctx, testUser, c.ID, item.ID); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	got, err = s.collections.Get(ctx, testUser, c.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ItemCount != 0 {
		t.Errorf("item count after remove = %d, want 0", got.ItemCount)
	}

	stored, err := s.items.Get(ctx, testUser, item.ID)
	if err != nil {
		t.Fatalf("item Get() error = %v", err)
	}
	if stored.CollectionID != nil {
		t.Errorf("item collection after remove = %v, want nil", stored.CollectionID)
	}

	if err := svc.AddItem(ctx, testUser, c.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddItem() with missing item error = %v, want ErrNotFound", err)
	}
}

func TestMaintainer_CountFlooredAtZero(t *testing.T) {
	s := newStores(t)
	svc := newCollectionService(s)
	ctx := context.Background()

	c, err := svc.Create(ctx, testUser, "Reading", "", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	item := seedItem(t, s, time.Now().UTC(), nil)

	// Remove from an empty collection: membership clears, count stays at zero.
	if err := svc.RemoveItem(ctx, testUser, c.ID, item.ID); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	got, err := s.collections.Get(ctx, testUser, c.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ItemCount != 0 {
		t.Errorf("item count = %d, want floor at 0", got.ItemCount)
	}
}

func TestCollectionService_DeleteLeavesItems(t *testing.T) {
	s := newStores(t)
	svc := newCollectionService(s)
	ctx := context.Background()

	c, err := svc.Create(ctx, testUser, "Doomed", "", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	item := seedItem(t, s, time.Now().UTC(), nil)
	if err := svc.AddItem(ctx, testUser, c.ID, item.ID); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	if err := svc.Delete(ctx, testUser, c.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// The member item survives with a dangling collection reference.
	stored, err := s.items.Get(ctx, testUser, item.ID)
	if err != nil {
		t.Fatalf("item Get() after collection delete error = %v", err)
	}
	if stored.CollectionID == nil || *stored.CollectionID != c.ID {
		t.Errorf("item collection = %v, want dangling %q", stored.CollectionID, c.ID)
	}

	if err := svc.Delete(ctx, testUser, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}

func TestCollectionService_AssignItem(t *testing.T) {
	s := newStores(t)
	svc := newCollectionService(s)
	ctx := context.Background()

	first, err := svc.Create(ctx, testUser, "First", "", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := svc.Create(ctx, testUser, "Second", "", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	item := seedItem(t, s, time.Now().UTC(), nil)

	if err := svc.AddItem(ctx, testUser, first.ID, item.ID); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	// Move between collections: both counters adjust.
	moved, err := svc.AssignItem(ctx, testUser, item.ID, &second.ID)
	if err != nil {
		t.Fatalf("AssignItem() error = %v", err)
	}
	if moved.CollectionID == nil || *moved.CollectionID != second.ID {
		t.Errorf("AssignItem() collection = %v, want %q", moved.CollectionID, second.ID)
	}

	firstAfter, _ := s.collections.Get(ctx, testUser, first.ID)
	secondAfter, _ := s.collections.Get(ctx, testUser, second.ID)
	if firstAfter.ItemCount != 0 {
		t.Errorf("old collection count = %d, want 0", firstAfter.ItemCount)
	}
	if secondAfter.ItemCount != 1 {
		t.Errorf("new collection count = %d, want 1", secondAfter.ItemCount)
	}

	// Assigning to the current collection is a no-op.
	if _, err := svc.AssignItem(ctx, testUser, item.ID, &second.ID); err != nil {
		t.Fatalf("AssignItem() no-op error = %v", err)
	}
	secondAfter, _ = s.collections.Get(ctx, testUser, second.ID)
	if secondAfter.ItemCount != 1 {
		t.Errorf("no-op assignment changed count to %d, want 1", secondAfter.ItemCount)
	}

	// nil clears membership and decrements.
	cleared, err := svc.AssignItem(ctx, testUser, item.ID, nil)
	if err != nil {
		t.Fatalf("AssignItem(nil) error = %v", err)
	}
	if cleared.CollectionID != nil {
		t.Errorf("AssignItem(nil) collection = %v, want nil", cleared.CollectionID)
	}
	secondAfter, _ = s.collections.Get(ctx, testUser, second.ID)
	if secondAfter.ItemCount != 0 {
		t.Errorf("collection count after clear = %d, want 0", secondAfter.ItemCount)
	}

	if _, err := svc.AssignItem(ctx, testUser, "missing", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("AssignItem() on missing item error = %v, want ErrNotFound", err)
	}
}

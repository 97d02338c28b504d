package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestUsageRepo_GetAbsent(t *testing.T) {
	repo := NewUsageRepo(newTestDB(t))

	_, err := repo.Get(context.Background(), "user-1", "2026-08-31")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() for absent record error = %v, want ErrNotFound", err)
	}
}

func TestUsageRepo_PutAndGet(t *testing.T) {
	repo := NewUsageRepo(newTestDB(t))
	ctx := context.Background()

	at := time.Now().UTC().Truncate(time.Millisecond)
	rec := &UsageRecord{
		UserID:        "user-1",
		Day:           "2026-08-31",
		AIRequests:    3,
		LastRequestAt: at,
	}
	if err := repo.Put(ctx, rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := repo.Get(ctx, "user-1", "2026-08-31")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.AIRequests != 3 {
		t.Errorf("Get() requests = %d, want 3", got.AIRequests)
	}
	if !got.LastRequestAt.Equal(at) {
		t.Errorf("Get() last request at = %v, want %v", got.LastRequestAt, at)
	}
}

func TestUsageRepo_PutReplacesExisting(t *testing.T) {
	repo := NewUsageRepo(newTestDB(t))
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 1; i <= 2; i++ {
		rec := &UsageRecord{
			UserID:        "user-1",
			Day:           "2026-08-31",
			AIRequests:    i,
			LastRequestAt: now,
		}
		if err := repo.Put(ctx, rec); err != nil {
			t.Fatalf("Put() #%d error = %v", i, err)
		}
	}

	got, err := repo.Get(ctx, "user-1", "2026-08-31")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.AIRequests != 2 {
		t.Errorf("Get() requests = %d, want 2 after upsert", got.AIRequests)
	}
}

func TestUsageRepo_DaysAreIndependent(t *testing.T) {
	repo := NewUsageRepo(newTestDB(t))
	ctx := context.Background()

	now := time.Now().UTC()
	if err := repo.Put(ctx, &UsageRecord{UserID: "user-1", Day: "2026-08-30", AIRequests: 20, LastRequestAt: now}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if _, err := repo.Get(ctx, "user-1", "2026-08-31"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() for next day error = %v, want ErrNotFound", err)
	}
}

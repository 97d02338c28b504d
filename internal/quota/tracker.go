// Package quota enforces the per-user daily ceiling on enrichment-consuming
// saves.
package quota

import (
	"context"
	"errors"
	"time"

	"recallr/internal/contextutil"
	"recallr/internal/storage"
)

// Snapshot reports a user's quota state after a check.
type Snapshot struct {
	Allowed   bool      `json:"-"`
	Used      int       `json:"used"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetDate"`
}

// Tracker maintains per-user-per-day usage counters against the store.
//
// The increment is a read-then-write sequence with no isolation: concurrent
// saves can under-count and let more than the nominal ceiling through. That
// is acceptable for a soft quota and must not be reused for billing.
type Tracker struct {
	store storage.UsageStore
	limit int
	now   func() time.Time
}

// NewTracker creates a Tracker with the given daily ceiling.
func NewTracker(store storage.UsageStore, limit int) *Tracker {
	return &Tracker{
		store: store,
		limit: limit,
		now:   time.Now,
	}
}

// CheckAndReserve consumes one unit of today's quota if any remains.
// The unit is consumed before enrichment runs, so an enrichment failure
// still counts against the ceiling; that bounds model spend.
//
// Store failures fail open: a storage hiccup must never block saving. The
// failure is logged and the request is allowed through.
func (t *Tracker) CheckAndReserve(ctx context.Context, userID string) Snapshot {
	logger := contextutil.LoggerFromContext(ctx)
	now := t.now().UTC()
	day := DayKey(now)

	used := 0
	rec, err := t.store.Get(ctx, userID, day)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.ErrorContext(ctx, "quota read failed, failing open", "user_id", userID, "error", err)
		return t.snapshot(true, 0, now)
	}
	if rec != nil {
		used = rec.AIRequests
	}

	if used >= t.limit {
		return t.snapshot(false, used, now)
	}

	err = t.store.Put(ctx, &storage.UsageRecord{
		UserID:        userID,
		Day:           day,
		AIRequests:    used + 1,
		LastRequestAt: now,
	})
	if err != nil {
		logger.ErrorContext(ctx, "quota write failed, failing open", "user_id", userID, "error", err)
		return t.snapshot(true, used, now)
	}

	return t.snapshot(true, used+1, now)
}

// Peek reports today's quota state without consuming a unit.
func (t *Tracker) Peek(ctx context.Context, userID string) (Snapshot, error) {
	now := t.now().UTC()

	used := 0
	rec, err := t.store.Get(ctx, userID, DayKey(now))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return Snapshot{}, err
	}
	if rec != nil {
		used = rec.AIRequests
	}

	return t.snapshot(used < t.limit, used, now), nil
}

func (t *Tracker) snapshot(allowed bool, used int, now time.Time) Snapshot {
	remaining := t.limit - used
	if remaining < 0 {
		remaining = 0
	}
	return Snapshot{
		Allowed:   allowed,
		Used:      used,
		Limit:     t.limit,
		Remaining: remaining,
		ResetAt:   nextUTCMidnight(now),
	}
}

// DayKey returns the UTC calendar-day key (YYYY-MM-DD) for a point in time.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func nextUTCMidnight(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}

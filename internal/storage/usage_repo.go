package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_usage_store.go -package=mocks recallr/internal/storage UsageStore

import (
	"context"
	"database/sql"
	"fmt"
)

// UsageStore defines the interface for per-user-per-day usage counters.
type UsageStore interface {
	// Get returns the usage record for a user and UTC date key.
	// Returns nil and ErrNotFound when no record exists (meaning zero usage).
	Get(ctx context.Context, userID, day string) (*UsageRecord, error)
	// Put writes a usage record, creating or replacing it. The caller reads
	// the current value first; nothing makes the read-then-write atomic.
	Put(ctx context.Context, rec *UsageRecord) error
}

// UsageRepo provides methods for usage-counter operations backed by SQLite.
// It implements the UsageStore interface.
type UsageRepo struct {
	db *sql.DB
}

// NewUsageRepo creates a new UsageRepo.
func NewUsageRepo(db *sql.DB) *UsageRepo {
	return &UsageRepo{db: db}
}

// Get returns the usage record for a user and UTC date key.
func (r *UsageRepo) Get(ctx context.Context, userID, day string) (*UsageRecord, error) {
	var (
		rec           UsageRecord
		lastRequestAt string
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id, day, ai_requests, last_request_at FROM usage WHERE user_id = ? AND day = ?",
		userID, day,
	).Scan(&rec.UserID, &rec.Day, &rec.AIRequests, &lastRequestAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query usage: %w", err)
	}

	if rec.LastRequestAt, err = parseTime(lastRequestAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Put writes a usage record, creating or replacing it.
func (r *UsageRepo) Put(ctx context.Context, rec *UsageRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO usage (user_id, day, ai_requests, last_request_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, day) DO UPDATE SET
		 ai_requests = excluded.ai_requests, last_request_at = excluded.last_request_at`,
		rec.UserID, rec.Day, rec.AIRequests, formatTime(rec.LastRequestAt),
	)
	if err != nil {
		return fmt.Errorf("failed to write usage: %w", err)
	}
	return nil
}

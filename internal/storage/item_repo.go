package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_item_store.go -package=mocks recallr/internal/storage ItemStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// ItemStore defines the interface for saved-item storage operations.
type ItemStore interface {
	// Insert stores a new item, assigning an ID if the item has none.
	Insert(ctx context.Context, item *SavedItem) error
	// Get returns an item by ID within a user's namespace.
	// Returns nil and ErrNotFound if not found.
	Get(ctx context.Context, userID, id string) (*SavedItem, error)
	// FindByURL returns the first item with the given URL within a user's
	// namespace, or nil and ErrNotFound if none exists.
	FindByURL(ctx context.Context, userID, url string) (*SavedItem, error)
	// ListRecent returns up to limit items ordered by created_at descending.
	// If collectionID is non-empty the membership predicate is applied at the
	// store level before the limit.
	ListRecent(ctx context.Context, userID, collectionID string, limit int) ([]*SavedItem, error)
	// ListAll returns every item for a user ordered by created_at descending.
	ListAll(ctx context.Context, userID string) ([]*SavedItem, error)
	// ListCreatedBetween returns items whose created_at falls in [from, to].
	ListCreatedBetween(ctx context.Context, userID string, from, to time.Time) ([]*SavedItem, error)
	// ListCreatedBefore returns items created at or before the cutoff.
	ListCreatedBefore(ctx context.Context, userID string, cutoff time.Time) ([]*SavedItem, error)
	// SetCollection sets or clears an item's collection membership.
	SetCollection(ctx context.Context, userID, id string, collectionID *string, now time.Time) error
	// SetLastViewed records that the user opened the item.
	SetLastViewed(ctx context.Context, userID, id string, now time.Time) error
	// Delete removes an item. Deleting a missing item returns ErrNotFound.
	Delete(ctx context.Context, userID, id string) error
}

// ItemRepo provides methods for saved-item operations backed by SQLite.
// It implements the ItemStore interface.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo creates a new ItemRepo.
func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

const itemColumns = "id, user_id, url, platform, collection_id, raw_title, raw_description, raw_content, ai_output, created_at, updated_at, last_viewed_at"

// Insert stores a new item, assigning a UUID if the item has none.
func (r *ItemRepo) Insert(ctx context.Context, item *SavedItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	var aiJSON sql.NullString
	if item.AIOutput != nil {
		raw, err := json.Marshal(item.AIOutput)
		if err != nil {
			return fmt.Errorf("failed to encode ai output: %w", err)
		}
		aiJSON = sql.NullString{String: string(raw), Valid: true}
	}

	var collectionID sql.NullString
	if item.CollectionID != nil {
		collectionID = sql.NullString{String: *item.CollectionID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO items (`+itemColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.URL, item.Platform, collectionID,
		item.RawInput.Title, item.RawInput.Description, item.RawInput.ContentText,
		aiJSON, formatTime(item.CreatedAt), formatTime(item.UpdatedAt),
		formatNullableTime(item.LastViewedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// Get returns an item by ID within a user's namespace.
func (r *ItemRepo) Get(ctx context.Context, userID, id string) (*SavedItem, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE user_id = ? AND id = ?",
		userID, id,
	)
	return scanItem(row)
}

// FindByURL returns the first item with the given URL, or ErrNotFound.
func (r *ItemRepo) FindByURL(ctx context.Context, userID, url string) (*SavedItem, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE user_id = ? AND url = ? LIMIT 1",
		userID, url,
	)
	return scanItem(row)
}

// ListRecent returns up to limit items ordered by created_at descending,
// optionally restricted to a collection at the store level.
func (r *ItemRepo) ListRecent(ctx context.Context, userID, collectionID string, limit int) ([]*SavedItem, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if collectionID != "" {
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+itemColumns+" FROM items WHERE user_id = ? AND collection_id = ? ORDER BY created_at DESC LIMIT ?",
			userID, collectionID, limit,
		)
	} else {
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+itemColumns+" FROM items WHERE user_id = ? ORDER BY created_at DESC LIMIT ?",
			userID, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	return collectItems(rows)
}

// ListAll returns every item for a user ordered by created_at descending.
func (r *ItemRepo) ListAll(ctx context.Context, userID string) ([]*SavedItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	return collectItems(rows)
}

// ListCreatedBetween returns items whose created_at falls in [from, to].
func (r *ItemRepo) ListCreatedBetween(ctx context.Context, userID string, from, to time.Time) ([]*SavedItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE user_id = ? AND created_at >= ? AND created_at <= ? ORDER BY created_at DESC",
		userID, formatTime(from), formatTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query items by date: %w", err)
	}
	return collectItems(rows)
}

// ListCreatedBefore returns items created at or before the cutoff.
func (r *ItemRepo) ListCreatedBefore(ctx context.Context, userID string, cutoff time.Time) ([]*SavedItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE user_id = ? AND created_at <= ? ORDER BY created_at DESC",
		userID, formatTime(cutoff),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query items by cutoff: %w", err)
	}
	return collectItems(rows)
}

// SetCollection sets or clears an item's collection membership and bumps
// updated_at.
func (r *ItemRepo) SetCollection(ctx context.Context, userID, id string, collectionID *string, now time.Time) error {
	var value sql.NullString
	if collectionID != nil {
		value = sql.NullString{String: *collectionID, Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE items SET collection_id = ?, updated_at = ? WHERE user_id = ? AND id = ?",
		value, formatTime(now), userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update item collection: %w", err)
	}
	return requireRow(res)
}

// SetLastViewed records that the user opened the item.
func (r *ItemRepo) SetLastViewed(ctx context.Context, userID, id string, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE items SET last_viewed_at = ?, updated_at = ? WHERE user_id = ? AND id = ?",
		formatTime(now), formatTime(now), userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark item viewed: %w", err)
	}
	return requireRow(res)
}

// Delete removes an item.
func (r *ItemRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM items WHERE user_id = ? AND id = ?",
		userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return requireRow(res)
}

// requireRow converts a zero-row update or delete into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner is the subset of sql.Row/sql.Rows needed by scanItem.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*SavedItem, error) {
	var (
		item         SavedItem
		collectionID sql.NullString
		aiJSON       sql.NullString
		createdAt    string
		updatedAt    string
		lastViewedAt sql.NullString
	)

	err := row.Scan(&item.ID, &item.UserID, &item.URL, &item.Platform, &collectionID,
		&item.RawInput.Title, &item.RawInput.Description, &item.RawInput.ContentText,
		&aiJSON, &createdAt, &updatedAt, &lastViewedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}

	if collectionID.Valid {
		item.CollectionID = &collectionID.String
	}
	if aiJSON.Valid {
		var out AIOutput
		if err := json.Unmarshal([]byte(aiJSON.String), &out); err != nil {
			return nil, fmt.Errorf("failed to decode ai output: %w", err)
		}
		item.AIOutput = &out
	}
	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if item.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if item.LastViewedAt, err = parseNullableTime(lastViewedAt); err != nil {
		return nil, err
	}

	return &item, nil
}

func collectItems(rows *sql.Rows) ([]*SavedItem, error) {
	defer func() {
		_ = rows.Close()
	}()

	var items []*SavedItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

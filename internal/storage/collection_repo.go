package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_collection_store.go -package=mocks recallr/internal/storage CollectionStore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// CollectionStore defines the interface for collection storage operations.
type CollectionStore interface {
	// Insert stores a new collection, assigning an ID if it has none.
	Insert(ctx context.Context, c *Collection) error
	// Get returns a collection by ID within a user's namespace.
	// Returns nil and ErrNotFound if not found.
	Get(ctx context.Context, userID, id string) (*Collection, error)
	// List returns all of a user's collections ordered by created_at descending.
	List(ctx context.Context, userID string) ([]*Collection, error)
	// Update writes a collection's mutable fields (name, description, color,
	// item_count, updated_at).
	Update(ctx context.Context, c *Collection) error
	// Delete removes a collection. Member items are left untouched; their
	// collection reference dangles on purpose.
	Delete(ctx context.Context, userID, id string) error
}

// CollectionRepo provides methods for collection operations backed by SQLite.
// It implements the CollectionStore interface.
type CollectionRepo struct {
	db *sql.DB
}

// NewCollectionRepo creates a new CollectionRepo.
func NewCollectionRepo(db *sql.DB) *CollectionRepo {
	return &CollectionRepo{db: db}
}

// Insert stores a new collection, assigning a UUID if it has none.
func (r *CollectionRepo) Insert(ctx context.Context, c *Collection) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO collections (id, user_id, name, description, color, item_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, c.Description, c.Color, c.ItemCount,
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	return nil
}

// Get returns a collection by ID within a user's namespace.
func (r *CollectionRepo) Get(ctx context.Context, userID, id string) (*Collection, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, description, color, item_count, created_at, updated_at FROM collections WHERE user_id = ? AND id = ?",
		userID, id,
	)
	return scanCollection(row)
}

// List returns all of a user's collections ordered by created_at descending.
func (r *CollectionRepo) List(ctx context.Context, userID string) ([]*Collection, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, name, description, color, item_count, created_at, updated_at FROM collections WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query collections: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var collections []*Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collections: %w", err)
	}
	return collections, nil
}

// Update writes a collection's mutable fields.
func (r *CollectionRepo) Update(ctx context.Context, c *Collection) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE collections SET name = ?, description = ?, color = ?, item_count = ?, updated_at = ? WHERE user_id = ? AND id = ?",
		c.Name, c.Description, c.Color, c.ItemCount, formatTime(c.UpdatedAt), c.UserID, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
	}
	return requireRow(res)
}

// Delete removes a collection without touching member items.
func (r *CollectionRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM collections WHERE user_id = ? AND id = ?",
		userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return requireRow(res)
}

func scanCollection(row rowScanner) (*Collection, error) {
	var (
		c         Collection
		createdAt string
		updatedAt string
	)

	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Color, &c.ItemCount, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan collection: %w", err)
	}

	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
//
// items.url carries no UNIQUE constraint on purpose: duplicate detection is
// an application-level check-then-insert, and concurrent saves of the same
// URL are allowed to race.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT '',
			platform TEXT NOT NULL DEFAULT '',
			collection_id TEXT,
			raw_title TEXT NOT NULL DEFAULT '',
			raw_description TEXT NOT NULL DEFAULT '',
			raw_content TEXT NOT NULL DEFAULT '',
			ai_output TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			last_viewed_at TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_user_created ON items (user_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_items_user_url ON items (user_id, url);`,
		`CREATE TABLE IF NOT EXISTS collections (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			item_count INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_collections_user ON collections (user_id, created_at DESC);`,
		`CREATE TABLE IF NOT EXISTS usage (
			user_id TEXT NOT NULL,
			day TEXT NOT NULL,
			ai_requests INTEGER NOT NULL DEFAULT 0,
			last_request_at TEXT NOT NULL,
			PRIMARY KEY (user_id, day)
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// timeLayout is RFC 3339 with fixed-width nanoseconds. RFC3339Nano drops
// trailing zeros in the fraction, which makes lexicographic order diverge
// from chronological order; the padded layout keeps the two aligned so SQL
// can sort and range over the string column directly.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		// Fall back to second precision for rows written by other tools.
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
		}
	}
	return t, nil
}

func formatNullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseNullableTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

package service

import (
	"errors"
	"fmt"

	"recallr/internal/quota"
	"recallr/internal/storage"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// DuplicateError is returned when a save submits a URL the user has already
// saved. It carries the existing item so callers can show "already saved".
type DuplicateError struct {
	Existing *storage.SavedItem
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("url already saved as item %s", e.Existing.ID)
}

// QuotaExceededError is returned when the daily enrichment ceiling has been
// reached. It carries the quota snapshot for the response payload.
type QuotaExceededError struct {
	Quota quota.Snapshot
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily quota of %d exceeded", e.Quota.Limit)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

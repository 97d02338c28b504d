package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recallr/internal/storage"
)

// ReminderService computes review reminders on demand. There is no
// server-resident scheduler and no persisted schedule: clients poll, and
// "due" is derived from timestamps at call time.
type ReminderService struct {
	items storage.ItemStore
	now   func() time.Time
}

// NewReminderService creates a ReminderService.
func NewReminderService(items storage.ItemStore) *ReminderService {
	return &ReminderService{
		items: items,
		now:   time.Now,
	}
}

// DueItems returns items eligible for a review reminder: saved 6 to 8 days
// ago and not viewed within the last 6 days.
func (s *ReminderService) DueItems(ctx context.Context, userID string) ([]*storage.SavedItem, error) {
	now := s.now().UTC()
	from := now.AddDate(0, 0, -8)
	to := now.AddDate(0, 0, -6)

	candidates, err := s.items.ListCreatedBetween(ctx, userID, from, to)
	if err != nil {
		return nil, WrapError(err, "failed to fetch reminder candidates")
	}

	due := make([]*storage.SavedItem, 0, len(candidates))
	for _, item := range candidates {
		if viewedWithin(item, now, 6) {
			continue
		}
		due = append(due, item)
	}
	return due, nil
}

// MarkViewed records that the user opened the item just now.
func (s *ReminderService) MarkViewed(ctx context.Context, userID, itemID string) error {
	if err := s.items.SetLastViewed(ctx, userID, itemID, s.now().UTC()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to mark item viewed")
	}
	return nil
}

// Stats summarizes the review backlog: items older than 7 days that were
// never viewed, or last viewed more than 7 days ago.
func (s *ReminderService) Stats(ctx context.Context, userID string) (int, string, error) {
	now := s.now().UTC()
	cutoff := now.AddDate(0, 0, -7)

	candidates, err := s.items.ListCreatedBefore(ctx, userID, cutoff)
	if err != nil {
		return 0, "", WrapError(err, "failed to fetch reminder stats")
	}

	unread := 0
	for _, item := range candidates {
		if !viewedWithin(item, now, 7) {
			unread++
		}
	}

	message := "All caught up!"
	if unread > 0 {
		message = fmt.Sprintf("You have %d items to review!", unread)
	}
	return unread, message, nil
}

// viewedWithin reports whether the item was viewed in the last `days` days.
func viewedWithin(item *storage.SavedItem, now time.Time, days int) bool {
	if item.LastViewedAt == nil {
		return false
	}
	return now.Sub(*item.LastViewedAt) < time.Duration(days)*24*time.Hour
}

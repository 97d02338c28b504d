package service

import (
	"context"
	"strings"
	"time"

	"recallr/internal/storage"
)

// Query holds search parameters. Date strings use the YYYY-MM-DD form.
type Query struct {
	Text         string
	Category     string
	ContentType  string
	CollectionID string
	DateFrom     string
	DateTo       string
	Limit        int
}

// SearchResult is a filtered window of a user's items.
type SearchResult struct {
	Items []*storage.SavedItem `json:"items"`
	Total int                  `json:"total"`
}

// Searcher fetches a bounded window of recent items and applies predicates
// in memory.
//
// Only the collection predicate is pushed to the store; every other filter
// sees at most the `limit` most recent items, not the full history. Precise
// filtering over older items requires narrowing by date or raising the
// limit. That trade-off is deliberate.
type Searcher struct {
	items        storage.ItemStore
	defaultLimit int
}

// NewSearcher creates a Searcher with the given default result window.
func NewSearcher(items storage.ItemStore, defaultLimit int) *Searcher {
	return &Searcher{
		items:        items,
		defaultLimit: defaultLimit,
	}
}

// Search returns the recent window filtered by the query. With no predicates
// at all it degrades to "list recent", never an error.
func (s *Searcher) Search(ctx context.Context, userID string, q Query) (*SearchResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	var dateFrom, dateTo time.Time
	var err error
	if q.DateFrom != "" {
		if dateFrom, err = time.Parse("2006-01-02", q.DateFrom); err != nil {
			return nil, &ValidationError{Field: "dateFrom", Message: "must be YYYY-MM-DD"}
		}
	}
	if q.DateTo != "" {
		if dateTo, err = time.Parse("2006-01-02", q.DateTo); err != nil {
			return nil, &ValidationError{Field: "dateTo", Message: "must be YYYY-MM-DD"}
		}
		// Inclusive end of day, so dateFrom == dateTo covers that whole
		// calendar day.
		dateTo = dateTo.Add(24*time.Hour - time.Millisecond)
	}

	fetched, err := s.items.ListRecent(ctx, userID, q.CollectionID, limit)
	if err != nil {
		return nil, WrapError(err, "failed to fetch items")
	}

	items := make([]*storage.SavedItem, 0, len(fetched))
	for _, item := range fetched {
		if q.Text != "" && !matchesText(item, q.Text) {
			continue
		}
		if q.Category != "" && (item.AIOutput == nil || item.AIOutput.Category != q.Category) {
			continue
		}
		if q.ContentType != "" && (item.AIOutput == nil || item.AIOutput.ContentType != q.ContentType) {
			continue
		}
		if !dateFrom.IsZero() && item.CreatedAt.Before(dateFrom) {
			continue
		}
		if !dateTo.IsZero() && item.CreatedAt.After(dateTo) {
			continue
		}
		items = append(items, item)
	}

	return &SearchResult{Items: items, Total: len(items)}, nil
}

// matchesText reports whether any of the item's searchable fields contains
// the query, case-insensitively. Searchable fields: summary, tags, key
// ideas, and the annotation title falling back to the raw title.
func matchesText(item *storage.SavedItem, query string) bool {
	needle := strings.ToLower(query)

	title := item.RawInput.Title
	if item.AIOutput != nil {
		if item.AIOutput.Title != "" {
			title = item.AIOutput.Title
		}
		if contains(item.AIOutput.Summary, needle) ||
			contains(strings.Join(item.AIOutput.Tags, " "), needle) ||
			contains(strings.Join(item.AIOutput.KeyIdeas, " "), needle) {
			return true
		}
	}
	return contains(title, needle)
}

func contains(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

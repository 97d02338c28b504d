package storage

import "time"

// RawInput is the unmodified content submitted with a save request.
type RawInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentText string `json:"content_text"`
}

// AIOutput is the structured annotation produced by the enrichment service.
// Every field is best-effort: the model may omit any of them, so consumers
// must treat absent fields as empty and degrade gracefully.
type AIOutput struct {
	Title                  string   `json:"title,omitempty"`
	ContentType            string   `json:"content_type,omitempty"`
	Category               string   `json:"category,omitempty"`
	Summary                string   `json:"summary,omitempty"`
	KeyIdeas               []string `json:"key_ideas,omitempty"`
	Tags                   []string `json:"tags,omitempty"`
	Entities               []string `json:"entities,omitempty"`
	Tone                   string   `json:"tone,omitempty"`
	ConfidenceLevel        string   `json:"confidence_level,omitempty"`
	SuggestedSearchQueries []string `json:"suggested_search_queries,omitempty"`
}

// SavedItem is a single saved piece of content, owned by a user.
// URL may be empty for freeform notes; if non-empty it is unique within the
// user's namespace by application-level duplicate check, not by constraint.
type SavedItem struct {
	ID           string     `json:"id"`
	UserID       string     `json:"-"`
	URL          string     `json:"url"`
	Platform     string     `json:"platform"`
	CollectionID *string    `json:"collectionId"`
	RawInput     RawInput   `json:"raw_input"`
	AIOutput     *AIOutput  `json:"ai_output,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastViewedAt *time.Time `json:"lastViewedAt"`
}

// Collection is a named grouping of saved items. ItemCount is denormalized:
// it is maintained by increment/decrement on membership changes, never
// recomputed from the items table.
type Collection struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UsageRecord tracks one user's enrichment consumption for one UTC calendar
// day. Absence of a record means zero requests.
type UsageRecord struct {
	UserID        string
	Day           string // UTC date key, YYYY-MM-DD
	AIRequests    int
	LastRequestAt time.Time
}

package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_enricher.go -package=mocks recallr/internal/service Enricher

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"recallr/internal/ai"
	"recallr/internal/contextutil"
	"recallr/internal/extract"
	"recallr/internal/quota"
	"recallr/internal/storage"
)

// Enricher derives a structured annotation from raw saved content.
// This interface is defined from the pipeline's perspective (consumer-first).
type Enricher interface {
	Summarize(ctx context.Context, in ai.Input) (*storage.AIOutput, error)
}

// QuotaChecker reserves one unit of a user's daily enrichment quota.
// It never returns an error: store failures fail open inside the tracker.
type QuotaChecker interface {
	CheckAndReserve(ctx context.Context, userID string) quota.Snapshot
}

// SaveRequest is the payload of an ingestion attempt.
type SaveRequest struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ContentText  string `json:"content_text"`
	Platform     string `json:"platform"`
	CollectionID string `json:"collectionId"`
}

// Pipeline orchestrates content ingestion: duplicate check, quota check,
// enrichment, persistence, and the collection counter side effect.
//
// The duplicate check and the insert are not atomic: two concurrent saves of
// the same URL can both pass the check and both insert. That race is
// accepted, not prevented.
type Pipeline struct {
	items    storage.ItemStore
	counters *Maintainer
	quota    QuotaChecker
	enricher Enricher
	now      func() time.Time
}

// NewPipeline creates an ingestion Pipeline.
func NewPipeline(items storage.ItemStore, counters *Maintainer, quotaChecker QuotaChecker, enricher Enricher) *Pipeline {
	return &Pipeline{
		items:    items,
		counters: counters,
		quota:    quotaChecker,
		enricher: enricher,
		now:      time.Now,
	}
}

// Save runs one ingestion attempt and returns the created item together with
// the quota snapshot taken during the attempt.
//
// Quota is consumed before enrichment, so a failed enrichment still counts.
// Enrichment failure never fails the save: the fallback annotation is
// substituted and the item persists. A persistence failure after that point
// does surface, and the consumed quota is not refunded.
func (p *Pipeline) Save(ctx context.Context, userID string, req SaveRequest) (*storage.SavedItem, quota.Snapshot, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.URL == "" && req.ContentText == "" {
		return nil, quota.Snapshot{}, &ValidationError{
			Field:   "url",
			Message: "url or content_text is required",
		}
	}

	// 1. Duplicate check, URL saves only.
	if req.URL != "" {
		existing, err := p.items.FindByURL(ctx, userID, req.URL)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, quota.Snapshot{}, WrapError(err, "duplicate check failed")
		}
		if existing != nil {
			return nil, quota.Snapshot{}, &DuplicateError{Existing: existing}
		}
	}

	// 2. Quota check. The reservation happens here, before enrichment.
	snap := p.quota.CheckAndReserve(ctx, userID)
	if !snap.Allowed {
		return nil, snap, &QuotaExceededError{Quota: snap}
	}

	// 3. Enrichment, with fallback on any failure.
	output, err := p.enricher.Summarize(ctx, ai.Input{
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		ContentText: req.ContentText,
		Platform:    req.Platform,
	})
	if err != nil {
		logger.WarnContext(ctx, "enrichment failed, using fallback annotation", "error", err)
		output = ai.FallbackOutput()
	}

	// 4. Persistence.
	platform := req.Platform
	if platform == "" {
		platform = "unknown"
	}
	var collectionID *string
	if req.CollectionID != "" {
		collectionID = &req.CollectionID
	}
	now := p.now().UTC()
	item := &storage.SavedItem{
		UserID:       userID,
		URL:          req.URL,
		Platform:     platform,
		CollectionID: collectionID,
		RawInput: storage.RawInput{
			Title:       req.Title,
			Description: req.Description,
			ContentText: truncateRaw(req.ContentText),
		},
		AIOutput:  output,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.items.Insert(ctx, item); err != nil {
		return nil, snap, WrapError(err, "failed to persist item")
	}

	// 5. Collection counter side effect. The item is already durable, so a
	// failed increment is logged and absorbed; it is the same lost-update
	// class the denormalized counter already accepts.
	if collectionID != nil {
		if err := p.counters.adjustCount(ctx, userID, *collectionID, 1); err != nil {
			logger.ErrorContext(ctx, "collection counter update failed", "collection_id", *collectionID, "error", err)
		}
	}

	return item, snap, nil
}

// truncateRaw caps stored raw content at the extraction bound, backing off
// to a rune boundary so the cut never splits a UTF-8 sequence.
func truncateRaw(s string) string {
	if len(s) <= extract.MaxTextLength {
		return s
	}
	limit := extract.MaxTextLength
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

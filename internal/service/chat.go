package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_recall_model.go -package=mocks recallr/internal/service RecallModel

import (
	"context"
	"fmt"
	"strings"

	"recallr/internal/ai"
	"recallr/internal/contextutil"
	"recallr/internal/storage"
)

// fallbackWindow and fallbackMaxResults bound the degraded local search used
// when the model is unavailable.
const (
	fallbackWindow     = 20
	fallbackMaxResults = 5
)

// RecallModel asks the model which saved items answer a query.
// This interface is defined from the chat service's perspective.
type RecallModel interface {
	Recall(ctx context.Context, query string, items []ai.RecallItem) (*ai.RecallResult, error)
}

// ChatResult is the answer to a natural-language query over saved items.
type ChatResult struct {
	Response string               `json:"response"`
	Items    []*storage.SavedItem `json:"items"`
}

// ChatService answers natural-language queries over a user's saved items.
// Model failures degrade to a local substring search; they never surface as
// errors to the caller.
type ChatService struct {
	items  storage.ItemStore
	model  RecallModel
	window int
}

// NewChatService creates a ChatService with the given recent-items window.
func NewChatService(items storage.ItemStore, model RecallModel, window int) *ChatService {
	return &ChatService{
		items:  items,
		model:  model,
		window: window,
	}
}

// Respond answers a query over the user's most recent items.
func (s *ChatService) Respond(ctx context.Context, userID, query string) (*ChatResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if query == "" {
		return nil, &ValidationError{Field: "query", Message: "cannot be empty"}
	}

	items, err := s.items.ListRecent(ctx, userID, "", s.window)
	if err != nil {
		return nil, WrapError(err, "failed to fetch items for chat")
	}

	if len(items) == 0 {
		return &ChatResult{
			Response: "You haven't saved any items yet. Start saving content to ask me questions about it!",
			Items:    []*storage.SavedItem{},
		}, nil
	}

	recallItems := make([]ai.RecallItem, len(items))
	for i, item := range items {
		recallItems[i] = ai.RecallItem{
			Title:    displayTitle(item),
			Summary:  annotationField(item, func(o *storage.AIOutput) string { return o.Summary }),
			Category: annotationField(item, func(o *storage.AIOutput) string { return o.Category }),
			Tags:     strings.Join(annotationTags(item), ", "),
			URL:      item.URL,
		}
	}

	result, err := s.model.Recall(ctx, query, recallItems)
	if err != nil {
		logger.WarnContext(ctx, "model recall failed, falling back to local search", "error", err)
		return s.localFallback(items, query), nil
	}

	relevant := make([]*storage.SavedItem, 0, len(result.RelevantIndices))
	for _, idx := range result.RelevantIndices {
		if idx >= 0 && idx < len(items) {
			relevant = append(relevant, items[idx])
		}
	}

	response := result.Response
	if response == "" {
		response = "Here are some items I found."
	}
	return &ChatResult{Response: response, Items: relevant}, nil
}

// localFallback runs a substring search over the most recent items, the
// degraded path for when the model is unreachable.
func (s *ChatService) localFallback(items []*storage.SavedItem, query string) *ChatResult {
	if len(items) > fallbackWindow {
		items = items[:fallbackWindow]
	}

	needle := strings.ToLower(query)
	matched := make([]*storage.SavedItem, 0, fallbackMaxResults)
	for _, item := range items {
		if len(matched) == fallbackMaxResults {
			break
		}
		summary := annotationField(item, func(o *storage.AIOutput) string { return o.Summary })
		tags := strings.Join(annotationTags(item), " ")
		if contains(summary, needle) || contains(tags, needle) || contains(displayTitle(item), needle) {
			matched = append(matched, item)
		}
	}

	return &ChatResult{
		Response: fmt.Sprintf("I found %d items matching %q.", len(matched), query),
		Items:    matched,
	}
}

// displayTitle prefers the annotation title over the raw title.
func displayTitle(item *storage.SavedItem) string {
	if item.AIOutput != nil && item.AIOutput.Title != "" {
		return item.AIOutput.Title
	}
	if item.RawInput.Title != "" {
		return item.RawInput.Title
	}
	return "Untitled"
}

func annotationField(item *storage.SavedItem, pick func(*storage.AIOutput) string) string {
	if item.AIOutput == nil {
		return ""
	}
	return pick(item.AIOutput)
}

func annotationTags(item *storage.SavedItem) []string {
	if item.AIOutput == nil {
		return nil
	}
	return item.AIOutput.Tags
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"recallr/internal/ai"
	"recallr/internal/service/mocks"
	"recallr/internal/storage"
)

func TestChatService_RespondEmptyQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	chat := NewChatService(newStores(t).items, mocks.NewMockRecallModel(ctrl), 50)
	_, err := chat.Respond(context.Background(), testUser, "")

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Respond() error = %v, want ValidationError", err)
	}
}

func TestChatService_RespondEmptyLibrary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The model is never consulted when there is nothing to recall.
	chat := NewChatService(newStores(t).items, mocks.NewMockRecallModel(ctrl), 50)
	result, err := chat.Respond(context.Background(), testUser, "anything about go?")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if !strings.Contains(result.Response, "haven't saved any items") {
		t.Errorf("Respond() = %q, want the empty-library message", result.Response)
	}
	if len(result.Items) != 0 {
		t.Errorf("Respond() items = %d, want 0", len(result.Items))
	}
}

func TestChatService_RespondMapsIndices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newStores(t)
	base := time.Now().UTC().Add(-time.Hour)
	older := seedItem(t, s, base, &storage.AIOutput{Title: "Older", Summary: "About Go."})
	newer := seedItem(t, s, base.Add(time.Minute), &storage.AIOutput{Title: "Newer", Summary: "About Rust."})

	model := mocks.NewMockRecallModel(ctrl)
	model.EXPECT().
		Recall(gomock.Any(), "what did I save about go?", gomock.Len(2)).
		Return(&ai.RecallResult{
			Response: "You saved one item about Go.",
			// Index 1 is the older item: items arrive newest first.
			// Out-of-range indices are dropped, not an error.
			RelevantIndices: []int{1, 9},
		}, nil)

	chat := NewChatService(s.items, model, 50)
	result, err := chat.Respond(context.Background(), testUser, "what did I save about go?")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if result.Response != "You saved one item about Go." {
		t.Errorf("Respond() response = %q", result.Response)
	}
	if len(result.Items) != 1 || result.Items[0].ID != older.ID {
		t.Errorf("Respond() items = %v, want only %q", result.Items, older.ID)
	}
	_ = newer
}

func TestChatService_RespondDefaultsEmptyResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newStores(t)
	seedItem(t, s, time.Now().UTC(), &storage.AIOutput{Title: "Something"})

	model := mocks.NewMockRecallModel(ctrl)
	model.EXPECT().Recall(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ai.RecallResult{RelevantIndices: []int{0}}, nil)

	chat := NewChatService(s.items, model, 50)
	result, err := chat.Respond(context.Background(), testUser, "anything?")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if result.Response != "Here are some items I found." {
		t.Errorf("Respond() response = %q, want the default message", result.Response)
	}
}

func TestChatService_RespondFallsBackToLocalSearch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newStores(t)
	base := time.Now().UTC().Add(-time.Hour)
	match := seedItem(t, s, base, &storage.AIOutput{
		Title:   "Concurrency Patterns",
		Summary: "Goroutines and channels in practice.",
		Tags:    []string{"go"},
	})
	seedItem(t, s, base.Add(time.Minute), &storage.AIOutput{
		Title:   "Sourdough Basics",
		Summary: "Starter care.",
	})

	model := mocks.NewMockRecallModel(ctrl)
	model.EXPECT().Recall(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("model unreachable"))

	chat := NewChatService(s.items, model, 50)
	result, err := chat.Respond(context.Background(), testUser, "goroutines")
	if err != nil {
		t.Fatalf("Respond() error = %v, model failure must degrade, not surface", err)
	}
	if len(result.Items) != 1 || result.Items[0].ID != match.ID {
		t.Errorf("Respond() fallback items = %d, want the matching item", len(result.Items))
	}
	if !strings.Contains(result.Response, "I found 1 items matching") {
		t.Errorf("Respond() fallback response = %q", result.Response)
	}
}

func TestChatService_FallbackCapsResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newStores(t)
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 8; i++ {
		seedItem(t, s, base.Add(time.Duration(i)*time.Minute), &storage.AIOutput{
			Title:   "Go article",
			Summary: "All about goroutines.",
		})
	}

	model := mocks.NewMockRecallModel(ctrl)
	model.EXPECT().Recall(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("model unreachable"))

	chat := NewChatService(s.items, model, 50)
	result, err := chat.Respond(context.Background(), testUser, "goroutines")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if len(result.Items) != fallbackMaxResults {
		t.Errorf("Respond() fallback items = %d, want cap of %d", len(result.Items), fallbackMaxResults)
	}
}

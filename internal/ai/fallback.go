package ai

import "recallr/internal/storage"

// FallbackOutput returns the placeholder annotation substituted when
// enrichment fails for any reason (missing key, bad response, timeout).
// Saving must never block on the model being available, so every ingestion
// that passes duplicate and quota checks still persists with this shape.
func FallbackOutput() *storage.AIOutput {
	return &storage.AIOutput{
		ContentType:            "unknown",
		Summary:                "Could not generate AI summary (check API key).",
		KeyIdeas:               []string{"Ensure AI_API_KEY is set in the environment"},
		Tags:                   []string{"error", "setup-required"},
		Entities:               []string{},
		Tone:                   "neutral",
		ConfidenceLevel:        "low",
		SuggestedSearchQueries: []string{},
	}
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"recallr/internal/contextutil"
	"recallr/internal/extract"
	"recallr/internal/storage"
)

const (
	// minInlineContent is the content length below which a URL save triggers
	// a fetch-and-extract pass before enrichment.
	minInlineContent = 50
	// promptContextLimit caps the content passed to the model.
	promptContextLimit = 10000
)

// ContentFetcher fetches a URL and extracts plain text from it.
// Extraction failure is non-fatal for enrichment.
type ContentFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Input is the raw material handed to the enrichment service.
type Input struct {
	URL         string
	Title       string
	Description string
	ContentText string
	Platform    string
}

// Client is a client for an OpenAI-compatible chat completions API, used for
// content enrichment and chat recall.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	fetcher ContentFetcher
	client  *http.Client
}

// NewClient creates a new enrichment client. The timeout bounds every model
// call; a timed-out call is an enrichment failure, not a hang.
func NewClient(baseURL, apiKey, model string, fetcher ContentFetcher, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		fetcher: fetcher,
		client:  &http.Client{Timeout: timeout},
	}
}

// Summarize derives a structured annotation from saved content.
// If the save carries a URL but little inline text, it first tries to fetch
// and extract the page text; that failure path degrades to title/URL context.
func (c *Client) Summarize(ctx context.Context, in Input) (*storage.AIOutput, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if c.APIKey == "" {
		return nil, fmt.Errorf("enrichment api key is not configured")
	}

	// Inline notes are often markdown; flatten them to plain text so the
	// prompt carries prose rather than markup. Fetched pages are already
	// extracted and skip this.
	contextText := extract.FromMarkdown([]byte(in.ContentText))
	if in.URL != "" && len(contextText) < minInlineContent {
		fetched, err := c.fetcher.FetchText(ctx, in.URL)
		if err != nil {
			logger.WarnContext(ctx, "content fetch failed, enriching from metadata only", "url", in.URL, "error", err)
		} else if fetched != "" {
			contextText = fetched
		}
	}
	contextText = truncate(contextText, promptContextLimit)

	reply, err := c.complete(ctx, buildSummarizePrompt(in, contextText))
	if err != nil {
		return nil, err
	}

	var out storage.AIOutput
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &out); err != nil {
		return nil, fmt.Errorf("failed to parse enrichment response: %w", err)
	}
	return &out, nil
}

// RecallItem is the compact per-item context sent to the model for chat.
type RecallItem struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
	Tags     string `json:"tags"`
	URL      string `json:"url"`
}

// RecallResult is the model's answer to a chat query.
type RecallResult struct {
	Response        string `json:"response"`
	RelevantIndices []int  `json:"relevantIndices"`
}

// Recall asks the model which saved items answer a natural-language query.
func (c *Client) Recall(ctx context.Context, query string, items []RecallItem) (*RecallResult, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("enrichment api key is not configured")
	}

	itemsJSON, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode recall context: %w", err)
	}

	reply, err := c.complete(ctx, buildRecallPrompt(query, string(itemsJSON), len(items)))
	if err != nil {
		return nil, err
	}

	// The model occasionally wraps the JSON in prose; keep only the
	// outermost object.
	payload := extractJSONObject(stripCodeFences(reply))
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in recall response")
	}

	var result RecallResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to parse recall response: %w", err)
	}
	return &result, nil
}

// chatMessage represents a single message in a chat conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest represents the request payload for chat completions.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// chatResponse represents the response from the chat completions API.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete sends a single-message chat completion request.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)

	payload := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return completion.Choices[0].Message.Content, nil
}

func buildSummarizePrompt(in Input, contextText string) string {
	if contextText == "" {
		contextText = "No text available, infer from title"
	}
	return fmt.Sprintf(`You are Recallr AI. Your goal is to summarize web content for future recall.

Input Data:
URL: %s
Title: %s
Description: %s
Context: %s

Output ONLY valid JSON (no markdown formatting) with this structure:
{
  "title": "Short, descriptive title (3-6 words capturing the main topic)",
  "content_type": "article|video|documentation|tool|other",
  "category": "One freeform category word",
  "summary": "2 sentences explaining what this is and why I might want to save it.",
  "key_ideas": ["3 bullet points", "capturing main value"],
  "tags": ["5", "lowercase", "keywords"],
  "entities": ["Names", "Companies", "Tools"],
  "tone": "informative|technical|entertainment",
  "confidence_level": "high|medium|low",
  "suggested_search_queries": ["how to...", "what is..."]
}`, in.URL, in.Title, in.Description, contextText)
}

func buildRecallPrompt(query, itemsJSON string, itemCount int) string {
	return fmt.Sprintf(`You are a helpful assistant that helps users find content from their saved items.

User Query: %q

Saved Items (max 50):
%s

Task: Analyze the query and find the most relevant saved items. Return a JSON response with:
{
  "response": "A friendly natural language response (2-3 sentences)",
  "relevantIndices": [array of indices of relevant items from 0 to %d]
}

Only return valid JSON, no markdown formatting.`, query, itemsJSON, itemCount-1)
}

// stripCodeFences removes markdown code-fence wrappers from a model reply.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// extractJSONObject returns the outermost {...} block of s, or "".
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	// Back off to a rune boundary so the cut never splits a UTF-8 sequence.
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

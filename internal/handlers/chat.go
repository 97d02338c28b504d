package handlers

import (
	"encoding/json"
	"net/http"

	"recallr/internal/auth"
	"recallr/internal/contextutil"
	"recallr/internal/service"
)

// ChatHandler handles natural-language queries over saved items.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Query string `json:"query"`
}

// ServeHTTP answers a chat query. Model failures degrade to local search
// inside the service; they never produce an error status here.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	identity := auth.IdentityFromContext(ctx)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body")
		return
	}

	result, err := h.chat.Respond(ctx, identity.UserID, req.Query)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to process chat query")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

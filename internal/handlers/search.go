package handlers

import (
	"net/http"
	"strconv"

	"recallr/internal/auth"
	"recallr/internal/service"
	"recallr/internal/storage"
)

// SearchHandler handles HTTP requests for searching saved items.
type SearchHandler struct {
	searcher *service.Searcher
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searcher *service.Searcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// SearchFilters echoes the filters a search applied.
type SearchFilters struct {
	Query        string `json:"q,omitempty"`
	Category     string `json:"category,omitempty"`
	ContentType  string `json:"contentType,omitempty"`
	CollectionID string `json:"collectionId,omitempty"`
	DateFrom     string `json:"dateFrom,omitempty"`
	DateTo       string `json:"dateTo,omitempty"`
}

// SearchResponse is the payload returned by a search.
type SearchResponse struct {
	Items   []*storage.SavedItem `json:"items"`
	Total   int                  `json:"total"`
	Filters SearchFilters        `json:"filters"`
}

// ServeHTTP runs the query engine. With no parameters it lists the recent
// window.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := auth.IdentityFromContext(ctx)

	params := r.URL.Query()
	query := service.Query{
		Text:         params.Get("q"),
		Category:     params.Get("category"),
		ContentType:  params.Get("contentType"),
		CollectionID: params.Get("collectionId"),
		DateFrom:     params.Get("dateFrom"),
		DateTo:       params.Get("dateTo"),
	}
	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "INVALID_INPUT", "limit must be a positive integer")
			return
		}
		query.Limit = limit
	}

	result, err := h.searcher.Search(ctx, identity.UserID, query)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to search items")
		return
	}

	items := result.Items
	if items == nil {
		items = []*storage.SavedItem{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		Items: items,
		Total: result.Total,
		Filters: SearchFilters{
			Query:        query.Text,
			Category:     query.Category,
			ContentType:  query.ContentType,
			CollectionID: query.CollectionID,
			DateFrom:     query.DateFrom,
			DateTo:       query.DateTo,
		},
	})
}

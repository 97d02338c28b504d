package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recallr/internal/auth"
	"recallr/internal/service"
)

// ExportHandler serves bulk exports of a user's saved items.
type ExportHandler struct {
	exporter *service.Exporter
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exporter *service.Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// ServeHTTP renders all of the user's items in the format named by the URL
// and serves the result as a file attachment.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := auth.IdentityFromContext(ctx)
	format := service.ExportFormat(chi.URLParam(r, "format"))

	file, err := h.exporter.Export(ctx, identity.UserID, format)
	if err != nil {
		writeServiceError(w, ctx, err, "Failed to export items")
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Body)
}

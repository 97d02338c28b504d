package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"recallr/internal/service"
)

func exportRequest(format string) *http.Request {
	req := authedRequest(http.MethodGet, "/api/export/"+format, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("format", format)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestExportHandler_ServeHTTP(t *testing.T) {
	handler := NewExportHandler(service.NewExporter(newHandlerStores(t).items))

	tests := []struct {
		format      string
		contentType string
	}{
		{"json", "application/json"},
		{"csv", "text/csv"},
		{"markdown", "text/markdown"},
		{"pdf", "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, exportRequest(tt.format))

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
			}
			if got := w.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			disposition := w.Header().Get("Content-Disposition")
			if !strings.HasPrefix(disposition, `attachment; filename="recallr-export-`) {
				t.Errorf("Content-Disposition = %q, want an attachment", disposition)
			}
			if w.Body.Len() == 0 {
				t.Error("body is empty, want a header-only document")
			}
		})
	}
}

func TestExportHandler_UnknownFormat(t *testing.T) {
	handler := NewExportHandler(service.NewExporter(newHandlerStores(t).items))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, exportRequest("xml"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

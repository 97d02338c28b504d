package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"recallr/internal/storage"
)

var exportNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func newTestExporter(s *stores) *Exporter {
	e := NewExporter(s.items)
	e.now = func() time.Time { return exportNow }
	return e
}

func TestExporter_EmptySetIsWellFormed(t *testing.T) {
	exporter := newTestExporter(newStores(t))
	ctx := context.Background()

	tests := []struct {
		format      ExportFormat
		contentType string
		ext         string
	}{
		{FormatJSON, "application/json", "json"},
		{FormatCSV, "text/csv", "csv"},
		{FormatMarkdown, "text/markdown", "md"},
		{FormatPDF, "application/pdf", "pdf"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			file, err := exporter.Export(ctx, testUser, tt.format)
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if file.ContentType != tt.contentType {
				t.Errorf("Export() content type = %q, want %q", file.ContentType, tt.contentType)
			}
			want := fmt.Sprintf("recallr-export-%d.%s", exportNow.UnixMilli(), tt.ext)
			if file.Filename != want {
				t.Errorf("Export() filename = %q, want %q", file.Filename, want)
			}
			if len(file.Body) == 0 {
				t.Error("Export() body is empty, want a header-only document")
			}
		})
	}
}

func TestExporter_JSON(t *testing.T) {
	s := newStores(t)
	seedItem(t, s, exportNow.Add(-time.Hour), &storage.AIOutput{Title: "Item one", Summary: "First."})
	seedItem(t, s, exportNow.Add(-2*time.Hour), &storage.AIOutput{Title: "Item two", Summary: "Second."})

	file, err := newTestExporter(s).Export(context.Background(), testUser, FormatJSON)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var payload struct {
		ExportedAt time.Time            `json:"exported_at"`
		TotalItems int                  `json:"total_items"`
		Items      []*storage.SavedItem `json:"items"`
	}
	if err := json.Unmarshal(file.Body, &payload); err != nil {
		t.Fatalf("Export() body is not valid JSON: %v", err)
	}
	if payload.TotalItems != 2 || len(payload.Items) != 2 {
		t.Errorf("Export() total = %d with %d items, want 2 and 2", payload.TotalItems, len(payload.Items))
	}
	if !payload.ExportedAt.Equal(exportNow) {
		t.Errorf("Export() exported at = %v, want %v", payload.ExportedAt, exportNow)
	}
}

func TestExporter_JSONEmptyItemsIsArray(t *testing.T) {
	file, err := newTestExporter(newStores(t)).Export(context.Background(), testUser, FormatJSON)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !bytes.Contains(file.Body, []byte(`"items": []`)) {
		t.Errorf("Export() body = %s, want items as an empty array, not null", file.Body)
	}
}

func TestExporter_CSV(t *testing.T) {
	s := newStores(t)
	seedItem(t, s, exportNow.Add(-time.Hour), &storage.AIOutput{
		Title:    "Go Generics",
		Summary:  "Type parameters.",
		Category: "Programming",
		Tags:     []string{"go", "generics"},
	})

	file, err := newTestExporter(s).Export(context.Background(), testUser, FormatCSV)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(file.Body)).ReadAll()
	if err != nil {
		t.Fatalf("Export() body is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Export() produced %d rows, want header plus one item", len(records))
	}
	if records[0][0] != "ID" || records[0][6] != "Created At" {
		t.Errorf("Export() header = %v", records[0])
	}
	if records[1][2] != "Go Generics" {
		t.Errorf("Export() title column = %q, want Go Generics", records[1][2])
	}
	if records[1][5] != "go; generics" {
		t.Errorf("Export() tags column = %q, want semicolon join", records[1][5])
	}
}

func TestExporter_Markdown(t *testing.T) {
	s := newStores(t)
	seedItem(t, s, exportNow.Add(-time.Hour), &storage.AIOutput{
		Title:    "Go Generics",
		Summary:  "Type parameters in practice.",
		KeyIdeas: []string{"constraints are interfaces"},
	})

	file, err := newTestExporter(s).Export(context.Background(), testUser, FormatMarkdown)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	body := string(file.Body)
	for _, want := range []string{
		"# Recallr Export",
		"Total items: 1",
		"## Go Generics",
		"### Summary",
		"- constraints are interfaces",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Export() body missing %q", want)
		}
	}
}

func TestExporter_PDF(t *testing.T) {
	s := newStores(t)
	seedItem(t, s, exportNow.Add(-time.Hour), &storage.AIOutput{Title: "Go Generics", Summary: "Type parameters."})

	file, err := newTestExporter(s).Export(context.Background(), testUser, FormatPDF)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !bytes.HasPrefix(file.Body, []byte("%PDF")) {
		t.Errorf("Export() body does not start with a PDF header")
	}
}

func TestExporter_UnknownFormat(t *testing.T) {
	_, err := newTestExporter(newStores(t)).Export(context.Background(), testUser, ExportFormat("xml"))

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Export() error = %v, want ValidationError", err)
	}
}

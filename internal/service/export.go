package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"recallr/internal/storage"
)

// ExportFormat names a supported export rendering.
type ExportFormat string

const (
	FormatJSON     ExportFormat = "json"
	FormatCSV      ExportFormat = "csv"
	FormatMarkdown ExportFormat = "markdown"
	FormatPDF      ExportFormat = "pdf"
)

// ExportFile is a rendered export ready to be served as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Exporter renders a user's full item set in a requested format. An empty
// item set produces a well-formed, header-only document in every format.
type Exporter struct {
	items storage.ItemStore
	now   func() time.Time
}

// NewExporter creates an Exporter.
func NewExporter(items storage.ItemStore) *Exporter {
	return &Exporter{
		items: items,
		now:   time.Now,
	}
}

// Export fetches all of the user's items and renders them.
func (e *Exporter) Export(ctx context.Context, userID string, format ExportFormat) (*ExportFile, error) {
	items, err := e.items.ListAll(ctx, userID)
	if err != nil {
		return nil, WrapError(err, "failed to fetch items for export")
	}

	now := e.now().UTC()
	stamp := now.UnixMilli()

	switch format {
	case FormatJSON:
		body, err := renderJSON(items, now)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("recallr-export-%d.json", stamp),
			ContentType: "application/json",
			Body:        body,
		}, nil
	case FormatCSV:
		body, err := renderCSV(items)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("recallr-export-%d.csv", stamp),
			ContentType: "text/csv",
			Body:        body,
		}, nil
	case FormatMarkdown:
		return &ExportFile{
			Filename:    fmt.Sprintf("recallr-export-%d.md", stamp),
			ContentType: "text/markdown",
			Body:        renderMarkdown(items, now),
		}, nil
	case FormatPDF:
		body, err := renderPDF(items, now)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("recallr-export-%d.pdf", stamp),
			ContentType: "application/pdf",
			Body:        body,
		}, nil
	default:
		return nil, &ValidationError{Field: "format", Message: "must be json, csv, markdown or pdf"}
	}
}

func renderJSON(items []*storage.SavedItem, now time.Time) ([]byte, error) {
	payload := struct {
		ExportedAt time.Time            `json:"exported_at"`
		TotalItems int                  `json:"total_items"`
		Items      []*storage.SavedItem `json:"items"`
	}{
		ExportedAt: now,
		TotalItems: len(items),
		Items:      items,
	}
	if payload.Items == nil {
		payload.Items = []*storage.SavedItem{}
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, WrapError(err, "failed to encode export")
	}
	return body, nil
}

func renderCSV(items []*storage.SavedItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"ID", "URL", "Title", "Summary", "Category", "Tags", "Created At"}); err != nil {
		return nil, WrapError(err, "failed to write csv header")
	}
	for _, item := range items {
		record := []string{
			item.ID,
			item.URL,
			displayTitle(item),
			annotationField(item, func(o *storage.AIOutput) string { return o.Summary }),
			annotationField(item, func(o *storage.AIOutput) string { return o.Category }),
			strings.Join(annotationTags(item), "; "),
			item.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, WrapError(err, "failed to write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, WrapError(err, "failed to flush csv")
	}
	return buf.Bytes(), nil
}

func renderMarkdown(items []*storage.SavedItem, now time.Time) []byte {
	var md strings.Builder
	md.WriteString("# Recallr Export\n\n")
	fmt.Fprintf(&md, "Exported on: %s\n\n", now.Format(time.RFC3339))
	fmt.Fprintf(&md, "Total items: %d\n\n---\n\n", len(items))

	for _, item := range items {
		fmt.Fprintf(&md, "## %s\n\n", displayTitle(item))
		fmt.Fprintf(&md, "**URL**: %s\n\n", orDefault(item.URL, "N/A"))
		fmt.Fprintf(&md, "**Category**: %s\n\n", orDefault(annotationField(item, func(o *storage.AIOutput) string { return o.Category }), "Unknown"))
		fmt.Fprintf(&md, "**Tags**: %s\n\n", strings.Join(annotationTags(item), ", "))
		fmt.Fprintf(&md, "**Created**: %s\n\n", item.CreatedAt.Format("2006-01-02"))
		summary := annotationField(item, func(o *storage.AIOutput) string { return o.Summary })
		fmt.Fprintf(&md, "### Summary\n\n%s\n\n", orDefault(summary, "No summary available."))

		if ideas := annotationKeyIdeas(item); len(ideas) > 0 {
			md.WriteString("### Key Ideas\n\n")
			for _, idea := range ideas {
				fmt.Fprintf(&md, "- %s\n", idea)
			}
			md.WriteString("\n")
		}

		md.WriteString("---\n\n")
	}

	return []byte(md.String())
}

func renderPDF(items []*storage.SavedItem, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Recallr Export", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Exported on %s - %d items", now.Format("2006-01-02"), len(items)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, item := range items {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, displayTitle(item), "", "L", false)

		pdf.SetFont("Helvetica", "", 10)
		if item.URL != "" {
			pdf.MultiCell(0, 5, item.URL, "", "L", false)
		}
		meta := fmt.Sprintf("Category: %s | Tags: %s | Created: %s",
			orDefault(annotationField(item, func(o *storage.AIOutput) string { return o.Category }), "Unknown"),
			strings.Join(annotationTags(item), ", "),
			item.CreatedAt.Format("2006-01-02"),
		)
		pdf.MultiCell(0, 5, meta, "", "L", false)

		if summary := annotationField(item, func(o *storage.AIOutput) string { return o.Summary }); summary != "" {
			pdf.MultiCell(0, 5, summary, "", "L", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, WrapError(err, "failed to render pdf")
	}
	return buf.Bytes(), nil
}

func annotationKeyIdeas(item *storage.SavedItem) []string {
	if item.AIOutput == nil {
		return nil
	}
	return item.AIOutput.KeyIdeas
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

package task

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

var ErrUnknownFormat = errors.New("unknown export format")

// ContentType returns the MIME type for an export format.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case "csv":
		return "text/csv; charset=utf-8"
	case "pdf":
		return "application/pdf"
	default:
		return "application/json; charset=utf-8"
	}
}

type Exporter struct{ svc Service }

func NewExporter(svc Service) *Exporter { return &Exporter{svc: svc} }

func (e *Exporter) Export(ctx context.Context, format string) ([]byte, error) {
	format = strings.ToLower(format)
	switch format {
	case "json", "csv", "pdf":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	all, err := e.svc.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	switch format {
	case "csv":
		return exportCSV(all)
	case "pdf":
		return exportPDF(all)
	default:
		return json.MarshalIndent(all, "", "  ")
	}
}

func exportCSV(all []Task) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "title", "description", "status", "created_at"})
	for _, t := range all {
		_ = w.Write([]string{t.ID, t.Title, t.Description, string(t.Status), t.CreatedAt.Format(time.RFC3339)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return b.Bytes(), nil
}

func exportPDF(all []Task) ([]byte, error) {
	st := ComputeStats(all)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total %d  Completed %d (%d%%)", st.Total, st.Completed, st.CompletedPercent))
	pdf.Ln(10)

	// gofpdf core fonts are latin-1 only
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, s := range Statuses {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, string(s))
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		n := 0
		for _, t := range all {
			if t.Status != s {
				continue
			}
			n++
			line := fmt.Sprintf("#%s  %s", t.ID, t.Title)
			if t.Description != "" {
				line += " - " + t.Description
			}
			pdf.MultiCell(0, 6, tr(line), "0", "L", false)
		}
		if n == 0 {
			pdf.MultiCell(0, 6, "(none)", "0", "L", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return buf.Bytes(), nil
}

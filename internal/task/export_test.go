package task

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"testing"
)

func seededExporter(t *testing.T) *Exporter {
	t.Helper()
	ctx := context.Background()
	svc := NewService(NewFileRepository(t.TempDir(), discardLogger()))
	for _, in := range []CreateTaskInput{
		{Title: "Buy milk", Description: "2 litres, semi-skimmed"},
		{Title: "Café visit"},
	} {
		if _, err := svc.CreateTask(ctx, in); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	return NewExporter(svc)
}

func TestExportCSV(t *testing.T) {
	b, err := seededExporter(t).Export(context.Background(), "csv")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows: got %d, want 3 (header + 2)", len(records))
	}
	wantHeader := []string{"id", "title", "description", "status", "created_at"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d]: got %q, want %q", i, records[0][i], col)
		}
	}
	if records[1][0] != "1" || records[1][2] != "2 litres, semi-skimmed" || records[1][3] != "Not Started" {
		t.Errorf("row 1: got %q", records[1])
	}
}

func TestExportJSON(t *testing.T) {
	b, err := seededExporter(t).Export(context.Background(), "JSON")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	var tasks []Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		t.Fatalf("output is not a task array: %v", err)
	}
	if len(tasks) != 2 || tasks[1].Title != "Café visit" {
		t.Errorf("tasks: got %+v", tasks)
	}
}

func TestExportPDF(t *testing.T) {
	b, err := seededExporter(t).Export(context.Background(), "pdf")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", b[:min(len(b), 16)])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := NewExporter(NewService(failingRepo{})).Export(context.Background(), "xlsx")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Export(xlsx): got %v, want ErrUnknownFormat", err)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"csv":  "text/csv; charset=utf-8",
		"PDF":  "application/pdf",
		"json": "application/json; charset=utf-8",
	}
	for format, want := range tests {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q): got %q, want %q", format, got, want)
		}
	}
}

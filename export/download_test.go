package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/soderasen-au/go-posreport/report"
)

func TestFileName(t *testing.T) {
	date := time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		subject string
		format  report.ReportFormat
		want    string
	}{
		{"daily-sales", report.REPORT_FORMAT_PDF, "daily-sales-2024-01-31.pdf"},
		{"daily-sales", report.REPORT_FORMAT_CSV, "daily-sales-2024-01-31.csv"},
		{"stocktake", report.REPORT_FORMAT_XLSX, "stocktake-2024-01-31.xlsx"},
	}
	for _, tt := range tests {
		if got := FileName(tt.subject, date, tt.format); got != tt.want {
			t.Errorf("FileName(%s, %s) = %q, want %q", tt.subject, tt.format, got, tt.want)
		}
	}
}

func TestFileSaver(t *testing.T) {
	folder := t.TempDir()
	saver := FileSaver{Folder: folder}

	doc := &report.RenderedDocument{
		Format: report.REPORT_FORMAT_CSV,
		Pages:  1,
		Bytes:  []byte("Sales\n"),
	}
	path, res := saver.Save("daily-sales-2024-01-31.csv", doc)
	if res != nil {
		t.Fatalf("Save failed: %s", res.Error())
	}
	if path != filepath.Join(folder, "daily-sales-2024-01-31.csv") {
		t.Errorf("path = %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "Sales\n" {
		t.Errorf("saved content = %q", data)
	}
}

func TestFileSaverNilDocument(t *testing.T) {
	saver := FileSaver{Folder: t.TempDir()}
	if _, res := saver.Save("x.pdf", nil); res == nil {
		t.Error("expected error for nil document")
	}
}

package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/soderasen-au/go-common/util"
)

func readAuditFile(t *testing.T, fn string) ([][]string, *util.Result) {
	t.Helper()
	f, err := os.Open(fn)
	if err != nil {
		return nil, util.Error("Open", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, util.Error("ReadAll", err)
	}
	return records, nil
}

func TestAuditLog(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "audit.csv")

	audit, res := NewAuditLog(fn)
	if res != nil {
		t.Fatalf("NewAuditLog failed: %s", res.Error())
	}

	rec := AuditRecord{
		Timestamp:   time.Date(2024, 1, 31, 18, 0, 0, 0, time.UTC),
		User:        "alice",
		Subject:     "daily-sales",
		Format:      "pdf",
		FileName:    "daily-sales-2024-01-31.pdf",
		FileSize:    12345,
		PrintedRows: 42,
	}
	if res := audit.Record(rec); res != nil {
		t.Fatalf("Record failed: %s", res.Error())
	}
	audit.Close()

	records, res := readAuditFile(t, fn)
	if res != nil {
		t.Fatalf("read audit: %s", res.Error())
	}
	if len(records) != 2 {
		t.Fatalf("got %d lines, want header + 1 record", len(records))
	}
	if records[0][0] != "Timestamp" || records[0][6] != "PrintedRows" {
		t.Errorf("header = %v", records[0])
	}
	got := records[1]
	if got[0] != "2024-01-31T18:00:00Z" || got[1] != "alice" || got[5] != "12345" || got[6] != "42" {
		t.Errorf("record = %v", got)
	}
}

func TestAuditLogAppendsAcrossOpens(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "audit.csv")

	for i := 0; i < 2; i++ {
		audit, res := NewAuditLog(fn)
		if res != nil {
			t.Fatalf("NewAuditLog failed: %s", res.Error())
		}
		if res := audit.Record(AuditRecord{Timestamp: time.Now(), User: "alice", Subject: "daily"}); res != nil {
			t.Fatalf("Record failed: %s", res.Error())
		}
		audit.Close()
	}

	records, res := readAuditFile(t, fn)
	if res != nil {
		t.Fatalf("read audit: %s", res.Error())
	}
	// header once, then one record per open
	if len(records) != 3 {
		t.Fatalf("got %d lines, want 3", len(records))
	}
	if records[0][0] != "Timestamp" {
		t.Errorf("header = %v", records[0])
	}
}

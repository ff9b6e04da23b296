package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/soderasen-au/go-common/util"
)

// AuditRecord is one line in the export audit trail: who exported what,
// when, and how big the artifact came out.
type AuditRecord struct {
	Timestamp   time.Time
	User        string
	Subject     string
	Format      string
	FileName    string
	FileSize    int
	PrintedRows int
}

func (r AuditRecord) GetCSVLine() []string {
	return []string{
		r.Timestamp.Format(time.RFC3339),
		r.User,
		r.Subject,
		r.Format,
		r.FileName,
		fmt.Sprintf("%d", r.FileSize),
		fmt.Sprintf("%d", r.PrintedRows),
	}
}

func GetCSVHeader() string {
	return fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v\n", "Timestamp", "User", "Subject", "Format", "FileName", "FileSize", "PrintedRows")
}

type AuditLog struct {
	fileName string
	fd       *os.File
	writer   *csv.Writer
	mu       sync.Mutex
}

func (audit *AuditLog) Close() {
	if audit.fd != nil {
		audit.fd.Close()
	}
}

func (audit *AuditLog) Record(r AuditRecord) *util.Result {
	audit.mu.Lock()
	defer audit.mu.Unlock()

	if err := audit.writer.Write(r.GetCSVLine()); err != nil {
		return util.Error("WriteRecord", err)
	}
	audit.writer.Flush()
	if err := audit.writer.Error(); err != nil {
		return util.Error("FlushRecord", err)
	}
	return nil
}

func (audit *AuditLog) OpenFile(fn string) *util.Result {
	f, err := os.OpenFile(fn, os.O_RDWR|os.O_CREATE, os.ModePerm)
	if err != nil {
		return util.Error("OpenFile", err)
	}

	f.Seek(0, 0)
	scanner := bufio.NewScanner(f)
	ok := scanner.Scan()
	if err := scanner.Err(); !ok && err != nil {
		return util.Error("Scan", err)
	}
	firstLine := strings.TrimSpace(scanner.Text())
	if firstLine == "" {
		f.Seek(0, 0)
		if _, err := f.WriteString(GetCSVHeader()); err != nil {
			return util.Error("WriteHeader", err)
		}
	}
	f.Seek(0, 2) //to the end of file

	audit.fileName = fn
	audit.fd = f
	audit.writer = csv.NewWriter(audit.fd)

	return nil
}

func NewAuditLog(fn string) (*AuditLog, *util.Result) {
	auditLog := &AuditLog{}
	res := auditLog.OpenFile(fn)
	if res != nil {
		return nil, res.With("OpenFile")
	}

	return auditLog, nil
}

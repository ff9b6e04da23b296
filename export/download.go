package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/soderasen-au/go-common/util"
	"github.com/soderasen-au/go-posreport/report"
)

// Saver is the download collaborator: it persists a finished document under
// a given file name. Printers never touch it; the export service hands the
// artifact over after a successful print pass.
type Saver interface {
	Save(name string, doc *report.RenderedDocument) (string, *util.Result)
}

// FileName builds the conventional artifact name: `<subject>-<ISO-date>.<ext>`.
func FileName(subject string, date time.Time, format report.ReportFormat) string {
	return fmt.Sprintf("%s-%s.%s", subject, date.Format("2006-01-02"), format)
}

// FileSaver writes documents into a local folder and returns the full path.
type FileSaver struct {
	Folder string
}

func (s FileSaver) Save(name string, doc *report.RenderedDocument) (string, *util.Result) {
	if doc == nil {
		return "", util.MsgError("Save", "nil document")
	}

	path := filepath.Join(s.Folder, name)
	if err := os.WriteFile(path, doc.Bytes, 0644); err != nil {
		return "", util.Error("WriteFile", err)
	}
	return path, nil
}

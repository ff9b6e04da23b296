package report

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/loggers"
	"github.com/soderasen-au/go-common/util"
)

type ReportFormat string

const (
	REPORT_FORMAT_PDF  ReportFormat = "pdf"
	REPORT_FORMAT_CSV  ReportFormat = "csv"
	REPORT_FORMAT_TSV  ReportFormat = "tsv"
	REPORT_FORMAT_XLSX ReportFormat = "xlsx"

	TOTAL_ROW_LABEL       string = "Total:"
	GRAND_TOTAL_ROW_LABEL string = "Grand Total:"
)

func (f ReportFormat) IsPdf() bool {
	return f == REPORT_FORMAT_PDF
}

func (f ReportFormat) IsCsv() bool {
	return f == REPORT_FORMAT_CSV || f == REPORT_FORMAT_TSV
}

func (f ReportFormat) IsTsv() bool {
	return f == REPORT_FORMAT_TSV
}

func (f ReportFormat) IsExcel() bool {
	return f == REPORT_FORMAT_XLSX
}

func (f ReportFormat) IsValid() bool {
	return f.IsPdf() || f.IsCsv() || f.IsExcel()
}

func (f *ReportFormat) MaybeDefault() {
	if !f.IsValid() {
		*f = REPORT_FORMAT_PDF
	}
}

// ColumnSpec describes one report column. Order in the slice defines
// left-to-right rendering order.
type ColumnSpec struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// Row maps column key => pre-formatted display value (string or number).
// Rendering order comes from the owning section's ColumnSpec list, so the
// underlying map needs no order of its own. Rows are not mutated after the
// normalizer has produced them.
type Row map[string]interface{}

// Text returns the display string for a column key; missing or nil values
// render as empty string.
func (r Row) Text(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Num coerces a cell to a number; non-numeric and missing values count as 0.
func (r Row) Num(key string) float64 {
	v, ok := r[key]
	if !ok || v == nil {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		if n, err := strconv.ParseFloat(t, 64); err == nil {
			return n
		}
		return 0
	default:
		return 0
	}
}

// Section is one homogeneous table inside the document: its own columns,
// rows and optional subtotal column. Sections are independent and rendered
// sequentially in request order.
type Section struct {
	Name            string       `json:"name" yaml:"name"`
	Columns         []ColumnSpec `json:"columns" yaml:"columns"`
	Rows            []Row        `json:"rows,omitempty" yaml:"rows,omitempty"`
	TotalsColumnKey *string      `json:"totals_column_key,omitempty" yaml:"totals_column_key,omitempty"`
}

func (s Section) HasColumn(key string) bool {
	for _, c := range s.Columns {
		if c.Key == key {
			return true
		}
	}
	return false
}

// Report is the request descriptor for one export action. Sections' rows
// must be fully resolved (fetched, date-filtered, joined) before Print();
// printers never touch the data store.
type Report struct {
	ID   *string `json:"id,omitempty" yaml:"id,omitempty"`
	Name *string `json:"name,omitempty" yaml:"name,omitempty"`

	Title          string    `json:"title,omitempty" yaml:"title,omitempty"`
	DateRangeLabel string    `json:"date_range_label,omitempty" yaml:"date_range_label,omitempty"`
	Sections       []Section `json:"sections" yaml:"sections"`

	OutputFormat *ReportFormat `json:"output_format,omitempty" yaml:"output_format,omitempty"`
	Layout       *LayoutConfig `json:"layout,omitempty" yaml:"layout,omitempty"`

	Logger *zerolog.Logger `json:"-" yaml:"-"`
}

func (r Report) IsValid() bool {
	if r.ID == nil || r.OutputFormat == nil || r.Layout == nil {
		return false
	}
	return r.OutputFormat.IsValid()
}

func (r *Report) Validate() *util.Result {
	if r.ID == nil {
		r.ID = util.Ptr(uuid.NewString())
	}

	if r.OutputFormat == nil {
		r.OutputFormat = new(ReportFormat)
	}
	r.OutputFormat.MaybeDefault()

	if r.Layout == nil {
		r.Layout = util.Ptr(DefaultLayoutConfig())
	}
	r.Layout.MaybeDefault()

	for si, sec := range r.Sections {
		if sec.Name == "" {
			return util.MsgError("ValidateReport", fmt.Sprintf("section[%d] has no name", si))
		}
		if sec.TotalsColumnKey != nil && !sec.HasColumn(*sec.TotalsColumnKey) {
			return util.MsgError("ValidateReport", fmt.Sprintf("section[%d] %s: totals column `%s` is not declared", si, sec.Name, *sec.TotalsColumnKey))
		}
	}

	return nil
}

// RenderedDocument is the finished artifact of one print pass. It is handed
// back to the caller as-is; persisting it (file save, http download) is the
// caller's business, printers do no I/O.
type RenderedDocument struct {
	Format ReportFormat `json:"format" yaml:"format"`
	Pages  int          `json:"pages" yaml:"pages"`
	Bytes  []byte       `json:"-" yaml:"-"`
}

// SectionResult reports what actually got rendered for one section, so
// callers can detect column/row capping instead of guessing.
type SectionResult struct {
	Name             string   `json:"name" yaml:"name"`
	PrintedRows      int      `json:"printed_rows" yaml:"printed_rows"`
	OmittedRows      int      `json:"omitted_rows,omitempty" yaml:"omitted_rows,omitempty"`
	TruncatedColumns bool     `json:"truncated_columns,omitempty" yaml:"truncated_columns,omitempty"`
	Total            *float64 `json:"total,omitempty" yaml:"total,omitempty"`
}

type ReportResult struct {
	ID          string            `json:"id,omitempty" yaml:"id,omitempty"`
	Result      *util.Result      `json:"result,omitempty" yaml:"result,omitempty"`
	Document    *RenderedDocument `json:"document,omitempty" yaml:"document,omitempty"`
	Sections    []SectionResult   `json:"sections,omitempty" yaml:"sections,omitempty"`
	PrintedRows int               `json:"printed_rows,omitempty" yaml:"printed_rows,omitempty"`
	Logger      *zerolog.Logger   `json:"-" yaml:"-"`
}

func NewReportResult(r Report) (*ReportResult, *util.Result) {
	if !r.IsValid() {
		return nil, util.MsgError("Check", "invalid report")
	}

	rr := ReportResult{ID: util.MaybeNil(r.ID)}
	if r.Logger != nil {
		rr.Logger = r.Logger
	} else {
		rr.Logger = loggers.NullLogger
	}

	return &rr, nil
}

// ReportPrinterBase keeps the per-report results of a printer. Printers are
// shared across concurrent exports, so the map is mutex-guarded; everything
// else a render pass needs lives in pass-local state, never on the printer.
type ReportPrinterBase struct {
	mu            sync.RWMutex
	ReportResults map[string]*ReportResult //report-id -> report-results
}

func (b *ReportPrinterBase) saveReportResult(id string, rr *ReportResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ReportResults[id] = rr
}

func (b *ReportPrinterBase) GetReportResult(id string) (*ReportResult, *util.Result) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result, ok := b.ReportResults[id]
	if !ok {
		return nil, util.MsgError("ReportFiles", "report id doesn't exist")
	}
	return result, nil
}

type IReportPrinter interface {
	Print(r Report) *util.Result
	GetReportResult(id string) (*ReportResult, *util.Result)
}

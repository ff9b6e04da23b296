package report

import (
	"bytes"
	"encoding/csv"

	"github.com/soderasen-au/go-common/util"
)

// CsvReportPrinter writes the plain field-join rendition of a report: no
// grid, no paging, but the same column cap, row cap and totals as the PDF so
// the renditions agree on content.
type CsvReportPrinter struct {
	ReportPrinterBase
}

func NewCsvReportPrinter() *CsvReportPrinter {
	p := &CsvReportPrinter{}
	p.ReportResults = make(map[string]*ReportResult)
	return p
}

// csvPass is the state of a single render pass, owned by one Print call.
type csvPass struct {
	writer *csv.Writer
	cfg    LayoutConfig
}

func (p *csvPass) writeRecord(record []string) *util.Result {
	if err := p.writer.Write(record); err != nil {
		return util.Error("WriteRecord", err)
	}
	return nil
}

func (p *csvPass) printSection(sec Section) (SectionResult, *util.Result) {
	secResult := SectionResult{Name: sec.Name}

	if res := p.writeRecord([]string{sec.Name}); res != nil {
		return secResult, res.With("SectionName")
	}

	plan := PlanColumns(p.cfg, sec.Columns)
	secResult.TruncatedColumns = plan.Truncated
	if len(plan.Columns) == 0 || len(sec.Rows) == 0 {
		return secResult, nil
	}

	header := make([]string, len(plan.Columns))
	for i, col := range plan.Columns {
		header[i] = col.Label
	}
	if res := p.writeRecord(header); res != nil {
		return secResult, res.With("Header")
	}

	rows, omitted := p.cfg.CapRows(sec.Rows)
	secResult.OmittedRows = omitted

	record := make([]string, len(plan.Columns))
	for _, row := range rows {
		for ci, col := range plan.Columns {
			record[ci] = row.Text(col.Key)
		}
		if res := p.writeRecord(record); res != nil {
			return secResult, res.With("Row")
		}
		secResult.PrintedRows++
	}

	if totalRow, ok := TotalRow(sec); ok {
		for ci, col := range plan.Columns {
			record[ci] = totalRow.Text(col.Key)
		}
		if res := p.writeRecord(record); res != nil {
			return secResult, res.With("TotalRow")
		}
		total, _ := SectionTotal(sec)
		secResult.Total = util.Ptr(total)
	}

	return secResult, nil
}

func (p *CsvReportPrinter) Print(r Report) *util.Result {
	if res := r.Validate(); res != nil {
		return res.With("Validate")
	}
	if !r.OutputFormat.IsCsv() {
		return util.MsgError("OutputFormat", "CsvReportPrinter only supports csv/tsv format")
	}

	rResult, res := NewReportResult(r)
	if res != nil {
		return res.With("NewReportResult")
	}
	p.saveReportResult(util.MaybeNil(r.ID), rResult)
	logger := rResult.Logger.With().Str("report", *r.ID).Logger()

	var buf bytes.Buffer
	pass := &csvPass{
		writer: csv.NewWriter(&buf),
		cfg:    *r.Layout,
	}
	if r.OutputFormat.IsTsv() {
		pass.writer.Comma = '\t'
	}

	if r.Title != "" {
		if res := pass.writeRecord([]string{r.Title}); res != nil {
			return res.With("Title")
		}
	}
	if r.DateRangeLabel != "" {
		if res := pass.writeRecord([]string{r.DateRangeLabel}); res != nil {
			return res.With("DateRangeLabel")
		}
	}

	for _, sec := range r.Sections {
		if res := pass.writeRecord([]string{""}); res != nil { // blank separator line
			return res.With("SectionGap")
		}
		secResult, res := pass.printSection(sec)
		if res != nil {
			logger.Err(res).Msg("printSection failed")
			return res.With("printSection")
		}
		rResult.Sections = append(rResult.Sections, secResult)
		rResult.PrintedRows += secResult.PrintedRows
	}

	if total, ok := GrandTotal(r.Sections); ok {
		if res := pass.writeRecord([]string{GRAND_TOTAL_ROW_LABEL, FormatMoney(total)}); res != nil {
			return res.With("GrandTotal")
		}
	}

	pass.writer.Flush()
	if err := pass.writer.Error(); err != nil {
		return util.Error("RenderPrimitive", err)
	}

	rResult.Document = &RenderedDocument{
		Format: *r.OutputFormat,
		Pages:  1,
		Bytes:  buf.Bytes(),
	}
	logger.Info().Msgf("rendered %d rows", rResult.PrintedRows)

	return nil
}

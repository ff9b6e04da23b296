package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/util"
)

// PdfReportPrinter renders a Report into a paginated PDF: document title and
// date-range banner on page one, then per section a label and a fixed-grid
// table with the column header redrawn after every page break, alternating
// row shading, a subtotal row per section and a grand total line at the end.
type PdfReportPrinter struct {
	ReportPrinterBase
}

func NewPdfReportPrinter() *PdfReportPrinter {
	p := &PdfReportPrinter{}
	p.ReportResults = make(map[string]*ReportResult)
	return p
}

// pdfPass is the state of a single render pass. Print builds a fresh one per
// call; concurrent exports through one printer never share a cursor, a
// document handle or a config.
type pdfPass struct {
	pdf    *gofpdf.Fpdf
	cfg    LayoutConfig
	cursor *PageCursor
}

// breakPage closes the current page and opens a fresh one. The column header
// becomes pending again so every page's table is self-describing.
func (p *pdfPass) breakPage() {
	p.cursor.MarkFull()
	p.pdf.AddPage()
	p.cursor.StartPage()
}

// ensureRoom breaks the page when a block of height h would cross the bottom
// margin. Blocks are never split: what doesn't fit moves whole to the next page.
func (p *pdfPass) ensureRoom(h float64) (pageBroken bool) {
	if p.cursor.Fits(h) {
		return false
	}
	p.breakPage()
	return true
}

// truncateToWidth cuts text (no wrapping) so it fits the cell's interior
// width, appending "..." when something was cut.
func (p *pdfPass) truncateToWidth(text string, colWidth float64) string {
	availableWidth := colWidth - 2.0*p.cfg.CellInset
	if p.pdf.GetStringWidth(text) <= availableWidth {
		return text
	}

	suffix := "..."
	suffixWidth := p.pdf.GetStringWidth(suffix)
	for len(text) > 0 {
		if p.pdf.GetStringWidth(text)+suffixWidth <= availableWidth {
			return text + suffix
		}
		runes := []rune(text)
		text = string(runes[:len(runes)-1])
	}
	return ""
}

func (p *pdfPass) resetCellStyle() {
	p.pdf.SetFillColor(255, 255, 255)
	p.pdf.SetTextColor(0, 0, 0)
	p.pdf.SetFont("Arial", "", p.cfg.FontSize)
}

// printTitle draws the centered document title and the date range banner.
// Page one only; section tables never redraw it.
func (p *pdfPass) printTitle(r Report) {
	if r.Title != "" {
		p.pdf.SetFont("Arial", "B", p.cfg.TitleFontSize)
		p.pdf.SetXY(p.cfg.MarginLeft, p.cursor.Y)
		p.pdf.CellFormat(p.cfg.ContentWidth(), p.cfg.RowHeight*1.5, r.Title, "", 0, "C", false, 0, "")
		p.pdf.Ln(-1)
		p.cursor.Place(p.cfg.RowHeight * 1.5)
	}

	if r.DateRangeLabel != "" {
		p.pdf.SetFont("Arial", "", p.cfg.FontSize)
		p.pdf.SetXY(p.cfg.MarginLeft, p.cursor.Y)
		p.pdf.CellFormat(p.cfg.ContentWidth(), p.cfg.RowHeight, r.DateRangeLabel, "", 0, "C", false, 0, "")
		p.pdf.Ln(-1)
		p.cursor.Place(p.cfg.RowHeight)
	}

	if r.Title != "" || r.DateRangeLabel != "" {
		p.cursor.Place(p.cfg.RowHeight / 2)
	}
}

func (p *pdfPass) printSectionLabel(name string) {
	p.ensureRoom(p.cfg.RowHeight * 2) // label plus at least the header row
	p.pdf.SetFont("Arial", "B", p.cfg.HeaderFontSize+1)
	p.pdf.SetTextColor(0, 0, 0)
	p.pdf.SetXY(p.cfg.MarginLeft, p.cursor.Y)
	p.pdf.Cell(p.cfg.ContentWidth(), p.cfg.RowHeight, name)
	p.pdf.Ln(-1)
	p.cursor.Place(p.cfg.RowHeight)
}

// printSectionHeader draws the column header row at the current cursor.
func (p *pdfPass) printSectionHeader(plan ColumnLayout) {
	p.pdf.SetFont("Arial", "B", p.cfg.HeaderFontSize)
	fr, fg, fb := p.cfg.HeaderFill.RGB()
	p.pdf.SetFillColor(fr, fg, fb)
	tr, tg, tb := p.cfg.HeaderFill.ContrastFont().RGB()
	p.pdf.SetTextColor(tr, tg, tb)

	p.pdf.SetXY(p.cfg.MarginLeft, p.cursor.Y)
	for _, col := range plan.Columns {
		text := p.truncateToWidth(col.Label, plan.ColWidth)
		p.pdf.CellFormat(plan.ColWidth, p.cfg.RowHeight, text, "1", 0, "C", true, 0, "")
	}
	p.pdf.Ln(-1)
	p.cursor.Place(p.cfg.RowHeight)
}

// printRow draws one data row as bordered cells of the planned uniform
// width: left-aligned, vertically centered, truncated text, background tint
// keyed on row index parity (even tinted, odd plain). The synthetic total
// row is bold and never tinted.
func (p *pdfPass) printRow(row Row, rowIx int, plan ColumnLayout, isTotal bool) {
	p.resetCellStyle()

	fill := false
	if isTotal {
		p.pdf.SetFont("Arial", "B", p.cfg.FontSize)
	} else if rowIx%2 == 0 {
		fr, fg, fb := p.cfg.AltRowFill.RGB()
		p.pdf.SetFillColor(fr, fg, fb)
		fill = true
	}

	p.pdf.SetXY(p.cfg.MarginLeft, p.cursor.Y)
	for _, col := range plan.Columns {
		text := p.truncateToWidth(row.Text(col.Key), plan.ColWidth)
		p.pdf.CellFormat(plan.ColWidth, p.cfg.RowHeight, text, "1", 0, "L", fill, 0, "")
	}
	p.pdf.Ln(-1)
	p.cursor.Place(p.cfg.RowHeight)
}

// printSection composes one section: label, header, capped data rows with
// page-break handling, subtotal row. A section with no columns renders its
// label only.
func (p *pdfPass) printSection(sec Section, logger *zerolog.Logger) (SectionResult, *util.Result) {
	secResult := SectionResult{Name: sec.Name}

	p.printSectionLabel(sec.Name)

	plan := PlanColumns(p.cfg, sec.Columns)
	secResult.TruncatedColumns = plan.Truncated
	if len(plan.Columns) == 0 {
		logger.Debug().Msg("section has no columns, title only")
		return secResult, nil
	}
	if plan.Truncated {
		logger.Warn().Msgf("%d columns declared, rendering first %d", len(sec.Columns), len(plan.Columns))
	}

	if len(sec.Rows) == 0 {
		// empty section: title only, no table, no total, not an error
		logger.Debug().Msg("section has no rows, title only")
		p.cursor.Place(p.cfg.SectionGap)
		return secResult, nil
	}

	rows, omitted := p.cfg.CapRows(sec.Rows)
	secResult.OmittedRows = omitted
	if omitted > 0 {
		logger.Warn().Msgf("section row cap hit, %d rows omitted", omitted)
	}

	p.printSectionHeader(plan)

	for ri, row := range rows {
		if p.ensureRoom(p.cfg.RowHeight) {
			p.printSectionHeader(plan)
		}
		p.printRow(row, ri, plan, false)
		secResult.PrintedRows++
	}

	// subtotal computed over the section's full input, not the capped slice
	if totalRow, ok := TotalRow(sec); ok {
		if p.ensureRoom(p.cfg.RowHeight) {
			p.printSectionHeader(plan)
		}
		p.printRow(totalRow, len(rows), plan, true)
		total, _ := SectionTotal(sec)
		secResult.Total = util.Ptr(total)
	}

	p.cursor.Place(p.cfg.SectionGap)
	return secResult, nil
}

// printGrandTotal draws one closing line summing every section subtotal.
func (p *pdfPass) printGrandTotal(r Report) {
	total, ok := GrandTotal(r.Sections)
	if !ok {
		return
	}

	p.ensureRoom(p.cfg.RowHeight)
	p.pdf.SetFont("Arial", "B", p.cfg.HeaderFontSize)
	p.pdf.SetTextColor(0, 0, 0)
	p.pdf.SetXY(p.cfg.MarginLeft, p.cursor.Y)
	p.pdf.Cell(p.cfg.ContentWidth(), p.cfg.RowHeight, fmt.Sprintf("%s %s", GRAND_TOTAL_ROW_LABEL, FormatMoney(total)))
	p.pdf.Ln(-1)
	p.cursor.Place(p.cfg.RowHeight)
}

// Print runs one synchronous layout pass over the whole request and stores
// the finished document in the report's result. Nothing is retried and no
// partial artifact survives a failure.
func (p *PdfReportPrinter) Print(r Report) *util.Result {
	if res := r.Validate(); res != nil {
		return res.With("Validate")
	}
	if !r.OutputFormat.IsPdf() {
		return util.MsgError("OutputFormat", "PdfReportPrinter only supports pdf format")
	}

	rResult, res := NewReportResult(r)
	if res != nil {
		return res.With("NewReportResult")
	}
	p.saveReportResult(util.MaybeNil(r.ID), rResult)
	logger := rResult.Logger.With().Str("report", *r.ID).Logger()

	pass := &pdfPass{cfg: *r.Layout}
	pass.pdf = gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: pass.cfg.PageWidth, Ht: pass.cfg.PageHeight},
	})
	pass.pdf.SetMargins(pass.cfg.MarginLeft, pass.cfg.MarginTop, pass.cfg.MarginRight)
	pass.pdf.SetAutoPageBreak(false, pass.cfg.MarginBottom) // breaks are the cursor's business
	pass.pdf.SetFont("Arial", "", pass.cfg.FontSize)

	pass.cursor = NewPageCursor(pass.cfg)
	pass.pdf.AddPage()
	pass.cursor.StartPage()

	pass.printTitle(r)

	for si, sec := range r.Sections {
		secLogger := logger.With().Int("section", si).Str("name", sec.Name).Logger()
		secResult, res := pass.printSection(sec, &secLogger)
		if res != nil {
			secLogger.Err(res).Msg("printSection failed")
			return res.With("printSection")
		}
		rResult.Sections = append(rResult.Sections, secResult)
		rResult.PrintedRows += secResult.PrintedRows
	}

	pass.printGrandTotal(r)
	pass.cursor.Finish()

	if pass.pdf.Err() {
		return util.Error("RenderPrimitive", pass.pdf.Error())
	}

	var buf bytes.Buffer
	if err := pass.pdf.Output(&buf); err != nil {
		return util.Error("RenderPrimitive", err)
	}

	rResult.Document = &RenderedDocument{
		Format: REPORT_FORMAT_PDF,
		Pages:  pass.cursor.PageIndex + 1,
		Bytes:  buf.Bytes(),
	}
	logger.Info().Msgf("rendered %d pages, %d rows", rResult.Document.Pages, rResult.PrintedRows)

	return nil
}

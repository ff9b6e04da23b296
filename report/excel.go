package report

import (
	"fmt"
	"strings"

	"github.com/soderasen-au/go-common/util"
	"github.com/xuri/excelize/v2"
)

const EXCEL_SHEET_NAME_LIMIT = 31

// ExcelReportPrinter renders the composed document as a workbook: one sheet
// per section plus a summary sheet, honoring the same column/row caps and
// totals as the PDF rendition.
type ExcelReportPrinter struct {
	ReportPrinterBase
}

func NewExcelReportPrinter() *ExcelReportPrinter {
	p := &ExcelReportPrinter{}
	p.ReportResults = make(map[string]*ReportResult)
	return p
}

// SheetNameFor sanitizes a section name into a legal, unique sheet name.
func SheetNameFor(name string, taken map[string]bool) string {
	for _, c := range []string{"/", "\\", "?", "*", "[", "]", ":"} {
		name = strings.ReplaceAll(name, c, "_")
	}
	if name == "" {
		name = "Section"
	}
	if len(name) > EXCEL_SHEET_NAME_LIMIT {
		name = name[:EXCEL_SHEET_NAME_LIMIT]
	}
	base := name
	for i := 2; taken[name]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		if len(base)+len(suffix) > EXCEL_SHEET_NAME_LIMIT {
			name = base[:EXCEL_SHEET_NAME_LIMIT-len(suffix)] + suffix
		} else {
			name = base + suffix
		}
	}
	taken[name] = true
	return name
}

// xlsxPass is the state of a single render pass: the workbook under
// construction belongs to one Print call only.
type xlsxPass struct {
	excel *excelize.File
	cfg   LayoutConfig
}

func (p *xlsxPass) setCell(sheet string, col, row int, value interface{}) *util.Result {
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return util.Error("CoordinatesToCellName", err)
	}
	if err := p.excel.SetCellValue(sheet, cellName, value); err != nil {
		return util.Error("SetCellValue", err)
	}
	return nil
}

func (p *xlsxPass) styleRange(sheet string, fromCol, fromRow, toCol, toRow int, style *excelize.Style) *util.Result {
	styleId, err := p.excel.NewStyle(style)
	if err != nil {
		return util.Error("NewStyle", err)
	}
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		return util.Error("CoordinatesToCellName", err)
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		return util.Error("CoordinatesToCellName", err)
	}
	if err := p.excel.SetCellStyle(sheet, from, to, styleId); err != nil {
		return util.Error("SetCellStyle", err)
	}
	return nil
}

func (p *xlsxPass) printSection(sec Section, sheet string) (SectionResult, *util.Result) {
	secResult := SectionResult{Name: sec.Name}

	if res := p.setCell(sheet, 1, 1, sec.Name); res != nil {
		return secResult, res.With("SectionName")
	}
	boldStyle := &excelize.Style{Font: &excelize.Font{Bold: true}}
	if res := p.styleRange(sheet, 1, 1, 1, 1, boldStyle); res != nil {
		return secResult, res.With("SectionNameStyle")
	}

	plan := PlanColumns(p.cfg, sec.Columns)
	secResult.TruncatedColumns = plan.Truncated
	if len(plan.Columns) == 0 || len(sec.Rows) == 0 {
		return secResult, nil
	}

	headerRow := 3
	headerStyle := &excelize.Style{}
	p.cfg.HeaderFill.AssignBgStyle(headerStyle)
	headerStyle.Font.Bold = true
	for ci, col := range plan.Columns {
		if res := p.setCell(sheet, ci+1, headerRow, col.Label); res != nil {
			return secResult, res.With("Header")
		}
	}
	if res := p.styleRange(sheet, 1, headerRow, len(plan.Columns), headerRow, headerStyle); res != nil {
		return secResult, res.With("HeaderStyle")
	}

	rows, omitted := p.cfg.CapRows(sec.Rows)
	secResult.OmittedRows = omitted

	altStyle := &excelize.Style{}
	p.cfg.AltRowFill.AssignBgStyle(altStyle)

	for ri, row := range rows {
		sheetRow := headerRow + 1 + ri
		for ci, col := range plan.Columns {
			if res := p.setCell(sheet, ci+1, sheetRow, row[col.Key]); res != nil {
				return secResult, res.With("Row")
			}
		}
		if ri%2 == 0 {
			if res := p.styleRange(sheet, 1, sheetRow, len(plan.Columns), sheetRow, altStyle); res != nil {
				return secResult, res.With("RowStyle")
			}
		}
		secResult.PrintedRows++
	}

	if totalRow, ok := TotalRow(sec); ok {
		sheetRow := headerRow + 1 + len(rows)
		for ci, col := range plan.Columns {
			if res := p.setCell(sheet, ci+1, sheetRow, totalRow[col.Key]); res != nil {
				return secResult, res.With("TotalRow")
			}
		}
		if res := p.styleRange(sheet, 1, sheetRow, len(plan.Columns), sheetRow, boldStyle); res != nil {
			return secResult, res.With("TotalRowStyle")
		}
		total, _ := SectionTotal(sec)
		secResult.Total = util.Ptr(total)
	}

	// excelize widths are in characters, layout widths in mm; 0.5 is close
	// enough for a uniform grid
	lastCol, err := excelize.ColumnNumberToName(len(plan.Columns))
	if err != nil {
		return secResult, util.Error("ColumnNumberToName", err)
	}
	if err := p.excel.SetColWidth(sheet, "A", lastCol, plan.ColWidth*0.5); err != nil {
		return secResult, util.Error("SetColWidth", err)
	}

	return secResult, nil
}

func (p *xlsxPass) printSummary(r Report, rResult *ReportResult, sheet string) *util.Result {
	row := 1
	if r.Title != "" {
		if res := p.setCell(sheet, 1, row, r.Title); res != nil {
			return res.With("Title")
		}
		if res := p.styleRange(sheet, 1, row, 1, row, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); res != nil {
			return res.With("TitleStyle")
		}
		row++
	}
	if r.DateRangeLabel != "" {
		if res := p.setCell(sheet, 1, row, r.DateRangeLabel); res != nil {
			return res.With("DateRangeLabel")
		}
		row++
	}

	row++
	for _, secResult := range rResult.Sections {
		if res := p.setCell(sheet, 1, row, secResult.Name); res != nil {
			return res.With("SectionName")
		}
		if secResult.Total != nil {
			if res := p.setCell(sheet, 2, row, *secResult.Total); res != nil {
				return res.With("SectionTotal")
			}
		}
		row++
	}

	if total, ok := GrandTotal(r.Sections); ok {
		if res := p.setCell(sheet, 1, row, GRAND_TOTAL_ROW_LABEL); res != nil {
			return res.With("GrandTotalLabel")
		}
		if res := p.setCell(sheet, 2, row, total); res != nil {
			return res.With("GrandTotal")
		}
		if res := p.styleRange(sheet, 1, row, 2, row, &excelize.Style{Font: &excelize.Font{Bold: true}}); res != nil {
			return res.With("GrandTotalStyle")
		}
	}

	return nil
}

func (p *ExcelReportPrinter) Print(r Report) *util.Result {
	if res := r.Validate(); res != nil {
		return res.With("Validate")
	}
	if !r.OutputFormat.IsExcel() {
		return util.MsgError("OutputFormat", "ExcelReportPrinter only supports xlsx format")
	}

	rResult, res := NewReportResult(r)
	if res != nil {
		return res.With("NewReportResult")
	}
	p.saveReportResult(util.MaybeNil(r.ID), rResult)
	logger := rResult.Logger.With().Str("report", *r.ID).Logger()

	pass := &xlsxPass{
		excel: excelize.NewFile(),
		cfg:   *r.Layout,
	}
	defer pass.excel.Close()

	summarySheet := "Summary"
	if err := pass.excel.SetSheetName("Sheet1", summarySheet); err != nil {
		return util.Error("SetSheetName", err)
	}

	taken := map[string]bool{summarySheet: true}
	for si, sec := range r.Sections {
		sheet := SheetNameFor(sec.Name, taken)
		if _, err := pass.excel.NewSheet(sheet); err != nil {
			return util.Error("NewSheet", err)
		}

		secLogger := logger.With().Int("section", si).Str("sheet", sheet).Logger()
		secResult, res := pass.printSection(sec, sheet)
		if res != nil {
			secLogger.Err(res).Msg("printSection failed")
			return res.With("printSection")
		}
		rResult.Sections = append(rResult.Sections, secResult)
		rResult.PrintedRows += secResult.PrintedRows
	}

	if res := pass.printSummary(r, rResult, summarySheet); res != nil {
		return res.With("printSummary")
	}

	buf, err := pass.excel.WriteToBuffer()
	if err != nil {
		return util.Error("RenderPrimitive", err)
	}

	rResult.Document = &RenderedDocument{
		Format: REPORT_FORMAT_XLSX,
		Pages:  len(r.Sections) + 1,
		Bytes:  buf.Bytes(),
	}
	logger.Info().Msgf("rendered %d sheets, %d rows", len(r.Sections)+1, rResult.PrintedRows)

	return nil
}

package report

const (
	PAGE_WIDTH_A4  = 210.0 // A4 portrait width in mm
	PAGE_HEIGHT_A4 = 297.0 // A4 portrait height in mm

	DEFAULT_MAX_COLUMNS  = 5
	DEFAULT_MAX_SEC_ROWS = 100
)

// LayoutConfig carries every fixed-grid knob the printers need. It is passed
// explicitly into each print pass; there is no module-level formatting state.
type LayoutConfig struct {
	PageWidth    float64 `json:"page_width" yaml:"page_width"`   // mm
	PageHeight   float64 `json:"page_height" yaml:"page_height"` // mm
	MarginLeft   float64 `json:"margin_left" yaml:"margin_left"`
	MarginTop    float64 `json:"margin_top" yaml:"margin_top"`
	MarginRight  float64 `json:"margin_right" yaml:"margin_right"`
	MarginBottom float64 `json:"margin_bottom" yaml:"margin_bottom"`

	FontSize       float64 `json:"font_size" yaml:"font_size"` // pt
	HeaderFontSize float64 `json:"header_font_size" yaml:"header_font_size"`
	TitleFontSize  float64 `json:"title_font_size" yaml:"title_font_size"`
	RowHeight      float64 `json:"row_height" yaml:"row_height"` // mm, fixed per pass
	CellInset      float64 `json:"cell_inset" yaml:"cell_inset"` // mm, interior text inset
	SectionGap     float64 `json:"section_gap" yaml:"section_gap"`

	// MaxColumns columns are rendered per section; anything beyond is
	// silently not drawn, with SectionResult.TruncatedColumns set.
	MaxColumns int `json:"max_columns" yaml:"max_columns"`
	// MaxRowsPerSection bounds worst-case render time and page count.
	// SectionResult.OmittedRows reports how many rows fell off.
	MaxRowsPerSection int `json:"max_rows_per_section" yaml:"max_rows_per_section"`

	HeaderFill ARGBColor `json:"header_fill" yaml:"header_fill"`
	AltRowFill ARGBColor `json:"alt_row_fill" yaml:"alt_row_fill"`
}

func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		PageWidth:         PAGE_WIDTH_A4,
		PageHeight:        PAGE_HEIGHT_A4,
		MarginLeft:        10.0,
		MarginTop:         10.0,
		MarginRight:       10.0,
		MarginBottom:      10.0,
		FontSize:          9.0,
		HeaderFontSize:    10.0,
		TitleFontSize:     14.0,
		RowHeight:         6.0,
		CellInset:         1.0,
		SectionGap:        6.0,
		MaxColumns:        DEFAULT_MAX_COLUMNS,
		MaxRowsPerSection: DEFAULT_MAX_SEC_ROWS,
		HeaderFill:        ARGBColor{R: 240, G: 240, B: 240},
		AltRowFill:        ARGBColor{R: 247, G: 247, B: 247},
	}
}

func (c *LayoutConfig) MaybeDefault() {
	def := DefaultLayoutConfig()
	if c.PageWidth <= 0 {
		c.PageWidth = def.PageWidth
	}
	if c.PageHeight <= 0 {
		c.PageHeight = def.PageHeight
	}
	if c.MarginLeft <= 0 {
		c.MarginLeft = def.MarginLeft
	}
	if c.MarginTop <= 0 {
		c.MarginTop = def.MarginTop
	}
	if c.MarginRight <= 0 {
		c.MarginRight = def.MarginRight
	}
	if c.MarginBottom <= 0 {
		c.MarginBottom = def.MarginBottom
	}
	if c.FontSize <= 0 {
		c.FontSize = def.FontSize
	}
	if c.HeaderFontSize <= 0 {
		c.HeaderFontSize = def.HeaderFontSize
	}
	if c.TitleFontSize <= 0 {
		c.TitleFontSize = def.TitleFontSize
	}
	if c.RowHeight <= 0 {
		c.RowHeight = def.RowHeight
	}
	if c.CellInset <= 0 {
		c.CellInset = def.CellInset
	}
	if c.SectionGap <= 0 {
		c.SectionGap = def.SectionGap
	}
	if c.MaxColumns <= 0 {
		c.MaxColumns = def.MaxColumns
	}
	if c.MaxRowsPerSection <= 0 {
		c.MaxRowsPerSection = def.MaxRowsPerSection
	}
	if c.HeaderFill.IsZero() {
		c.HeaderFill = def.HeaderFill
	}
	if c.AltRowFill.IsZero() {
		c.AltRowFill = def.AltRowFill
	}
}

// ContentWidth is the horizontal span available to a table.
func (c LayoutConfig) ContentWidth() float64 {
	return c.PageWidth - c.MarginLeft - c.MarginRight
}

// BodyBottom is the y position past which no row may be drawn.
func (c LayoutConfig) BodyBottom() float64 {
	return c.PageHeight - c.MarginBottom
}

// ColumnLayout is the planned fixed grid for one section: the columns that
// actually render (at most cfg.MaxColumns of them) sharing one uniform width.
type ColumnLayout struct {
	Columns   []ColumnSpec
	ColWidth  float64
	Truncated bool
}

// PlanColumns computes the fixed per-column width for a section. Every
// rendered column gets the same share of the content width; columns past the
// cap are planned into Truncated but never drawn.
func PlanColumns(cfg LayoutConfig, columns []ColumnSpec) ColumnLayout {
	var plan ColumnLayout
	if len(columns) == 0 {
		return plan
	}

	n := len(columns)
	if n > cfg.MaxColumns {
		n = cfg.MaxColumns
		plan.Truncated = true
	}
	plan.Columns = columns[:n]
	plan.ColWidth = cfg.ContentWidth() / float64(n)
	return plan
}

// CapRows applies the per-section row cap; omitted is how many input rows
// will never reach any page.
func (c LayoutConfig) CapRows(rows []Row) (capped []Row, omitted int) {
	if len(rows) <= c.MaxRowsPerSection {
		return rows, 0
	}
	return rows[:c.MaxRowsPerSection], len(rows) - c.MaxRowsPerSection
}

package pos

import (
	"github.com/soderasen-au/go-common/util"
	"github.com/soderasen-au/go-posreport/report"
)

// Section names as they appear in the printed document.
const (
	SECTION_SALES          = "Sales"
	SECTION_DAMAGES        = "Damages"
	SECTION_RETURNS        = "Returns"
	SECTION_BOTTLES        = "Bottles"
	SECTION_OTHER_INCOME   = "Other Income"
	SECTION_OTHER_EXPENSES = "Other Expenses"
)

// Sales declares six columns; the renderer caps at five, so unit price goes
// last and falls off the printed grid (SectionResult.TruncatedColumns
// reports it).
var SalesFieldMap = report.FieldMap{
	{Column: "date", Field: "date"},
	{Column: "product_name", Field: "product_name", Placeholder: PLACEHOLDER_PRODUCT},
	{Column: "category_name", Field: "category_name", Placeholder: PLACEHOLDER_NA},
	{Column: "quantity", Field: "quantity", Placeholder: 0},
	{Column: "total_price", Field: "total_price", Placeholder: 0},
	{Column: "unit_price", Field: "unit_price", Placeholder: ""},
}

var SalesColumns = []report.ColumnSpec{
	{Key: "date", Label: "Date"},
	{Key: "product_name", Label: "Product"},
	{Key: "category_name", Label: "Category"},
	{Key: "quantity", Label: "Qty"},
	{Key: "total_price", Label: "Total"},
	{Key: "unit_price", Label: "Unit Price"},
}

var DamagesFieldMap = report.FieldMap{
	{Column: "date", Field: "date"},
	{Column: "product_name", Field: "product_name", Placeholder: PLACEHOLDER_PRODUCT},
	{Column: "quantity", Field: "quantity", Placeholder: 0},
	{Column: "reason", Field: "reason", Placeholder: PLACEHOLDER_NA},
	{Column: "loss_amount", Field: "loss_amount", Placeholder: 0},
}

var DamagesColumns = []report.ColumnSpec{
	{Key: "date", Label: "Date"},
	{Key: "product_name", Label: "Product"},
	{Key: "quantity", Label: "Qty"},
	{Key: "reason", Label: "Reason"},
	{Key: "loss_amount", Label: "Loss"},
}

var ReturnsFieldMap = report.FieldMap{
	{Column: "date", Field: "date"},
	{Column: "product_name", Field: "product_name", Placeholder: PLACEHOLDER_PRODUCT},
	{Column: "quantity", Field: "quantity", Placeholder: 0},
	{Column: "reason", Field: "reason", Placeholder: PLACEHOLDER_NA},
	{Column: "refund_amount", Field: "refund_amount", Placeholder: 0},
}

var ReturnsColumns = []report.ColumnSpec{
	{Key: "date", Label: "Date"},
	{Key: "product_name", Label: "Product"},
	{Key: "quantity", Label: "Qty"},
	{Key: "reason", Label: "Reason"},
	{Key: "refund_amount", Label: "Refund"},
}

var BottlesFieldMap = report.FieldMap{
	{Column: "date", Field: "date"},
	{Column: "product_name", Field: "product_name", Placeholder: PLACEHOLDER_PRODUCT},
	{Column: "received", Field: "received", Placeholder: 0},
	{Column: "returned", Field: "returned", Placeholder: 0},
	{Column: "stock", Field: "stock", Placeholder: 0},
}

var BottlesColumns = []report.ColumnSpec{
	{Key: "date", Label: "Date"},
	{Key: "product_name", Label: "Product"},
	{Key: "received", Label: "Received"},
	{Key: "returned", Label: "Returned"},
	{Key: "stock", Label: "Stock"},
}

var OtherEntryFieldMap = report.FieldMap{
	{Column: "date", Field: "date"},
	{Column: "detail", Field: "detail", Placeholder: PLACEHOLDER_NA},
	{Column: "amount", Field: "amount", Placeholder: 0},
}

var OtherEntryColumns = []report.ColumnSpec{
	{Key: "date", Label: "Date"},
	{Key: "detail", Label: "Detail"},
	{Key: "amount", Label: "Amount"},
}

func buildSection(name string, columns []report.ColumnSpec, fieldMap report.FieldMap, totalsKey *string, recs []report.Record) (report.Section, *util.Result) {
	rows, res := fieldMap.NormalizeAll(recs)
	if res != nil {
		return report.Section{}, res.With(name)
	}
	return report.Section{
		Name:            name,
		Columns:         columns,
		Rows:            rows,
		TotalsColumnKey: totalsKey,
	}, nil
}

func SalesSection(sales []Sale) (report.Section, *util.Result) {
	recs := make([]report.Record, len(sales))
	for i, s := range sales {
		recs[i] = s.Record()
	}
	return buildSection(SECTION_SALES, SalesColumns, SalesFieldMap, util.Ptr("total_price"), recs)
}

func DamagesSection(damages []Damage) (report.Section, *util.Result) {
	recs := make([]report.Record, len(damages))
	for i, d := range damages {
		recs[i] = d.Record()
	}
	return buildSection(SECTION_DAMAGES, DamagesColumns, DamagesFieldMap, util.Ptr("loss_amount"), recs)
}

func ReturnsSection(returns []Return) (report.Section, *util.Result) {
	recs := make([]report.Record, len(returns))
	for i, r := range returns {
		recs[i] = r.Record()
	}
	return buildSection(SECTION_RETURNS, ReturnsColumns, ReturnsFieldMap, util.Ptr("refund_amount"), recs)
}

// BottlesSection has no totals column: stock levels are snapshots, summing
// them means nothing.
func BottlesSection(movements []BottleMovement) (report.Section, *util.Result) {
	recs := make([]report.Record, len(movements))
	for i, m := range movements {
		recs[i] = m.Record()
	}
	return buildSection(SECTION_BOTTLES, BottlesColumns, BottlesFieldMap, nil, recs)
}

func OtherIncomeSection(entries []OtherIncome) (report.Section, *util.Result) {
	recs := make([]report.Record, len(entries))
	for i, e := range entries {
		recs[i] = e.Record()
	}
	return buildSection(SECTION_OTHER_INCOME, OtherEntryColumns, OtherEntryFieldMap, util.Ptr("amount"), recs)
}

func OtherExpensesSection(entries []OtherExpense) (report.Section, *util.Result) {
	recs := make([]report.Record, len(entries))
	for i, e := range entries {
		recs[i] = e.Record()
	}
	return buildSection(SECTION_OTHER_EXPENSES, OtherEntryColumns, OtherEntryFieldMap, util.Ptr("amount"), recs)
}

package pos

import (
	"testing"

	"github.com/soderasen-au/go-common/util"
	"github.com/soderasen-au/go-posreport/report"
)

func TestSalesSection(t *testing.T) {
	sales := []Sale{
		{ID: 1, Date: "2024-01-01", ProductName: util.Ptr("Cola 330ml"), CategoryName: util.Ptr("Drinks"), Quantity: 3, UnitPrice: 1.5, TotalPrice: 4.5},
		{ID: 2, Date: "2024-01-02", Quantity: 1, UnitPrice: 2, TotalPrice: 2},
	}

	sec, res := SalesSection(sales)
	if res != nil {
		t.Fatalf("SalesSection failed: %s", res.Error())
	}
	if sec.Name != SECTION_SALES {
		t.Errorf("Name = %s", sec.Name)
	}
	if len(sec.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(sec.Rows))
	}
	if got := sec.Rows[0].Text("product_name"); got != "Cola 330ml" {
		t.Errorf("row 0 product = %q", got)
	}

	// deleted product and category resolve to placeholders, not errors
	if got := sec.Rows[1].Text("product_name"); got != PLACEHOLDER_PRODUCT {
		t.Errorf("row 1 product = %q, want %q", got, PLACEHOLDER_PRODUCT)
	}
	if got := sec.Rows[1].Text("category_name"); got != PLACEHOLDER_NA {
		t.Errorf("row 1 category = %q, want %q", got, PLACEHOLDER_NA)
	}

	if sec.TotalsColumnKey == nil || *sec.TotalsColumnKey != "total_price" {
		t.Errorf("TotalsColumnKey = %v", sec.TotalsColumnKey)
	}
	total, ok := report.SectionTotal(sec)
	if !ok || total != 6.5 {
		t.Errorf("total = %f ok = %v, want 6.5", total, ok)
	}

	// unit price is pre-formatted display text, not a number
	if got := sec.Rows[0].Text("unit_price"); got != "1.50" {
		t.Errorf("unit price = %q, want 1.50", got)
	}
}

func TestSalesSectionColumnOrder(t *testing.T) {
	// unit price is declared last so the five-column grid drops it
	if len(SalesColumns) != 6 {
		t.Fatalf("SalesColumns has %d entries", len(SalesColumns))
	}
	if SalesColumns[5].Key != "unit_price" {
		t.Errorf("last column = %s, want unit_price", SalesColumns[5].Key)
	}

	plan := report.PlanColumns(report.DefaultLayoutConfig(), SalesColumns)
	if !plan.Truncated {
		t.Error("six declared columns should truncate")
	}
	if len(plan.Columns) != report.DEFAULT_MAX_COLUMNS {
		t.Errorf("plan has %d columns", len(plan.Columns))
	}
	for _, col := range plan.Columns {
		if col.Key == "unit_price" {
			t.Error("unit_price should not survive the column cap")
		}
	}
}

func TestDamagesSection(t *testing.T) {
	sec, res := DamagesSection([]Damage{
		{ID: 1, Date: "2024-01-01", ProductName: util.Ptr("Glass"), Quantity: 2, Reason: util.Ptr("dropped"), LossAmount: 7.75},
		{ID: 2, Date: "2024-01-01", Quantity: 1, LossAmount: 3.253},
	})
	if res != nil {
		t.Fatalf("DamagesSection failed: %s", res.Error())
	}
	if got := sec.Rows[1].Text("reason"); got != PLACEHOLDER_NA {
		t.Errorf("reason = %q, want %q", got, PLACEHOLDER_NA)
	}
	// loss rounds to cents before summing: 7.75 + 3.25
	total, _ := report.SectionTotal(sec)
	if total != 11 {
		t.Errorf("total = %f, want 11", total)
	}
}

func TestReturnsSection(t *testing.T) {
	sec, res := ReturnsSection([]Return{
		{ID: 1, Date: "2024-01-01", ProductName: util.Ptr("Crate"), Quantity: 1, RefundAmount: 12},
	})
	if res != nil {
		t.Fatalf("ReturnsSection failed: %s", res.Error())
	}
	if sec.TotalsColumnKey == nil || *sec.TotalsColumnKey != "refund_amount" {
		t.Errorf("TotalsColumnKey = %v", sec.TotalsColumnKey)
	}
}

func TestBottlesSectionHasNoTotal(t *testing.T) {
	sec, res := BottlesSection([]BottleMovement{
		{ID: 1, Date: "2024-01-01", ProductName: util.Ptr("Keg"), Received: 10, Returned: 4, Stock: 36},
	})
	if res != nil {
		t.Fatalf("BottlesSection failed: %s", res.Error())
	}
	if sec.TotalsColumnKey != nil {
		t.Error("bottle movements should not declare a totals column")
	}
	if _, ok := report.SectionTotal(sec); ok {
		t.Error("bottle section should have no total")
	}
}

func TestOtherEntrySections(t *testing.T) {
	income, res := OtherIncomeSection([]OtherIncome{
		{ID: 1, Date: "2024-01-01", Detail: util.Ptr("Deposit refund"), Amount: 20},
	})
	if res != nil {
		t.Fatalf("OtherIncomeSection failed: %s", res.Error())
	}
	if income.Name != SECTION_OTHER_INCOME {
		t.Errorf("Name = %s", income.Name)
	}

	expense, res := OtherExpensesSection([]OtherExpense{
		{ID: 1, Date: "2024-01-01", Amount: 5.5},
	})
	if res != nil {
		t.Fatalf("OtherExpensesSection failed: %s", res.Error())
	}
	if got := expense.Rows[0].Text("detail"); got != PLACEHOLDER_NA {
		t.Errorf("detail = %q, want %q", got, PLACEHOLDER_NA)
	}

	total, ok := report.GrandTotal([]report.Section{income, expense})
	if !ok || total != 25.5 {
		t.Errorf("grand total = %f ok = %v, want 25.5", total, ok)
	}
}

func TestEmptySections(t *testing.T) {
	sec, res := SalesSection(nil)
	if res != nil {
		t.Fatalf("empty SalesSection failed: %s", res.Error())
	}
	if len(sec.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(sec.Rows))
	}
	if _, ok := report.SectionTotal(sec); ok {
		t.Error("empty section should have no total")
	}
}

func TestRowColumnAgreement(t *testing.T) {
	// every declared column key must be present in normalized rows, and every
	// mapped column must be declared
	checks := []struct {
		name    string
		cols    []report.ColumnSpec
		nameMap report.FieldMap
	}{
		{"Sales", SalesColumns, SalesFieldMap},
		{"Damages", DamagesColumns, DamagesFieldMap},
		{"Returns", ReturnsColumns, ReturnsFieldMap},
		{"Bottles", BottlesColumns, BottlesFieldMap},
		{"OtherEntry", OtherEntryColumns, OtherEntryFieldMap},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			mapped := map[string]bool{}
			for _, key := range c.nameMap.Columns() {
				mapped[key] = true
			}
			if len(c.cols) != len(mapped) {
				t.Fatalf("%d columns declared, %d mapped", len(c.cols), len(mapped))
			}
			for _, col := range c.cols {
				if !mapped[col.Key] {
					t.Errorf("column %s is declared but not mapped", col.Key)
				}
			}
		})
	}
}

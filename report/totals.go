package report

// SectionTotal sums the section's designated totals column over all of its
// input rows (non-numeric and missing cells count as 0). ok is false when
// the section declares no totals column or has no rows: an empty section has
// nothing to total.
func SectionTotal(s Section) (total float64, ok bool) {
	if s.TotalsColumnKey == nil || len(s.Rows) == 0 {
		return 0, false
	}
	for _, row := range s.Rows {
		total += row.Num(*s.TotalsColumnKey)
	}
	return total, true
}

// TotalRow builds the synthetic subtotal row for a section: the label in the
// first declared column, the sum in the totals column, every other column
// empty. The label and totals column may coincide for single-column
// sections; the sum wins.
func TotalRow(s Section) (Row, bool) {
	total, ok := SectionTotal(s)
	if !ok || len(s.Columns) == 0 {
		return nil, false
	}

	row := make(Row, len(s.Columns))
	for _, col := range s.Columns {
		row[col.Key] = ""
	}
	row[s.Columns[0].Key] = TOTAL_ROW_LABEL
	row[*s.TotalsColumnKey] = total
	return row, true
}

// GrandTotal sums the subtotals of every section that has one. ok is false
// when no section contributes.
func GrandTotal(sections []Section) (total float64, ok bool) {
	for _, s := range sections {
		if t, has := SectionTotal(s); has {
			total += t
			ok = true
		}
	}
	return total, ok
}

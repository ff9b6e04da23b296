// Package pos carries the back-office domain records (sales, damages,
// returns, bottle movements, other income/expense) and the field mappings
// that turn them into uniform report sections. All per-category knowledge
// lives here; the report printers stay domain-agnostic.
package pos

import (
	"math"

	"github.com/soderasen-au/go-posreport/report"
)

const (
	PLACEHOLDER_NA      = "N/A"
	PLACEHOLDER_PRODUCT = "Unknown Product"
)

// Joined display fields are pointers: a sale whose product was deleted
// arrives with ProductName == nil and normalizes to a placeholder.

type Sale struct {
	ID           int64   `csv:"id" json:"id"`
	Date         string  `csv:"date" json:"date"`
	ProductName  *string `csv:"product_name" json:"product_name,omitempty"`
	CategoryName *string `csv:"category_name" json:"category_name,omitempty"`
	Quantity     int     `csv:"quantity" json:"quantity"`
	UnitPrice    float64 `csv:"unit_price" json:"unit_price"`
	TotalPrice   float64 `csv:"total_price" json:"total_price"`
}

type Damage struct {
	ID          int64   `csv:"id" json:"id"`
	Date        string  `csv:"date" json:"date"`
	ProductName *string `csv:"product_name" json:"product_name,omitempty"`
	Quantity    int     `csv:"quantity" json:"quantity"`
	Reason      *string `csv:"reason" json:"reason,omitempty"`
	LossAmount  float64 `csv:"loss_amount" json:"loss_amount"`
}

type Return struct {
	ID           int64   `csv:"id" json:"id"`
	Date         string  `csv:"date" json:"date"`
	ProductName  *string `csv:"product_name" json:"product_name,omitempty"`
	Quantity     int     `csv:"quantity" json:"quantity"`
	Reason       *string `csv:"reason" json:"reason,omitempty"`
	RefundAmount float64 `csv:"refund_amount" json:"refund_amount"`
}

type BottleMovement struct {
	ID          int64   `csv:"id" json:"id"`
	Date        string  `csv:"date" json:"date"`
	ProductName *string `csv:"product_name" json:"product_name,omitempty"`
	Received    int     `csv:"received" json:"received"`
	Returned    int     `csv:"returned" json:"returned"`
	Stock       int     `csv:"stock" json:"stock"`
}

type OtherIncome struct {
	ID     int64   `csv:"id" json:"id"`
	Date   string  `csv:"date" json:"date"`
	Detail *string `csv:"detail" json:"detail,omitempty"`
	Amount float64 `csv:"amount" json:"amount"`
}

type OtherExpense struct {
	ID     int64   `csv:"id" json:"id"`
	Date   string  `csv:"date" json:"date"`
	Detail *string `csv:"detail" json:"detail,omitempty"`
	Amount float64 `csv:"amount" json:"amount"`
}

// money keeps totals columns numeric (so subtotals sum them) while staying
// rounded to two decimals for display.
func money(v float64) float64 {
	return math.Round(v*100) / 100
}

func maybeSet(rec report.Record, key string, v *string) {
	if v != nil {
		rec[key] = *v
	}
}

func (s Sale) Record() report.Record {
	rec := report.Record{
		"date":        s.Date,
		"quantity":    s.Quantity,
		"unit_price":  report.FormatMoney(s.UnitPrice),
		"total_price": money(s.TotalPrice),
	}
	maybeSet(rec, "product_name", s.ProductName)
	maybeSet(rec, "category_name", s.CategoryName)
	return rec
}

func (d Damage) Record() report.Record {
	rec := report.Record{
		"date":        d.Date,
		"quantity":    d.Quantity,
		"loss_amount": money(d.LossAmount),
	}
	maybeSet(rec, "product_name", d.ProductName)
	maybeSet(rec, "reason", d.Reason)
	return rec
}

func (r Return) Record() report.Record {
	rec := report.Record{
		"date":          r.Date,
		"quantity":      r.Quantity,
		"refund_amount": money(r.RefundAmount),
	}
	maybeSet(rec, "product_name", r.ProductName)
	maybeSet(rec, "reason", r.Reason)
	return rec
}

func (b BottleMovement) Record() report.Record {
	rec := report.Record{
		"date":     b.Date,
		"received": b.Received,
		"returned": b.Returned,
		"stock":    b.Stock,
	}
	maybeSet(rec, "product_name", b.ProductName)
	return rec
}

func (i OtherIncome) Record() report.Record {
	rec := report.Record{
		"date":   i.Date,
		"amount": money(i.Amount),
	}
	maybeSet(rec, "detail", i.Detail)
	return rec
}

func (e OtherExpense) Record() report.Record {
	rec := report.Record{
		"date":   e.Date,
		"amount": money(e.Amount),
	}
	maybeSet(rec, "detail", e.Detail)
	return rec
}

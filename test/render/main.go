package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/util"

	"github.com/soderasen-au/go-posreport/pos"
	"github.com/soderasen-au/go-posreport/report"
)

var (
	format       = flag.String("format", "pdf", "Output format: pdf, xlsx, csv, tsv")
	outputFolder = flag.String("output-folder", ".", "Output folder path")
	rows         = flag.Int("rows", 12, "Sample sales rows to generate")
)

func sampleSales(n int) []pos.Sale {
	sales := make([]pos.Sale, n)
	for i := range sales {
		sales[i] = pos.Sale{
			ID:           int64(i + 1),
			Date:         fmt.Sprintf("2024-01-%02d", i%28+1),
			ProductName:  util.Ptr(fmt.Sprintf("Product %c", 'A'+i%6)),
			CategoryName: util.Ptr("Beverages"),
			Quantity:     i%5 + 1,
			UnitPrice:    25,
			TotalPrice:   float64((i%5 + 1) * 25),
		}
	}
	// one sale with its product deleted, to show placeholder substitution
	if n > 2 {
		sales[2].ProductName = nil
		sales[2].CategoryName = nil
	}
	return sales
}

func main() {
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	salesSec, res := pos.SalesSection(sampleSales(*rows))
	if res != nil {
		logger.Err(res).Msg("SalesSection")
		os.Exit(1)
	}
	damagesSec, res := pos.DamagesSection(nil) // empty on purpose: title-only section
	if res != nil {
		logger.Err(res).Msg("DamagesSection")
		os.Exit(1)
	}

	r := report.Report{
		Name:           util.Ptr("demo"),
		Title:          "Daily Back-Office Report",
		DateRangeLabel: "2024-01-01 - 2024-01-31",
		Sections:       []report.Section{salesSec, damagesSec},
		OutputFormat:   util.Ptr(report.ReportFormat(*format)),
		Logger:         &logger,
	}

	if res := r.Validate(); res != nil {
		logger.Err(res).Msg("Validate")
		os.Exit(1)
	}

	printer := report.NewBuiltInReportPrinter()
	if res := printer.Print(r); res != nil {
		logger.Err(res).Msg("Print")
		os.Exit(1)
	}

	result, res := printer.GetReportResult(*r.ID)
	if res != nil {
		logger.Err(res).Msg("GetReportResult")
		os.Exit(1)
	}

	fn := fmt.Sprintf("%s/demo.%s", *outputFolder, *format)
	if err := os.WriteFile(fn, result.Document.Bytes, 0644); err != nil {
		logger.Err(err).Msg("WriteFile")
		os.Exit(1)
	}
	logger.Info().Msgf("wrote %s (%d pages, %d rows)", fn, result.Document.Pages, result.PrintedRows)
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/util"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/soderasen-au/go-posreport/export"
	"github.com/soderasen-au/go-posreport/pos"
	"github.com/soderasen-au/go-posreport/report"
)

var (
	descriptorPath string
	dataDir        string
	outputDir      string
	outputFormat   string
	auditFile      string
	verbose        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "posreport",
		Short: "Compose back-office datasets into a printable report",
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render an export descriptor into a pdf/csv/xlsx document",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&descriptorPath, "descriptor", "d", "export.yaml", "Path to the export descriptor")
	renderCmd.Flags().StringVar(&dataDir, "data", ".", "Folder holding the dataset csv dumps")
	renderCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Folder to save the rendered document into")
	renderCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Override the descriptor's output format (pdf, csv, tsv, xlsx)")
	renderCmd.Flags().StringVar(&auditFile, "audit", "", "Append an audit record to this csv file")
	renderCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.AddCommand(renderCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fileExists(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil
}

// buildSources wires the csv dumps in dir into export sources. A missing
// dump is an empty dataset, not an error: the section renders title-only.
func buildSources(dir string) []export.Source {
	return []export.Source{
		{Name: pos.SECTION_SALES, Build: func(ctx context.Context) (report.Section, *util.Result) {
			var sales []pos.Sale
			if file := filepath.Join(dir, "sales.csv"); fileExists(file) {
				var res *util.Result
				if sales, res = pos.LoadSales(file); res != nil {
					return report.Section{}, res
				}
			}
			return pos.SalesSection(sales)
		}},
		{Name: pos.SECTION_DAMAGES, Build: func(ctx context.Context) (report.Section, *util.Result) {
			var damages []pos.Damage
			if file := filepath.Join(dir, "damages.csv"); fileExists(file) {
				var res *util.Result
				if damages, res = pos.LoadDamages(file); res != nil {
					return report.Section{}, res
				}
			}
			return pos.DamagesSection(damages)
		}},
		{Name: pos.SECTION_RETURNS, Build: func(ctx context.Context) (report.Section, *util.Result) {
			var returns []pos.Return
			if file := filepath.Join(dir, "returns.csv"); fileExists(file) {
				var res *util.Result
				if returns, res = pos.LoadReturns(file); res != nil {
					return report.Section{}, res
				}
			}
			return pos.ReturnsSection(returns)
		}},
		{Name: pos.SECTION_BOTTLES, Build: func(ctx context.Context) (report.Section, *util.Result) {
			var movements []pos.BottleMovement
			if file := filepath.Join(dir, "bottles.csv"); fileExists(file) {
				var res *util.Result
				if movements, res = pos.LoadBottleMovements(file); res != nil {
					return report.Section{}, res
				}
			}
			return pos.BottlesSection(movements)
		}},
		{Name: pos.SECTION_OTHER_INCOME, Build: func(ctx context.Context) (report.Section, *util.Result) {
			var entries []pos.OtherIncome
			if file := filepath.Join(dir, "other_income.csv"); fileExists(file) {
				var res *util.Result
				if entries, res = pos.LoadOtherIncome(file); res != nil {
					return report.Section{}, res
				}
			}
			return pos.OtherIncomeSection(entries)
		}},
		{Name: pos.SECTION_OTHER_EXPENSES, Build: func(ctx context.Context) (report.Section, *util.Result) {
			var entries []pos.OtherExpense
			if file := filepath.Join(dir, "other_expenses.csv"); fileExists(file) {
				var res *util.Result
				if entries, res = pos.LoadOtherExpenses(file); res != nil {
					return report.Section{}, res
				}
			}
			return pos.OtherExpensesSection(entries)
		}},
	}
}

func runRender(cmd *cobra.Command, _ []string) error {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	buf, err := os.ReadFile(descriptorPath)
	if err != nil {
		return fmt.Errorf("read descriptor: %w", err)
	}
	var req export.Request
	if err := yaml.Unmarshal(buf, &req); err != nil {
		return fmt.Errorf("parse descriptor: %w", err)
	}
	if outputFormat != "" {
		req.Format = report.ReportFormat(outputFormat)
	}
	req.Sources = buildSources(dataDir)

	svc := export.NewService(report.NewBuiltInReportPrinter(), export.FileSaver{Folder: outputDir}, &logger)
	if auditFile != "" {
		audit, res := export.NewAuditLog(auditFile)
		if res != nil {
			return fmt.Errorf("open audit log: %v", res)
		}
		defer audit.Close()
		svc.Audit = audit
	}

	result, res := svc.Export(cmd.Context(), req)
	if res != nil {
		return fmt.Errorf("export failed: %v", res)
	}

	for _, sec := range result.Sections {
		if sec.OmittedRows > 0 {
			logger.Warn().Msgf("section %s: %d rows omitted by the row cap", sec.Name, sec.OmittedRows)
		}
		if sec.TruncatedColumns {
			logger.Warn().Msgf("section %s: columns beyond the grid cap were not rendered", sec.Name)
		}
	}
	logger.Info().Msgf("done: %d pages, %d rows", result.Document.Pages, result.PrintedRows)

	return nil
}

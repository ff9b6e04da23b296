// Package export drives one user-initiated export action: resolve every
// dataset into a section, compose the report, print it, and hand the
// artifact to the download collaborator. The remote data store stays behind
// the Source functions; nothing here queries it directly.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/loggers"
	"github.com/soderasen-au/go-common/util"
	"golang.org/x/sync/errgroup"

	"github.com/soderasen-au/go-posreport/report"
)

// Source resolves one dataset category into a ready section. Build runs
// before the layout pass starts; the compositor itself stays synchronous and
// does no fetching.
type Source struct {
	Name  string
	Build func(ctx context.Context) (report.Section, *util.Result)
}

// Request describes one export action.
type Request struct {
	Subject        string               `json:"subject" yaml:"subject"`
	Title          string               `json:"title" yaml:"title"`
	DateRangeLabel string               `json:"date_range_label" yaml:"date_range_label"`
	User           string               `json:"user,omitempty" yaml:"user,omitempty"`
	Format         report.ReportFormat  `json:"format" yaml:"format"`
	Layout         *report.LayoutConfig `json:"layout,omitempty" yaml:"layout,omitempty"`

	Sources []Source `json:"-" yaml:"-"`
}

func (r Request) Validate() *util.Result {
	if r.Subject == "" {
		return util.MsgError("ValidateRequest", "no subject")
	}
	if len(r.Sources) == 0 {
		return util.MsgError("ValidateRequest", "no sources")
	}
	for i, src := range r.Sources {
		if src.Build == nil {
			return util.MsgError("ValidateRequest", fmt.Sprintf("source[%d] %s has no builder", i, src.Name))
		}
	}
	return nil
}

type Service struct {
	Printer report.IReportPrinter
	Saver   Saver
	Audit   *AuditLog
	Logger  *zerolog.Logger
}

func NewService(printer report.IReportPrinter, saver Saver, logger *zerolog.Logger) *Service {
	if printer == nil {
		printer = report.NewBuiltInReportPrinter()
	}
	if logger == nil {
		logger = loggers.NullLogger
	}
	return &Service{
		Printer: printer,
		Saver:   saver,
		Logger:  logger,
	}
}

// resolveSections builds every source concurrently; declared request order
// is preserved in the result. Any failed source aborts the whole export.
func (s *Service) resolveSections(ctx context.Context, req Request) ([]report.Section, *util.Result) {
	sections := make([]report.Section, len(req.Sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range req.Sources {
		i, src := i, src
		g.Go(func() error {
			sec, res := src.Build(gctx)
			if res != nil {
				return res.With(src.Name)
			}
			sections[i] = sec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, util.Error("BuildSections", err)
	}

	return sections, nil
}

// Export runs the whole flow to completion. On any failure nothing is saved
// and no partial artifact is visible to the user; the action is retriable by
// calling Export again.
func (s *Service) Export(ctx context.Context, req Request) (*report.ReportResult, *util.Result) {
	if res := req.Validate(); res != nil {
		return nil, res.With("Validate")
	}

	logger := s.Logger.With().Str("export", req.Subject).Logger()

	sections, res := s.resolveSections(ctx, req)
	if res != nil {
		logger.Err(res).Msg("resolveSections failed")
		return nil, res.With("resolveSections")
	}

	r := report.Report{
		Name:           util.Ptr(req.Subject),
		Title:          req.Title,
		DateRangeLabel: req.DateRangeLabel,
		Sections:       sections,
		Layout:         req.Layout,
		Logger:         &logger,
	}
	if req.Format != "" {
		r.OutputFormat = util.Ptr(req.Format)
	}
	if res := r.Validate(); res != nil {
		return nil, res.With("Report.Validate")
	}

	if res := s.Printer.Print(r); res != nil {
		logger.Err(res).Msg("print failed")
		return nil, res.With("Print")
	}

	result, res := s.Printer.GetReportResult(*r.ID)
	if res != nil {
		return nil, res.With("GetReportResult")
	}
	if result.Document == nil {
		return nil, util.MsgError("CheckDocument", "printer produced no document")
	}

	fileName := FileName(req.Subject, time.Now(), *r.OutputFormat)
	if s.Saver != nil {
		path, res := s.Saver.Save(fileName, result.Document)
		if res != nil {
			logger.Err(res).Msg("save failed")
			return nil, res.With("Save")
		}
		logger.Info().Msgf("report is saved as [%s]", path)
	}

	if s.Audit != nil {
		res := s.Audit.Record(AuditRecord{
			Timestamp:   time.Now(),
			User:        req.User,
			Subject:     req.Subject,
			Format:      string(*r.OutputFormat),
			FileName:    fileName,
			FileSize:    len(result.Document.Bytes),
			PrintedRows: result.PrintedRows,
		})
		if res != nil {
			// the export itself succeeded; a broken audit trail is logged, not fatal
			logger.Err(res).Msg("audit record failed")
		}
	}

	return result, nil
}

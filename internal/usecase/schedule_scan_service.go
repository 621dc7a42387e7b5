package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	"github.com/Bennylang23/autobeluga/internal/domain/schedule"
	"github.com/Bennylang23/autobeluga/internal/platform/logging"
	crerr "github.com/cockroachdb/errors"
)

type MatchIngester interface {
	Ingest(ctx context.Context, key matchreport.MatchKey) (MatchResult, error)
}

type ScanOptions struct {
	// BaseURL resolves relative schedule links so they compare equal to stored URLs.
	BaseURL string
	// Limit caps the number of matches processed; zero means no cap.
	Limit int
}

type ScanSummary struct {
	Pending              int           `json:"pending"`
	Processed            int           `json:"processed"`
	Recorded             int           `json:"recorded"`
	RecordedWithDefaults int           `json:"recorded_with_defaults"`
	Failed               int           `json:"failed"`
	SkippedInvalid       int           `json:"skipped_invalid"`
	HaltedAt             string        `json:"halted_at,omitempty"`
	Results              []MatchResult `json:"results"`
}

// ScheduleScanService walks the schedule from the earliest unscraped report onward and ingests
// each match in date order. It holds no retry state: a match that fails stays unscraped and is
// picked up again by the next run.
type ScheduleScanService struct {
	schedule schedule.Repository
	reports  matchreport.Repository
	ingester MatchIngester
	pacer    Pacer
	logger   *logging.Logger
}

func NewScheduleScanService(
	scheduleRepo schedule.Repository,
	reports matchreport.Repository,
	ingester MatchIngester,
	pacer Pacer,
	logger *logging.Logger,
) *ScheduleScanService {
	if logger == nil {
		logger = logging.Default()
	}
	if pacer == nil {
		pacer = noPacer{}
	}

	return &ScheduleScanService{
		schedule: scheduleRepo,
		reports:  reports,
		ingester: ingester,
		pacer:    pacer,
		logger:   logger,
	}
}

func (s *ScheduleScanService) Run(ctx context.Context, opts ScanOptions) (ScanSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleScanService.Run")
	defer span.End()

	var summary ScanSummary

	fixtures, err := s.schedule.ListWithReports(ctx)
	if err != nil {
		return summary, crerr.Mark(fmt.Errorf("list schedule: %w", err), ErrDependencyUnavailable)
	}
	scraped, err := s.reports.ScrapedURLs(ctx)
	if err != nil {
		return summary, crerr.Mark(fmt.Errorf("load scraped urls: %w", err), ErrDependencyUnavailable)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	for i := range fixtures {
		fixtures[i].MatchReportURL = matchreport.NormalizeReportURL(baseURL, fixtures[i].MatchReportURL)
	}

	pending := schedule.Pending(fixtures, scraped)
	summary.Pending = len(pending)
	if len(pending) == 0 {
		s.logger.InfoContext(ctx, "schedule scan found nothing to process", "scraped", len(scraped))
		return summary, nil
	}
	s.logger.InfoContext(ctx, "schedule scan started",
		"pending", len(pending),
		"from", pending[0].Date.Format("2006-01-02"),
	)

	for _, fixture := range pending {
		if opts.Limit > 0 && summary.Processed >= opts.Limit {
			break
		}

		url := fixture.ReportURL()
		if matchreport.IsHaltingURL(url) {
			summary.HaltedAt = url
			s.logger.WarnContext(ctx, "halting report url reached, stopping scan", "url", url)
			break
		}

		if err := s.pacer.Wait(ctx); err != nil {
			return summary, err
		}

		result, err := s.ingester.Ingest(ctx, fixture.MatchKey())
		summary.Processed++
		summary.Results = append(summary.Results, result)
		switch {
		case err != nil && ctx.Err() != nil:
			return summary, ctx.Err()
		case result.Status == StatusRecorded:
			summary.Recorded++
		case result.Status == StatusRecordedWithDefaults:
			summary.RecordedWithDefaults++
		case result.Status == StatusSkippedInvalid:
			summary.SkippedInvalid++
		default:
			summary.Failed++
		}
		if err != nil {
			s.logger.WarnContext(ctx, "match skipped, continuing scan",
				"url", url,
				"status", string(result.Status),
				"error", err,
			)
		}
	}

	s.logger.InfoContext(ctx, "schedule scan finished",
		"processed", summary.Processed,
		"recorded", summary.Recorded,
		"recorded_with_defaults", summary.RecordedWithDefaults,
		"failed", summary.Failed,
		"skipped_invalid", summary.SkippedInvalid,
		"halted_at", summary.HaltedAt,
	)
	return summary, nil
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	"github.com/Bennylang23/autobeluga/internal/platform/logging"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// DocumentFetcher returns the raw bytes of a match report.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, url string) ([]byte, error)
}

// Extractor turns a raw match report into the batch of rows one match produces.
type Extractor interface {
	Extract(raw []byte, key matchreport.MatchKey) (matchreport.Batch, matchreport.Diagnostics, error)
}

type IngestMetrics interface {
	MatchProcessed(status string, elapsed time.Duration)
	WarningsRecorded(kind string, count int)
}

type MatchStatus string

const (
	StatusRecorded             MatchStatus = "recorded"
	StatusRecordedWithDefaults MatchStatus = "recorded_with_defaults"
	StatusSkippedRetry         MatchStatus = "skipped_retry"
	StatusSkippedInvalid       MatchStatus = "skipped_invalid"
)

type MatchResult struct {
	URL        string                `json:"url"`
	Matchup    string                `json:"matchup"`
	Status     MatchStatus           `json:"status"`
	Players    int                   `json:"players"`
	Shots      int                   `json:"shots"`
	Warnings   []matchreport.Warning `json:"warnings,omitempty"`
	DurationMs int64                 `json:"duration_ms"`
	Error      string                `json:"error,omitempty"`
	Batch      *matchreport.Batch    `json:"-"`
}

type MatchIngestService struct {
	fetcher   DocumentFetcher
	extractor Extractor
	writer    matchreport.Writer
	metrics   IngestMetrics
	validate  *validator.Validate
	logger    *logging.Logger
	now       func() time.Time
}

func NewMatchIngestService(
	fetcher DocumentFetcher,
	extractor Extractor,
	writer matchreport.Writer,
	metrics IngestMetrics,
	logger *logging.Logger,
) *MatchIngestService {
	if logger == nil {
		logger = logging.Default()
	}
	if metrics == nil {
		metrics = nopIngestMetrics{}
	}

	return &MatchIngestService{
		fetcher:   fetcher,
		extractor: extractor,
		writer:    writer,
		metrics:   metrics,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// Ingest fetches, extracts and persists one match. The returned error carries one of the
// ErrInvalidInput, ErrHaltingURL, ErrFetch, ErrStructural or ErrPersistence classes; the result
// is populated either way.
func (s *MatchIngestService) Ingest(ctx context.Context, key matchreport.MatchKey) (MatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchIngestService.Ingest")
	defer span.End()

	return s.run(ctx, key, true)
}

// Preview runs the same pipeline without writing anything; the batch is attached to the result.
func (s *MatchIngestService) Preview(ctx context.Context, key matchreport.MatchKey) (MatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchIngestService.Preview")
	defer span.End()

	return s.run(ctx, key, false)
}

func (s *MatchIngestService) run(ctx context.Context, key matchreport.MatchKey, persist bool) (MatchResult, error) {
	started := s.now()
	result := MatchResult{URL: key.SourceURL, Matchup: key.Matchup()}
	finish := func(status MatchStatus, err error) (MatchResult, error) {
		result.Status = status
		result.DurationMs = s.now().Sub(started).Milliseconds()
		if err != nil {
			result.Error = err.Error()
		}
		s.metrics.MatchProcessed(string(status), s.now().Sub(started))
		return result, err
	}

	if err := s.validate.StructCtx(ctx, key); err != nil {
		return finish(StatusSkippedInvalid, crerr.Mark(fmt.Errorf("validate match key: %w", err), ErrInvalidInput))
	}
	if matchreport.IsHaltingURL(key.SourceURL) {
		return finish(StatusSkippedInvalid, fmt.Errorf("%w: %s", ErrHaltingURL, key.SourceURL))
	}

	raw, err := s.fetcher.FetchDocument(ctx, key.SourceURL)
	if err != nil {
		s.logger.WarnContext(ctx, "match report fetch failed, will retry on a later run",
			"url", key.SourceURL,
			"matchup", result.Matchup,
			"error", err,
		)
		return finish(StatusSkippedRetry, crerr.Mark(fmt.Errorf("fetch match report: %w", err), ErrFetch))
	}

	batch, diag, err := s.extractor.Extract(raw, key)
	if err != nil {
		if !crerr.Is(err, ErrStructural) {
			err = crerr.Mark(err, ErrStructural)
		}
		s.logger.WarnContext(ctx, "match report is structurally invalid",
			"url", key.SourceURL,
			"matchup", result.Matchup,
			"error", err,
		)
		return finish(StatusSkippedInvalid, fmt.Errorf("extract match report: %w", err))
	}

	result.Players = len(batch.Players)
	result.Shots = len(batch.Shots)
	result.Warnings = diag.Warnings
	result.Batch = &batch
	s.reportDiagnostics(ctx, key, diag)

	if persist {
		if err := s.writer.WriteBatch(ctx, batch); err != nil {
			s.logger.ErrorContext(ctx, "persist match batch failed, batch rolled back",
				"url", key.SourceURL,
				"matchup", result.Matchup,
				"error", err,
			)
			return finish(StatusSkippedRetry, crerr.Mark(fmt.Errorf("write match batch: %w", err), ErrPersistence))
		}
	}

	status := StatusRecorded
	if !diag.Empty() {
		status = StatusRecordedWithDefaults
	}
	s.logger.InfoContext(ctx, "match report processed",
		"url", key.SourceURL,
		"matchup", result.Matchup,
		"status", string(status),
		"players", result.Players,
		"shots", result.Shots,
		"warnings", len(diag.Warnings),
		"persisted", persist,
	)
	return finish(status, nil)
}

func (s *MatchIngestService) reportDiagnostics(ctx context.Context, key matchreport.MatchKey, diag matchreport.Diagnostics) {
	counts := make(map[matchreport.WarningKind]int)
	for _, w := range diag.Warnings {
		counts[w.Kind]++
		s.logger.WarnContext(ctx, "match report warning",
			"url", key.SourceURL,
			"kind", string(w.Kind),
			"detail", w.Message,
		)
	}
	for kind, n := range counts {
		s.metrics.WarningsRecorded(string(kind), n)
	}
}

type nopIngestMetrics struct{}

func (nopIngestMetrics) MatchProcessed(string, time.Duration) {}

func (nopIngestMetrics) WarningsRecorded(string, int) {}

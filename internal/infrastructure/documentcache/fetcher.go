package documentcache

import (
	"context"
	"strings"

	"github.com/Bennylang23/autobeluga/internal/platform/logging"
	"github.com/Bennylang23/autobeluga/internal/platform/resilience"
)

// Source is the uncached document fetcher being decorated.
type Source interface {
	FetchDocument(ctx context.Context, url string) ([]byte, error)
}

// Fetcher serves documents from a Backend and falls through to Source on a miss. Backend
// failures are logged and never fail the fetch.
type Fetcher struct {
	next    Source
	backend Backend
	logger  *logging.Logger
	flight  resilience.SingleFlight[[]byte]
}

func NewFetcher(next Source, backend Backend, logger *logging.Logger) *Fetcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Fetcher{next: next, backend: backend, logger: logger}
}

func (f *Fetcher) FetchDocument(ctx context.Context, url string) ([]byte, error) {
	key := strings.TrimSpace(url)
	if key == "" {
		return f.next.FetchDocument(ctx, url)
	}

	body, hit, err := f.backend.Get(ctx, key)
	if err != nil {
		f.logger.WarnContext(ctx, "document cache read failed", "url", key, "error", err)
	}
	if hit {
		f.logger.DebugContext(ctx, "document cache hit", "url", key)
		return body, nil
	}

	body, err, _ = f.flight.Do(key, func() ([]byte, error) {
		fetched, fetchErr := f.next.FetchDocument(ctx, url)
		if fetchErr != nil {
			return nil, fetchErr
		}
		if setErr := f.backend.Set(ctx, key, fetched); setErr != nil {
			f.logger.WarnContext(ctx, "document cache write failed", "url", key, "error", setErr)
		}
		return fetched, nil
	})
	return body, err
}

package matchreport

import "context"

// Writer persists one match batch atomically. Re-writing an identical batch is a no-op.
type Writer interface {
	WriteBatch(ctx context.Context, batch Batch) error
}

// Repository is the storage surface of recorded match reports.
type Repository interface {
	Writer
	// ScrapedURLs returns every report URL present in either the team or the player table.
	ScrapedURLs(ctx context.Context) (map[string]struct{}, error)
}

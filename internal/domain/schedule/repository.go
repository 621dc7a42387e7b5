package schedule

import "context"

// Repository exposes schedule read operations.
type Repository interface {
	// ListWithReports returns fixtures carrying a report URL, ordered by date ascending.
	ListWithReports(ctx context.Context) ([]Fixture, error)
}

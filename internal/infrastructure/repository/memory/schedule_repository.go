package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Bennylang23/autobeluga/internal/domain/schedule"
)

type ScheduleRepository struct {
	mu       sync.RWMutex
	fixtures []schedule.Fixture
}

func NewScheduleRepository(fixtures []schedule.Fixture) *ScheduleRepository {
	items := append([]schedule.Fixture(nil), fixtures...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	return &ScheduleRepository{fixtures: items}
}

func (r *ScheduleRepository) ListWithReports(_ context.Context) ([]schedule.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Fixture, 0, len(r.fixtures))
	for _, f := range r.fixtures {
		if f.ReportURL() != "" {
			out = append(out, f)
		}
	}
	return out, nil
}

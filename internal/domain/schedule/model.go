package schedule

import (
	"strings"
	"time"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
)

// Fixture is one schedule row that links to a match report.
type Fixture struct {
	Date           time.Time
	HomeTeam       string
	AwayTeam       string
	Competition    string
	MatchReportURL string
}

func (f Fixture) ReportURL() string {
	return strings.TrimSpace(f.MatchReportURL)
}

func (f Fixture) MatchKey() matchreport.MatchKey {
	return matchreport.MatchKey{
		Date:        f.Date,
		HomeTeam:    f.HomeTeam,
		AwayTeam:    f.AwayTeam,
		Competition: f.Competition,
		SourceURL:   f.ReportURL(),
	}
}

// Pending returns the fixtures still to process: everything from the earliest date that has an
// unscraped, non-halting report onward, minus the already scraped ones. Input must be date ordered.
func Pending(fixtures []Fixture, scraped map[string]struct{}) []Fixture {
	start := -1
	for i, f := range fixtures {
		url := f.ReportURL()
		if url == "" {
			continue
		}
		if _, ok := scraped[url]; ok {
			continue
		}
		if matchreport.IsHaltingURL(url) {
			continue
		}
		start = i
		break
	}
	if start < 0 {
		return nil
	}

	startDate := fixtures[start].Date
	out := make([]Fixture, 0, len(fixtures)-start)
	for _, f := range fixtures {
		if f.Date.Before(startDate) {
			continue
		}
		url := f.ReportURL()
		if url == "" {
			continue
		}
		if _, ok := scraped[url]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

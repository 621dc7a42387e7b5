package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
)

type teamKey struct {
	date, matchup, comp string
}

type playerKey struct {
	date, matchup, playerCode string
	side                      matchreport.Side
}

type eventKey struct {
	url     string
	ordinal int
}

// TeamRow is the stored team-level view of one match.
type TeamRow struct {
	Key   matchreport.MatchKey
	Score string
	Home  matchreport.TeamAggregate
	Away  matchreport.TeamAggregate
}

type PlayerRow struct {
	Key    matchreport.MatchKey
	Record matchreport.PlayerStatRecord
}

// MatchReportRepository keeps match batches under the same natural keys as the SQL tables.
type MatchReportRepository struct {
	mu      sync.RWMutex
	teams   map[teamKey]TeamRow
	players map[playerKey]PlayerRow
	events  map[eventKey]matchreport.ShotEvent
}

func NewMatchReportRepository() *MatchReportRepository {
	return &MatchReportRepository{
		teams:   make(map[teamKey]TeamRow),
		players: make(map[playerKey]PlayerRow),
		events:  make(map[eventKey]matchreport.ShotEvent),
	}
}

func (r *MatchReportRepository) WriteBatch(_ context.Context, batch matchreport.Batch) error {
	key := batch.Key
	date, matchup := key.DateString(), key.Matchup()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[teamKey{date: date, matchup: matchup, comp: key.Competition}] = TeamRow{
		Key:   key,
		Score: batch.Score,
		Home:  batch.Home,
		Away:  batch.Away,
	}
	current := make(map[playerKey]struct{}, len(batch.Players))
	for _, p := range batch.Players {
		current[playerKey{date: date, matchup: matchup, playerCode: p.PlayerCode, side: p.Side}] = struct{}{}
	}
	for k := range r.players {
		if _, ok := current[k]; !ok && k.date == date && k.matchup == matchup {
			delete(r.players, k)
		}
	}
	for _, p := range batch.Players {
		r.players[playerKey{date: date, matchup: matchup, playerCode: p.PlayerCode, side: p.Side}] = PlayerRow{Key: key, Record: p}
	}
	for k := range r.events {
		if k.url == key.SourceURL && k.ordinal > len(batch.Shots) {
			delete(r.events, k)
		}
	}
	for _, s := range batch.Shots {
		r.events[eventKey{url: key.SourceURL, ordinal: s.Ordinal}] = s
	}
	return nil
}

func (r *MatchReportRepository) ScrapedURLs(_ context.Context) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]struct{}, len(r.teams))
	for _, row := range r.teams {
		out[row.Key.SourceURL] = struct{}{}
	}
	for _, row := range r.players {
		out[row.Key.SourceURL] = struct{}{}
	}
	return out, nil
}

func (r *MatchReportRepository) Teams() []TeamRow {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]TeamRow, 0, len(r.teams))
	for _, row := range r.teams {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.SourceURL < out[j].Key.SourceURL })
	return out
}

func (r *MatchReportRepository) Players() []PlayerRow {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]PlayerRow, 0, len(r.players))
	for _, row := range r.players {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.SourceURL != out[j].Key.SourceURL {
			return out[i].Key.SourceURL < out[j].Key.SourceURL
		}
		if out[i].Record.Side != out[j].Record.Side {
			return out[i].Record.Side == matchreport.SideHome
		}
		return out[i].Record.PlayerCode < out[j].Record.PlayerCode
	})
	return out
}

// Events returns the stored shots of one report in ordinal order.
func (r *MatchReportRepository) Events(sourceURL string) []matchreport.ShotEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []matchreport.ShotEvent
	for k, s := range r.events {
		if k.url == sourceURL {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out
}

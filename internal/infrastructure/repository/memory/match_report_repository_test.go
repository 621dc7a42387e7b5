package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	"github.com/Bennylang23/autobeluga/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportURL = "https://fbref.com/en/matches/cc5b4244/Manchester-United-Fulham-August-16-2024-Premier-League"

func batchWithShots(n int) matchreport.Batch {
	b := matchreport.Batch{
		Key: matchreport.MatchKey{
			Date:        time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC),
			HomeTeam:    "Manchester Utd",
			AwayTeam:    "Fulham",
			Competition: "Premier League",
			SourceURL:   reportURL,
		},
		Score: "1 : 0",
		Players: []matchreport.PlayerStatRecord{
			*matchreport.NewPlayerStatRecord(matchreport.SideHome, "p1000001", "Bruno Fernandes"),
			*matchreport.NewPlayerStatRecord(matchreport.SideAway, "p5000005", "Alex Iwobi"),
		},
	}
	for i := 1; i <= n; i++ {
		b.Shots = append(b.Shots, matchreport.ShotEvent{Ordinal: i, Minute: "10", PlayerName: "Bruno Fernandes"})
	}
	return b
}

func TestMatchReportRepository_WriteIsIdempotent(t *testing.T) {
	repo := NewMatchReportRepository()
	ctx := context.Background()

	require.NoError(t, repo.WriteBatch(ctx, batchWithShots(3)))
	teams, players, events := repo.Teams(), repo.Players(), repo.Events(reportURL)

	require.NoError(t, repo.WriteBatch(ctx, batchWithShots(3)))
	assert.Equal(t, teams, repo.Teams())
	assert.Equal(t, players, repo.Players())
	assert.Equal(t, events, repo.Events(reportURL))
	assert.Len(t, repo.Teams(), 1)
	assert.Len(t, repo.Players(), 2)
	assert.Len(t, repo.Events(reportURL), 3)
}

func TestMatchReportRepository_RewriteDropsSurplusShots(t *testing.T) {
	repo := NewMatchReportRepository()
	ctx := context.Background()

	require.NoError(t, repo.WriteBatch(ctx, batchWithShots(3)))
	require.NoError(t, repo.WriteBatch(ctx, batchWithShots(1)))
	assert.Len(t, repo.Events(reportURL), 1)

	scraped, err := repo.ScrapedURLs(ctx)
	require.NoError(t, err)
	assert.Contains(t, scraped, reportURL)
}

func TestMatchReportRepository_RewriteDropsPlayersNoLongerExtracted(t *testing.T) {
	repo := NewMatchReportRepository()
	ctx := context.Background()

	other := batchWithShots(0)
	other.Key.HomeTeam, other.Key.AwayTeam = "Ipswich", "Liverpool"
	other.Key.SourceURL = "https://fbref.com/en/matches/a3eb7a37/Ipswich-Town-Liverpool-August-17-2024-Premier-League"
	require.NoError(t, repo.WriteBatch(ctx, other))

	require.NoError(t, repo.WriteBatch(ctx, batchWithShots(1)))
	shrunk := batchWithShots(1)
	shrunk.Players = shrunk.Players[:1]
	require.NoError(t, repo.WriteBatch(ctx, shrunk))

	var codes []string
	for _, row := range repo.Players() {
		if row.Key.SourceURL == reportURL {
			codes = append(codes, row.Record.PlayerCode)
		}
	}
	assert.Equal(t, []string{"p1000001"}, codes)
	assert.Len(t, repo.Players(), 3)
}

func TestScheduleRepository_ListWithReports(t *testing.T) {
	d1 := time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	repo := NewScheduleRepository([]schedule.Fixture{
		{Date: d2, HomeTeam: "Brighton", AwayTeam: "Everton", MatchReportURL: "/en/matches/b"},
		{Date: d1, HomeTeam: "Manchester Utd", AwayTeam: "Fulham", MatchReportURL: "/en/matches/a"},
		{Date: d1, HomeTeam: "Ipswich", AwayTeam: "Liverpool", MatchReportURL: "  "},
	})

	got, err := repo.ListWithReports(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "/en/matches/a", got[0].MatchReportURL)
	assert.Equal(t, "/en/matches/b", got[1].MatchReportURL)
}

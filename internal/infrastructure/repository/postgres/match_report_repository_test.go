package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testReportURL = "https://fbref.com/en/matches/cc5b4244/Manchester-United-Fulham-August-16-2024-Premier-League"

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func sampleBatch() matchreport.Batch {
	key := matchreport.MatchKey{
		Date:        time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC),
		HomeTeam:    "Manchester Utd",
		AwayTeam:    "Fulham",
		Competition: "Premier League",
		SourceURL:   testReportURL,
	}

	bruno := matchreport.NewPlayerStatRecord(matchreport.SideHome, "p1000001", "Bruno Fernandes")
	bruno.Minutes = 90
	bruno.Starter = true
	bruno.Stats.SetCount(matchreport.StatShots, 3)
	bruno.Stats.SCA = 2.5

	iwobi := matchreport.NewPlayerStatRecord(matchreport.SideAway, "p5000005", "Alex Iwobi")
	iwobi.Minutes = 61
	iwobi.Sub.MarkOut(61)
	iwobi.Starter = true
	iwobi.Stats.SCA = 1.4

	players := []matchreport.PlayerStatRecord{*bruno, *iwobi}
	return matchreport.Batch{
		Key:   key,
		Score: "1 : 0",
		Home: matchreport.TeamAggregate{
			Side:       matchreport.SideHome,
			Identity:   matchreport.TeamIdentity{DisplayName: "Manchester Utd", Code: "19538871"},
			Formation:  "4-2-3-1",
			Possession: "55%",
			Totals:     matchreport.Summarize(matchreport.SideHome, players),
		},
		Away: matchreport.TeamAggregate{
			Side:          matchreport.SideAway,
			Identity:      matchreport.TeamIdentity{DisplayName: "Fulham", Code: "fd962109"},
			Formation:     "Unknown",
			Possession:    "45%",
			Substitutions: 1,
			Totals:        matchreport.Summarize(matchreport.SideAway, players),
		},
		Players: players,
		Shots: []matchreport.ShotEvent{
			{Ordinal: 1, Minute: "23", PlayerCode: "p1000001", PlayerName: "Bruno Fernandes", Team: "Manchester Utd", Outcome: "Saved"},
			{Ordinal: 2, Minute: "55", PlayerName: "Alex Iwobi"},
		},
	}
}

func TestMatchReportColumnsMatchValues(t *testing.T) {
	b := sampleBatch()

	assert.Len(t, teamColumns(), 71)
	assert.Len(t, teamValues(b), len(teamColumns()))
	assert.Len(t, playerColumns(), 41)
	assert.Len(t, playerValues(b, b.Players[0]), len(playerColumns()))

	cols := teamColumns()
	vals := teamValues(b)
	byCol := make(map[string]any, len(cols))
	for i, c := range cols {
		byCol[c] = vals[i]
	}
	assert.Equal(t, "2024-08-16", byCol["date"])
	assert.Equal(t, "Fulham @ Manchester Utd", byCol["matchup"])
	assert.Equal(t, 3, byCol["home_shots"])
	assert.Equal(t, 2, byCol["home_sca"])
	assert.Equal(t, 1, byCol["away_sca"])
	assert.Equal(t, 1, byCol["away_subs"])
	assert.Equal(t, "fd962109", byCol["away_team_id"])

	pcols := playerColumns()
	pvals := playerValues(b, b.Players[1])
	byCol = make(map[string]any, len(pcols))
	for i, c := range pcols {
		byCol[c] = pvals[i]
	}
	assert.Equal(t, "Fulham", byCol["squad"])
	assert.Equal(t, "Manchester Utd", byCol["opponent"])
	assert.Equal(t, "away", byCol["home_away"])
	assert.Equal(t, "yes", byCol["starter"])
	assert.Equal(t, "Out | 61’", byCol["sub_in_out"])
	assert.Equal(t, 1.4, byCol["sca"])
}

func TestMatchEventRowNullsBlankFields(t *testing.T) {
	row := matchEventRow(testReportURL, sampleBatch().Shots[1])
	assert.Equal(t, 2, row.RowOrdinal)
	assert.False(t, row.PlayerID.Valid)
	assert.False(t, row.Squad.Valid)
	assert.Equal(t, sql.NullString{}, row.SCA1Event)
}

func TestMatchReportRepository_WriteBatchCommits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchReportRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO all_matchups_teams (date, matchup, comp,")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO all_matchups_players (date, matchup, comp,") + ".*" +
		regexp.QuoteMeta("ON CONFLICT (date, matchup, player_id, home_away) DO UPDATE SET")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO match_events (match_report_url, row_ordinal, minute,") + ".*" +
		regexp.QuoteMeta("ON CONFLICT (match_report_url, row_ordinal) DO UPDATE SET minute = EXCLUDED.minute")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(deleteStalePlayersQuery)).
		WithArgs("2024-08-16", "Fulham @ Manchester Utd", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteStaleEventsQuery)).
		WithArgs(testReportURL, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, repo.WriteBatch(context.Background(), sampleBatch()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchReportRepository_WriteBatchRollsBackWhenShotInsertFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchReportRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO all_matchups_teams")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO all_matchups_players")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO match_events")).
		WillReturnError(errors.New("pq: value too long for type character varying(16)"))
	mock.ExpectRollback()

	err := repo.WriteBatch(context.Background(), sampleBatch())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert shot rows")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchReportRepository_WriteBatchWithoutShotsClearsOldRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchReportRepository(db)
	batch := sampleBatch()
	batch.Shots = nil

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO all_matchups_teams")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO all_matchups_players")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(deleteStalePlayersQuery)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteStaleEventsQuery)).
		WithArgs(testReportURL, 0).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.WriteBatch(context.Background(), batch))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlayerRowKeys(t *testing.T) {
	assert.Equal(t, pq.StringArray{"p1000001:home", "p5000005:away"}, playerRowKeys(sampleBatch()))
	assert.Empty(t, playerRowKeys(matchreport.Batch{}))
}

func TestMatchReportRepository_WriteBatchRollsBackWhenStalePlayerDeleteFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchReportRepository(db)
	batch := sampleBatch()
	batch.Shots = nil

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO all_matchups_teams")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO all_matchups_players")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(deleteStalePlayersQuery)).
		WillReturnError(errors.New("pq: canceling statement due to user request"))
	mock.ExpectRollback()

	err := repo.WriteBatch(context.Background(), batch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete stale player rows")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchReportRepository_ScrapedURLsUnionsBothTables(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT match_report_url FROM all_matchups_players WHERE match_report_url IS NOT NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"match_report_url"}).AddRow("a").AddRow("b"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT match_report_url FROM all_matchups_teams WHERE match_report_url IS NOT NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"match_report_url"}).AddRow("b").AddRow("c"))

	got, err := repo.ScrapedURLs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}, "c": {}}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_ListWithReports(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleRepository(db)

	day := time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT date, home, away, comp, match_report FROM schedule WHERE match_report IS NOT NULL AND btrim(match_report) <> $1 ORDER BY date ASC, id ASC")).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"date", "home", "away", "comp", "match_report"}).
			AddRow(day, "Manchester Utd", "Fulham", nil, "/en/matches/cc5b4244/x"))

	got, err := repo.ListWithReports(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Fulham", got[0].AwayTeam)
	assert.Equal(t, "", got[0].Competition)
	assert.Equal(t, "/en/matches/cc5b4244/x", got[0].MatchReportURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNullableString(t *testing.T) {
	assert.Equal(t, sql.NullString{}, nullableString("  "))
	assert.Equal(t, sql.NullString{String: "Saved", Valid: true}, nullableString(" Saved "))
}

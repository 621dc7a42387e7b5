package postgres

import (
	"context"
	"fmt"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	qb "github.com/Bennylang23/autobeluga/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	deleteStaleEventsQuery  = `DELETE FROM match_events WHERE match_report_url = $1 AND row_ordinal > $2`
	deleteStalePlayersQuery = `DELETE FROM all_matchups_players WHERE date = $1 AND matchup = $2 AND NOT (player_id || ':' || home_away = ANY($3))`
)

type MatchReportRepository struct {
	db *sqlx.DB
}

func NewMatchReportRepository(db *sqlx.DB) *MatchReportRepository {
	return &MatchReportRepository{db: db}
}

// WriteBatch upserts the team row, every player row and every shot row of one match in a
// single transaction. Player rows of the match that the batch no longer contains and shot rows
// beyond the batch's last ordinal are removed, so a rewrite converges on the batch exactly.
func (r *MatchReportRepository) WriteBatch(ctx context.Context, batch matchreport.Batch) error {
	teamQuery, teamArgs, err := qb.InsertInto(teamsTable).
		Columns(teamColumns()...).
		Values(teamValues(batch)...).
		OnConflict(teamConflictKey...).
		DoUpdateExcluded().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert team row query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx write match batch: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, teamQuery, teamArgs...); err != nil {
		return fmt.Errorf("upsert team row: %w", err)
	}

	if len(batch.Players) > 0 {
		players := qb.InsertInto(playersTable).Columns(playerColumns()...)
		for _, p := range batch.Players {
			players.Values(playerValues(batch, p)...)
		}
		query, args, err := players.OnConflict(playerConflictKey...).DoUpdateExcluded().ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert player rows query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert player rows: %w", err)
		}
	}

	if len(batch.Shots) > 0 {
		rows := make([]matchEventTableModel, 0, len(batch.Shots))
		for _, s := range batch.Shots {
			rows = append(rows, matchEventRow(batch.Key.SourceURL, s))
		}
		insert, err := qb.InsertModels(eventsTable, rows)
		if err != nil {
			return fmt.Errorf("build upsert shot rows query: %w", err)
		}
		query, args, err := insert.OnConflict(eventConflictKey...).DoUpdateExcluded().ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert shot rows query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert shot rows: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, deleteStalePlayersQuery, batch.Key.DateString(), batch.Key.Matchup(), playerRowKeys(batch)); err != nil {
		return fmt.Errorf("delete stale player rows: %w", err)
	}

	if _, err := tx.ExecContext(ctx, deleteStaleEventsQuery, batch.Key.SourceURL, len(batch.Shots)); err != nil {
		return fmt.Errorf("delete stale shot rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx write match batch: %w", err)
	}
	return nil
}

// ScrapedURLs returns every report URL present in either the team or the player table.
func (r *MatchReportRepository) ScrapedURLs(ctx context.Context) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	for _, table := range []string{playersTable, teamsTable} {
		query, args, err := qb.SelectDistinct("match_report_url").
			From(table).
			Where(qb.IsNotNull("match_report_url")).
			ToSQL()
		if err != nil {
			return nil, fmt.Errorf("build select scraped urls from %s query: %w", table, err)
		}

		var urls []string
		if err := r.db.SelectContext(ctx, &urls, query, args...); err != nil {
			return nil, fmt.Errorf("select scraped urls from %s: %w", table, err)
		}
		for _, u := range urls {
			out[u] = struct{}{}
		}
	}
	return out, nil
}

// playerRowKeys renders the (player_id, home_away) part of each player's natural key the way
// deleteStalePlayersQuery concatenates it.
func playerRowKeys(batch matchreport.Batch) pq.StringArray {
	keys := make(pq.StringArray, 0, len(batch.Players))
	for _, p := range batch.Players {
		keys = append(keys, p.PlayerCode+":"+string(p.Side))
	}
	return keys
}

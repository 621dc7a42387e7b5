package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Bennylang23/autobeluga/internal/domain/schedule"
	qb "github.com/Bennylang23/autobeluga/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type scheduleTableModel struct {
	Date        time.Time      `db:"date"`
	Home        string         `db:"home"`
	Away        string         `db:"away"`
	Comp        sql.NullString `db:"comp"`
	MatchReport sql.NullString `db:"match_report"`
}

type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) ListWithReports(ctx context.Context) ([]schedule.Fixture, error) {
	query, args, err := qb.Select("date", "home", "away", "comp", "match_report").
		From("schedule").
		Where(
			qb.IsNotNull("match_report"),
			qb.Expr("btrim(match_report) <> ?", ""),
		).
		OrderBy("date ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list schedule with reports query: %w", err)
	}

	var rows []scheduleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list schedule with reports: %w", err)
	}

	out := make([]schedule.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, schedule.Fixture{
			Date:           row.Date,
			HomeTeam:       row.Home,
			AwayTeam:       row.Away,
			Competition:    row.Comp.String,
			MatchReportURL: row.MatchReport.String,
		})
	}
	return out, nil
}

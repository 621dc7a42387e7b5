package postgres

import (
	"database/sql"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
)

const (
	teamsTable   = "all_matchups_teams"
	playersTable = "all_matchups_players"
	eventsTable  = "match_events"
)

var (
	teamConflictKey   = []string{"date", "matchup", "comp"}
	playerConflictKey = []string{"date", "matchup", "player_id", "home_away"}
	eventConflictKey  = []string{"match_report_url", "row_ordinal"}
)

// teamColumns lists the all_matchups_teams columns in insert order; teamValues follows it.
func teamColumns() []string {
	cols := []string{
		"date", "matchup", "comp",
		"home_squad", "away_squad",
		"score",
		"home_formation", "away_formation",
		"home_possession", "away_possession",
		"home_subs", "away_subs",
	}
	for _, f := range matchreport.StatFields() {
		if f.Fractional() {
			continue
		}
		cols = append(cols, "home_"+f.Column(), "away_"+f.Column())
	}
	return append(cols,
		"match_report_url",
		"home_sca", "away_sca",
		"home_team_id", "away_team_id",
	)
}

func teamValues(b matchreport.Batch) []any {
	home, away := b.Home, b.Away
	vals := []any{
		b.Key.DateString(), b.Key.Matchup(), b.Key.Competition,
		home.Identity.DisplayName, away.Identity.DisplayName,
		b.Score,
		home.Formation, away.Formation,
		home.Possession, away.Possession,
		home.Substitutions, away.Substitutions,
	}
	for _, f := range matchreport.StatFields() {
		if f.Fractional() {
			continue
		}
		vals = append(vals, home.Totals.Count(f), away.Totals.Count(f))
	}
	return append(vals,
		b.Key.SourceURL,
		home.SCATotal(), away.SCATotal(),
		home.Identity.Code, away.Identity.Code,
	)
}

func playerColumns() []string {
	cols := []string{
		"date", "matchup", "comp",
		"player", "player_id", "position", "squad", "opponent", "home_away",
		"minutes", "starter",
	}
	for _, f := range matchreport.StatFields() {
		cols = append(cols, f.Column())
	}
	return append(cols, "sub_in_out", "match_report_url")
}

func playerValues(b matchreport.Batch, p matchreport.PlayerStatRecord) []any {
	squad := b.Team(p.Side).Identity.DisplayName
	opponent := b.Team(p.Side.Opposite()).Identity.DisplayName
	vals := []any{
		b.Key.DateString(), b.Key.Matchup(), b.Key.Competition,
		p.Name, p.PlayerCode, p.Position, squad, opponent, string(p.Side),
		p.Minutes, p.StarterFlag(),
	}
	for _, f := range matchreport.StatFields() {
		vals = append(vals, p.Stats.Value(f))
	}
	return append(vals, p.Sub.String(), b.Key.SourceURL)
}

type matchEventTableModel struct {
	MatchReportURL string         `db:"match_report_url"`
	RowOrdinal     int            `db:"row_ordinal"`
	Minute         string         `db:"minute"`
	PlayerID       sql.NullString `db:"player_id"`
	Player         string         `db:"player"`
	Squad          sql.NullString `db:"squad"`
	Outcome        sql.NullString `db:"outcome"`
	Distance       sql.NullString `db:"distance"`
	BodyPart       sql.NullString `db:"body_part"`
	SCA1PlayerID   sql.NullString `db:"sca_1_player_id"`
	SCA1Player     sql.NullString `db:"sca_1_player"`
	SCA1Event      sql.NullString `db:"sca_1_event"`
	SCA2PlayerID   sql.NullString `db:"sca_2_player_id"`
	SCA2Player     sql.NullString `db:"sca_2_player"`
	SCA2Event      sql.NullString `db:"sca_2_event"`
}

func matchEventRow(sourceURL string, s matchreport.ShotEvent) matchEventTableModel {
	return matchEventTableModel{
		MatchReportURL: sourceURL,
		RowOrdinal:     s.Ordinal,
		Minute:         s.Minute,
		PlayerID:       nullableString(s.PlayerCode),
		Player:         s.PlayerName,
		Squad:          nullableString(s.Team),
		Outcome:        nullableString(s.Outcome),
		Distance:       nullableString(s.Distance),
		BodyPart:       nullableString(s.BodyPart),
		SCA1PlayerID:   nullableString(s.Creators[0].PlayerCode),
		SCA1Player:     nullableString(s.Creators[0].PlayerName),
		SCA1Event:      nullableString(s.Creators[0].Action),
		SCA2PlayerID:   nullableString(s.Creators[1].PlayerCode),
		SCA2Player:     nullableString(s.Creators[1].PlayerName),
		SCA2Event:      nullableString(s.Creators[1].Action),
	}
}

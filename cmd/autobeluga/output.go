package main

import (
	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	"github.com/Bennylang23/autobeluga/internal/usecase"
)

type previewOutput struct {
	Result usecase.MatchResult `json:"result"`
	Batch  batchView           `json:"batch"`
}

type batchView struct {
	Date        string       `json:"date"`
	Matchup     string       `json:"matchup"`
	Competition string       `json:"comp"`
	URL         string       `json:"match_report_url"`
	Score       string       `json:"score"`
	Home        teamView     `json:"home"`
	Away        teamView     `json:"away"`
	Players     []playerView `json:"players"`
	Shots       []shotView   `json:"shots"`
}

type teamView struct {
	Squad         string         `json:"squad"`
	TeamID        string         `json:"team_id"`
	Formation     string         `json:"formation"`
	Possession    string         `json:"possession"`
	Substitutions int            `json:"subs"`
	SCA           int            `json:"sca"`
	Totals        map[string]any `json:"totals"`
}

type playerView struct {
	Player   string         `json:"player"`
	PlayerID string         `json:"player_id"`
	HomeAway string         `json:"home_away"`
	Position string         `json:"position"`
	Minutes  int            `json:"minutes"`
	Starter  string         `json:"starter"`
	SubInOut string         `json:"sub_in_out"`
	Stats    map[string]any `json:"stats"`
}

type shotView struct {
	Ordinal  int    `json:"row_ordinal"`
	Minute   string `json:"minute"`
	PlayerID string `json:"player_id,omitempty"`
	Player   string `json:"player"`
	Squad    string `json:"squad,omitempty"`
	Outcome  string `json:"outcome,omitempty"`
	Distance string `json:"distance,omitempty"`
	BodyPart string `json:"body_part,omitempty"`
	SCA1     string `json:"sca_1,omitempty"`
	SCA2     string `json:"sca_2,omitempty"`
}

func newBatchView(b matchreport.Batch) batchView {
	v := batchView{
		Date:        b.Key.DateString(),
		Matchup:     b.Key.Matchup(),
		Competition: b.Key.Competition,
		URL:         b.Key.SourceURL,
		Score:       b.Score,
		Home:        newTeamView(b.Home),
		Away:        newTeamView(b.Away),
		Players:     make([]playerView, 0, len(b.Players)),
		Shots:       make([]shotView, 0, len(b.Shots)),
	}
	for _, p := range b.Players {
		v.Players = append(v.Players, playerView{
			Player:   p.Name,
			PlayerID: p.PlayerCode,
			HomeAway: string(p.Side),
			Position: p.Position,
			Minutes:  p.Minutes,
			Starter:  p.StarterFlag(),
			SubInOut: p.Sub.String(),
			Stats:    statMap(p.Stats, false),
		})
	}
	for _, s := range b.Shots {
		v.Shots = append(v.Shots, shotView{
			Ordinal:  s.Ordinal,
			Minute:   s.Minute,
			PlayerID: s.PlayerCode,
			Player:   s.PlayerName,
			Squad:    s.Team,
			Outcome:  s.Outcome,
			Distance: s.Distance,
			BodyPart: s.BodyPart,
			SCA1:     creatorLabel(s.Creators[0]),
			SCA2:     creatorLabel(s.Creators[1]),
		})
	}
	return v
}

func newTeamView(t matchreport.TeamAggregate) teamView {
	return teamView{
		Squad:         t.Identity.DisplayName,
		TeamID:        t.Identity.Code,
		Formation:     t.Formation,
		Possession:    t.Possession,
		Substitutions: t.Substitutions,
		SCA:           t.SCATotal(),
		Totals:        statMap(t.Totals, true),
	}
}

// statMap keys values by storage column. Team totals drop the fractional SCA sum, which is
// reported as the rounded team SCA instead.
func statMap(line matchreport.StatLine, countsOnly bool) map[string]any {
	out := make(map[string]any)
	for _, f := range matchreport.StatFields() {
		if countsOnly && f.Fractional() {
			continue
		}
		out[f.Column()] = line.Value(f)
	}
	return out
}

func creatorLabel(a matchreport.ShotCreatingAction) string {
	switch {
	case a.PlayerName == "" && a.Action == "":
		return ""
	case a.Action == "":
		return a.PlayerName
	default:
		return a.PlayerName + " (" + a.Action + ")"
	}
}

package matchreport

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// SentinelCode stands in for any team or player identity the document does not resolve.
const SentinelCode = "0000000000"

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

func (s Side) Opposite() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// MatchKey is the schedule context of one match. SourceURL is the natural dedup key in storage.
type MatchKey struct {
	Date        time.Time `validate:"required"`
	HomeTeam    string    `validate:"required"`
	AwayTeam    string    `validate:"required"`
	Competition string    `validate:"required"`
	SourceURL   string    `validate:"required,url"`
}

func (k MatchKey) Matchup() string {
	return fmt.Sprintf("%s @ %s", strings.TrimSpace(k.AwayTeam), strings.TrimSpace(k.HomeTeam))
}

func (k MatchKey) DateString() string {
	return k.Date.Format("2006-01-02")
}

type TeamIdentity struct {
	DisplayName string
	Code        string
}

func (t TeamIdentity) Resolved() bool {
	return t.Code != "" && t.Code != SentinelCode
}

type PlayerStatRecord struct {
	Side       Side
	PlayerCode string
	Name       string
	Position   string
	Minutes    int
	Starter    bool
	Sub        SubstitutionTag
	Stats      StatLine
}

// NewPlayerStatRecord returns a record with the zero-initialized stat line and textual defaults.
func NewPlayerStatRecord(side Side, code, name string) *PlayerStatRecord {
	return &PlayerStatRecord{
		Side:       side,
		PlayerCode: code,
		Name:       name,
		Position:   "N/A",
	}
}

func (p PlayerStatRecord) StarterFlag() string {
	if p.Starter {
		return "yes"
	}
	return "no"
}

type TeamAggregate struct {
	Side          Side
	Identity      TeamIdentity
	Formation     string
	Possession    string
	Substitutions int
	Totals        StatLine
}

// SCATotal is the team-level shot-creating-action count: the summed fractional values rounded
// half to even, so 2.5 stores as 2.
func (a TeamAggregate) SCATotal() int {
	return int(math.RoundToEven(a.Totals.SCA))
}

type ShotCreatingAction struct {
	PlayerCode string
	PlayerName string
	Action     string
}

type ShotEvent struct {
	Ordinal    int
	Minute     string
	PlayerCode string
	PlayerName string
	Team       string
	Outcome    string
	Distance   string
	BodyPart   string
	Creators   [2]ShotCreatingAction
}

// Batch is the closed set of rows one match produces. It is written atomically or not at all.
type Batch struct {
	Key     MatchKey
	Score   string
	Home    TeamAggregate
	Away    TeamAggregate
	Players []PlayerStatRecord
	Shots   []ShotEvent
}

func (b Batch) Team(side Side) TeamAggregate {
	if side == SideAway {
		return b.Away
	}
	return b.Home
}

func (b Batch) PlayersOf(side Side) []PlayerStatRecord {
	out := make([]PlayerStatRecord, 0, len(b.Players))
	for _, p := range b.Players {
		if p.Side == side {
			out = append(out, p)
		}
	}
	return out
}

type WarningKind string

const (
	WarningIdentity     WarningKind = "identity"
	WarningSubstitution WarningKind = "substitution"
	WarningShot         WarningKind = "shot"
	WarningStructure    WarningKind = "structure"
)

type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

// Diagnostics collects the non-fatal findings of one extraction.
type Diagnostics struct {
	Warnings []Warning
}

func (d *Diagnostics) Warn(kind WarningKind, format string, args ...any) {
	d.Warnings = append(d.Warnings, Warning{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

func (d Diagnostics) Count(kind WarningKind) int {
	n := 0
	for _, w := range d.Warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

func (d Diagnostics) Empty() bool {
	return len(d.Warnings) == 0
}

package fbref

import (
	"fmt"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	"github.com/Bennylang23/autobeluga/internal/usecase"
	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
)

// ErrMissingScorebox means the document is not a match report.
var ErrMissingScorebox = crerr.Mark(crerr.New("scorebox not found"), usecase.ErrStructural)

type Extractor struct {
	resolver *IdentityResolver
}

// NewExtractor builds an extractor; overrides extend DefaultTeamCodeOverrides.
func NewExtractor(overrides map[string]string) *Extractor {
	return &Extractor{resolver: NewIdentityResolver(overrides)}
}

// Extract parses raw report bytes and derives the full batch for one match.
func (e *Extractor) Extract(raw []byte, key matchreport.MatchKey) (matchreport.Batch, matchreport.Diagnostics, error) {
	doc, err := ParseDocument(raw)
	if err != nil {
		return matchreport.Batch{}, matchreport.Diagnostics{}, crerr.Mark(err, usecase.ErrStructural)
	}
	return e.ExtractDocument(doc, key)
}

// ExtractDocument is pure: it reads the document and the schedule context only.
func (e *Extractor) ExtractDocument(doc *goquery.Document, key matchreport.MatchKey) (matchreport.Batch, matchreport.Diagnostics, error) {
	var diag matchreport.Diagnostics

	scorebox := doc.Find("div.scorebox").First()
	if scorebox.Length() == 0 {
		return matchreport.Batch{}, diag, fmt.Errorf("extract %s: %w", key.SourceURL, ErrMissingScorebox)
	}

	home, away := e.resolver.Resolve(key.HomeTeam, key.AwayTeam, DiscoverTeamRefs(scorebox), &diag)
	meta := ExtractMetadata(doc, scorebox, &diag)

	book := AggregatePlayers(doc, home, away, &diag)
	subs := ApplySubstitutions(book, ScanSubstitutions(doc, &diag), &diag)

	players := book.Records()
	for i := range players {
		players[i].Starter = matchreport.ClassifyStarter(players[i].Minutes, players[i].Sub) == matchreport.RoleStarter
	}

	batch := matchreport.Batch{
		Key:   key,
		Score: meta.Score,
		Home: matchreport.TeamAggregate{
			Side:          matchreport.SideHome,
			Identity:      home,
			Formation:     meta.HomeFormation,
			Possession:    meta.HomePossession,
			Substitutions: subs[matchreport.SideHome],
			Totals:        matchreport.Summarize(matchreport.SideHome, players),
		},
		Away: matchreport.TeamAggregate{
			Side:          matchreport.SideAway,
			Identity:      away,
			Formation:     meta.AwayFormation,
			Possession:    meta.AwayPossession,
			Substitutions: subs[matchreport.SideAway],
			Totals:        matchreport.Summarize(matchreport.SideAway, players),
		},
		Players: players,
		Shots:   ExtractShots(doc, &diag),
	}
	return batch, diag, nil
}

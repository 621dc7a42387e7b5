package fbref

import (
	"fmt"
	"regexp"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	"github.com/PuerkitoBio/goquery"
)

const (
	unknownFormation  = "Unknown"
	defaultPossession = "0%"
)

var formationPattern = regexp.MustCompile(`\(([^)]+)\)`)

type Metadata struct {
	Score          string
	HomePossession string
	AwayPossession string
	HomeFormation  string
	AwayFormation  string
}

func ExtractMetadata(doc *goquery.Document, scorebox *goquery.Selection, diag *matchreport.Diagnostics) Metadata {
	meta := Metadata{
		Score:          extractScore(scorebox, diag),
		HomePossession: defaultPossession,
		AwayPossession: defaultPossession,
	}
	if home, away, ok := extractPossession(doc); ok {
		meta.HomePossession, meta.AwayPossession = home, away
	} else {
		diag.Warn(matchreport.WarningStructure, "possession block not found, defaulting to %s", defaultPossession)
	}
	meta.HomeFormation = extractFormation(doc, "a")
	meta.AwayFormation = extractFormation(doc, "b")
	return meta
}

func extractScore(scorebox *goquery.Selection, diag *matchreport.Diagnostics) string {
	scores := scorebox.Find("div.score")
	if scores.Length() != 2 {
		diag.Warn(matchreport.WarningStructure, "expected 2 score elements, found %d", scores.Length())
		return "0 : 0"
	}
	return fmt.Sprintf("%s : %s", text(scores.Eq(0)), text(scores.Eq(1)))
}

func extractPossession(doc *goquery.Document) (string, string, bool) {
	header := doc.Find(`div#team_stats th[colspan="2"]`).FilterFunction(func(_ int, th *goquery.Selection) bool {
		return text(th) == "Possession"
	}).First()
	if header.Length() == 0 {
		return "", "", false
	}
	row := header.Closest("tr")
	if row.Length() == 0 {
		return "", "", false
	}
	cells := row.NextAllFiltered("tr").First().Find("td")
	if cells.Length() != 2 {
		return "", "", false
	}

	home, away := defaultPossession, defaultPossession
	if strong := cells.Eq(0).Find("strong").First(); strong.Length() > 0 {
		home = text(strong)
	}
	if strong := cells.Eq(1).Find("strong").First(); strong.Length() > 0 {
		away = text(strong)
	}
	return home, away, true
}

// extractFormation reads the parenthesized token of a lineup header; lineup "a" is home, "b" away.
func extractFormation(doc *goquery.Document, lineupID string) string {
	header := doc.Find(fmt.Sprintf(`div#%s.lineup th[colspan="2"]`, lineupID)).First()
	if header.Length() == 0 {
		return unknownFormation
	}
	m := formationPattern.FindStringSubmatch(text(header))
	if len(m) != 2 {
		return unknownFormation
	}
	return m[1]
}

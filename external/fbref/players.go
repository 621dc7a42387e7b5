package fbref

import (
	"regexp"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	"github.com/PuerkitoBio/goquery"
)

type StatCategory string

const (
	CategorySummary      StatCategory = "summary"
	CategoryPassing      StatCategory = "passing"
	CategoryDefense      StatCategory = "defense"
	CategoryPossession   StatCategory = "possession"
	CategoryMisc         StatCategory = "misc"
	CategoryPassingTypes StatCategory = "passing_types"
)

var (
	statTablePattern = regexp.MustCompile(`^stats_.*_(summary|passing|defense|possession|misc|passing_types)$`)
	statTeamPattern  = regexp.MustCompile(`^stats_([^_]+)_`)
)

type playerKey struct {
	side matchreport.Side
	code string
}

type tableKey struct {
	side     matchreport.Side
	category StatCategory
}

// PlayerBook accumulates player records across category tables, keeping discovery order.
type PlayerBook struct {
	order   []playerKey
	records map[playerKey]*matchreport.PlayerStatRecord
	tables  map[tableKey]int
}

func NewPlayerBook() *PlayerBook {
	return &PlayerBook{
		records: make(map[playerKey]*matchreport.PlayerStatRecord, 40),
		tables:  make(map[tableKey]int, 12),
	}
}

func (b *PlayerBook) upsert(side matchreport.Side, code, name string) *matchreport.PlayerStatRecord {
	key := playerKey{side: side, code: code}
	if rec, ok := b.records[key]; ok {
		return rec
	}
	rec := matchreport.NewPlayerStatRecord(side, code, name)
	b.records[key] = rec
	b.order = append(b.order, key)
	return rec
}

func (b *PlayerBook) Get(side matchreport.Side, code string) (*matchreport.PlayerStatRecord, bool) {
	rec, ok := b.records[playerKey{side: side, code: code}]
	return rec, ok
}

// Records returns home players then away players, each in discovery order.
func (b *PlayerBook) Records() []matchreport.PlayerStatRecord {
	out := make([]matchreport.PlayerStatRecord, 0, len(b.order))
	for _, side := range []matchreport.Side{matchreport.SideHome, matchreport.SideAway} {
		for _, key := range b.order {
			if key.side == side {
				out = append(out, *b.records[key])
			}
		}
	}
	return out
}

// TablesSeen counts the category tables merged so far for one side.
func (b *PlayerBook) TablesSeen(side matchreport.Side, category StatCategory) int {
	return b.tables[tableKey{side: side, category: category}]
}

// AggregatePlayers walks every stat-category table belonging to one of the two resolved teams
// and merges its rows into the book. Tables of any other team code are ignored.
func AggregatePlayers(doc *goquery.Document, home, away matchreport.TeamIdentity, diag *matchreport.Diagnostics) *PlayerBook {
	book := NewPlayerBook()
	tables := 0
	doc.Find(`table[id^="stats_"]`).Each(func(_ int, table *goquery.Selection) {
		id := table.AttrOr("id", "")
		m := statTablePattern.FindStringSubmatch(id)
		if len(m) != 2 {
			return
		}
		team := statTeamPattern.FindStringSubmatch(id)
		if len(team) != 2 {
			return
		}

		var side matchreport.Side
		switch team[1] {
		case home.Code:
			side = matchreport.SideHome
		case away.Code:
			side = matchreport.SideAway
		default:
			return
		}
		tables++
		book.applyTable(side, StatCategory(m[1]), table)
	})
	if tables == 0 {
		diag.Warn(matchreport.WarningStructure, "no stat tables matched team codes home=%s away=%s", home.Code, away.Code)
		return book
	}
	// Minutes and positions only come from the summary table.
	for _, side := range []matchreport.Side{matchreport.SideHome, matchreport.SideAway} {
		if book.TablesSeen(side, CategorySummary) == 0 {
			diag.Warn(matchreport.WarningStructure, "no %s stat table for %s team, minutes and positions default", CategorySummary, side)
		}
	}
	return book
}

func (b *PlayerBook) applyTable(side matchreport.Side, category StatCategory, table *goquery.Selection) {
	body := table.Find("tbody").First()
	if body.Length() == 0 {
		return
	}
	b.tables[tableKey{side: side, category: category}]++
	body.Find("tr").Each(func(_ int, row *goquery.Selection) {
		playerCell := row.Find(`th[data-stat="player"]`).First()
		if playerCell.Length() == 0 {
			return
		}
		anchor := playerCell.Find(`a[href^="/en/players/"]`).First()
		if anchor.Length() == 0 {
			return
		}
		code, ok := playerCodeFromHref(anchor.AttrOr("href", ""))
		if !ok {
			code = matchreport.SentinelCode
		}
		rec := b.upsert(side, code, text(anchor))
		applyRow(rec, row)
	})
}

// applyRow copies every tracked cell present in the row. Later tables overwrite earlier values.
func applyRow(rec *matchreport.PlayerStatRecord, row *goquery.Selection) {
	for _, field := range matchreport.StatFields() {
		cell := dataStatCell(row, field.Source(), "td")
		if cell.Length() == 0 {
			continue
		}
		if field.Fractional() {
			rec.Stats.SCA = parseFraction(cell.Text())
			continue
		}
		rec.Stats.SetCount(field, parseCount(cell.Text()))
	}

	if cell := dataStatCell(row, "position", "td"); cell.Length() > 0 {
		rec.Position = text(cell)
		if rec.Position == "" {
			rec.Position = "N/A"
		}
	}
	if cell := dataStatCell(row, "minutes", "td"); cell.Length() > 0 {
		rec.Minutes = parseCount(cell.Text())
	}
}

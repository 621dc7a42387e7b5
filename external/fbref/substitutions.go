package fbref

import (
	"regexp"
	"strconv"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	"github.com/PuerkitoBio/goquery"
)

// eventMinutePattern takes the leading number of a minute marker; stoppage time ("90+2’")
// reads as the base minute.
var eventMinutePattern = regexp.MustCompile(`(\d+)(?:\+\d+)?\s*[’′']`)

type SubstitutionEvent struct {
	Side    matchreport.Side
	Minute  int
	InCode  string
	OutCode string
}

// ScanSubstitutions lists substitution events from the timeline in document order. Events
// without a side marker or without both player references are dropped.
func ScanSubstitutions(doc *goquery.Document, diag *matchreport.Diagnostics) []SubstitutionEvent {
	wrap := doc.Find("div#events_wrap").First()
	if wrap.Length() == 0 {
		diag.Warn(matchreport.WarningStructure, "event timeline not found, substitutions skipped")
		return nil
	}

	events := make([]SubstitutionEvent, 0, 10)
	wrap.Find("div").Each(func(_ int, ev *goquery.Selection) {
		if !hasClassPrefix(ev, "event") {
			return
		}
		icon := ev.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return hasClassContaining(s, "event_icon")
		}).First()
		if icon.Length() == 0 || !icon.HasClass("substitute_in") {
			return
		}

		var side matchreport.Side
		switch {
		case ev.HasClass("a"):
			side = matchreport.SideHome
		case ev.HasClass("b"):
			side = matchreport.SideAway
		default:
			return
		}

		info := icon.NextAllFiltered("div").First()
		if info.Length() == 0 {
			return
		}
		inCode, okIn := playerCodeFromHref(info.Find("a").First().AttrOr("href", ""))
		outCode, okOut := playerCodeFromHref(info.Find("small a").First().AttrOr("href", ""))
		if !okIn || !okOut {
			return
		}

		events = append(events, SubstitutionEvent{
			Side:    side,
			Minute:  parseEventMinute(text(ev.ChildrenFiltered("div").First())),
			InCode:  inCode,
			OutCode: outCode,
		})
	})
	return events
}

func parseEventMinute(raw string) int {
	m := eventMinutePattern.FindStringSubmatch(raw)
	if len(m) != 2 {
		return 0
	}
	minute, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return minute
}

// ApplySubstitutions tags both players of each event and returns the per-side counts. An event
// naming a player the side's stat tables never listed is skipped with a warning.
func ApplySubstitutions(book *PlayerBook, events []SubstitutionEvent, diag *matchreport.Diagnostics) map[matchreport.Side]int {
	counts := map[matchreport.Side]int{matchreport.SideHome: 0, matchreport.SideAway: 0}
	for _, ev := range events {
		in, okIn := book.Get(ev.Side, ev.InCode)
		out, okOut := book.Get(ev.Side, ev.OutCode)
		if !okIn || !okOut {
			diag.Warn(matchreport.WarningSubstitution, "%s substitution at %d’ references unknown player (in=%s out=%s)", ev.Side, ev.Minute, ev.InCode, ev.OutCode)
			continue
		}
		in.Sub.MarkIn(ev.Minute)
		out.Sub.MarkOut(ev.Minute)
		counts[ev.Side]++
	}
	return counts
}

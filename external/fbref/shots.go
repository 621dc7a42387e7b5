package fbref

import (
	"strings"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	"github.com/PuerkitoBio/goquery"
)

// ExtractShots parses the shot log. Spacer and partial-table rows are skipped, as is any row
// without a minute or a shooter name. Ordinals count retained rows from 1.
func ExtractShots(doc *goquery.Document, diag *matchreport.Diagnostics) []matchreport.ShotEvent {
	body := doc.Find("table#shots_all").First().Find("tbody").First()
	if body.Length() == 0 {
		diag.Warn(matchreport.WarningStructure, "shot log not found")
		return nil
	}

	shots := make([]matchreport.ShotEvent, 0, 32)
	body.ChildrenFiltered("tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("spacer") || row.HasClass("partial_table") {
			return
		}
		shot := matchreport.ShotEvent{
			Minute:     shotCell(row, "minute"),
			PlayerName: shotCell(row, "player"),
			PlayerCode: shotPlayerCode(row, "player"),
			Team:       shotCell(row, "team"),
			Outcome:    shotCell(row, "outcome"),
			Distance:   shotCell(row, "distance"),
			BodyPart:   shotCell(row, "body_part"),
			Creators: [2]matchreport.ShotCreatingAction{
				{
					PlayerCode: shotPlayerCode(row, "sca_1_player"),
					PlayerName: shotCell(row, "sca_1_player"),
					Action:     shotCell(row, "sca_1_type"),
				},
				{
					PlayerCode: shotPlayerCode(row, "sca_2_player"),
					PlayerName: shotCell(row, "sca_2_player"),
					Action:     shotCell(row, "sca_2_type"),
				},
			},
		}
		if shot.Minute == "" || shot.PlayerName == "" {
			return
		}
		if shot.PlayerCode == "" {
			diag.Warn(matchreport.WarningShot, "shot at %s by %q has no player identity", shot.Minute, shot.PlayerName)
		}
		shot.Ordinal = len(shots) + 1
		shots = append(shots, shot)
	})
	return shots
}

func shotCell(row *goquery.Selection, key string) string {
	return text(dataStatCell(row, key, "td", "th"))
}

// shotPlayerCode prefers the data-append-csv attribute and falls back to the fourth segment of
// the first linked href.
func shotPlayerCode(row *goquery.Selection, key string) string {
	cell := dataStatCell(row, key, "td", "th")
	if cell.Length() == 0 {
		return ""
	}
	if csv := strings.TrimSpace(cell.AttrOr("data-append-csv", "")); csv != "" {
		return csv
	}
	href, ok := cell.Find("a[href]").First().Attr("href")
	if !ok {
		return ""
	}
	parts := strings.Split(href, "/")
	if len(parts) > 3 {
		return parts[3]
	}
	return ""
}

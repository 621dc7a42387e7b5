package fbref

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var playerHrefPattern = regexp.MustCompile(`/en/players/([^/]+)/`)

// ParseDocument builds a queryable tree from raw report bytes.
func ParseDocument(raw []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse match report document: %w", err)
	}
	return doc, nil
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

func hasClassPrefix(s *goquery.Selection, prefix string) bool {
	for _, class := range strings.Fields(s.AttrOr("class", "")) {
		if strings.HasPrefix(class, prefix) {
			return true
		}
	}
	return false
}

func hasClassContaining(s *goquery.Selection, part string) bool {
	for _, class := range strings.Fields(s.AttrOr("class", "")) {
		if strings.Contains(class, part) {
			return true
		}
	}
	return false
}

// dataStatCell returns the first descendant cell carrying data-stat=key, restricted to tags.
func dataStatCell(row *goquery.Selection, key string, tags ...string) *goquery.Selection {
	selectors := make([]string, 0, len(tags))
	for _, tag := range tags {
		selectors = append(selectors, fmt.Sprintf(`%s[data-stat=%q]`, tag, key))
	}
	return row.Find(strings.Join(selectors, ", ")).First()
}

func playerCodeFromHref(href string) (string, bool) {
	m := playerHrefPattern.FindStringSubmatch(href)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// parseCount coerces a stat cell to an integer. Anything unparseable is zero.
func parseCount(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return v
}

func parseFraction(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

package matchreport

import (
	"regexp"
	"strings"
)

var haltingPattern = regexp.MustCompile(`/[0-9A-Za-z]{8}/[0-9A-Za-z]{8}/`)

// IsHaltingURL reports whether the report URL has two consecutive 8-character alphanumeric
// path segments, the shape the source site uses for placeholder reports.
func IsHaltingURL(raw string) bool {
	return haltingPattern.MatchString(strings.TrimSpace(raw))
}

// NormalizeReportURL turns schedule-provided links into absolute URLs. Links without a scheme
// ("fbref.com/...") get https, site-relative paths are resolved against baseURL.
func NormalizeReportURL(baseURL, raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return raw
	case strings.HasPrefix(raw, "/"):
		return strings.TrimRight(strings.TrimSpace(baseURL), "/") + raw
	default:
		return "https://" + raw
	}
}

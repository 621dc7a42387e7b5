package fbref

import (
	"regexp"
	"strings"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	"github.com/PuerkitoBio/goquery"
)

var squadHrefPattern = regexp.MustCompile(`/en/squads/([^/]+)/`)

// DefaultTeamCodeOverrides pins schedule names whose document spelling never matches.
var DefaultTeamCodeOverrides = map[string]string{
	"Wolves":         "8cec06e1",
	"Manchester Utd": "19538871",
	"Newcastle Utd":  "b2b47a98",
}

// TeamRef is one squad anchor found in the scorebox.
type TeamRef struct {
	Name string
	Code string
}

// DiscoverTeamRefs lists squad anchors, one per distinct name. A name keeps the position of its
// first anchor and the code of its last one.
func DiscoverTeamRefs(scorebox *goquery.Selection) []TeamRef {
	refs := make([]TeamRef, 0, 2)
	index := make(map[string]int, 2)
	scorebox.Find(`a[href^="/en/squads/"]`).Each(func(_ int, a *goquery.Selection) {
		name := text(a)
		code := matchreport.SentinelCode
		if m := squadHrefPattern.FindStringSubmatch(a.AttrOr("href", "")); len(m) == 2 {
			code = m[1]
		}

		if i, ok := index[name]; ok {
			refs[i].Code = code
			return
		}
		index[name] = len(refs)
		refs = append(refs, TeamRef{Name: name, Code: code})
	})
	return refs
}

type IdentityResolver struct {
	overrides map[string]string
}

// NewIdentityResolver merges extra overrides over DefaultTeamCodeOverrides.
func NewIdentityResolver(extra map[string]string) *IdentityResolver {
	overrides := make(map[string]string, len(DefaultTeamCodeOverrides)+len(extra))
	for name, code := range DefaultTeamCodeOverrides {
		overrides[name] = code
	}
	for name, code := range extra {
		name = strings.TrimSpace(name)
		code = strings.TrimSpace(code)
		if name == "" || code == "" {
			continue
		}
		overrides[name] = code
	}
	return &IdentityResolver{overrides: overrides}
}

// Resolve maps both schedule names onto document codes. Lookup order: exact name, then
// case-insensitive substring in discovery order (first match wins, ties are not broken
// further), then the override table, then the complementary fallback. Whatever is left
// unresolved carries the sentinel code and a warning.
func (r *IdentityResolver) Resolve(homeName, awayName string, refs []TeamRef, diag *matchreport.Diagnostics) (matchreport.TeamIdentity, matchreport.TeamIdentity) {
	home := matchreport.TeamIdentity{DisplayName: homeName, Code: r.lookup(homeName, refs)}
	away := matchreport.TeamIdentity{DisplayName: awayName, Code: r.lookup(awayName, refs)}

	codes := distinctCodes(refs)
	switch {
	case home.Resolved() && !away.Resolved():
		away.Code = r.fallback(codes, home.Code, matchreport.SideAway, diag)
	case away.Resolved() && !home.Resolved():
		home.Code = r.fallback(codes, away.Code, matchreport.SideHome, diag)
	case !home.Resolved() && !away.Resolved():
		diag.Warn(matchreport.WarningIdentity, "both teams unresolved (home=%q away=%q), using sentinel codes", homeName, awayName)
	}

	if len(codes) > 2 {
		diag.Warn(matchreport.WarningIdentity, "more than two team codes discovered: %s", strings.Join(codes, ","))
	}

	return home, away
}

func (r *IdentityResolver) lookup(name string, refs []TeamRef) string {
	code := matchreport.SentinelCode
	found := false
	for _, ref := range refs {
		if ref.Name == name {
			code, found = ref.Code, true
			break
		}
	}
	if !found {
		needle := strings.ToLower(name)
		for _, ref := range refs {
			if strings.Contains(strings.ToLower(ref.Name), needle) {
				code = ref.Code
				break
			}
		}
	}
	if forced, ok := r.overrides[name]; ok {
		code = forced
	}
	return code
}

func (r *IdentityResolver) fallback(codes []string, resolved string, side matchreport.Side, diag *matchreport.Diagnostics) string {
	leftover := make([]string, 0, len(codes))
	for _, code := range codes {
		if code != resolved {
			leftover = append(leftover, code)
		}
	}
	if len(leftover) == 1 {
		return leftover[0]
	}
	diag.Warn(matchreport.WarningIdentity, "fallback not possible for %s team, leftover codes: [%s]", side, strings.Join(leftover, ","))
	return matchreport.SentinelCode
}

func distinctCodes(refs []TeamRef) []string {
	out := make([]string, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.Code]; ok {
			continue
		}
		seen[ref.Code] = struct{}{}
		out = append(out, ref.Code)
	}
	return out
}

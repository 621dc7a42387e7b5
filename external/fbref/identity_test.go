package fbref

import (
	"testing"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
)

func TestIdentityResolver_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		home, away   string
		refs         []TeamRef
		overrides    map[string]string
		wantHome     string
		wantAway     string
		wantWarnings int
	}{
		{
			name:     "exact names",
			home:     "Arsenal",
			away:     "Chelsea",
			refs:     []TeamRef{{Name: "Arsenal", Code: "18bb7c10"}, {Name: "Chelsea", Code: "cff3d9bb"}},
			wantHome: "18bb7c10",
			wantAway: "cff3d9bb",
		},
		{
			name:     "case insensitive substring",
			home:     "tottenham",
			away:     "Brighton",
			refs:     []TeamRef{{Name: "Tottenham Hotspur", Code: "361ca564"}, {Name: "Brighton & Hove Albion", Code: "d07537b9"}},
			wantHome: "361ca564",
			wantAway: "d07537b9",
		},
		{
			name:     "substring takes first in discovery order",
			home:     "United",
			away:     "Everton",
			refs:     []TeamRef{{Name: "West Ham United", Code: "7c21e445"}, {Name: "Newcastle United", Code: "b2b47a98"}, {Name: "Everton", Code: "d3fd31cc"}},
			wantHome: "7c21e445",
			wantAway: "d3fd31cc",
			// three codes discovered
			wantWarnings: 1,
		},
		{
			name:     "complementary fallback",
			home:     "Arsenal",
			away:     "Spurs",
			refs:     []TeamRef{{Name: "Arsenal", Code: "A"}, {Name: "Tottenham Hotspur", Code: "B"}},
			wantHome: "A",
			wantAway: "B",
		},
		{
			name:         "fallback not possible with three codes",
			home:         "Arsenal",
			away:         "Spurs",
			refs:         []TeamRef{{Name: "Arsenal", Code: "A"}, {Name: "Tottenham Hotspur", Code: "B"}, {Name: "Fulham", Code: "C"}},
			wantHome:     "A",
			wantAway:     matchreport.SentinelCode,
			wantWarnings: 2,
		},
		{
			name:         "both unresolved",
			home:         "Foo",
			away:         "Bar",
			refs:         []TeamRef{{Name: "Alpha", Code: "A"}, {Name: "Beta", Code: "B"}},
			wantHome:     matchreport.SentinelCode,
			wantAway:     matchreport.SentinelCode,
			wantWarnings: 1,
		},
		{
			name:     "built in override",
			home:     "Wolves",
			away:     "Leeds United",
			refs:     []TeamRef{{Name: "Wolverhampton Wanderers", Code: "8cec06e1"}, {Name: "Leeds United", Code: "5bfb9659"}},
			wantHome: "8cec06e1",
			wantAway: "5bfb9659",
		},
		{
			name:      "configured override beats lookup",
			home:      "Spurs",
			away:      "Fulham",
			refs:      []TeamRef{{Name: "Tottenham Hotspur", Code: "361ca564"}, {Name: "Fulham", Code: "fd962109"}},
			overrides: map[string]string{"Spurs": "361ca564"},
			wantHome:  "361ca564",
			wantAway:  "fd962109",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var diag matchreport.Diagnostics
			home, away := NewIdentityResolver(tc.overrides).Resolve(tc.home, tc.away, tc.refs, &diag)
			if home.Code != tc.wantHome {
				t.Fatalf("home code: got=%s want=%s", home.Code, tc.wantHome)
			}
			if away.Code != tc.wantAway {
				t.Fatalf("away code: got=%s want=%s", away.Code, tc.wantAway)
			}
			if home.DisplayName != tc.home || away.DisplayName != tc.away {
				t.Fatalf("display names must come from the schedule: %+v %+v", home, away)
			}
			if got := diag.Count(matchreport.WarningIdentity); got != tc.wantWarnings {
				t.Fatalf("identity warnings: got=%d want=%d (%+v)", got, tc.wantWarnings, diag.Warnings)
			}
		})
	}
}

func TestDiscoverTeamRefs(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument([]byte(`<div class="scorebox">
		<a href="/en/squads/18bb7c10/Arsenal-Stats">Arsenal</a>
		<a href="/en/squads/bad">Broken</a>
		<a href="/en/squads/47c64c55/Crystal-Palace-Stats">Arsenal</a>
		<a href="/en/players/abc/Someone">Someone</a>
	</div>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	refs := DiscoverTeamRefs(doc.Find("div.scorebox"))
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got=%+v", refs)
	}
	if refs[0].Name != "Arsenal" || refs[0].Code != "47c64c55" {
		t.Fatalf("repeated name must keep its first position and its last code, got=%+v", refs[0])
	}
	if refs[1].Code != matchreport.SentinelCode {
		t.Fatalf("unparseable squad href must yield sentinel, got=%s", refs[1].Code)
	}
}

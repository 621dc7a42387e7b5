package matchreport

import (
	"math"
	"testing"
	"testing/quick"
)

func TestClassifyStarter(t *testing.T) {
	t.Parallel()

	out72 := SubstitutionTag{}
	out72.MarkOut(72)
	in70 := SubstitutionTag{}
	in70.MarkIn(70)
	in80 := SubstitutionTag{}
	in80.MarkIn(80)
	both := SubstitutionTag{}
	both.MarkIn(30)
	both.MarkOut(75)

	tests := []struct {
		name    string
		minutes int
		tag     SubstitutionTag
		want    LineupRole
	}{
		{name: "subbed off early", minutes: 67, tag: out72, want: RoleStarter},
		{name: "full match", minutes: 90, tag: SubstitutionTag{}, want: RoleStarter},
		{name: "subbed on late", minutes: 23, tag: in70, want: RoleNonStarter},
		{name: "subbed on reaching ninety", minutes: 90, tag: in80, want: RoleNonStarter},
		{name: "unused substitute", minutes: 0, tag: SubstitutionTag{}, want: RoleNonStarter},
		{name: "in then out", minutes: 45, tag: both, want: RoleStarter},
		{name: "extra time no tag", minutes: 120, tag: SubstitutionTag{}, want: RoleStarter},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyStarter(tc.minutes, tc.tag); got != tc.want {
				t.Fatalf("ClassifyStarter(%d, %s)=%s want=%s", tc.minutes, tc.tag, got, tc.want)
			}
		})
	}
}

func TestClassifyStarterIsTotalAndDeterministic(t *testing.T) {
	t.Parallel()

	property := func(minutes int16, in, out bool, inMinute, outMinute uint8) bool {
		tag := SubstitutionTag{In: in, InMinute: int(inMinute), Out: out, OutMinute: int(outMinute)}
		first := ClassifyStarter(int(minutes), tag)
		second := ClassifyStarter(int(minutes), tag)
		if first != second {
			return false
		}
		if first != RoleStarter && first != RoleNonStarter {
			return false
		}
		// Minutes are irrelevant to the outcome once an out component is present below ninety.
		if out && int(minutes) < 90 {
			return first == RoleStarter
		}
		return true
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatalf("classifier property failed: %v", err)
	}
}

func TestSubstitutionTagString(t *testing.T) {
	t.Parallel()

	var tag SubstitutionTag
	if got := tag.String(); got != "n/a" {
		t.Fatalf("empty tag=%q", got)
	}
	tag.MarkIn(46)
	if got := tag.String(); got != "In | 46’" {
		t.Fatalf("in tag=%q", got)
	}
	tag.MarkOut(88)
	if got := tag.String(); got != "Out | 88’" {
		t.Fatalf("out must take precedence, got=%q", got)
	}
}

func TestSummarizeSumsEveryField(t *testing.T) {
	t.Parallel()

	players := make([]PlayerStatRecord, 0, 4)
	for i, side := range []Side{SideHome, SideHome, SideAway, SideHome} {
		rec := NewPlayerStatRecord(side, "p", "Player")
		for _, f := range StatFields() {
			if f.Fractional() {
				continue
			}
			rec.Stats.SetCount(f, i+int(f))
		}
		rec.Stats.SCA = 0.4
		players = append(players, *rec)
	}

	home := Summarize(SideHome, players)
	for _, f := range StatFields() {
		if f.Fractional() {
			continue
		}
		want := 0
		for _, p := range players {
			if p.Side == SideHome {
				want += p.Stats.Count(f)
			}
		}
		if got := home.Count(f); got != want {
			t.Fatalf("%s: got=%d want=%d", f.Column(), got, want)
		}
	}

	agg := TeamAggregate{Side: SideHome, Totals: home}
	if got, want := agg.SCATotal(), int(math.RoundToEven(0.4*3)); got != want {
		t.Fatalf("sca total: got=%d want=%d", got, want)
	}

	away := Summarize(SideAway, players)
	if away.Count(StatShots) != 2 {
		t.Fatalf("away shots: got=%d want=2", away.Count(StatShots))
	}
}

func TestTeamAggregateSCATotalRoundsHalfToEven(t *testing.T) {
	t.Parallel()

	cases := []struct {
		sum  float64
		want int
	}{
		{sum: 0.5, want: 0},
		{sum: 1.5, want: 2},
		{sum: 2.5, want: 2},
		{sum: 4.5, want: 4},
		{sum: 2.51, want: 3},
		{sum: 3.49, want: 3},
		{sum: 0, want: 0},
	}
	for _, tc := range cases {
		agg := TeamAggregate{Totals: StatLine{SCA: tc.sum}}
		if got := agg.SCATotal(); got != tc.want {
			t.Fatalf("sum=%v: got=%d want=%d", tc.sum, got, tc.want)
		}
	}
}

func TestStatFieldsTable(t *testing.T) {
	t.Parallel()

	fields := StatFields()
	if len(fields) != 28 {
		t.Fatalf("tracked fields: got=%d want=28", len(fields))
	}
	seen := map[string]bool{}
	for _, f := range fields {
		if f.Source() == "" || f.Column() == "" {
			t.Fatalf("field %d has empty mapping", f)
		}
		if seen[f.Column()] {
			t.Fatalf("duplicate column %s", f.Column())
		}
		seen[f.Column()] = true
	}
	if StatShotsAssisted.Source() != "assisted_shots" || StatShotsAssisted.Column() != "shots_assisted" {
		t.Fatalf("assisted shots mapping: %s -> %s", StatShotsAssisted.Source(), StatShotsAssisted.Column())
	}
	if !StatSCA.Fractional() || fields[len(fields)-1] != StatSCA {
		t.Fatalf("sca must be the trailing fractional field")
	}
}

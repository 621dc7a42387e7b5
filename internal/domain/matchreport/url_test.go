package matchreport

import "testing"

func TestIsHaltingURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "two eight char segments", url: "https://fbref.com/en/matches/AbCdEfGh/IjKlMnOp/Some-Match", want: true},
		{name: "digits count as alphanumeric", url: "https://fbref.com/en/matches/1234abcd/5678EFGH/", want: true},
		{name: "regular report", url: "https://fbref.com/en/matches/cc5b4244/Manchester-United-Fulham-August-16-2024-Premier-League", want: false},
		{name: "second segment longer", url: "https://fbref.com/en/matches/AbCdEfGh/IjKlMnOpQ/x", want: false},
		{name: "first segment shorter", url: "https://fbref.com/en/matches/AbCdEfG/IjKlMnOp/x", want: false},
		{name: "non alphanumeric", url: "https://fbref.com/en/matches/AbCd-fGh/IjKlMnOp/x", want: false},
		{name: "empty", url: "", want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsHaltingURL(tc.url); got != tc.want {
				t.Fatalf("IsHaltingURL(%q)=%v want=%v", tc.url, got, tc.want)
			}
		})
	}
}

func TestNormalizeReportURL(t *testing.T) {
	t.Parallel()

	const base = "https://fbref.com/"
	tests := map[string]string{
		"fbref.com/en/matches/cc5b4244/x":           "https://fbref.com/en/matches/cc5b4244/x",
		" https://fbref.com/en/matches/cc5b4244/x ": "https://fbref.com/en/matches/cc5b4244/x",
		"/en/matches/cc5b4244/x":                    "https://fbref.com/en/matches/cc5b4244/x",
		"":                                          "",
	}
	for in, want := range tests {
		if got := NormalizeReportURL(base, in); got != want {
			t.Fatalf("NormalizeReportURL(%q)=%q want=%q", in, got, want)
		}
	}
}

package matchreport

import "fmt"

// SubstitutionTag records a player entering and/or leaving the pitch. When both apply,
// the out component wins in the rendered tag.
type SubstitutionTag struct {
	In        bool
	InMinute  int
	Out       bool
	OutMinute int
}

func (t *SubstitutionTag) MarkIn(minute int) {
	t.In = true
	t.InMinute = minute
}

func (t *SubstitutionTag) MarkOut(minute int) {
	t.Out = true
	t.OutMinute = minute
}

func (t SubstitutionTag) IsZero() bool {
	return !t.In && !t.Out
}

func (t SubstitutionTag) String() string {
	switch {
	case t.Out:
		return fmt.Sprintf("Out | %d’", t.OutMinute)
	case t.In:
		return fmt.Sprintf("In | %d’", t.InMinute)
	default:
		return "n/a"
	}
}

type LineupRole int

const (
	RoleNonStarter LineupRole = iota
	RoleStarter
)

func (r LineupRole) String() string {
	if r == RoleStarter {
		return "starter"
	}
	return "non-starter"
}

const fullMatchMinutes = 90

// ClassifyStarter derives the lineup role from minutes played and the substitution tag.
// It is total and depends on nothing but its arguments.
func ClassifyStarter(minutes int, tag SubstitutionTag) LineupRole {
	switch {
	case minutes < fullMatchMinutes && tag.Out:
		return RoleStarter
	case minutes < fullMatchMinutes && tag.In:
		return RoleNonStarter
	case minutes >= fullMatchMinutes && tag.IsZero():
		return RoleStarter
	default:
		return RoleNonStarter
	}
}

// Summarize sums every tracked field over the given side's players.
func Summarize(side Side, players []PlayerStatRecord) StatLine {
	var total StatLine
	for _, p := range players {
		if p.Side != side {
			continue
		}
		total.Add(p.Stats)
	}
	return total
}

package matchreport

// StatField enumerates the per-player statistics tracked across the stat-category tables.
type StatField int

const (
	StatShots StatField = iota
	StatShotsOnTarget
	StatFouls
	StatCornerKicks
	StatCrosses
	StatTouches
	StatTackles
	StatInterceptions
	StatPasses
	StatShotsAssisted
	StatTakeOns
	StatProgressiveCarries
	StatClearances
	StatTacklesDef3rd
	StatTacklesMid3rd
	StatTacklesAtt3rd
	StatBlockedShots
	StatBlockedPasses
	StatChallenges
	StatCarriesIntoFinalThird
	StatProgressivePassesReceived
	StatPassesIntoFinalThird
	StatPassesIntoPenaltyArea
	StatTouchesDef3rd
	StatTouchesMid3rd
	StatTouchesAttThird
	StatTouchesAttPenArea
	// StatSCA is the only fractional statistic and must stay last.
	StatSCA

	statFieldCount
)

type statDef struct {
	source string
	column string
}

// statDefs maps each field to the data-stat key of its source cell and its storage column.
var statDefs = [statFieldCount]statDef{
	StatShots:                     {source: "shots", column: "shots"},
	StatShotsOnTarget:             {source: "shots_on_target", column: "shots_on_target"},
	StatFouls:                     {source: "fouls", column: "fouls"},
	StatCornerKicks:               {source: "corner_kicks", column: "corner_kicks"},
	StatCrosses:                   {source: "crosses", column: "crosses"},
	StatTouches:                   {source: "touches", column: "touches"},
	StatTackles:                   {source: "tackles", column: "tackles"},
	StatInterceptions:             {source: "interceptions", column: "interceptions"},
	StatPasses:                    {source: "passes", column: "passes"},
	StatShotsAssisted:             {source: "assisted_shots", column: "shots_assisted"},
	StatTakeOns:                   {source: "take_ons", column: "take_ons"},
	StatProgressiveCarries:        {source: "progressive_carries", column: "progressive_carries"},
	StatClearances:                {source: "clearances", column: "clearances"},
	StatTacklesDef3rd:             {source: "tackles_def_3rd", column: "tackles_def_3rd"},
	StatTacklesMid3rd:             {source: "tackles_mid_3rd", column: "tackles_mid_3rd"},
	StatTacklesAtt3rd:             {source: "tackles_att_3rd", column: "tackles_att_3rd"},
	StatBlockedShots:              {source: "blocked_shots", column: "blocked_shots"},
	StatBlockedPasses:             {source: "blocked_passes", column: "blocked_passes"},
	StatChallenges:                {source: "challenges", column: "challenges"},
	StatCarriesIntoFinalThird:     {source: "carries_into_final_third", column: "carries_into_final_third"},
	StatProgressivePassesReceived: {source: "progressive_passes_received", column: "progressive_passes_received"},
	StatPassesIntoFinalThird:      {source: "passes_into_final_third", column: "passes_into_final_third"},
	StatPassesIntoPenaltyArea:     {source: "passes_into_penalty_area", column: "passes_into_penalty_area"},
	StatTouchesDef3rd:             {source: "touches_def_3rd", column: "touches_def_3rd"},
	StatTouchesMid3rd:             {source: "touches_mid_3rd", column: "touches_mid_3rd"},
	StatTouchesAttThird:           {source: "touches_att_3rd", column: "touches_att_3rd"},
	StatTouchesAttPenArea:         {source: "touches_att_pen_area", column: "touches_att_pen_area"},
	StatSCA:                       {source: "sca", column: "sca"},
}

var allStatFields = func() []StatField {
	out := make([]StatField, 0, statFieldCount)
	for f := StatField(0); f < statFieldCount; f++ {
		out = append(out, f)
	}
	return out
}()

// StatFields returns every tracked field in storage column order.
func StatFields() []StatField {
	return append([]StatField(nil), allStatFields...)
}

func (f StatField) Source() string { return statDefs[f].source }

func (f StatField) Column() string { return statDefs[f].column }

func (f StatField) Fractional() bool { return f == StatSCA }

// StatLine holds one value per tracked field. Counts are integers; SCA is fractional.
type StatLine struct {
	counts [StatSCA]int
	SCA    float64
}

func (l StatLine) Count(f StatField) int {
	if f < 0 || f >= StatSCA {
		return 0
	}
	return l.counts[f]
}

func (l *StatLine) SetCount(f StatField, v int) {
	if f < 0 || f >= StatSCA {
		return
	}
	l.counts[f] = v
}

// Value returns the field as it is persisted per player: int for counts, float64 for SCA.
func (l StatLine) Value(f StatField) any {
	if f == StatSCA {
		return l.SCA
	}
	return l.Count(f)
}

func (l *StatLine) Add(other StatLine) {
	for i := range l.counts {
		l.counts[i] += other.counts[i]
	}
	l.SCA += other.SCA
}

package scoring

// Result statuses under which a driver is not classified; the recorded raw
// points pass through unmodified for these.
const (
	StatusDNF = "DNF"
	StatusDNS = "DNS"
	StatusDSQ = "DSQ"
)

// RaceResult is one driver's official outcome for a race.
type RaceResult struct {
	RaceID     string
	DriverID   string
	Position   int
	RawPoints  int
	FastestLap bool
	Status     string
}

func (r RaceResult) Classified() bool {
	switch r.Status {
	case StatusDNF, StatusDNS, StatusDSQ:
		return false
	default:
		return true
	}
}

// Override replaces the default position table for one league. A malformed
// override is ignored by the calculator, never an error.
type Override struct {
	LeagueID         string
	PointsByPosition map[int]int
}

// WellFormed reports whether the override can safely replace the default
// table: at least one entry, positions >= 1, no negative point values.
func (o Override) WellFormed() bool {
	if len(o.PointsByPosition) == 0 {
		return false
	}
	for position, points := range o.PointsByPosition {
		if position < 1 || points < 0 {
			return false
		}
	}
	return true
}

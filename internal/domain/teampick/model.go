package teampick

import "fmt"

// Kind separates driver picks from constructor picks for scoring.
type Kind string

const (
	KindDriver      Kind = "driver"
	KindConstructor Kind = "constructor"
)

// TeamPick links a fantasy team to a drafted subject for one race. Points are
// overwritten whenever results are reprocessed.
type TeamPick struct {
	ID        string
	TeamID    string
	LeagueID  string
	RaceID    string
	SubjectID string
	Kind      Kind
	Points    int
	Active    bool
}

func (p TeamPick) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("team pick id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("team pick team id is required")
	}
	if p.RaceID == "" {
		return fmt.Errorf("team pick race id is required")
	}
	if p.SubjectID == "" {
		return fmt.Errorf("team pick subject id is required")
	}
	switch p.Kind {
	case KindDriver, KindConstructor:
	default:
		return fmt.Errorf("unknown team pick kind: %q", p.Kind)
	}

	return nil
}

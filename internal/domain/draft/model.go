package draft

import (
	"fmt"
	"time"

	"github.com/gridpick/fantasy-gp/internal/domain/league"
)

// Order fixes the team sequence for one (league, race) draft. The sequence is
// decoded once at the repository boundary; everything above works with the
// slice, never the stored encoding.
type Order struct {
	LeagueID  string
	RaceID    string
	Method    league.DraftMethod
	Sequence  []string
	Locked    bool
	CreatedAt time.Time
}

func (o Order) Validate() error {
	if o.LeagueID == "" {
		return fmt.Errorf("order league id is required")
	}
	if o.RaceID == "" {
		return fmt.Errorf("order race id is required")
	}
	if _, ok := league.AllDraftMethods[o.Method]; !ok {
		return fmt.Errorf("unknown draft method: %q", o.Method)
	}
	if len(o.Sequence) == 0 {
		return fmt.Errorf("order sequence is required")
	}
	seen := make(map[string]struct{}, len(o.Sequence))
	for _, teamID := range o.Sequence {
		if teamID == "" {
			return fmt.Errorf("order sequence contains an empty team id")
		}
		if _, dup := seen[teamID]; dup {
			return fmt.Errorf("order sequence contains team %s twice", teamID)
		}
		seen[teamID] = struct{}{}
	}

	return nil
}

// Pick is one committed selection. Rows are append-only during an active
// draft; PickNumber is dense 1..N per (league, race).
type Pick struct {
	LeagueID        string
	RaceID          string
	PickNumber      int
	Round           int
	PositionInRound int
	TeamID          string
	DriverID        string
	IsAutoPick      bool
	PickedAt        time.Time
}

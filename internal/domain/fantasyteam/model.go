package fantasyteam

import (
	"fmt"
	"time"
)

// Team is one user's roster inside a league. One team per (user, league).
type Team struct {
	ID          string
	UserID      string
	LeagueID    string
	Name        string
	TotalPoints int
	Budget      int64
	Active      bool
	CreatedAt   time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("team user id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

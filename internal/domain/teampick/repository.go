package teampick

import "context"

type Repository interface {
	// ListByTeam returns the team's picks; raceID narrows to one race when
	// non-empty.
	ListByTeam(ctx context.Context, teamID, raceID string) ([]TeamPick, error)
	ListByLeague(ctx context.Context, leagueID string) ([]TeamPick, error)
	UpdatePoints(ctx context.Context, pickID string, points int) error
}

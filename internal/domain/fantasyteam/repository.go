package fantasyteam

import "context"

type Repository interface {
	// ListActiveByLeague returns active teams ordered by creation time.
	ListActiveByLeague(ctx context.Context, leagueID string) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	UpdateTotalPoints(ctx context.Context, teamID string, points int) error
}

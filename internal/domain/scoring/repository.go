package scoring

import "context"

type Repository interface {
	ListResultsByRace(ctx context.Context, raceID string) ([]RaceResult, error)
	GetOverride(ctx context.Context, leagueID string) (Override, bool, error)
}

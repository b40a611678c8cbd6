package race

import "context"

type Repository interface {
	List(ctx context.Context) ([]Race, error)
	GetByID(ctx context.Context, raceID string) (Race, bool, error)
	ListCompleted(ctx context.Context) ([]Race, error)
}

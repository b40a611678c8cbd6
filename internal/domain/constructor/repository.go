package constructor

import "context"

type Repository interface {
	List(ctx context.Context) ([]Constructor, error)
	GetByID(ctx context.Context, constructorID string) (Constructor, bool, error)
	// UpdateSeasonPoints overwrites the derived season total; wins counts races
	// where the constructor scored highest.
	UpdateSeasonPoints(ctx context.Context, constructorID string, total int, wins int) error
}

package driver

import "context"

type Repository interface {
	List(ctx context.Context) ([]Driver, error)
	GetByID(ctx context.Context, driverID string) (Driver, bool, error)
	ListByConstructor(ctx context.Context, constructorID string) ([]Driver, error)
	// UpdateSeasonPoints overwrites the derived season total and per-race average.
	UpdateSeasonPoints(ctx context.Context, driverID string, total int, average float64) error
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridpick/fantasy-gp/internal/domain/driver"
)

type DriverRepository struct {
	mu    sync.RWMutex
	items map[string]driver.Driver
}

func NewDriverRepository(drivers []driver.Driver) *DriverRepository {
	items := make(map[string]driver.Driver, len(drivers))
	for _, d := range drivers {
		items[d.ID] = d
	}

	return &DriverRepository{items: items}
}

func (r *DriverRepository) List(_ context.Context) ([]driver.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]driver.Driver, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *DriverRepository) GetByID(_ context.Context, driverID string) (driver.Driver, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.items[driverID]
	if !ok {
		return driver.Driver{}, false, nil
	}

	return d, true, nil
}

func (r *DriverRepository) ListByConstructor(_ context.Context, constructorID string) ([]driver.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]driver.Driver, 0, 2)
	for _, d := range r.items {
		if d.ConstructorID == constructorID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *DriverRepository) UpdateSeasonPoints(_ context.Context, driverID string, total int, average float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.items[driverID]
	if !ok {
		return nil
	}
	d.TotalPoints = total
	d.AveragePoints = average
	r.items[driverID] = d

	return nil
}

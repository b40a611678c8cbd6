package memory

import (
	"context"
	"sync"

	"github.com/gridpick/fantasy-gp/internal/domain/race"
)

type RaceRepository struct {
	mu    sync.RWMutex
	items map[string]race.Race
	order []string
}

func NewRaceRepository(races []race.Race) *RaceRepository {
	items := make(map[string]race.Race, len(races))
	order := make([]string, 0, len(races))

	for _, r := range races {
		items[r.ID] = r
		order = append(order, r.ID)
	}

	return &RaceRepository{
		items: items,
		order: order,
	}
}

func (r *RaceRepository) List(_ context.Context) ([]race.Race, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Race, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *RaceRepository) GetByID(_ context.Context, raceID string) (race.Race, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[raceID]
	if !ok {
		return race.Race{}, false, nil
	}

	return item, true, nil
}

func (r *RaceRepository) ListCompleted(_ context.Context) ([]race.Race, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Race, 0, len(r.order))
	for _, id := range r.order {
		if item := r.items[id]; item.Status == race.StatusCompleted {
			out = append(out, item)
		}
	}

	return out, nil
}

// MarkCompleted flips a race's status; used by dev seeds and tests.
func (r *RaceRepository) MarkCompleted(raceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item, ok := r.items[raceID]; ok {
		item.Status = race.StatusCompleted
		r.items[raceID] = item
	}
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridpick/fantasy-gp/internal/domain/constructor"
)

type ConstructorRepository struct {
	mu    sync.RWMutex
	items map[string]constructor.Constructor
}

func NewConstructorRepository(constructors []constructor.Constructor) *ConstructorRepository {
	items := make(map[string]constructor.Constructor, len(constructors))
	for _, c := range constructors {
		items[c.ID] = c
	}

	return &ConstructorRepository{items: items}
}

func (r *ConstructorRepository) List(_ context.Context) ([]constructor.Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]constructor.Constructor, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *ConstructorRepository) GetByID(_ context.Context, constructorID string) (constructor.Constructor, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[constructorID]
	if !ok {
		return constructor.Constructor{}, false, nil
	}

	return c, true, nil
}

func (r *ConstructorRepository) UpdateSeasonPoints(_ context.Context, constructorID string, total int, wins int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[constructorID]
	if !ok {
		return nil
	}
	c.TotalPoints = total
	c.RaceWins = wins
	r.items[constructorID] = c

	return nil
}

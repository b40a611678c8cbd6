package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridpick/fantasy-gp/internal/domain/teampick"
)

type TeamPickRepository struct {
	mu    sync.RWMutex
	items map[string]teampick.TeamPick
}

func NewTeamPickRepository(picks []teampick.TeamPick) *TeamPickRepository {
	items := make(map[string]teampick.TeamPick, len(picks))
	for _, p := range picks {
		items[p.ID] = p
	}

	return &TeamPickRepository{items: items}
}

func (r *TeamPickRepository) ListByTeam(_ context.Context, teamID, raceID string) ([]teampick.TeamPick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]teampick.TeamPick, 0)
	for _, p := range r.items {
		if p.TeamID != teamID {
			continue
		}
		if raceID != "" && p.RaceID != raceID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TeamPickRepository) ListByLeague(_ context.Context, leagueID string) ([]teampick.TeamPick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]teampick.TeamPick, 0)
	for _, p := range r.items {
		if p.LeagueID == leagueID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TeamPickRepository) UpdatePoints(_ context.Context, pickID string, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[pickID]
	if !ok {
		return nil
	}
	p.Points = points
	r.items[pickID] = p

	return nil
}

// Add inserts a pick; used by dev seeds and tests.
func (r *TeamPickRepository) Add(pick teampick.TeamPick) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[pick.ID] = pick
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridpick/fantasy-gp/internal/domain/fantasyteam"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]fantasyteam.Team
}

func NewTeamRepository(teams []fantasyteam.Team) *TeamRepository {
	items := make(map[string]fantasyteam.Team, len(teams))
	for _, t := range teams {
		items[t.ID] = t
	}

	return &TeamRepository{items: items}
}

func (r *TeamRepository) ListActiveByLeague(_ context.Context, leagueID string) ([]fantasyteam.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasyteam.Team, 0)
	for _, t := range r.items {
		if t.LeagueID == leagueID && t.Active {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (fantasyteam.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[teamID]
	if !ok {
		return fantasyteam.Team{}, false, nil
	}

	return t, true, nil
}

func (r *TeamRepository) UpdateTotalPoints(_ context.Context, teamID string, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[teamID]
	if !ok {
		return nil
	}
	t.TotalPoints = points
	r.items[teamID] = t

	return nil
}

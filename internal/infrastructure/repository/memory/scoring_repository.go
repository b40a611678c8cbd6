package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridpick/fantasy-gp/internal/domain/scoring"
)

type ScoringRepository struct {
	mu        sync.RWMutex
	results   map[string][]scoring.RaceResult
	overrides map[string]scoring.Override
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{
		results:   make(map[string][]scoring.RaceResult),
		overrides: make(map[string]scoring.Override),
	}
}

func (r *ScoringRepository) ListResultsByRace(_ context.Context, raceID string) ([]scoring.RaceResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]scoring.RaceResult(nil), r.results[raceID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })

	return out, nil
}

func (r *ScoringRepository) GetOverride(_ context.Context, leagueID string) (scoring.Override, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	override, ok := r.overrides[leagueID]
	if !ok {
		return scoring.Override{}, false, nil
	}

	return override, true, nil
}

// SetResults replaces a race's result sheet; used by dev seeds and tests.
func (r *ScoringRepository) SetResults(raceID string, results []scoring.RaceResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results[raceID] = append([]scoring.RaceResult(nil), results...)
}

// SetOverride installs a league scoring override; used by dev seeds and tests.
func (r *ScoringRepository) SetOverride(override scoring.Override) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.overrides[override.LeagueID] = override
}

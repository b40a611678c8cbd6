package usecase

import (
	"math/rand"
	"sort"

	"github.com/gridpick/fantasy-gp/internal/domain/driver"
)

// AutoPickStrategy selects a fallback driver when a team fails to act before
// its pick deadline. Strategies are pure over the remaining pool; the draft
// service handles locking and submission.
type AutoPickStrategy interface {
	Name() string
	Select(pool []driver.Driver, picked map[string]struct{}) (string, bool)
}

const (
	StrategyHighestAvailableID          = "highest_available_id"
	StrategyHighestRankedBySeasonPoints = "highest_ranked_by_season_points"
	StrategyRandom                      = "random"
)

// DefaultAutoPickStrategies returns the built-in strategy set keyed by name.
func DefaultAutoPickStrategies() map[string]AutoPickStrategy {
	return map[string]AutoPickStrategy{
		StrategyHighestAvailableID:          HighestAvailableID{},
		StrategyHighestRankedBySeasonPoints: HighestRankedBySeasonPoints{},
		StrategyRandom:                      RandomAvailable{},
	}
}

// HighestAvailableID picks the remaining driver with the greatest id. A
// placeholder ordering kept for compatibility, not a ranking heuristic.
type HighestAvailableID struct{}

func (HighestAvailableID) Name() string { return StrategyHighestAvailableID }

func (HighestAvailableID) Select(pool []driver.Driver, picked map[string]struct{}) (string, bool) {
	best := ""
	for _, d := range pool {
		if _, taken := picked[d.ID]; taken {
			continue
		}
		if d.ID > best {
			best = d.ID
		}
	}
	return best, best != ""
}

// HighestRankedBySeasonPoints picks the remaining driver with the most season
// points, falling back to id order for determinism on equal points.
type HighestRankedBySeasonPoints struct{}

func (HighestRankedBySeasonPoints) Name() string { return StrategyHighestRankedBySeasonPoints }

func (HighestRankedBySeasonPoints) Select(pool []driver.Driver, picked map[string]struct{}) (string, bool) {
	remaining := make([]driver.Driver, 0, len(pool))
	for _, d := range pool {
		if _, taken := picked[d.ID]; taken {
			continue
		}
		remaining = append(remaining, d)
	}
	if len(remaining) == 0 {
		return "", false
	}

	sort.Slice(remaining, func(i, j int) bool {
		if remaining[i].TotalPoints != remaining[j].TotalPoints {
			return remaining[i].TotalPoints > remaining[j].TotalPoints
		}
		return remaining[i].ID < remaining[j].ID
	})

	return remaining[0].ID, true
}

// RandomAvailable picks uniformly from the remaining pool.
type RandomAvailable struct{}

func (RandomAvailable) Name() string { return StrategyRandom }

func (RandomAvailable) Select(pool []driver.Driver, picked map[string]struct{}) (string, bool) {
	remaining := make([]string, 0, len(pool))
	for _, d := range pool {
		if _, taken := picked[d.ID]; taken {
			continue
		}
		remaining = append(remaining, d.ID)
	}
	if len(remaining) == 0 {
		return "", false
	}
	sort.Strings(remaining)

	return remaining[rand.Intn(len(remaining))], true
}

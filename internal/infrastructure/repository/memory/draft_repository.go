package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gridpick/fantasy-gp/internal/domain/draft"
)

type draftKey struct {
	leagueID string
	raceID   string
}

// DraftRepository keeps orders and append-only picks in memory. It enforces
// the same uniqueness guarantees the SQL schema does: one order per draft,
// one row per pick number, one pick per driver.
type DraftRepository struct {
	mu     sync.RWMutex
	orders map[draftKey]draft.Order
	picks  map[draftKey][]draft.Pick
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{
		orders: make(map[draftKey]draft.Order),
		picks:  make(map[draftKey][]draft.Pick),
	}
}

func (r *DraftRepository) GetOrder(_ context.Context, leagueID, raceID string) (draft.Order, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[draftKey{leagueID, raceID}]
	if !ok {
		return draft.Order{}, false, nil
	}
	order.Sequence = append([]string(nil), order.Sequence...)

	return order, true, nil
}

func (r *DraftRepository) SaveOrder(_ context.Context, order draft.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := draftKey{order.LeagueID, order.RaceID}
	if _, exists := r.orders[key]; exists {
		return draft.ErrOrderExists
	}
	order.Sequence = append([]string(nil), order.Sequence...)
	r.orders[key] = order

	return nil
}

func (r *DraftRepository) ReplaceOrder(_ context.Context, order draft.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := draftKey{order.LeagueID, order.RaceID}
	if _, exists := r.orders[key]; !exists {
		return fmt.Errorf("draft order not found for league=%s race=%s", order.LeagueID, order.RaceID)
	}
	order.Sequence = append([]string(nil), order.Sequence...)
	r.orders[key] = order

	return nil
}

func (r *DraftRepository) CountPicks(_ context.Context, leagueID, raceID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.picks[draftKey{leagueID, raceID}]), nil
}

func (r *DraftRepository) ListPicks(_ context.Context, leagueID, raceID string) ([]draft.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	picks := r.picks[draftKey{leagueID, raceID}]
	out := append([]draft.Pick(nil), picks...)
	sort.Slice(out, func(i, j int) bool { return out[i].PickNumber < out[j].PickNumber })

	return out, nil
}

func (r *DraftRepository) AppendPick(_ context.Context, pick draft.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := draftKey{pick.LeagueID, pick.RaceID}
	for _, existing := range r.picks[key] {
		if existing.PickNumber == pick.PickNumber {
			return draft.ErrDuplicatePick
		}
		if existing.DriverID == pick.DriverID {
			return draft.ErrDriverTaken
		}
	}
	r.picks[key] = append(r.picks[key], pick)

	return nil
}

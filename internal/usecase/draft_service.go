package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/gridpick/fantasy-gp/internal/domain/draft"
	"github.com/gridpick/fantasy-gp/internal/domain/driver"
	"github.com/gridpick/fantasy-gp/internal/domain/fantasyteam"
	"github.com/gridpick/fantasy-gp/internal/domain/league"
	"github.com/gridpick/fantasy-gp/internal/domain/race"
	"github.com/gridpick/fantasy-gp/internal/platform/logging"
)

// DraftService runs the turn-based allocation of drivers onto fantasy teams.
// Every read-check-append sequence for one (league, race) runs under a single
// mutex so that two racing submissions cannot both pass the turn check; the
// repository's uniqueness guarantees on pick number and driver are the second
// line of defense.
type DraftService struct {
	leagueRepo league.Repository
	raceRepo   race.Repository
	teamRepo   fantasyteam.Repository
	driverRepo driver.Repository
	draftRepo  draft.Repository
	strategies map[string]AutoPickStrategy
	logger     *logging.Logger
	now        func() time.Time
	shuffle    func(n int, swap func(i, j int))

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDraftService(
	leagueRepo league.Repository,
	raceRepo race.Repository,
	teamRepo fantasyteam.Repository,
	driverRepo driver.Repository,
	draftRepo draft.Repository,
	strategies map[string]AutoPickStrategy,
	logger *logging.Logger,
) *DraftService {
	if strategies == nil {
		strategies = DefaultAutoPickStrategies()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &DraftService{
		leagueRepo: leagueRepo,
		raceRepo:   raceRepo,
		teamRepo:   teamRepo,
		driverRepo: driverRepo,
		draftRepo:  draftRepo,
		strategies: strategies,
		logger:     logger,
		now:        time.Now,
		shuffle:    rand.Shuffle,
		locks:      make(map[string]*sync.Mutex),
	}
}

func (s *DraftService) draftLock(leagueID, raceID string) *sync.Mutex {
	key := leagueID + "|" + raceID

	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

type CreateDraftOrderInput struct {
	LeagueID      string
	RaceID        string
	Method        string
	ExplicitOrder []string
}

// CreateDraftOrder builds the team sequence for one (league, race). Exactly
// one order may exist per draft; a second create fails with a conflict.
func (s *DraftService) CreateDraftOrder(ctx context.Context, input CreateDraftOrderInput) (draft.Order, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.CreateDraftOrder")
	defer span.End()

	l, method, sequence, err := s.buildOrderSequence(ctx, input)
	if err != nil {
		return draft.Order{}, err
	}

	order := draft.Order{
		LeagueID:  l.ID,
		RaceID:    input.RaceID,
		Method:    method,
		Sequence:  sequence,
		Locked:    true,
		CreatedAt: s.now().UTC(),
	}
	if err := order.Validate(); err != nil {
		return draft.Order{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.draftRepo.SaveOrder(ctx, order); err != nil {
		if errors.Is(err, draft.ErrOrderExists) {
			return draft.Order{}, fmt.Errorf("%w: draft order exists for league=%s race=%s", ErrConflict, l.ID, input.RaceID)
		}
		return draft.Order{}, fmt.Errorf("save draft order: %w", err)
	}

	s.logger.InfoContext(ctx, "draft order created",
		"league_id", l.ID, "race_id", input.RaceID, "method", string(method), "teams", len(sequence))

	return order, nil
}

// RegenerateDraftOrder replaces an existing order. Only the league
// commissioner may do this, and never after picks have been made.
func (s *DraftService) RegenerateDraftOrder(ctx context.Context, actorUserID string, input CreateDraftOrderInput) (draft.Order, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.RegenerateDraftOrder")
	defer span.End()

	l, method, sequence, err := s.buildOrderSequence(ctx, input)
	if err != nil {
		return draft.Order{}, err
	}
	if strings.TrimSpace(actorUserID) == "" || actorUserID != l.CommissionerID {
		return draft.Order{}, fmt.Errorf("%w: only the commissioner may regenerate the draft order", ErrUnauthorized)
	}

	existing, found, err := s.draftRepo.GetOrder(ctx, l.ID, input.RaceID)
	if err != nil {
		return draft.Order{}, fmt.Errorf("get draft order: %w", err)
	}
	if !found {
		return draft.Order{}, fmt.Errorf("%w: draft order league=%s race=%s", ErrNotFound, l.ID, input.RaceID)
	}

	count, err := s.draftRepo.CountPicks(ctx, l.ID, input.RaceID)
	if err != nil {
		return draft.Order{}, fmt.Errorf("count picks: %w", err)
	}
	if count > 0 {
		return draft.Order{}, fmt.Errorf("%w: draft already has %d pick(s)", ErrConflict, count)
	}

	order := draft.Order{
		LeagueID:  l.ID,
		RaceID:    input.RaceID,
		Method:    method,
		Sequence:  sequence,
		Locked:    true,
		CreatedAt: existing.CreatedAt,
	}
	if err := s.draftRepo.ReplaceOrder(ctx, order); err != nil {
		return draft.Order{}, fmt.Errorf("replace draft order: %w", err)
	}

	s.logger.InfoContext(ctx, "draft order regenerated",
		"league_id", l.ID, "race_id", input.RaceID, "actor", actorUserID)

	return order, nil
}

func (s *DraftService) buildOrderSequence(ctx context.Context, input CreateDraftOrderInput) (league.League, league.DraftMethod, []string, error) {
	if strings.TrimSpace(input.LeagueID) == "" || strings.TrimSpace(input.RaceID) == "" {
		return league.League{}, "", nil, fmt.Errorf("%w: league id and race id are required", ErrInvalidInput)
	}

	l, found, err := s.leagueRepo.GetByID(ctx, input.LeagueID)
	if err != nil {
		return league.League{}, "", nil, fmt.Errorf("get league: %w", err)
	}
	if !found {
		return league.League{}, "", nil, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}

	if _, found, err = s.raceRepo.GetByID(ctx, input.RaceID); err != nil {
		return league.League{}, "", nil, fmt.Errorf("get race: %w", err)
	} else if !found {
		return league.League{}, "", nil, fmt.Errorf("%w: race=%s", ErrNotFound, input.RaceID)
	}

	method := l.DraftMethod
	if strings.TrimSpace(input.Method) != "" {
		method, err = league.ParseDraftMethod(input.Method)
		if err != nil {
			return league.League{}, "", nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	teams, err := s.teamRepo.ListActiveByLeague(ctx, l.ID)
	if err != nil {
		return league.League{}, "", nil, fmt.Errorf("list active teams: %w", err)
	}
	if len(teams) == 0 {
		return league.League{}, "", nil, fmt.Errorf("%w: league %s has no active teams", ErrInvalidInput, l.ID)
	}

	teamIDs := make([]string, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	if len(input.ExplicitOrder) > 0 {
		if err := draft.ValidateExplicitOrder(input.ExplicitOrder, teamIDs); err != nil {
			return league.League{}, "", nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return l, method, append([]string(nil), input.ExplicitOrder...), nil
	}

	sequence := append([]string(nil), teamIDs...)
	if method == league.DraftRandom {
		s.shuffle(len(sequence), func(i, j int) {
			sequence[i], sequence[j] = sequence[j], sequence[i]
		})
	}
	// sequential and snake both start from team-creation order; the snake
	// reversal is a turn-derivation concern, not a generation one.

	return l, method, sequence, nil
}

// NextPickInfo reports whose turn it is and how far the draft has advanced.
type NextPickInfo struct {
	State      draft.State
	Turn       draft.Turn
	HasTurn    bool
	PickCount  int
	TotalPicks int
}

func (s *DraftService) NextPickInfo(ctx context.Context, leagueID, raceID string) (NextPickInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.NextPickInfo")
	defer span.End()

	order, found, err := s.draftRepo.GetOrder(ctx, leagueID, raceID)
	if err != nil {
		return NextPickInfo{}, fmt.Errorf("get draft order: %w", err)
	}
	if !found {
		return NextPickInfo{}, fmt.Errorf("%w: draft order league=%s race=%s", ErrNotFound, leagueID, raceID)
	}

	count, err := s.draftRepo.CountPicks(ctx, leagueID, raceID)
	if err != nil {
		return NextPickInfo{}, fmt.Errorf("count picks: %w", err)
	}

	turn, hasTurn := draft.NextTurn(order.Sequence, count)
	return NextPickInfo{
		State:      draft.StateFor(len(order.Sequence), count),
		Turn:       turn,
		HasTurn:    hasTurn,
		PickCount:  count,
		TotalPicks: draft.TotalPicks(len(order.Sequence)),
	}, nil
}

type SubmitPickInput struct {
	LeagueID     string
	RaceID       string
	TeamID       string
	DriverID     string
	ActingUserID string
}

// SubmitPick validates and commits one selection. An empty acting user marks
// the pick as automatic.
func (s *DraftService) SubmitPick(ctx context.Context, input SubmitPickInput) (draft.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.SubmitPick")
	defer span.End()

	lock := s.draftLock(input.LeagueID, input.RaceID)
	lock.Lock()
	defer lock.Unlock()

	return s.submitPickLocked(ctx, input)
}

func (s *DraftService) submitPickLocked(ctx context.Context, input SubmitPickInput) (draft.Pick, error) {
	order, found, err := s.draftRepo.GetOrder(ctx, input.LeagueID, input.RaceID)
	if err != nil {
		return draft.Pick{}, fmt.Errorf("get draft order: %w", err)
	}
	if !found {
		return draft.Pick{}, fmt.Errorf("%w: draft order league=%s race=%s", ErrNotFound, input.LeagueID, input.RaceID)
	}

	member := false
	for _, teamID := range order.Sequence {
		if teamID == input.TeamID {
			member = true
			break
		}
	}
	if !member {
		return draft.Pick{}, fmt.Errorf("%w: team %s is not part of this draft", ErrInvalidInput, input.TeamID)
	}

	if _, found, err = s.driverRepo.GetByID(ctx, input.DriverID); err != nil {
		return draft.Pick{}, fmt.Errorf("get driver: %w", err)
	} else if !found {
		return draft.Pick{}, fmt.Errorf("%w: driver=%s", ErrNotFound, input.DriverID)
	}

	picks, err := s.draftRepo.ListPicks(ctx, input.LeagueID, input.RaceID)
	if err != nil {
		return draft.Pick{}, fmt.Errorf("list picks: %w", err)
	}
	for _, p := range picks {
		if p.DriverID == input.DriverID {
			return draft.Pick{}, fmt.Errorf("%w: driver %s already picked", ErrConflict, input.DriverID)
		}
	}

	turn, hasTurn := draft.NextTurn(order.Sequence, len(picks))
	if !hasTurn {
		return draft.Pick{}, fmt.Errorf("%w: draft is complete", ErrConflict)
	}
	if turn.TeamID != input.TeamID {
		return draft.Pick{}, fmt.Errorf("%w: not your turn, expected team %s", ErrInvalidInput, turn.TeamID)
	}

	pick := draft.Pick{
		LeagueID:        input.LeagueID,
		RaceID:          input.RaceID,
		PickNumber:      turn.PickNumber,
		Round:           turn.Round,
		PositionInRound: turn.PositionInRound,
		TeamID:          input.TeamID,
		DriverID:        input.DriverID,
		IsAutoPick:      strings.TrimSpace(input.ActingUserID) == "",
		PickedAt:        s.now().UTC(),
	}

	if err := s.draftRepo.AppendPick(ctx, pick); err != nil {
		if errors.Is(err, draft.ErrDuplicatePick) || errors.Is(err, draft.ErrDriverTaken) {
			return draft.Pick{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return draft.Pick{}, fmt.Errorf("append pick: %w", err)
	}

	s.logger.InfoContext(ctx, "pick committed",
		"league_id", input.LeagueID, "race_id", input.RaceID,
		"pick_number", pick.PickNumber, "team_id", pick.TeamID,
		"driver_id", pick.DriverID, "auto", pick.IsAutoPick)

	return pick, nil
}

// AutoPick selects and commits a fallback driver for the team on the clock.
// It returns ok=false without error when the draft is complete or no drivers
// remain; both are normal terminal conditions.
func (s *DraftService) AutoPick(ctx context.Context, leagueID, raceID string) (draft.Pick, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.AutoPick")
	defer span.End()

	lock := s.draftLock(leagueID, raceID)
	lock.Lock()
	defer lock.Unlock()

	order, found, err := s.draftRepo.GetOrder(ctx, leagueID, raceID)
	if err != nil {
		return draft.Pick{}, false, fmt.Errorf("get draft order: %w", err)
	}
	if !found {
		return draft.Pick{}, false, fmt.Errorf("%w: draft order league=%s race=%s", ErrNotFound, leagueID, raceID)
	}

	picks, err := s.draftRepo.ListPicks(ctx, leagueID, raceID)
	if err != nil {
		return draft.Pick{}, false, fmt.Errorf("list picks: %w", err)
	}

	turn, hasTurn := draft.NextTurn(order.Sequence, len(picks))
	if !hasTurn {
		return draft.Pick{}, false, nil
	}

	pool, err := s.driverRepo.List(ctx)
	if err != nil {
		return draft.Pick{}, false, fmt.Errorf("list drivers: %w", err)
	}
	picked := make(map[string]struct{}, len(picks))
	for _, p := range picks {
		picked[p.DriverID] = struct{}{}
	}

	strategy, err := s.resolveStrategy(ctx, leagueID)
	if err != nil {
		return draft.Pick{}, false, err
	}

	driverID, ok := strategy.Select(pool, picked)
	if !ok {
		s.logger.WarnContext(ctx, "auto pick found no available driver",
			"league_id", leagueID, "race_id", raceID, "strategy", strategy.Name())
		return draft.Pick{}, false, nil
	}

	pick, err := s.submitPickLocked(ctx, SubmitPickInput{
		LeagueID: leagueID,
		RaceID:   raceID,
		TeamID:   turn.TeamID,
		DriverID: driverID,
	})
	if err != nil {
		return draft.Pick{}, false, err
	}

	return pick, true, nil
}

func (s *DraftService) resolveStrategy(ctx context.Context, leagueID string) (AutoPickStrategy, error) {
	l, found, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	name := strings.TrimSpace(l.AutoPickStrategy)
	if name == "" {
		name = StrategyHighestAvailableID
	}
	strategy, ok := s.strategies[name]
	if !ok {
		s.logger.WarnContext(ctx, "unknown auto pick strategy, using default",
			"league_id", leagueID, "strategy", name)
		strategy = s.strategies[StrategyHighestAvailableID]
	}
	if strategy == nil {
		return nil, fmt.Errorf("%w: no auto pick strategy configured", ErrDependencyUnavailable)
	}

	return strategy, nil
}

// ListPicks returns the committed picks in pick-number order.
func (s *DraftService) ListPicks(ctx context.Context, leagueID, raceID string) ([]draft.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.ListPicks")
	defer span.End()

	if _, found, err := s.draftRepo.GetOrder(ctx, leagueID, raceID); err != nil {
		return nil, fmt.Errorf("get draft order: %w", err)
	} else if !found {
		return nil, fmt.Errorf("%w: draft order league=%s race=%s", ErrNotFound, leagueID, raceID)
	}

	picks, err := s.draftRepo.ListPicks(ctx, leagueID, raceID)
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	return picks, nil
}

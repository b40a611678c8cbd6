package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gridpick/fantasy-gp/internal/domain/constructor"
	"github.com/gridpick/fantasy-gp/internal/domain/driver"
	"github.com/gridpick/fantasy-gp/internal/domain/fantasyteam"
	"github.com/gridpick/fantasy-gp/internal/domain/league"
	"github.com/gridpick/fantasy-gp/internal/domain/race"
	"github.com/gridpick/fantasy-gp/internal/domain/scoring"
	"github.com/gridpick/fantasy-gp/internal/domain/teampick"
	"github.com/gridpick/fantasy-gp/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

// defaultPointsByPosition is the classification table applied when a league
// carries no override.
var defaultPointsByPosition = map[int]int{
	1: 25, 2: 18, 3: 15, 4: 12, 5: 10,
	6: 8, 7: 6, 8: 4, 9: 2, 10: 1,
}

const fastestLapBonus = 1

const defaultRecomputeWorkers = 4

// ScoringService converts official race results into fantasy points. All
// TeamPick point writes funnel through applyTeamPickPoints so the leaderboard
// cache can never be left stale by a forgotten invalidation.
type ScoringService struct {
	leagueRepo      league.Repository
	raceRepo        race.Repository
	teamRepo        fantasyteam.Repository
	driverRepo      driver.Repository
	constructorRepo constructor.Repository
	teamPickRepo    teampick.Repository
	scoringRepo     scoring.Repository
	leaderboards    *LeaderboardService
	logger          *logging.Logger
	workers         int
}

func NewScoringService(
	leagueRepo league.Repository,
	raceRepo race.Repository,
	teamRepo fantasyteam.Repository,
	driverRepo driver.Repository,
	constructorRepo constructor.Repository,
	teamPickRepo teampick.Repository,
	scoringRepo scoring.Repository,
	leaderboards *LeaderboardService,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		leagueRepo:      leagueRepo,
		raceRepo:        raceRepo,
		teamRepo:        teamRepo,
		driverRepo:      driverRepo,
		constructorRepo: constructorRepo,
		teamPickRepo:    teamPickRepo,
		scoringRepo:     scoringRepo,
		leaderboards:    leaderboards,
		logger:          logger,
		workers:         defaultRecomputeWorkers,
	}
}

// SetRecomputeWorkers overrides the pool size used by season recomputes.
func (s *ScoringService) SetRecomputeWorkers(n int) {
	if n > 0 {
		s.workers = n
	}
}

// DriverPoints scores one result against a points table. Unclassified results
// (DNF/DNS/DSQ) pass their recorded raw points through unmodified; classified
// results score from the table plus the fastest-lap bonus.
func DriverPoints(result scoring.RaceResult, table map[int]int) int {
	if !result.Classified() {
		return result.RawPoints
	}
	if table == nil {
		table = defaultPointsByPosition
	}

	points := table[result.Position]
	if result.FastestLap {
		points += fastestLapBonus
	}
	return points
}

// pointsTable resolves the table for a league: a well-formed override wins,
// anything else falls back to the default with a warning.
func (s *ScoringService) pointsTable(ctx context.Context, leagueID string) (map[int]int, error) {
	if strings.TrimSpace(leagueID) == "" {
		return defaultPointsByPosition, nil
	}

	override, found, err := s.scoringRepo.GetOverride(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get scoring override: %w", err)
	}
	if !found {
		return defaultPointsByPosition, nil
	}
	if !override.WellFormed() {
		s.logger.WarnContext(ctx, "malformed scoring override ignored", "league_id", leagueID)
		return defaultPointsByPosition, nil
	}

	return override.PointsByPosition, nil
}

// DriverRacePoints scores one driver's race for a league, honoring the
// league's override table when present.
func (s *ScoringService) DriverRacePoints(ctx context.Context, leagueID, raceID, driverID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.DriverRacePoints")
	defer span.End()

	table, err := s.pointsTable(ctx, leagueID)
	if err != nil {
		return 0, err
	}

	results, err := s.scoringRepo.ListResultsByRace(ctx, raceID)
	if err != nil {
		return 0, fmt.Errorf("list race results: %w", err)
	}
	for _, result := range results {
		if result.DriverID == driverID {
			return DriverPoints(result, table), nil
		}
	}

	return 0, nil
}

// ConstructorRacePoints sums the race points of every driver currently
// associated with the constructor. No matched drivers scores zero.
func (s *ScoringService) ConstructorRacePoints(ctx context.Context, leagueID, raceID, constructorID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ConstructorRacePoints")
	defer span.End()

	table, err := s.pointsTable(ctx, leagueID)
	if err != nil {
		return 0, err
	}

	drivers, err := s.driverRepo.ListByConstructor(ctx, constructorID)
	if err != nil {
		return 0, fmt.Errorf("list constructor drivers: %w", err)
	}
	if len(drivers) == 0 {
		return 0, nil
	}
	members := make(map[string]struct{}, len(drivers))
	for _, d := range drivers {
		members[d.ID] = struct{}{}
	}

	results, err := s.scoringRepo.ListResultsByRace(ctx, raceID)
	if err != nil {
		return 0, fmt.Errorf("list race results: %w", err)
	}

	total := 0
	for _, result := range results {
		if _, ok := members[result.DriverID]; ok {
			total += DriverPoints(result, table)
		}
	}

	return total, nil
}

// TeamRacePoints sums a team's active picks for one race by pick kind.
func (s *ScoringService) TeamRacePoints(ctx context.Context, teamID, raceID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.TeamRacePoints")
	defer span.End()

	picks, err := s.teamPickRepo.ListByTeam(ctx, teamID, raceID)
	if err != nil {
		return 0, fmt.Errorf("list team picks: %w", err)
	}

	total := 0
	for _, pick := range picks {
		if !pick.Active {
			continue
		}
		points, err := s.subjectRacePoints(ctx, pick)
		if err != nil {
			return 0, err
		}
		total += points
	}

	return total, nil
}

func (s *ScoringService) subjectRacePoints(ctx context.Context, pick teampick.TeamPick) (int, error) {
	switch pick.Kind {
	case teampick.KindDriver:
		return s.DriverRacePoints(ctx, pick.LeagueID, pick.RaceID, pick.SubjectID)
	case teampick.KindConstructor:
		return s.ConstructorRacePoints(ctx, pick.LeagueID, pick.RaceID, pick.SubjectID)
	default:
		return 0, fmt.Errorf("%w: unknown pick kind %q", ErrInvalidInput, pick.Kind)
	}
}

// applyTeamPickPoints is the single choke point for TeamPick point writes.
// It persists the new value and always invalidates the leaderboard cache for
// the affected league and race scope.
func (s *ScoringService) applyTeamPickPoints(ctx context.Context, pick teampick.TeamPick, points int) error {
	if pick.Points != points {
		if err := s.teamPickRepo.UpdatePoints(ctx, pick.ID, points); err != nil {
			return fmt.Errorf("update team pick points: %w", err)
		}
	}
	if s.leaderboards != nil {
		s.leaderboards.Invalidate(ctx, pick.LeagueID, pick.RaceID)
	}

	return nil
}

type raceRecompute struct {
	raceID              string
	pointsByDriver      map[string]int
	pointsByConstructor map[string]int
	winnerConstructorID string
	resultsByDriver     map[string]struct{}
}

// RecomputeSeasonStandings rebuilds every derived points figure from official
// results: constructor race/season totals and wins, driver season totals and
// averages, team pick points and team running totals. A full rebuild, so a
// second run over unchanged results is a no-op; a run with no completed races
// succeeds doing nothing.
func (s *ScoringService) RecomputeSeasonStandings(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecomputeSeasonStandings")
	defer span.End()

	races, err := s.raceRepo.ListCompleted(ctx)
	if err != nil {
		return fmt.Errorf("list completed races: %w", err)
	}
	if len(races) == 0 {
		s.logger.InfoContext(ctx, "season recompute: no completed races")
		return nil
	}

	constructors, err := s.constructorRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list constructors: %w", err)
	}
	drivers, err := s.driverRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list drivers: %w", err)
	}
	constructorOf := make(map[string]string, len(drivers))
	for _, d := range drivers {
		constructorOf[d.ID] = d.ConstructorID
	}

	perRace, err := s.recomputeRaces(ctx, races, constructors, constructorOf)
	if err != nil {
		return err
	}

	if err := s.storeConstructorStandings(ctx, constructors, perRace); err != nil {
		return err
	}
	if err := s.storeDriverStandings(ctx, drivers, perRace); err != nil {
		return err
	}

	return s.refreshTeamPoints(ctx, perRace)
}

func (s *ScoringService) recomputeRaces(
	ctx context.Context,
	races []race.Race,
	constructors []constructor.Constructor,
	constructorOf map[string]string,
) ([]raceRecompute, error) {
	workers := s.workers
	if workers <= 0 {
		workers = defaultRecomputeWorkers
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("%w: create recompute pool: %v", ErrDependencyUnavailable, err)
	}
	defer pool.Release()

	perRace := make([]raceRecompute, len(races))
	errs := make([]error, len(races))
	var wg sync.WaitGroup

	for i, r := range races {
		i, r := i, r
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			perRace[i], errs[i] = s.recomputeOneRace(ctx, r.ID, constructors, constructorOf)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = fmt.Errorf("submit race recompute: %w", submitErr)
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return perRace, nil
}

func (s *ScoringService) recomputeOneRace(
	ctx context.Context,
	raceID string,
	constructors []constructor.Constructor,
	constructorOf map[string]string,
) (raceRecompute, error) {
	results, err := s.scoringRepo.ListResultsByRace(ctx, raceID)
	if err != nil {
		return raceRecompute{}, fmt.Errorf("list results for race %s: %w", raceID, err)
	}

	out := raceRecompute{
		raceID:              raceID,
		pointsByDriver:      make(map[string]int, len(results)),
		pointsByConstructor: make(map[string]int),
		resultsByDriver:     make(map[string]struct{}, len(results)),
	}
	for _, result := range results {
		points := DriverPoints(result, nil)
		out.pointsByDriver[result.DriverID] = points
		out.resultsByDriver[result.DriverID] = struct{}{}
		if constructorID := constructorOf[result.DriverID]; constructorID != "" {
			out.pointsByConstructor[constructorID] += points
		}
	}

	// Winner is the highest-scoring constructor, first seen on ties; iterate
	// the stable List order so ties resolve deterministically.
	best := -1
	for _, c := range constructors {
		if points := out.pointsByConstructor[c.ID]; points > best {
			best = points
			out.winnerConstructorID = c.ID
		}
	}

	return out, nil
}

func (s *ScoringService) storeConstructorStandings(ctx context.Context, constructors []constructor.Constructor, perRace []raceRecompute) error {
	totals := make(map[string]int, len(constructors))
	wins := make(map[string]int, len(constructors))
	for _, rr := range perRace {
		for constructorID, points := range rr.pointsByConstructor {
			totals[constructorID] += points
		}
		if rr.winnerConstructorID != "" {
			wins[rr.winnerConstructorID]++
		}
	}

	for _, c := range constructors {
		if err := s.constructorRepo.UpdateSeasonPoints(ctx, c.ID, totals[c.ID], wins[c.ID]); err != nil {
			return fmt.Errorf("update constructor %s season points: %w", c.ID, err)
		}
	}

	return nil
}

func (s *ScoringService) storeDriverStandings(ctx context.Context, drivers []driver.Driver, perRace []raceRecompute) error {
	totals := make(map[string]int, len(drivers))
	started := make(map[string]int, len(drivers))
	for _, rr := range perRace {
		for driverID, points := range rr.pointsByDriver {
			totals[driverID] += points
		}
		for driverID := range rr.resultsByDriver {
			started[driverID]++
		}
	}

	for _, d := range drivers {
		average := 0.0
		if races := started[d.ID]; races > 0 {
			average = float64(totals[d.ID]) / float64(races)
		}
		if err := s.driverRepo.UpdateSeasonPoints(ctx, d.ID, totals[d.ID], average); err != nil {
			return fmt.Errorf("update driver %s season points: %w", d.ID, err)
		}
	}

	return nil
}

// refreshTeamPoints re-scores every league's team picks from the recomputed
// races and refreshes team running totals, invalidating cached leaderboards
// through the choke point as values change.
func (s *ScoringService) refreshTeamPoints(ctx context.Context, perRace []raceRecompute) error {
	completed := make(map[string]struct{}, len(perRace))
	for _, rr := range perRace {
		completed[rr.raceID] = struct{}{}
	}

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list leagues: %w", err)
	}

	for _, l := range leagues {
		picks, err := s.teamPickRepo.ListByLeague(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("list picks for league %s: %w", l.ID, err)
		}

		totals := make(map[string]int)
		pickIDs := make([]string, 0, len(picks))
		byID := make(map[string]teampick.TeamPick, len(picks))
		for _, pick := range picks {
			pickIDs = append(pickIDs, pick.ID)
			byID[pick.ID] = pick
		}
		sort.Strings(pickIDs)

		for _, pickID := range pickIDs {
			pick := byID[pickID]
			if !pick.Active {
				continue
			}

			points := pick.Points
			if _, done := completed[pick.RaceID]; done {
				points, err = s.subjectRacePoints(ctx, pick)
				if err != nil {
					return err
				}
				if err := s.applyTeamPickPoints(ctx, pick, points); err != nil {
					return err
				}
			}
			totals[pick.TeamID] += points
		}

		for teamID, total := range totals {
			if err := s.teamRepo.UpdateTotalPoints(ctx, teamID, total); err != nil {
				return fmt.Errorf("update team %s total points: %w", teamID, err)
			}
		}
	}

	return nil
}

package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gridpick/fantasy-gp/internal/domain/constructor"
	"github.com/gridpick/fantasy-gp/internal/domain/driver"
	"github.com/gridpick/fantasy-gp/internal/domain/fantasyteam"
	"github.com/gridpick/fantasy-gp/internal/domain/league"
	"github.com/gridpick/fantasy-gp/internal/domain/race"
	"github.com/gridpick/fantasy-gp/internal/domain/scoring"
	"github.com/gridpick/fantasy-gp/internal/domain/teampick"
)

type stubLeagueRepository struct {
	byID map[string]league.League
}

func (s *stubLeagueRepository) List(_ context.Context) ([]league.League, error) {
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]league.League, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.byID[id])
	}
	return out, nil
}

func (s *stubLeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	item, ok := s.byID[leagueID]
	return item, ok, nil
}

type stubRaceRepository struct {
	races []race.Race
}

func (s *stubRaceRepository) List(_ context.Context) ([]race.Race, error) {
	out := make([]race.Race, len(s.races))
	copy(out, s.races)
	return out, nil
}

func (s *stubRaceRepository) GetByID(_ context.Context, raceID string) (race.Race, bool, error) {
	for _, item := range s.races {
		if item.ID == raceID {
			return item, true, nil
		}
	}
	return race.Race{}, false, nil
}

func (s *stubRaceRepository) ListCompleted(_ context.Context) ([]race.Race, error) {
	out := make([]race.Race, 0, len(s.races))
	for _, item := range s.races {
		if item.Status == race.StatusCompleted {
			out = append(out, item)
		}
	}
	return out, nil
}

type stubTeamRepository struct {
	mu       sync.Mutex
	byLeague map[string][]fantasyteam.Team
	totals   map[string]int
}

func (s *stubTeamRepository) ListActiveByLeague(_ context.Context, leagueID string) ([]fantasyteam.Team, error) {
	items := s.byLeague[leagueID]
	out := make([]fantasyteam.Team, 0, len(items))
	for _, item := range items {
		if item.Active {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubTeamRepository) GetByID(_ context.Context, teamID string) (fantasyteam.Team, bool, error) {
	for _, items := range s.byLeague {
		for _, item := range items {
			if item.ID == teamID {
				return item, true, nil
			}
		}
	}
	return fantasyteam.Team{}, false, nil
}

func (s *stubTeamRepository) UpdateTotalPoints(_ context.Context, teamID string, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.totals == nil {
		s.totals = make(map[string]int)
	}
	s.totals[teamID] = points
	return nil
}

type stubDriverRepository struct {
	mu       sync.Mutex
	drivers  []driver.Driver
	totals   map[string]int
	averages map[string]float64
}

func (s *stubDriverRepository) List(_ context.Context) ([]driver.Driver, error) {
	out := make([]driver.Driver, len(s.drivers))
	copy(out, s.drivers)
	return out, nil
}

func (s *stubDriverRepository) GetByID(_ context.Context, driverID string) (driver.Driver, bool, error) {
	for _, item := range s.drivers {
		if item.ID == driverID {
			return item, true, nil
		}
	}
	return driver.Driver{}, false, nil
}

func (s *stubDriverRepository) ListByConstructor(_ context.Context, constructorID string) ([]driver.Driver, error) {
	out := make([]driver.Driver, 0, len(s.drivers))
	for _, item := range s.drivers {
		if item.ConstructorID == constructorID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubDriverRepository) UpdateSeasonPoints(_ context.Context, driverID string, total int, average float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.totals == nil {
		s.totals = make(map[string]int)
		s.averages = make(map[string]float64)
	}
	s.totals[driverID] = total
	s.averages[driverID] = average
	return nil
}

type stubConstructorRepository struct {
	mu           sync.Mutex
	constructors []constructor.Constructor
	totals       map[string]int
	wins         map[string]int
}

func (s *stubConstructorRepository) List(_ context.Context) ([]constructor.Constructor, error) {
	out := make([]constructor.Constructor, len(s.constructors))
	copy(out, s.constructors)
	return out, nil
}

func (s *stubConstructorRepository) GetByID(_ context.Context, constructorID string) (constructor.Constructor, bool, error) {
	for _, item := range s.constructors {
		if item.ID == constructorID {
			return item, true, nil
		}
	}
	return constructor.Constructor{}, false, nil
}

func (s *stubConstructorRepository) UpdateSeasonPoints(_ context.Context, constructorID string, total int, wins int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.totals == nil {
		s.totals = make(map[string]int)
		s.wins = make(map[string]int)
	}
	s.totals[constructorID] = total
	s.wins[constructorID] = wins
	return nil
}

type stubTeamPickRepository struct {
	mu    sync.Mutex
	picks []teampick.TeamPick
}

func (s *stubTeamPickRepository) ListByTeam(_ context.Context, teamID, raceID string) ([]teampick.TeamPick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]teampick.TeamPick, 0, len(s.picks))
	for _, item := range s.picks {
		if item.TeamID != teamID {
			continue
		}
		if raceID != "" && item.RaceID != raceID {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *stubTeamPickRepository) ListByLeague(_ context.Context, leagueID string) ([]teampick.TeamPick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]teampick.TeamPick, 0, len(s.picks))
	for _, item := range s.picks {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubTeamPickRepository) UpdatePoints(_ context.Context, pickID string, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.picks {
		if s.picks[i].ID == pickID {
			s.picks[i].Points = points
			return nil
		}
	}
	return nil
}

type stubScoringRepository struct {
	resultsByRace map[string][]scoring.RaceResult
	overrides     map[string]scoring.Override
}

func (s *stubScoringRepository) ListResultsByRace(_ context.Context, raceID string) ([]scoring.RaceResult, error) {
	items := s.resultsByRace[raceID]
	out := make([]scoring.RaceResult, len(items))
	copy(out, items)
	return out, nil
}

func (s *stubScoringRepository) GetOverride(_ context.Context, leagueID string) (scoring.Override, bool, error) {
	item, ok := s.overrides[leagueID]
	return item, ok, nil
}

type recordedJob struct {
	path    string
	dedupID string
}

type stubJobQueue struct {
	mu       sync.Mutex
	enqueued []recordedJob
	err      error
}

func (s *stubJobQueue) Enqueue(_ context.Context, path string, _ any, _ time.Duration, deduplicationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.enqueued = append(s.enqueued, recordedJob{path: path, dedupID: deduplicationID})
	return nil
}

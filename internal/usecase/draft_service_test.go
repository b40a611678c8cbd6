package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gridpick/fantasy-gp/internal/domain/draft"
	"github.com/gridpick/fantasy-gp/internal/domain/driver"
	"github.com/gridpick/fantasy-gp/internal/domain/fantasyteam"
	"github.com/gridpick/fantasy-gp/internal/domain/league"
	"github.com/gridpick/fantasy-gp/internal/domain/race"
	"github.com/gridpick/fantasy-gp/internal/infrastructure/repository/memory"
)

const (
	testLeagueID = "gp-main-2026"
	testRaceID   = "race-monaco"
)

func newDraftServiceForTest(t *testing.T, teams []fantasyteam.Team, drivers []driver.Driver, l league.League) *DraftService {
	t.Helper()

	if l.ID == "" {
		l = league.League{
			ID:             testLeagueID,
			Name:           "Grid Pick Main",
			Season:         "2026",
			CommissionerID: "user-commissioner",
			MaxTeams:       10,
			DraftMethod:    league.DraftSequential,
		}
	}

	leagueRepo := &stubLeagueRepository{byID: map[string]league.League{l.ID: l}}
	raceRepo := &stubRaceRepository{races: []race.Race{
		{ID: testRaceID, Name: "Monaco", Round: 7, Status: race.StatusUpcoming},
	}}
	teamRepo := &stubTeamRepository{byLeague: map[string][]fantasyteam.Team{l.ID: teams}}
	driverRepo := &stubDriverRepository{drivers: drivers}

	return NewDraftService(leagueRepo, raceRepo, teamRepo, driverRepo, memory.NewDraftRepository(), nil, nil)
}

func testTeams(ids ...string) []fantasyteam.Team {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]fantasyteam.Team, 0, len(ids))
	for i, id := range ids {
		out = append(out, fantasyteam.Team{
			ID:        id,
			UserID:    "user-" + id,
			LeagueID:  testLeagueID,
			Name:      "Team " + id,
			Active:    true,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

func testDrivers(ids ...string) []driver.Driver {
	out := make([]driver.Driver, 0, len(ids))
	for i, id := range ids {
		out = append(out, driver.Driver{ID: id, Name: "Driver " + id, Number: i + 1})
	}
	return out
}

func TestDraftService_CreateDraftOrder_SequentialFollowsTeamOrder(t *testing.T) {
	t.Parallel()

	service := newDraftServiceForTest(t,
		testTeams("team-a", "team-b", "team-c"),
		testDrivers("drv-1"),
		league.League{})

	order, err := service.CreateDraftOrder(context.Background(), CreateDraftOrderInput{
		LeagueID: testLeagueID,
		RaceID:   testRaceID,
	})
	if err != nil {
		t.Fatalf("CreateDraftOrder error: %v", err)
	}

	want := []string{"team-a", "team-b", "team-c"}
	if len(order.Sequence) != len(want) {
		t.Fatalf("unexpected sequence length: got=%d want=%d", len(order.Sequence), len(want))
	}
	for i, teamID := range want {
		if order.Sequence[i] != teamID {
			t.Fatalf("unexpected sequence: got=%v want=%v", order.Sequence, want)
		}
	}
	if order.Method != league.DraftSequential {
		t.Fatalf("unexpected method: %s", order.Method)
	}
	if !order.Locked {
		t.Fatalf("expected order to be locked on creation")
	}
}

func TestDraftService_CreateDraftOrder_SecondCreateConflicts(t *testing.T) {
	t.Parallel()

	service := newDraftServiceForTest(t,
		testTeams("team-a", "team-b"),
		testDrivers("drv-1"),
		league.League{})

	input := CreateDraftOrderInput{LeagueID: testLeagueID, RaceID: testRaceID}
	if _, err := service.CreateDraftOrder(context.Background(), input); err != nil {
		t.Fatalf("first CreateDraftOrder error: %v", err)
	}

	_, err := service.CreateDraftOrder(context.Background(), input)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestDraftService_CreateDraftOrder_RandomUsesShuffle(t *testing.T) {
	t.Parallel()

	service := newDraftServiceForTest(t,
		testTeams("team-a", "team-b", "team-c"),
		testDrivers("drv-1"),
		league.League{})
	service.shuffle = func(n int, swap func(i, j int)) {
		swap(0, n-1)
	}

	order, err := service.CreateDraftOrder(context.Background(), CreateDraftOrderInput{
		LeagueID: testLeagueID,
		RaceID:   testRaceID,
		Method:   "random",
	})
	if err != nil {
		t.Fatalf("CreateDraftOrder error: %v", err)
	}
	if order.Sequence[0] != "team-c" || order.Sequence[2] != "team-a" {
		t.Fatalf("expected injected shuffle to apply, got %v", order.Sequence)
	}
}

func TestDraftService_CreateDraftOrder_ExplicitOrder(t *testing.T) {
	t.Parallel()

	service := newDraftServiceForTest(t,
		testTeams("team-a", "team-b", "team-c"),
		testDrivers("drv-1"),
		league.League{})

	order, err := service.CreateDraftOrder(context.Background(), CreateDraftOrderInput{
		LeagueID:      testLeagueID,
		RaceID:        testRaceID,
		ExplicitOrder: []string{"team-b", "team-c", "team-a"},
	})
	if err != nil {
		t.Fatalf("CreateDraftOrder error: %v", err)
	}
	if order.Sequence[0] != "team-b" || order.Sequence[1] != "team-c" || order.Sequence[2] != "team-a" {
		t.Fatalf("explicit order not honored: %v", order.Sequence)
	}
}

func TestDraftService_CreateDraftOrder_ExplicitOrderMustMatchActiveSet(t *testing.T) {
	t.Parallel()

	service := newDraftServiceForTest(t,
		testTeams("team-a", "team-b"),
		testDrivers("drv-1"),
		league.League{})

	cases := []struct {
		name  string
		order []string
	}{
		{name: "too short", order: []string{"team-a"}},
		{name: "outsider", order: []string{"team-a", "team-x"}},
		{name: "duplicate", order: []string{"team-a", "team-a"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := service.CreateDraftOrder(context.Background(), CreateDraftOrderInput{
				LeagueID:      testLeagueID,
				RaceID:        testRaceID,
				ExplicitOrder: tc.order,
			})
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestDraftService_CreateDraftOrder_MissingLeagueOrRace(t *testing.T) {
	t.Parallel()

	service := newDraftServiceForTest(t,
		testTeams("team-a"),
		testDrivers("drv-1"),
		league.League{})

	_, err := service.CreateDraftOrder(context.Background(), CreateDraftOrderInput{
		LeagueID: "missing-league",
		RaceID:   testRaceID,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing league, got %v", err)
	}

	_, err = service.CreateDraftOrder(context.Background(), CreateDraftOrderInput{
		LeagueID: testLeagueID,
		RaceID:   "missing-race",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing race, got %v", err)
	}
}

func TestDraftService_CreateDraftOrder_NoActiveTeams(t *testing.T) {
	t.Parallel()

	service := newDraftServiceForTest(t, nil, testDrivers("drv-1"), league.League{})

	_, err := service.CreateDraftOrder(context.Background(), CreateDraftOrderInput{
		LeagueID: testLeagueID,
		RaceID:   testRaceID,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDraftService_SubmitPick_EnforcesTurnOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newDraftServiceForTest(t,
		testTeams("team-a", "team-b"),
		testDrivers("drv-1", "drv-2", "drv-3"),
		league.League{})

	if _, err := service.CreateDraftOrder(ctx, CreateDraftOrderInput{LeagueID: testLeagueID, RaceID: testRaceID}); err != nil {
		t.Fatalf("CreateDraftOrder error: %v", err)
	}

	_, err := service.SubmitPick(ctx, SubmitPickInput{
		LeagueID: testLeagueID, RaceID: testRaceID,
		TeamID: "team-b", DriverID: "drv-1", ActingUserID: "user-team-b",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out-of-turn pick, got %v", err)
	}

	pick, err := service.SubmitPick(ctx, SubmitPickInput{
		LeagueID: testLeagueID, RaceID: testRaceID,
		TeamID: "team-a", DriverID: "drv-1", ActingUserID: "user-team-a",
	})
	if err != nil {
		t.Fatalf("SubmitPick error: %v", err)
	}
	if pick.PickNumber != 1 || pick.Round != 1 || pick.PositionInRound != 1 {
		t.Fatalf("unexpected pick coordinates: %+v", pick)
	}
	if pick.IsAutoPick {
		t.Fatalf("pick with acting user must not be marked auto")
	}

	pick, err = service.SubmitPick(ctx, SubmitPickInput{
		LeagueID: testLeagueID, RaceID: testRaceID,
		TeamID: "team-b", DriverID: "drv-2",
	})
	if err != nil {
		t.Fatalf("SubmitPick error: %v", err)
	}
	if pick.PickNumber != 2 || !pick.IsAutoPick {
		t.Fatalf("expected auto-marked pick number 2, got %+v", pick)
	}
}

func TestDraftService_SubmitPick_RejectsTakenDriver(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newDraftServiceForTest(t,
		testTeams("team-a", "team-b"),
		testDrivers("drv-1", "drv-2"),
		league.League{})

	if _, err := service.CreateDraftOrder(ctx, CreateDraftOrderInput{LeagueID: testLeagueID, RaceID: testRaceID}); err != nil {
		t.Fatalf("CreateDraftOrder error: %v", err)
	}
	if _, err := service.SubmitPick(ctx, SubmitPickInput{
		LeagueID: testLeagueID, RaceID: testRaceID,
		TeamID: "team-a", DriverID: "drv-1", ActingUserID: "user-team-a",
	}); err != nil {
		t.Fatalf("SubmitPick error: %v", err)
	}

	_, err := service.SubmitPick(ctx, SubmitPickInput{
		LeagueID: testLeagueID, RaceID: testRaceID,
		TeamID: "team-b", DriverID: "drv-1", ActingUserID: "user-team-b",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for taken driver, got %v", err)
	}
}

func TestDraftService_SubmitPick_UnknownTeamAndDriver(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newDraftServiceForTest(t,
		testTeams("team-a"),
		testDrivers("drv-1"),
		league.League{})

	if _, err := service.CreateDraftOrder(ctx, CreateDraftOrderInput{LeagueID: testLeagueID, RaceID: testRaceID}); err != nil {
		t.Fatalf("CreateDraftOrder error: %v", err)
	}

	_, err := service.SubmitPick(ctx, SubmitPickInput{
		LeagueID: testLeagueID, RaceID: testRaceID,
		TeamID: "team-x", DriverID: "drv-1",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-member team, got %v", err)
	}

	_, err = service.SubmitPick(ctx, SubmitPickInput{
		LeagueID: testLeagueID, RaceID: testRaceID,
		TeamID: "team-a", DriverID: "drv-missing",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown driver, got %v", err)
	}
}

func TestDraftService_DraftRunsToCompletion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newDraftServiceForTest(t,
		testTeams("team-solo"),
		testDrivers("drv-1", "drv-2", "drv-3", "drv-4", "drv-5", "drv-6"),
		league.League{})

	if _, err := service.CreateDraftOrder(ctx, CreateDraftOrderInput{LeagueID: testLeagueID, RaceID: testRaceID}); err != nil {
		t.Fatalf("CreateDraftOrder error: %v", err)
	}

	info, err := service.NextPickInfo(ctx, testLeagueID, testRaceID)
	if err != nil {
		t.Fatalf("NextPickInfo error: %v", err)
	}
	if info.State != draft.StateNotStarted || info.TotalPicks != draft.RoundsPerTeam {
		t.Fatalf("unexpected initial info: %+v", info)
	}

	driverIDs := []string{"drv-1", "drv-2", "drv-3", "drv-4", "drv-5"}
	for round := 1; round <= draft.RoundsPerTeam; round++ {
		pick, err := service.SubmitPick(ctx, SubmitPickInput{
			LeagueID: testLeagueID, RaceID: testRaceID,
			TeamID: "team-solo", DriverID: driverIDs[round-1],
			ActingUserID: "user-team-solo",
		})
		if err != nil {
			t.Fatalf("SubmitPick round %d error: %v", round, err)
		}
		if pick.Round != round {
			t.Fatalf("unexpected round: got=%d want=%d", pick.Round, round)
		}
	}

	info, err = service.NextPickInfo(ctx, testLeagueID, testRaceID)
	if err != nil {
		t.Fatalf("NextPickInfo error: %v", err)
	}
	if info.State != draft.StateComplete || info.HasTurn {
		t.Fatalf("expected completed draft, got %+v", info)
	}

	_, err = service.SubmitPick(ctx, SubmitPickInput{
		LeagueID: testLeagueID, RaceID: testRaceID,
		TeamID: "team-solo", DriverID: "drv-6", ActingUserID: "user-team-solo",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict after completion, got %v", err)
	}
}

func TestDraftService_NextPickInfo_OrderNotFound(t *testing.T) {
	t.Parallel()

	service := newDraftServiceForTest(t, testTeams("team-a"), testDrivers("drv-1"), league.League{})

	_, err := service.NextPickInfo(context.Background(), testLeagueID, testRaceID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDraftService_RegenerateDraftOrder_CommissionerOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newDraftServiceForTest(t,
		testTeams("team-a", "team-b"),
		testDrivers("drv-1"),
		league.League{})

	if _, err := service.CreateDraftOrder(ctx, CreateDraftOrderInput{LeagueID: testLeagueID, RaceID: testRaceID}); err != nil {
		t.Fatalf("CreateDraftOrder error: %v", err)
	}

	input := CreateDraftOrderInput{
		LeagueID:      testLeagueID,
		RaceID:        testRaceID,
		ExplicitOrder: []string{"team-b", "team-a"},
	}

	_, err := service.RegenerateDraftOrder(ctx, "user-intruder", input)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	order, err := service.RegenerateDraftOrder(ctx, "user-commissioner", input)
	if err != nil {
		t.Fatalf("RegenerateDraftOrder error: %v", err)
	}
	if order.Sequence[0] != "team-b" || order.Sequence[1] != "team-a" {
		t.Fatalf("regenerated order not applied: %v", order.Sequence)
	}
}

func TestDraftService_RegenerateDraftOrder_BlockedAfterFirstPick(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newDraftServiceForTest(t,
		testTeams("team-a", "team-b"),
		testDrivers("drv-1"),
		league.League{})

	if _, err := service.CreateDraftOrder(ctx, CreateDraftOrderInput{LeagueID: testLeagueID, RaceID: testRaceID}); err != nil {
		t.Fatalf("CreateDraftOrder error: %v", err)
	}
	if _, err := service.SubmitPick(ctx, SubmitPickInput{
		LeagueID: testLeagueID, RaceID: testRaceID,
		TeamID: "team-a", DriverID: "drv-1", ActingUserID: "user-team-a",
	}); err != nil {
		t.Fatalf("SubmitPick error: %v", err)
	}

	_, err := service.RegenerateDraftOrder(ctx, "user-commissioner", CreateDraftOrderInput{
		LeagueID: testLeagueID,
		RaceID:   testRaceID,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict once picks exist, got %v", err)
	}
}

func TestDraftService_AutoPick_DefaultStrategyTakesHighestID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newDraftServiceForTest(t,
		testTeams("team-a", "team-b"),
		testDrivers("drv-1", "drv-2", "drv-9"),
		league.League{})

	if _, err := service.CreateDraftOrder(ctx, CreateDraftOrderInput{LeagueID: testLeagueID, RaceID: testRaceID}); err != nil {
		t.Fatalf("CreateDraftOrder error: %v", err)
	}

	pick, ok, err := service.AutoPick(ctx, testLeagueID, testRaceID)
	if err != nil {
		t.Fatalf("AutoPick error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a pick to be made")
	}
	if pick.TeamID != "team-a" || pick.DriverID != "drv-9" || !pick.IsAutoPick {
		t.Fatalf("unexpected auto pick: %+v", pick)
	}
}

func TestDraftService_AutoPick_SeasonPointsStrategy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drivers := []driver.Driver{
		{ID: "drv-1", Name: "Driver drv-1", TotalPoints: 40},
		{ID: "drv-2", Name: "Driver drv-2", TotalPoints: 95},
		{ID: "drv-3", Name: "Driver drv-3", TotalPoints: 95},
	}
	service := newDraftServiceForTest(t,
		testTeams("team-a"),
		drivers,
		league.League{
			ID:               testLeagueID,
			Name:             "Grid Pick Main",
			Season:           "2026",
			CommissionerID:   "user-commissioner",
			MaxTeams:         10,
			DraftMethod:      league.DraftSequential,
			AutoPickStrategy: StrategyHighestRankedBySeasonPoints,
		})

	if _, err := service.CreateDraftOrder(ctx, CreateDraftOrderInput{LeagueID: testLeagueID, RaceID: testRaceID}); err != nil {
		t.Fatalf("CreateDraftOrder error: %v", err)
	}

	pick, ok, err := service.AutoPick(ctx, testLeagueID, testRaceID)
	if err != nil {
		t.Fatalf("AutoPick error: %v", err)
	}
	if !ok || pick.DriverID != "drv-2" {
		t.Fatalf("expected drv-2 (most points, lowest id tiebreak), got ok=%v pick=%+v", ok, pick)
	}
}

func TestDraftService_AutoPick_TerminalConditionsAreNotErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newDraftServiceForTest(t,
		testTeams("team-a"),
		testDrivers("drv-1"),
		league.League{})

	if _, err := service.CreateDraftOrder(ctx, CreateDraftOrderInput{LeagueID: testLeagueID, RaceID: testRaceID}); err != nil {
		t.Fatalf("CreateDraftOrder error: %v", err)
	}
	if _, err := service.SubmitPick(ctx, SubmitPickInput{
		LeagueID: testLeagueID, RaceID: testRaceID,
		TeamID: "team-a", DriverID: "drv-1", ActingUserID: "user-team-a",
	}); err != nil {
		t.Fatalf("SubmitPick error: %v", err)
	}

	// One driver, one pick taken: the pool is exhausted.
	_, ok, err := service.AutoPick(ctx, testLeagueID, testRaceID)
	if err != nil {
		t.Fatalf("AutoPick error: %v", err)
	}
	if ok {
		t.Fatalf("expected no pick with exhausted pool")
	}
}

func TestDraftService_ListPicks_RequiresOrder(t *testing.T) {
	t.Parallel()

	service := newDraftServiceForTest(t, testTeams("team-a"), testDrivers("drv-1"), league.League{})

	_, err := service.ListPicks(context.Background(), testLeagueID, testRaceID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

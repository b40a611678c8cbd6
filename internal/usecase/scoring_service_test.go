package usecase

import (
	"context"
	"testing"

	"github.com/gridpick/fantasy-gp/internal/domain/constructor"
	"github.com/gridpick/fantasy-gp/internal/domain/driver"
	"github.com/gridpick/fantasy-gp/internal/domain/fantasyteam"
	"github.com/gridpick/fantasy-gp/internal/domain/league"
	"github.com/gridpick/fantasy-gp/internal/domain/race"
	"github.com/gridpick/fantasy-gp/internal/domain/scoring"
	"github.com/gridpick/fantasy-gp/internal/domain/teampick"
)

func TestDriverPoints_DefaultTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		result scoring.RaceResult
		want   int
	}{
		{name: "win", result: scoring.RaceResult{Position: 1}, want: 25},
		{name: "win with fastest lap", result: scoring.RaceResult{Position: 1, FastestLap: true}, want: 26},
		{name: "tenth", result: scoring.RaceResult{Position: 10}, want: 1},
		{name: "outside the points", result: scoring.RaceResult{Position: 11}, want: 0},
		{name: "outside the points with fastest lap", result: scoring.RaceResult{Position: 11, FastestLap: true}, want: 1},
		{name: "dnf passes raw through", result: scoring.RaceResult{Position: 14, RawPoints: 2, Status: scoring.StatusDNF}, want: 2},
		{name: "dnf ignores fastest lap", result: scoring.RaceResult{RawPoints: 0, FastestLap: true, Status: scoring.StatusDNF}, want: 0},
		{name: "dns", result: scoring.RaceResult{Status: scoring.StatusDNS}, want: 0},
		{name: "dsq", result: scoring.RaceResult{RawPoints: 3, Status: scoring.StatusDSQ}, want: 3},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := DriverPoints(tc.result, nil); got != tc.want {
				t.Fatalf("DriverPoints: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func newScoringServiceForTest(
	leagues map[string]league.League,
	races []race.Race,
	teams map[string][]fantasyteam.Team,
	drivers []driver.Driver,
	constructors []constructor.Constructor,
	picks []teampick.TeamPick,
	scoringRepo *stubScoringRepository,
) (*ScoringService, *stubTeamRepository, *stubDriverRepository, *stubConstructorRepository, *stubTeamPickRepository) {
	teamRepo := &stubTeamRepository{byLeague: teams}
	driverRepo := &stubDriverRepository{drivers: drivers}
	constructorRepo := &stubConstructorRepository{constructors: constructors}
	teamPickRepo := &stubTeamPickRepository{picks: picks}

	service := NewScoringService(
		&stubLeagueRepository{byID: leagues},
		&stubRaceRepository{races: races},
		teamRepo,
		driverRepo,
		constructorRepo,
		teamPickRepo,
		scoringRepo,
		nil,
		nil,
	)

	return service, teamRepo, driverRepo, constructorRepo, teamPickRepo
}

func TestScoringService_DriverRacePoints_OverridePrecedence(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scoringRepo := &stubScoringRepository{
		resultsByRace: map[string][]scoring.RaceResult{
			"race-1": {{RaceID: "race-1", DriverID: "drv-1", Position: 1, FastestLap: true}},
		},
		overrides: map[string]scoring.Override{
			"league-custom":    {LeagueID: "league-custom", PointsByPosition: map[int]int{1: 100, 2: 50}},
			"league-malformed": {LeagueID: "league-malformed", PointsByPosition: map[int]int{0: 10}},
		},
	}
	service, _, _, _, _ := newScoringServiceForTest(nil, nil, nil, nil, nil, nil, scoringRepo)

	got, err := service.DriverRacePoints(ctx, "league-custom", "race-1", "drv-1")
	if err != nil {
		t.Fatalf("DriverRacePoints error: %v", err)
	}
	if got != 101 {
		t.Fatalf("expected override table plus bonus = 101, got %d", got)
	}

	got, err = service.DriverRacePoints(ctx, "league-malformed", "race-1", "drv-1")
	if err != nil {
		t.Fatalf("DriverRacePoints error: %v", err)
	}
	if got != 26 {
		t.Fatalf("malformed override must fall back to default (26), got %d", got)
	}

	got, err = service.DriverRacePoints(ctx, "league-plain", "race-1", "drv-1")
	if err != nil {
		t.Fatalf("DriverRacePoints error: %v", err)
	}
	if got != 26 {
		t.Fatalf("expected default table = 26, got %d", got)
	}
}

func TestScoringService_DriverRacePoints_NoResultScoresZero(t *testing.T) {
	t.Parallel()

	scoringRepo := &stubScoringRepository{resultsByRace: map[string][]scoring.RaceResult{}}
	service, _, _, _, _ := newScoringServiceForTest(nil, nil, nil, nil, nil, nil, scoringRepo)

	got, err := service.DriverRacePoints(context.Background(), "", "race-1", "drv-1")
	if err != nil {
		t.Fatalf("DriverRacePoints error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0 for missing result, got %d", got)
	}
}

func TestScoringService_ConstructorRacePoints(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drivers := []driver.Driver{
		{ID: "drv-1", Name: "Driver drv-1", ConstructorID: "ctor-red"},
		{ID: "drv-2", Name: "Driver drv-2", ConstructorID: "ctor-red"},
		{ID: "drv-3", Name: "Driver drv-3", ConstructorID: "ctor-blue"},
	}
	scoringRepo := &stubScoringRepository{
		resultsByRace: map[string][]scoring.RaceResult{
			"race-1": {
				{RaceID: "race-1", DriverID: "drv-1", Position: 1},
				{RaceID: "race-1", DriverID: "drv-2", Position: 3},
				{RaceID: "race-1", DriverID: "drv-3", Position: 2},
			},
		},
	}
	service, _, _, _, _ := newScoringServiceForTest(nil, nil, nil, drivers, nil, nil, scoringRepo)

	got, err := service.ConstructorRacePoints(ctx, "", "race-1", "ctor-red")
	if err != nil {
		t.Fatalf("ConstructorRacePoints error: %v", err)
	}
	if got != 40 {
		t.Fatalf("expected 25+15=40 for ctor-red, got %d", got)
	}

	got, err = service.ConstructorRacePoints(ctx, "", "race-1", "ctor-empty")
	if err != nil {
		t.Fatalf("ConstructorRacePoints error: %v", err)
	}
	if got != 0 {
		t.Fatalf("constructor with no drivers must score 0, got %d", got)
	}
}

func TestScoringService_TeamRacePoints_SumsActivePicksByKind(t *testing.T) {
	t.Parallel()

	drivers := []driver.Driver{
		{ID: "drv-1", Name: "Driver drv-1", ConstructorID: "ctor-red"},
		{ID: "drv-2", Name: "Driver drv-2", ConstructorID: "ctor-red"},
	}
	scoringRepo := &stubScoringRepository{
		resultsByRace: map[string][]scoring.RaceResult{
			"race-1": {
				{RaceID: "race-1", DriverID: "drv-1", Position: 1, FastestLap: true},
				{RaceID: "race-1", DriverID: "drv-2", Position: 4},
			},
		},
	}
	picks := []teampick.TeamPick{
		{ID: "tp-1", TeamID: "team-a", LeagueID: "gl", RaceID: "race-1", SubjectID: "drv-2", Kind: teampick.KindDriver, Active: true},
		{ID: "tp-2", TeamID: "team-a", LeagueID: "gl", RaceID: "race-1", SubjectID: "ctor-red", Kind: teampick.KindConstructor, Active: true},
		{ID: "tp-3", TeamID: "team-a", LeagueID: "gl", RaceID: "race-1", SubjectID: "drv-1", Kind: teampick.KindDriver, Active: false},
	}
	service, _, _, _, _ := newScoringServiceForTest(nil, nil, nil, drivers, nil, picks, scoringRepo)

	got, err := service.TeamRacePoints(context.Background(), "team-a", "race-1")
	if err != nil {
		t.Fatalf("TeamRacePoints error: %v", err)
	}
	// drv-2 scores 12, ctor-red scores 26+12=38, the inactive pick is skipped.
	if got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
}

func TestScoringService_RecomputeSeasonStandings(t *testing.T) {
	t.Parallel()

	leagues := map[string]league.League{
		"gl": {ID: "gl", Name: "Grid Pick Main", Season: "2026", MaxTeams: 10, DraftMethod: league.DraftSequential},
	}
	races := []race.Race{
		{ID: "race-1", Name: "Bahrain", Round: 1, Status: race.StatusCompleted},
		{ID: "race-2", Name: "Jeddah", Round: 2, Status: race.StatusCompleted},
		{ID: "race-3", Name: "Melbourne", Round: 3, Status: race.StatusUpcoming},
	}
	teams := map[string][]fantasyteam.Team{
		"gl": {{ID: "team-t1", UserID: "user-1", LeagueID: "gl", Name: "Team One", Active: true}},
	}
	drivers := []driver.Driver{
		{ID: "drv-1", Name: "Driver drv-1", ConstructorID: "ctor-red"},
		{ID: "drv-2", Name: "Driver drv-2", ConstructorID: "ctor-red"},
		{ID: "drv-3", Name: "Driver drv-3", ConstructorID: "ctor-blue"},
	}
	constructors := []constructor.Constructor{
		{ID: "ctor-red", Name: "Red"},
		{ID: "ctor-blue", Name: "Blue"},
	}
	picks := []teampick.TeamPick{
		{ID: "tp-1", TeamID: "team-t1", LeagueID: "gl", RaceID: "race-1", SubjectID: "drv-1", Kind: teampick.KindDriver, Active: true},
		{ID: "tp-2", TeamID: "team-t1", LeagueID: "gl", RaceID: "race-2", SubjectID: "ctor-blue", Kind: teampick.KindConstructor, Active: true},
		{ID: "tp-3", TeamID: "team-t1", LeagueID: "gl", RaceID: "race-3", SubjectID: "drv-1", Kind: teampick.KindDriver, Points: 7, Active: true},
	}
	scoringRepo := &stubScoringRepository{
		resultsByRace: map[string][]scoring.RaceResult{
			"race-1": {
				{RaceID: "race-1", DriverID: "drv-1", Position: 1},
				{RaceID: "race-1", DriverID: "drv-2", Position: 3},
				{RaceID: "race-1", DriverID: "drv-3", Position: 2},
			},
			"race-2": {
				{RaceID: "race-2", DriverID: "drv-1", Position: 17, RawPoints: 0, Status: scoring.StatusDNF},
				{RaceID: "race-2", DriverID: "drv-3", Position: 1, FastestLap: true},
			},
		},
	}

	service, teamRepo, driverRepo, constructorRepo, teamPickRepo := newScoringServiceForTest(
		leagues, races, teams, drivers, constructors, picks, scoringRepo)
	service.SetRecomputeWorkers(2)

	ctx := context.Background()
	if err := service.RecomputeSeasonStandings(ctx); err != nil {
		t.Fatalf("RecomputeSeasonStandings error: %v", err)
	}

	// Driver season totals: drv-1 25 over two starts, drv-2 15 over one,
	// drv-3 18+26 over two.
	if got := driverRepo.totals["drv-1"]; got != 25 {
		t.Fatalf("drv-1 total: got=%d want=25", got)
	}
	if got := driverRepo.averages["drv-1"]; got != 12.5 {
		t.Fatalf("drv-1 average: got=%v want=12.5", got)
	}
	if got := driverRepo.totals["drv-2"]; got != 15 {
		t.Fatalf("drv-2 total: got=%d want=15", got)
	}
	if got := driverRepo.averages["drv-2"]; got != 15 {
		t.Fatalf("drv-2 average: got=%v want=15", got)
	}
	if got := driverRepo.totals["drv-3"]; got != 44 {
		t.Fatalf("drv-3 total: got=%d want=44", got)
	}

	// Constructor totals and race wins: red wins race-1 (40 vs 18), blue wins
	// race-2 (26 vs 0).
	if got := constructorRepo.totals["ctor-red"]; got != 40 {
		t.Fatalf("ctor-red total: got=%d want=40", got)
	}
	if got := constructorRepo.wins["ctor-red"]; got != 1 {
		t.Fatalf("ctor-red wins: got=%d want=1", got)
	}
	if got := constructorRepo.totals["ctor-blue"]; got != 44 {
		t.Fatalf("ctor-blue total: got=%d want=44", got)
	}
	if got := constructorRepo.wins["ctor-blue"]; got != 1 {
		t.Fatalf("ctor-blue wins: got=%d want=1", got)
	}

	// Pick points refreshed for completed races, untouched for upcoming ones;
	// the team total includes all three active picks.
	assertPickPoints := func(pickID string, want int) {
		t.Helper()
		for _, p := range teamPickRepo.picks {
			if p.ID == pickID {
				if p.Points != want {
					t.Fatalf("%s points: got=%d want=%d", pickID, p.Points, want)
				}
				return
			}
		}
		t.Fatalf("pick %s not found", pickID)
	}
	assertPickPoints("tp-1", 25)
	assertPickPoints("tp-2", 26)
	assertPickPoints("tp-3", 7)

	if got := teamRepo.totals["team-t1"]; got != 58 {
		t.Fatalf("team total: got=%d want=58", got)
	}

	// A second run over unchanged results must land on the same figures.
	if err := service.RecomputeSeasonStandings(ctx); err != nil {
		t.Fatalf("second RecomputeSeasonStandings error: %v", err)
	}
	if got := teamRepo.totals["team-t1"]; got != 58 {
		t.Fatalf("team total after rerun: got=%d want=58", got)
	}
	if got := constructorRepo.wins["ctor-blue"]; got != 1 {
		t.Fatalf("ctor-blue wins after rerun: got=%d want=1", got)
	}
}

func TestScoringService_RecomputeSeasonStandings_NoCompletedRaces(t *testing.T) {
	t.Parallel()

	races := []race.Race{{ID: "race-1", Name: "Bahrain", Round: 1, Status: race.StatusUpcoming}}
	service, teamRepo, _, _, _ := newScoringServiceForTest(nil, races, nil, nil, nil, nil, &stubScoringRepository{})

	if err := service.RecomputeSeasonStandings(context.Background()); err != nil {
		t.Fatalf("RecomputeSeasonStandings error: %v", err)
	}
	if len(teamRepo.totals) != 0 {
		t.Fatalf("expected no team updates, got %v", teamRepo.totals)
	}
}

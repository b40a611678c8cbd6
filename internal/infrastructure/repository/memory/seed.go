package memory

import (
	"time"

	"github.com/gridpick/fantasy-gp/internal/domain/constructor"
	"github.com/gridpick/fantasy-gp/internal/domain/driver"
	"github.com/gridpick/fantasy-gp/internal/domain/fantasyteam"
	"github.com/gridpick/fantasy-gp/internal/domain/league"
	"github.com/gridpick/fantasy-gp/internal/domain/race"
)

const (
	LeagueIDPaddockClub = "paddock-club-2026"
	LeagueIDMidfield    = "midfield-heroes-2026"
)

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:               LeagueIDPaddockClub,
			Name:             "Paddock Club",
			Season:           "2026",
			CommissionerID:   "user-ayu",
			MaxTeams:         8,
			DraftMethod:      league.DraftSequential,
			AutoPickStrategy: "highest_ranked_by_season_points",
		},
		{
			ID:             LeagueIDMidfield,
			Name:           "Midfield Heroes",
			Season:         "2026",
			CommissionerID: "user-bima",
			MaxTeams:       6,
			DraftMethod:    league.DraftRandom,
		},
	}
}

func SeedTeams() []fantasyteam.Team {
	base := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	return []fantasyteam.Team{
		{ID: "team-apex", UserID: "user-ayu", LeagueID: LeagueIDPaddockClub, Name: "Apex Predators", Budget: 1000, Active: true, CreatedAt: base},
		{ID: "team-boxbox", UserID: "user-bima", LeagueID: LeagueIDPaddockClub, Name: "Box Box Box", Budget: 1000, Active: true, CreatedAt: base.Add(time.Hour)},
		{ID: "team-chicane", UserID: "user-citra", LeagueID: LeagueIDPaddockClub, Name: "Chicane Gang", Budget: 1000, Active: true, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "team-dirty", UserID: "user-dewa", LeagueID: LeagueIDPaddockClub, Name: "Dirty Air", Budget: 1000, Active: true, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "team-ers", UserID: "user-eka", LeagueID: LeagueIDMidfield, Name: "ERS Deployment", Budget: 1000, Active: true, CreatedAt: base.Add(4 * time.Hour)},
		{ID: "team-flatout", UserID: "user-fajar", LeagueID: LeagueIDMidfield, Name: "Flat Out", Budget: 1000, Active: true, CreatedAt: base.Add(5 * time.Hour)},
	}
}

func SeedRaces() []race.Race {
	return []race.Race{
		{ID: "race-01", Name: "Bahrain Grand Prix", Round: 1, Status: race.StatusCompleted,
			QualifyingAt: time.Date(2026, time.March, 7, 15, 0, 0, 0, time.UTC),
			StartsAt:     time.Date(2026, time.March, 8, 15, 0, 0, 0, time.UTC)},
		{ID: "race-02", Name: "Saudi Arabian Grand Prix", Round: 2, Status: race.StatusCompleted,
			QualifyingAt: time.Date(2026, time.March, 14, 17, 0, 0, 0, time.UTC),
			StartsAt:     time.Date(2026, time.March, 15, 17, 0, 0, 0, time.UTC)},
		{ID: "race-03", Name: "Australian Grand Prix", Round: 3, Status: race.StatusUpcoming,
			QualifyingAt: time.Date(2026, time.March, 28, 5, 0, 0, 0, time.UTC),
			StartsAt:     time.Date(2026, time.March, 29, 5, 0, 0, 0, time.UTC)},
	}
}

func SeedConstructors() []constructor.Constructor {
	return []constructor.Constructor{
		{ID: "ctor-blackbull", Name: "Blackbull Racing", Price: 320},
		{ID: "ctor-scuderia", Name: "Scuderia Rossa", Price: 300},
		{ID: "ctor-silverline", Name: "Silverline GP", Price: 290},
		{ID: "ctor-papaya", Name: "Papaya Motorsport", Price: 280},
		{ID: "ctor-atlantic", Name: "Atlantic F1 Team", Price: 200},
	}
}

func SeedDrivers() []driver.Driver {
	return []driver.Driver{
		{ID: "drv-01", Name: "Mika Verhoeven", Number: 1, ConstructorID: "ctor-blackbull", Price: 110},
		{ID: "drv-02", Name: "Luca Moretti", Number: 16, ConstructorID: "ctor-scuderia", Price: 105},
		{ID: "drv-03", Name: "Theo Hartmann", Number: 44, ConstructorID: "ctor-silverline", Price: 102},
		{ID: "drv-04", Name: "Oscar Lindqvist", Number: 81, ConstructorID: "ctor-papaya", Price: 100},
		{ID: "drv-05", Name: "Ravi Chandra", Number: 23, ConstructorID: "ctor-blackbull", Price: 95},
		{ID: "drv-06", Name: "Pierre Voss", Number: 55, ConstructorID: "ctor-scuderia", Price: 94},
		{ID: "drv-07", Name: "Jens Albrecht", Number: 63, ConstructorID: "ctor-silverline", Price: 92},
		{ID: "drv-08", Name: "Marco Delgado", Number: 4, ConstructorID: "ctor-papaya", Price: 90},
		{ID: "drv-09", Name: "Anton Weiss", Number: 77, ConstructorID: "ctor-atlantic", Price: 70},
		{ID: "drv-10", Name: "Kenji Nakamura", Number: 22, ConstructorID: "ctor-atlantic", Price: 68},
	}
}

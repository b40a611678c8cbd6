package httpapi

import (
	"time"

	"github.com/gridpick/fantasy-gp/internal/domain/draft"
	"github.com/gridpick/fantasy-gp/internal/domain/driver"
	"github.com/gridpick/fantasy-gp/internal/domain/fantasyteam"
	"github.com/gridpick/fantasy-gp/internal/domain/league"
	"github.com/gridpick/fantasy-gp/internal/domain/race"
	"github.com/gridpick/fantasy-gp/internal/usecase"
)

type leagueDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Season           string `json:"season"`
	CommissionerID   string `json:"commissioner_id"`
	MaxTeams         int    `json:"max_teams"`
	DraftMethod      string `json:"draft_method"`
	AutoPickStrategy string `json:"auto_pick_strategy,omitempty"`
}

func leagueToDTO(l league.League) leagueDTO {
	return leagueDTO{
		ID:               l.ID,
		Name:             l.Name,
		Season:           l.Season,
		CommissionerID:   l.CommissionerID,
		MaxTeams:         l.MaxTeams,
		DraftMethod:      string(l.DraftMethod),
		AutoPickStrategy: l.AutoPickStrategy,
	}
}

type teamDTO struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	LeagueID    string `json:"league_id"`
	Name        string `json:"name"`
	TotalPoints int    `json:"total_points"`
	Active      bool   `json:"active"`
}

func teamToDTO(t fantasyteam.Team) teamDTO {
	return teamDTO{
		ID:          t.ID,
		UserID:      t.UserID,
		LeagueID:    t.LeagueID,
		Name:        t.Name,
		TotalPoints: t.TotalPoints,
		Active:      t.Active,
	}
}

type raceDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Round        int       `json:"round"`
	Status       string    `json:"status"`
	QualifyingAt time.Time `json:"qualifying_at"`
	StartsAt     time.Time `json:"starts_at"`
}

func raceToDTO(rc race.Race) raceDTO {
	return raceDTO{
		ID:           rc.ID,
		Name:         rc.Name,
		Round:        rc.Round,
		Status:       string(rc.Status),
		QualifyingAt: rc.QualifyingAt,
		StartsAt:     rc.StartsAt,
	}
}

type driverDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Number        int     `json:"number"`
	ConstructorID string  `json:"constructor_id"`
	Price         float64 `json:"price"`
	TotalPoints   int     `json:"total_points"`
	AveragePoints float64 `json:"average_points"`
}

func driverToDTO(d driver.Driver) driverDTO {
	return driverDTO{
		ID:            d.ID,
		Name:          d.Name,
		Number:        d.Number,
		ConstructorID: d.ConstructorID,
		Price:         float64(d.Price),
		TotalPoints:   d.TotalPoints,
		AveragePoints: d.AveragePoints,
	}
}

type draftOrderDTO struct {
	LeagueID  string    `json:"league_id"`
	RaceID    string    `json:"race_id"`
	Method    string    `json:"method"`
	Sequence  []string  `json:"sequence"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"created_at"`
}

func draftOrderToDTO(o draft.Order) draftOrderDTO {
	return draftOrderDTO{
		LeagueID:  o.LeagueID,
		RaceID:    o.RaceID,
		Method:    string(o.Method),
		Sequence:  o.Sequence,
		Locked:    o.Locked,
		CreatedAt: o.CreatedAt,
	}
}

type draftPickDTO struct {
	LeagueID        string    `json:"league_id"`
	RaceID          string    `json:"race_id"`
	PickNumber      int       `json:"pick_number"`
	Round           int       `json:"round"`
	PositionInRound int       `json:"position_in_round"`
	TeamID          string    `json:"team_id"`
	DriverID        string    `json:"driver_id"`
	IsAutoPick      bool      `json:"is_auto_pick"`
	PickedAt        time.Time `json:"picked_at"`
}

func draftPickToDTO(p draft.Pick) draftPickDTO {
	return draftPickDTO{
		LeagueID:        p.LeagueID,
		RaceID:          p.RaceID,
		PickNumber:      p.PickNumber,
		Round:           p.Round,
		PositionInRound: p.PositionInRound,
		TeamID:          p.TeamID,
		DriverID:        p.DriverID,
		IsAutoPick:      p.IsAutoPick,
		PickedAt:        p.PickedAt,
	}
}

type nextPickDTO struct {
	State      string `json:"state"`
	TeamID     string `json:"team_id,omitempty"`
	Round      int    `json:"round,omitempty"`
	PickNumber int    `json:"pick_number,omitempty"`
	PickCount  int    `json:"pick_count"`
	TotalPicks int    `json:"total_picks"`
}

func nextPickToDTO(info usecase.NextPickInfo) nextPickDTO {
	dto := nextPickDTO{
		State:      string(info.State),
		PickCount:  info.PickCount,
		TotalPicks: info.TotalPicks,
	}
	if info.HasTurn {
		dto.TeamID = info.Turn.TeamID
		dto.Round = info.Turn.Round
		dto.PickNumber = info.Turn.PickNumber
	}
	return dto
}

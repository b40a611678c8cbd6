package postgres

import "time"

type draftOrderTableModel struct {
	ID        int64     `db:"id"`
	LeagueID  string    `db:"league_id"`
	RaceID    string    `db:"race_id"`
	Method    string    `db:"method"`
	Sequence  string    `db:"sequence"`
	Locked    bool      `db:"locked"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type draftPickTableModel struct {
	ID              int64     `db:"id"`
	LeagueID        string    `db:"league_id"`
	RaceID          string    `db:"race_id"`
	PickNumber      int       `db:"pick_number"`
	Round           int       `db:"round"`
	PositionInRound int       `db:"position_in_round"`
	TeamID          string    `db:"team_id"`
	DriverID        string    `db:"driver_id"`
	IsAutoPick      bool      `db:"is_auto_pick"`
	PickedAt        time.Time `db:"picked_at"`
}

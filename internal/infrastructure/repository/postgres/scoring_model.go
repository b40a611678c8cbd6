package postgres

import "time"

type raceResultTableModel struct {
	ID         int64     `db:"id"`
	RaceID     string    `db:"race_id"`
	DriverID   string    `db:"driver_id"`
	Position   int       `db:"position"`
	RawPoints  int       `db:"raw_points"`
	FastestLap bool      `db:"fastest_lap"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}

type scoringOverrideTableModel struct {
	ID               int64     `db:"id"`
	LeagueID         string    `db:"league_id"`
	PointsByPosition string    `db:"points_by_position"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

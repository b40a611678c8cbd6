package postgres

import "time"

type fantasyTeamTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	UserID      string    `db:"user_id"`
	LeaguePubID string    `db:"league_id"`
	Name        string    `db:"name"`
	TotalPoints int       `db:"total_points"`
	Budget      float64   `db:"budget"`
	Active      bool      `db:"active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

package postgres

import "time"

type teamPickTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	TeamID    string    `db:"team_id"`
	LeagueID  string    `db:"league_id"`
	RaceID    string    `db:"race_id"`
	SubjectID string    `db:"subject_id"`
	Kind      string    `db:"kind"`
	Points    int       `db:"points"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

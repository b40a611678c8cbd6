package postgres

import "time"

type raceTableModel struct {
	ID           int64     `db:"id"`
	PublicID     string    `db:"public_id"`
	Name         string    `db:"name"`
	Round        int       `db:"round"`
	Status       string    `db:"status"`
	QualifyingAt time.Time `db:"qualifying_at"`
	StartsAt     time.Time `db:"starts_at"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

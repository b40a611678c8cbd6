package postgres

import "time"

type driverTableModel struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	Name          string    `db:"name"`
	Number        int       `db:"number"`
	ConstructorID string    `db:"constructor_id"`
	Price         float64   `db:"price"`
	TotalPoints   int       `db:"total_points"`
	AveragePoints float64   `db:"average_points"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type constructorTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	Name        string    `db:"name"`
	Price       float64   `db:"price"`
	TotalPoints int       `db:"total_points"`
	RaceWins    int       `db:"race_wins"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

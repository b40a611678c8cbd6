package postgres

import (
	"database/sql"
	"time"
)

type leagueTableModel struct {
	ID               int64          `db:"id"`
	PublicID         string         `db:"public_id"`
	Name             string         `db:"name"`
	Season           string         `db:"season"`
	CommissionerID   string         `db:"commissioner_id"`
	MaxTeams         int            `db:"max_teams"`
	DraftMethod      string         `db:"draft_method"`
	AutoPickStrategy sql.NullString `db:"auto_pick_strategy"`
	DraftCloseAt     sql.NullTime   `db:"draft_close_at"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

package postgres

import (
	"context"
	"fmt"

	"github.com/gridpick/fantasy-gp/internal/domain/league"
	qb "github.com/gridpick/fantasy-gp/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("public_id", leagueID)).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func leagueFromRow(row leagueTableModel) league.League {
	l := league.League{
		ID:             row.PublicID,
		Name:           row.Name,
		Season:         row.Season,
		CommissionerID: row.CommissionerID,
		MaxTeams:       row.MaxTeams,
		DraftMethod:    league.DraftMethod(row.DraftMethod),
	}
	if row.AutoPickStrategy.Valid {
		l.AutoPickStrategy = row.AutoPickStrategy.String
	}
	if row.DraftCloseAt.Valid {
		l.DraftCloseAt = row.DraftCloseAt.Time
	}

	return l
}

package postgres

import (
	"context"
	"fmt"

	"github.com/gridpick/fantasy-gp/internal/domain/fantasyteam"
	qb "github.com/gridpick/fantasy-gp/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type FantasyTeamRepository struct {
	db *sqlx.DB
}

func NewFantasyTeamRepository(db *sqlx.DB) *FantasyTeamRepository {
	return &FantasyTeamRepository{db: db}
}

// ListActiveByLeague returns active teams in creation order. Draft order
// generation depends on this ordering being stable.
func (r *FantasyTeamRepository) ListActiveByLeague(ctx context.Context, leagueID string) ([]fantasyteam.Team, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").
		Where(qb.Eq("league_id", leagueID), qb.Eq("active", true)).
		OrderBy("created_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active teams query: %w", err)
	}

	var rows []fantasyTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select active teams: %w", err)
	}

	out := make([]fantasyteam.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *FantasyTeamRepository) GetByID(ctx context.Context, teamID string) (fantasyteam.Team, bool, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return fantasyteam.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row fantasyTeamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasyteam.Team{}, false, nil
		}
		return fantasyteam.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *FantasyTeamRepository) UpdateTotalPoints(ctx context.Context, teamID string, totalPoints int) error {
	query, args, err := qb.Update("fantasy_teams").
		Set("total_points", totalPoints).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team points query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update team points: %w", err)
	}

	return nil
}

func teamFromRow(row fantasyTeamTableModel) fantasyteam.Team {
	return fantasyteam.Team{
		ID:          row.PublicID,
		UserID:      row.UserID,
		LeagueID:    row.LeaguePubID,
		Name:        row.Name,
		TotalPoints: row.TotalPoints,
		Budget:      int64(row.Budget),
		Active:      row.Active,
		CreatedAt:   row.CreatedAt,
	}
}

package postgres

import (
	"context"
	"fmt"

	"github.com/gridpick/fantasy-gp/internal/domain/teampick"
	qb "github.com/gridpick/fantasy-gp/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type TeamPickRepository struct {
	db *sqlx.DB
}

func NewTeamPickRepository(db *sqlx.DB) *TeamPickRepository {
	return &TeamPickRepository{db: db}
}

// ListByTeam returns the team's active picks. An empty raceID means all races.
func (r *TeamPickRepository) ListByTeam(ctx context.Context, teamID, raceID string) ([]teampick.TeamPick, error) {
	builder := qb.Select("*").From("team_picks").
		Where(qb.Eq("team_id", teamID), qb.Eq("active", true))
	if raceID != "" {
		builder = builder.Where(qb.Eq("race_id", raceID))
	}

	query, args, err := builder.OrderBy("public_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team picks query: %w", err)
	}

	var rows []teamPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team picks: %w", err)
	}

	out := make([]teampick.TeamPick, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamPickFromRow(row))
	}

	return out, nil
}

func (r *TeamPickRepository) ListByLeague(ctx context.Context, leagueID string) ([]teampick.TeamPick, error) {
	query, args, err := qb.Select("*").From("team_picks").
		Where(qb.Eq("league_id", leagueID), qb.Eq("active", true)).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league picks query: %w", err)
	}

	var rows []teamPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select league picks: %w", err)
	}

	out := make([]teampick.TeamPick, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamPickFromRow(row))
	}

	return out, nil
}

func (r *TeamPickRepository) UpdatePoints(ctx context.Context, pickID string, points int) error {
	query, args, err := qb.Update("team_picks").
		Set("points", points).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", pickID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update pick points query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update pick points: %w", err)
	}

	return nil
}

func teamPickFromRow(row teamPickTableModel) teampick.TeamPick {
	return teampick.TeamPick{
		ID:        row.PublicID,
		TeamID:    row.TeamID,
		LeagueID:  row.LeagueID,
		RaceID:    row.RaceID,
		SubjectID: row.SubjectID,
		Kind:      teampick.Kind(row.Kind),
		Points:    row.Points,
		Active:    row.Active,
	}
}

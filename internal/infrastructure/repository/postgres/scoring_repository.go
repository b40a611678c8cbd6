package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/gridpick/fantasy-gp/internal/domain/scoring"
	qb "github.com/gridpick/fantasy-gp/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) ListResultsByRace(ctx context.Context, raceID string) ([]scoring.RaceResult, error) {
	query, args, err := qb.Select("*").From("race_results").
		Where(qb.Eq("race_id", raceID)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select race results query: %w", err)
	}

	var rows []raceResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select race results: %w", err)
	}

	out := make([]scoring.RaceResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.RaceResult{
			RaceID:     row.RaceID,
			DriverID:   row.DriverID,
			Position:   row.Position,
			RawPoints:  row.RawPoints,
			FastestLap: row.FastestLap,
			Status:     row.Status,
		})
	}

	return out, nil
}

func (r *ScoringRepository) GetOverride(ctx context.Context, leagueID string) (scoring.Override, bool, error) {
	query, args, err := qb.Select("*").From("scoring_overrides").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return scoring.Override{}, false, fmt.Errorf("build get scoring override query: %w", err)
	}

	var row scoringOverrideTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.Override{}, false, nil
		}
		return scoring.Override{}, false, fmt.Errorf("get scoring override: %w", err)
	}

	var table map[int]int
	if err := sonic.UnmarshalString(row.PointsByPosition, &table); err != nil {
		return scoring.Override{}, false, fmt.Errorf("decode scoring override table: %w", err)
	}

	return scoring.Override{
		LeagueID:         row.LeagueID,
		PointsByPosition: table,
	}, true, nil
}

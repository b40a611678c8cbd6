package postgres

import (
	"context"
	"fmt"

	"github.com/gridpick/fantasy-gp/internal/domain/race"
	qb "github.com/gridpick/fantasy-gp/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type RaceRepository struct {
	db *sqlx.DB
}

func NewRaceRepository(db *sqlx.DB) *RaceRepository {
	return &RaceRepository{db: db}
}

func (r *RaceRepository) List(ctx context.Context) ([]race.Race, error) {
	query, args, err := qb.Select("*").From("races").
		OrderBy("round").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select races query: %w", err)
	}

	var rows []raceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select races: %w", err)
	}

	out := make([]race.Race, 0, len(rows))
	for _, row := range rows {
		out = append(out, raceFromRow(row))
	}

	return out, nil
}

func (r *RaceRepository) GetByID(ctx context.Context, raceID string) (race.Race, bool, error) {
	query, args, err := qb.Select("*").From("races").
		Where(qb.Eq("public_id", raceID)).
		ToSQL()
	if err != nil {
		return race.Race{}, false, fmt.Errorf("build get race by id query: %w", err)
	}

	var row raceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return race.Race{}, false, nil
		}
		return race.Race{}, false, fmt.Errorf("get race by id: %w", err)
	}

	return raceFromRow(row), true, nil
}

func (r *RaceRepository) ListCompleted(ctx context.Context) ([]race.Race, error) {
	query, args, err := qb.Select("*").From("races").
		Where(qb.Eq("status", string(race.StatusCompleted))).
		OrderBy("round").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select completed races query: %w", err)
	}

	var rows []raceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select completed races: %w", err)
	}

	out := make([]race.Race, 0, len(rows))
	for _, row := range rows {
		out = append(out, raceFromRow(row))
	}

	return out, nil
}

func raceFromRow(row raceTableModel) race.Race {
	return race.Race{
		ID:           row.PublicID,
		Name:         row.Name,
		Round:        row.Round,
		Status:       race.Status(row.Status),
		QualifyingAt: row.QualifyingAt,
		StartsAt:     row.StartsAt,
	}
}

package postgres

import (
	"context"
	"fmt"

	"github.com/gridpick/fantasy-gp/internal/domain/constructor"
	qb "github.com/gridpick/fantasy-gp/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type ConstructorRepository struct {
	db *sqlx.DB
}

func NewConstructorRepository(db *sqlx.DB) *ConstructorRepository {
	return &ConstructorRepository{db: db}
}

func (r *ConstructorRepository) List(ctx context.Context) ([]constructor.Constructor, error) {
	query, args, err := qb.Select("*").From("constructors").
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select constructors query: %w", err)
	}

	var rows []constructorTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select constructors: %w", err)
	}

	out := make([]constructor.Constructor, 0, len(rows))
	for _, row := range rows {
		out = append(out, constructorFromRow(row))
	}

	return out, nil
}

func (r *ConstructorRepository) GetByID(ctx context.Context, constructorID string) (constructor.Constructor, bool, error) {
	query, args, err := qb.Select("*").From("constructors").
		Where(qb.Eq("public_id", constructorID)).
		ToSQL()
	if err != nil {
		return constructor.Constructor{}, false, fmt.Errorf("build get constructor by id query: %w", err)
	}

	var row constructorTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return constructor.Constructor{}, false, nil
		}
		return constructor.Constructor{}, false, fmt.Errorf("get constructor by id: %w", err)
	}

	return constructorFromRow(row), true, nil
}

func (r *ConstructorRepository) UpdateSeasonPoints(ctx context.Context, constructorID string, totalPoints int, raceWins int) error {
	query, args, err := qb.Update("constructors").
		Set("total_points", totalPoints).
		Set("race_wins", raceWins).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", constructorID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update constructor season points query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update constructor season points: %w", err)
	}

	return nil
}

func constructorFromRow(row constructorTableModel) constructor.Constructor {
	return constructor.Constructor{
		ID:          row.PublicID,
		Name:        row.Name,
		Price:       int64(row.Price),
		TotalPoints: row.TotalPoints,
		RaceWins:    row.RaceWins,
	}
}

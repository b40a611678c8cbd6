package postgres

import (
	"context"
	"fmt"

	"github.com/gridpick/fantasy-gp/internal/domain/driver"
	qb "github.com/gridpick/fantasy-gp/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type DriverRepository struct {
	db *sqlx.DB
}

func NewDriverRepository(db *sqlx.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) List(ctx context.Context) ([]driver.Driver, error) {
	query, args, err := qb.Select("*").From("drivers").
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select drivers query: %w", err)
	}

	var rows []driverTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select drivers: %w", err)
	}

	out := make([]driver.Driver, 0, len(rows))
	for _, row := range rows {
		out = append(out, driverFromRow(row))
	}

	return out, nil
}

func (r *DriverRepository) GetByID(ctx context.Context, driverID string) (driver.Driver, bool, error) {
	query, args, err := qb.Select("*").From("drivers").
		Where(qb.Eq("public_id", driverID)).
		ToSQL()
	if err != nil {
		return driver.Driver{}, false, fmt.Errorf("build get driver by id query: %w", err)
	}

	var row driverTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return driver.Driver{}, false, nil
		}
		return driver.Driver{}, false, fmt.Errorf("get driver by id: %w", err)
	}

	return driverFromRow(row), true, nil
}

func (r *DriverRepository) ListByConstructor(ctx context.Context, constructorID string) ([]driver.Driver, error) {
	query, args, err := qb.Select("*").From("drivers").
		Where(qb.Eq("constructor_id", constructorID)).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select drivers by constructor query: %w", err)
	}

	var rows []driverTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select drivers by constructor: %w", err)
	}

	out := make([]driver.Driver, 0, len(rows))
	for _, row := range rows {
		out = append(out, driverFromRow(row))
	}

	return out, nil
}

func (r *DriverRepository) UpdateSeasonPoints(ctx context.Context, driverID string, totalPoints int, averagePoints float64) error {
	query, args, err := qb.Update("drivers").
		Set("total_points", totalPoints).
		Set("average_points", averagePoints).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", driverID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update driver season points query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update driver season points: %w", err)
	}

	return nil
}

func driverFromRow(row driverTableModel) driver.Driver {
	return driver.Driver{
		ID:            row.PublicID,
		Name:          row.Name,
		Number:        row.Number,
		ConstructorID: row.ConstructorID,
		Price:         int64(row.Price),
		TotalPoints:   row.TotalPoints,
		AveragePoints: row.AveragePoints,
	}
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/gridpick/fantasy-gp/internal/domain/draft"
	"github.com/gridpick/fantasy-gp/internal/domain/league"
	qb "github.com/gridpick/fantasy-gp/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Constraint names from the draft migrations. AppendPick relies on them to
// tell a replayed pick number apart from an already-taken driver.
const (
	constraintDraftPickNumber = "draft_picks_league_race_pick_number_key"
	constraintDraftPickDriver = "draft_picks_league_race_driver_key"
)

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) GetOrder(ctx context.Context, leagueID, raceID string) (draft.Order, bool, error) {
	query, args, err := qb.Select("*").From("draft_orders").
		Where(qb.Eq("league_id", leagueID), qb.Eq("race_id", raceID)).
		ToSQL()
	if err != nil {
		return draft.Order{}, false, fmt.Errorf("build get draft order query: %w", err)
	}

	var row draftOrderTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draft.Order{}, false, nil
		}
		return draft.Order{}, false, fmt.Errorf("get draft order: %w", err)
	}

	order, err := draftOrderFromRow(row)
	if err != nil {
		return draft.Order{}, false, err
	}

	return order, true, nil
}

func (r *DraftRepository) SaveOrder(ctx context.Context, order draft.Order) error {
	sequence, err := encodeSequence(order.Sequence)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertInto("draft_orders").
		Columns("league_id", "race_id", "method", "sequence", "locked", "created_at").
		Values(order.LeagueID, order.RaceID, string(order.Method), sequence, order.Locked, order.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert draft order query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: league %s race %s", draft.ErrOrderExists, order.LeagueID, order.RaceID)
		}
		return fmt.Errorf("insert draft order: %w", err)
	}

	return nil
}

func (r *DraftRepository) ReplaceOrder(ctx context.Context, order draft.Order) error {
	sequence, err := encodeSequence(order.Sequence)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertInto("draft_orders").
		Columns("league_id", "race_id", "method", "sequence", "locked", "created_at").
		Values(order.LeagueID, order.RaceID, string(order.Method), sequence, order.Locked, order.CreatedAt).
		Suffix("ON CONFLICT (league_id, race_id) DO UPDATE SET method = EXCLUDED.method, sequence = EXCLUDED.sequence, locked = EXCLUDED.locked, updated_at = NOW()").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build replace draft order query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("replace draft order: %w", err)
	}

	return nil
}

func (r *DraftRepository) CountPicks(ctx context.Context, leagueID, raceID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("draft_picks").
		Where(qb.Eq("league_id", leagueID), qb.Eq("race_id", raceID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count draft picks query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count draft picks: %w", err)
	}

	return count, nil
}

func (r *DraftRepository) ListPicks(ctx context.Context, leagueID, raceID string) ([]draft.Pick, error) {
	query, args, err := qb.Select("*").From("draft_picks").
		Where(qb.Eq("league_id", leagueID), qb.Eq("race_id", raceID)).
		OrderBy("pick_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select draft picks query: %w", err)
	}

	var rows []draftPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select draft picks: %w", err)
	}

	out := make([]draft.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, draftPickFromRow(row))
	}

	return out, nil
}

func (r *DraftRepository) AppendPick(ctx context.Context, pick draft.Pick) error {
	query, args, err := qb.InsertInto("draft_picks").
		Columns(
			"league_id", "race_id", "pick_number", "round", "position_in_round",
			"team_id", "driver_id", "is_auto_pick", "picked_at",
		).
		Values(
			pick.LeagueID, pick.RaceID, pick.PickNumber, pick.Round, pick.PositionInRound,
			pick.TeamID, pick.DriverID, pick.IsAutoPick, pick.PickedAt,
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert draft pick query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			switch pqErr.Constraint {
			case constraintDraftPickDriver:
				return fmt.Errorf("%w: driver %s", draft.ErrDriverTaken, pick.DriverID)
			default:
				return fmt.Errorf("%w: pick %d", draft.ErrDuplicatePick, pick.PickNumber)
			}
		}
		return fmt.Errorf("insert draft pick: %w", err)
	}

	return nil
}

func draftOrderFromRow(row draftOrderTableModel) (draft.Order, error) {
	var sequence []string
	if err := sonic.UnmarshalString(row.Sequence, &sequence); err != nil {
		return draft.Order{}, fmt.Errorf("decode draft order sequence: %w", err)
	}

	return draft.Order{
		LeagueID:  row.LeagueID,
		RaceID:    row.RaceID,
		Method:    league.DraftMethod(row.Method),
		Sequence:  sequence,
		Locked:    row.Locked,
		CreatedAt: row.CreatedAt,
	}, nil
}

func draftPickFromRow(row draftPickTableModel) draft.Pick {
	return draft.Pick{
		LeagueID:        row.LeagueID,
		RaceID:          row.RaceID,
		PickNumber:      row.PickNumber,
		Round:           row.Round,
		PositionInRound: row.PositionInRound,
		TeamID:          row.TeamID,
		DriverID:        row.DriverID,
		IsAutoPick:      row.IsAutoPick,
		PickedAt:        row.PickedAt,
	}
}

func encodeSequence(sequence []string) (string, error) {
	encoded, err := sonic.MarshalString(sequence)
	if err != nil {
		return "", fmt.Errorf("encode draft order sequence: %w", err)
	}
	return encoded, nil
}

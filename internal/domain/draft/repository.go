package draft

import (
	"context"
	"errors"
)

// Repository-level conflicts. AppendPick must enforce uniqueness of both the
// pick number and the driver per (league, race) so that two racing submitters
// cannot fill one slot twice; the loser sees one of these.
var (
	ErrOrderExists   = errors.New("draft order already exists")
	ErrDuplicatePick = errors.New("pick number already taken")
	ErrDriverTaken   = errors.New("driver already picked in this draft")
)

type Repository interface {
	GetOrder(ctx context.Context, leagueID, raceID string) (Order, bool, error)
	// SaveOrder fails with ErrOrderExists when an order is already present.
	SaveOrder(ctx context.Context, order Order) error
	// ReplaceOrder swaps the sequence of an existing order.
	ReplaceOrder(ctx context.Context, order Order) error
	CountPicks(ctx context.Context, leagueID, raceID string) (int, error)
	ListPicks(ctx context.Context, leagueID, raceID string) ([]Pick, error)
	AppendPick(ctx context.Context, pick Pick) error
}

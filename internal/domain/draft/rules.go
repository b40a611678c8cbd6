package draft

import (
	"errors"
	"fmt"
)

// RoundsPerTeam fixes the draft length: every team makes exactly this many
// picks, so a draft holds teamCount*RoundsPerTeam picks in total.
const RoundsPerTeam = 5

var (
	ErrOrderSizeMismatch = errors.New("explicit order size does not match active teams")
	ErrOrderMembership   = errors.New("explicit order does not match active team set")
)

type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
)

// Turn identifies the team expected to act next.
type Turn struct {
	TeamID          string
	PickNumber      int
	Round           int
	PositionInRound int
}

func TotalPicks(teamCount int) int {
	return teamCount * RoundsPerTeam
}

func StateFor(teamCount, pickCount int) State {
	switch {
	case teamCount <= 0 || pickCount >= TotalPicks(teamCount):
		return StateComplete
	case pickCount == 0:
		return StateNotStarted
	default:
		return StateInProgress
	}
}

// NextTurn derives the expected turn from the count of picks already made.
// ok is false once the draft is complete; that is a terminal state, not an
// error. The walk through the order is purely sequential each round.
func NextTurn(sequence []string, pickCount int) (Turn, bool) {
	teamCount := len(sequence)
	if teamCount == 0 || pickCount < 0 || pickCount >= TotalPicks(teamCount) {
		return Turn{}, false
	}

	position := pickCount % teamCount
	return Turn{
		TeamID:          sequence[position],
		PickNumber:      pickCount + 1,
		Round:           pickCount/teamCount + 1,
		PositionInRound: position + 1,
	}, true
}

// ValidateExplicitOrder checks that sequence is a permutation of activeTeamIDs.
func ValidateExplicitOrder(sequence, activeTeamIDs []string) error {
	if len(sequence) != len(activeTeamIDs) {
		return fmt.Errorf("%w: got %d, want %d", ErrOrderSizeMismatch, len(sequence), len(activeTeamIDs))
	}

	active := make(map[string]struct{}, len(activeTeamIDs))
	for _, teamID := range activeTeamIDs {
		active[teamID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(sequence))
	for _, teamID := range sequence {
		if _, ok := active[teamID]; !ok {
			return fmt.Errorf("%w: team %s is not an active member", ErrOrderMembership, teamID)
		}
		if _, dup := seen[teamID]; dup {
			return fmt.Errorf("%w: team %s appears twice", ErrOrderMembership, teamID)
		}
		seen[teamID] = struct{}{}
	}

	return nil
}

package race

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Race is a single real-world round that produces official results.
type Race struct {
	ID           string
	Name         string
	Round        int
	Status       Status
	QualifyingAt time.Time
	StartsAt     time.Time
}

func (r Race) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("race id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("race name is required")
	}
	if r.Round <= 0 {
		return fmt.Errorf("race round must be greater than zero")
	}
	switch r.Status {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
	default:
		return fmt.Errorf("unknown race status: %q", r.Status)
	}

	return nil
}

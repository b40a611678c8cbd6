package league

import (
	"fmt"
	"time"
)

// DraftMethod controls how a draft order is generated for a race.
type DraftMethod string

const (
	DraftSequential DraftMethod = "sequential"
	DraftSnake      DraftMethod = "snake"
	DraftRandom     DraftMethod = "random"
)

var AllDraftMethods = map[DraftMethod]struct{}{
	DraftSequential: {},
	DraftSnake:      {},
	DraftRandom:     {},
}

func ParseDraftMethod(raw string) (DraftMethod, error) {
	method := DraftMethod(raw)
	if _, ok := AllDraftMethods[method]; !ok {
		return "", fmt.Errorf("unknown draft method: %q", raw)
	}
	return method, nil
}

// League is one fantasy competition instance.
type League struct {
	ID               string
	Name             string
	Season           string
	CommissionerID   string
	MaxTeams         int
	DraftMethod      DraftMethod
	AutoPickStrategy string
	DraftCloseAt     time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Season == "" {
		return fmt.Errorf("league season is required")
	}
	if l.MaxTeams <= 0 {
		return fmt.Errorf("league max teams must be greater than zero")
	}
	if _, ok := AllDraftMethods[l.DraftMethod]; !ok {
		return fmt.Errorf("unknown draft method: %q", l.DraftMethod)
	}

	return nil
}

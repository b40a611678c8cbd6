package constructor

import "fmt"

// Constructor is a real-world racing organization, draftable as a unit.
type Constructor struct {
	ID          string
	Name        string
	Price       int64
	TotalPoints int
	RaceWins    int
}

func (c Constructor) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("constructor id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("constructor name is required")
	}
	if c.Price < 0 {
		return fmt.Errorf("constructor price cannot be negative")
	}

	return nil
}

package driver

import "fmt"

// Driver is a real-world competitor draftable onto fantasy teams.
type Driver struct {
	ID            string
	Name          string
	Number        int
	ConstructorID string
	Price         int64
	TotalPoints   int
	AveragePoints float64
}

func (d Driver) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("driver id is required")
	}
	if d.Name == "" {
		return fmt.Errorf("driver name is required")
	}
	if d.Price < 0 {
		return fmt.Errorf("driver price cannot be negative")
	}

	return nil
}

package team

import "fmt"

// Team is a roster inside a division for one season.
type Team struct {
	ID         string
	SeasonID   string
	DivisionID string
	Name       string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.SeasonID == "" {
		return fmt.Errorf("team season id is required")
	}
	if t.DivisionID == "" {
		return fmt.Errorf("team division id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

package season

import "fmt"

// Season is one registration/playing cycle, e.g. "Spring 2026".
type Season struct {
	ID       string
	Name     string
	Year     int
	IsActive bool
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}
	return nil
}

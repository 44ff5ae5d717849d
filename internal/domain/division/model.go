package division

import (
	"fmt"
	"strings"
)

// Division is an age/skill bracket grouping teams and players for a season.
type Division struct {
	ID       string
	SeasonID string
	Name     string
}

func (d Division) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("division id is required")
	}
	if d.SeasonID == "" {
		return fmt.Errorf("division season id is required")
	}
	if d.Name == "" {
		return fmt.Errorf("division name is required")
	}
	return nil
}

// Resolve finds a division by id or case-insensitive name.
func Resolve(divisions []Division, ref string) (Division, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Division{}, false
	}
	for _, d := range divisions {
		if d.ID == ref || strings.EqualFold(d.Name, ref) {
			return d, true
		}
	}
	return Division{}, false
}

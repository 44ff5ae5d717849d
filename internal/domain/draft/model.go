package draft

import (
	"fmt"
	"time"
)

// Manager is one slot in the pick rotation. For synthesized sessions the
// manager is the team itself.
type Manager struct {
	ID     string
	Name   string
	Role   string
	TeamID string
}

// Pick is immutable once recorded.
type Pick struct {
	PickNumber int
	TeamID     string
	PlayerID   string
	PickedAt   time.Time
}

// Session is the pick order and history for one division in one season.
// The current pick index is always len(Picks).
type Session struct {
	ID          string
	SeasonID    string
	DivisionID  string
	Managers    []Manager
	Picks       []Pick
	Synthesized bool
	CreatedAt   time.Time
}

func (s Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("draft session id is required")
	}
	if s.SeasonID == "" || s.DivisionID == "" {
		return fmt.Errorf("draft session season and division are required")
	}
	if len(s.Managers) == 0 {
		return fmt.Errorf("draft session needs at least one manager")
	}
	seen := make(map[string]struct{}, len(s.Managers))
	for _, m := range s.Managers {
		if m.TeamID == "" {
			return fmt.Errorf("draft manager %q has no team", m.Name)
		}
		if _, dup := seen[m.TeamID]; dup {
			return fmt.Errorf("team %s appears twice in the draft order", m.TeamID)
		}
		seen[m.TeamID] = struct{}{}
	}
	return nil
}

// PickRequest is what a client submits for the manager on the clock.
type PickRequest struct {
	SessionID  string
	TeamID     string
	PlayerID   string
	PickNumber int
}

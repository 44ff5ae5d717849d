package draft

import (
	"fmt"
	"time"

	"github.com/riskibarqy/youth-league/internal/domain/player"
)

// ManagerAt returns managers[index % len(managers)]. It reports false for an
// empty list or a negative index.
func ManagerAt(managers []Manager, index int) (Manager, bool) {
	if len(managers) == 0 || index < 0 {
		return Manager{}, false
	}
	return managers[index%len(managers)], true
}

func (s Session) CurrentPick() int {
	return len(s.Picks)
}

func (s Session) NextPickNumber() int {
	return len(s.Picks) + 1
}

func (s Session) Round() int {
	if len(s.Managers) == 0 {
		return 0
	}
	return len(s.Picks)/len(s.Managers) + 1
}

func (s Session) OnTheClock() (Manager, bool) {
	return ManagerAt(s.Managers, s.CurrentPick())
}

func (s Session) PickedPlayerIDs() map[string]struct{} {
	out := make(map[string]struct{}, len(s.Picks))
	for _, p := range s.Picks {
		out[p.PlayerID] = struct{}{}
	}
	return out
}

func (s Session) IsPicked(playerID string) bool {
	for _, p := range s.Picks {
		if p.PlayerID == playerID {
			return true
		}
	}
	return false
}

// Available is the division roster minus every player already picked,
// keeping the roster's order.
func Available(roster []player.Player, s Session) []player.Player {
	picked := s.PickedPlayerIDs()
	out := make([]player.Player, 0, len(roster))
	for _, p := range roster {
		if _, ok := picked[p.ID]; ok {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ValidatePick checks order, rotation and uniqueness. Division membership
// of the player is checked by the caller, which owns the roster.
func (s Session) ValidatePick(req PickRequest) error {
	if s.Synthesized {
		return ErrSynthesized
	}
	current, ok := s.OnTheClock()
	if !ok {
		return ErrNoManagers
	}
	if req.PickNumber != s.NextPickNumber() {
		return fmt.Errorf("%w: got %d, expected %d", ErrOutOfOrder, req.PickNumber, s.NextPickNumber())
	}
	if req.TeamID != current.TeamID {
		return fmt.Errorf("%w: team=%s, on the clock=%s", ErrNotOnTheClock, req.TeamID, current.TeamID)
	}
	if s.IsPicked(req.PlayerID) {
		return fmt.Errorf("%w: player=%s", ErrAlreadyPicked, req.PlayerID)
	}
	return nil
}

// Apply validates req and returns the session with the pick appended. The
// receiver is not modified.
func (s Session) Apply(req PickRequest, at time.Time) (Session, Pick, error) {
	if err := s.ValidatePick(req); err != nil {
		return s, Pick{}, err
	}

	pick := Pick{
		PickNumber: req.PickNumber,
		TeamID:     req.TeamID,
		PlayerID:   req.PlayerID,
		PickedAt:   at.UTC(),
	}

	next := s
	next.Picks = append(append(make([]Pick, 0, len(s.Picks)+1), s.Picks...), pick)
	return next, pick, nil
}

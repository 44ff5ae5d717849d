package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/youth-league/internal/domain/draft"
)

// DraftRepository appends picks under one lock, so two clients racing for
// the same pick number cannot both succeed.
type DraftRepository struct {
	mu       sync.RWMutex
	order    []string
	sessions map[string]draft.Session
}

func NewDraftRepository(sessions ...draft.Session) *DraftRepository {
	r := &DraftRepository{sessions: make(map[string]draft.Session, len(sessions))}
	for _, s := range sessions {
		r.order = append(r.order, s.ID)
		r.sessions[s.ID] = cloneSession(s)
	}
	return r
}

func (r *DraftRepository) GetByID(_ context.Context, sessionID string) (draft.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return draft.Session{}, false, nil
	}
	return cloneSession(s), true, nil
}

func (r *DraftRepository) GetByDivision(_ context.Context, seasonID, divisionID string) (draft.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		s := r.sessions[id]
		if s.SeasonID == seasonID && s.DivisionID == divisionID {
			return cloneSession(s), true, nil
		}
	}
	return draft.Session{}, false, nil
}

func (r *DraftRepository) ListBySeason(_ context.Context, seasonID string) ([]draft.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]draft.Session, 0)
	for _, id := range r.order {
		if s := r.sessions[id]; s.SeasonID == seasonID {
			out = append(out, cloneSession(s))
		}
	}
	return out, nil
}

func (r *DraftRepository) Create(_ context.Context, s draft.Session) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validate draft session: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.sessions {
		if existing.ID == s.ID || (existing.SeasonID == s.SeasonID && existing.DivisionID == s.DivisionID) {
			return fmt.Errorf("%w: division=%s", draft.ErrSessionExists, s.DivisionID)
		}
	}
	r.order = append(r.order, s.ID)
	r.sessions[s.ID] = cloneSession(s)
	return nil
}

func (r *DraftRepository) AppendPick(_ context.Context, sessionID string, pick draft.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return fmt.Errorf("draft session %s not found", sessionID)
	}
	if pick.PickNumber != s.NextPickNumber() {
		return fmt.Errorf("%w: got %d, expected %d", draft.ErrOutOfOrder, pick.PickNumber, s.NextPickNumber())
	}
	if s.IsPicked(pick.PlayerID) {
		return fmt.Errorf("%w: player=%s", draft.ErrAlreadyPicked, pick.PlayerID)
	}

	s.Picks = append(s.Picks, pick)
	r.sessions[sessionID] = s
	return nil
}

func cloneSession(s draft.Session) draft.Session {
	copied := s
	copied.Managers = append([]draft.Manager(nil), s.Managers...)
	copied.Picks = append([]draft.Pick(nil), s.Picks...)
	return copied
}

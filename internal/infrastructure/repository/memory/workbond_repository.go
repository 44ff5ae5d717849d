package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/youth-league/internal/domain/workbond"
)

type WorkbondRepository struct {
	mu      sync.RWMutex
	shifts  map[string]workbond.Shift
	signups map[string]workbond.Signup
}

func NewWorkbondRepository(shifts []workbond.Shift, signups []workbond.Signup) *WorkbondRepository {
	r := &WorkbondRepository{
		shifts:  make(map[string]workbond.Shift, len(shifts)),
		signups: make(map[string]workbond.Signup, len(signups)),
	}
	for _, s := range shifts {
		r.shifts[s.ID] = s
	}
	for _, su := range signups {
		r.signups[su.ID] = su
	}
	return r
}

func (r *WorkbondRepository) ListShifts(_ context.Context, seasonID string) ([]workbond.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]workbond.Shift, 0)
	for _, s := range r.shifts {
		if s.SeasonID == seasonID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].StartsAt.Before(out[j].StartsAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *WorkbondRepository) GetShift(_ context.Context, shiftID string) (workbond.Shift, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.shifts[shiftID]
	return s, ok, nil
}

func (r *WorkbondRepository) CreateShift(_ context.Context, s workbond.Shift) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validate shift: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.shifts[s.ID]; exists {
		return fmt.Errorf("shift %s already exists", s.ID)
	}
	r.shifts[s.ID] = s
	return nil
}

func (r *WorkbondRepository) ListSignupsBySeason(_ context.Context, seasonID string) ([]workbond.Signup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]workbond.Signup, 0)
	for _, su := range r.signups {
		if shift, ok := r.shifts[su.ShiftID]; ok && shift.SeasonID == seasonID {
			out = append(out, su)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *WorkbondRepository) GetSignup(_ context.Context, signupID string) (workbond.Signup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	su, ok := r.signups[signupID]
	return su, ok, nil
}

func (r *WorkbondRepository) CreateSignup(_ context.Context, su workbond.Signup, capacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	taken := 0
	for _, existing := range r.signups {
		if existing.ShiftID != su.ShiftID {
			continue
		}
		if existing.FamilyID == su.FamilyID {
			return fmt.Errorf("%w: shift=%s family=%s", workbond.ErrAlreadySignedUp, su.ShiftID, su.FamilyID)
		}
		taken++
	}
	if taken >= capacity {
		return fmt.Errorf("%w: shift=%s capacity=%d", workbond.ErrShiftFull, su.ShiftID, capacity)
	}
	r.signups[su.ID] = su
	return nil
}

func (r *WorkbondRepository) UpdateSignupStatus(_ context.Context, signupID string, status workbond.SignupStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	su, ok := r.signups[signupID]
	if !ok {
		return fmt.Errorf("signup %s not found", signupID)
	}
	su.Status = status
	r.signups[signupID] = su
	return nil
}

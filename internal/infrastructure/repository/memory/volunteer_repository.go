package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
)

type VolunteerRepository struct {
	mu    sync.RWMutex
	order []string
	index map[string]volunteer.Volunteer
}

func NewVolunteerRepository(volunteers []volunteer.Volunteer) *VolunteerRepository {
	r := &VolunteerRepository{index: make(map[string]volunteer.Volunteer, len(volunteers))}
	for _, v := range volunteers {
		if _, ok := r.index[v.ID]; !ok {
			r.order = append(r.order, v.ID)
		}
		r.index[v.ID] = v
	}
	return r
}

// List returns matches ordered by name.
func (r *VolunteerRepository) List(_ context.Context, filter volunteer.Filter) ([]volunteer.Volunteer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]volunteer.Volunteer, 0)
	for _, id := range r.order {
		v := r.index[id]
		if filter.Match(v) {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *VolunteerRepository) GetByID(_ context.Context, volunteerID string) (volunteer.Volunteer, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.index[volunteerID]
	return v, ok, nil
}

func (r *VolunteerRepository) Create(_ context.Context, v volunteer.Volunteer) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("validate volunteer: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[v.ID]; exists {
		return fmt.Errorf("volunteer %s already exists", v.ID)
	}
	r.order = append(r.order, v.ID)
	r.index[v.ID] = v
	return nil
}

func (r *VolunteerRepository) Update(_ context.Context, v volunteer.Volunteer) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("validate volunteer: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[v.ID]; !exists {
		return fmt.Errorf("volunteer %s not found", v.ID)
	}
	r.index[v.ID] = v
	return nil
}

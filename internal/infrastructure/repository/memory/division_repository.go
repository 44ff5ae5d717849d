package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/youth-league/internal/domain/division"
)

type DivisionRepository struct {
	mu        sync.RWMutex
	divisions []division.Division
}

func NewDivisionRepository(divisions []division.Division) *DivisionRepository {
	return &DivisionRepository{divisions: append([]division.Division(nil), divisions...)}
}

func (r *DivisionRepository) ListBySeason(_ context.Context, seasonID string) ([]division.Division, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]division.Division, 0)
	for _, item := range r.divisions {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *DivisionRepository) GetByID(_ context.Context, divisionID string) (division.Division, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.divisions {
		if item.ID == divisionID {
			return item, true, nil
		}
	}
	return division.Division{}, false, nil
}

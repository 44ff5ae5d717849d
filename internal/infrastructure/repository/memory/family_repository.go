package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/youth-league/internal/domain/family"
)

type FamilyRepository struct {
	mu      sync.RWMutex
	order   []string
	index   map[string]family.Family
	byEmail map[string]string
}

func NewFamilyRepository(families []family.Family) *FamilyRepository {
	r := &FamilyRepository{
		index:   make(map[string]family.Family, len(families)),
		byEmail: make(map[string]string, len(families)),
	}
	for _, f := range families {
		r.put(f)
	}
	return r
}

func (r *FamilyRepository) List(_ context.Context) ([]family.Family, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]family.Family, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.index[id])
	}
	return out, nil
}

func (r *FamilyRepository) GetByID(_ context.Context, familyID string) (family.Family, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.index[familyID]
	return f, ok, nil
}

func (r *FamilyRepository) GetByIDs(_ context.Context, familyIDs []string) ([]family.Family, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]family.Family, 0, len(familyIDs))
	for _, id := range familyIDs {
		f, ok := r.index[id]
		if !ok {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *FamilyRepository) FindByEmail(_ context.Context, email string) (family.Family, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[family.NormalizeEmail(email)]
	if !ok {
		return family.Family{}, false, nil
	}
	return r.index[id], true, nil
}

func (r *FamilyRepository) Create(_ context.Context, f family.Family) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("validate family: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[f.ID]; exists {
		return fmt.Errorf("family %s already exists", f.ID)
	}
	for _, email := range f.Emails() {
		if owner, taken := r.byEmail[family.NormalizeEmail(email)]; taken {
			return fmt.Errorf("guardian email %s already belongs to family %s", email, owner)
		}
	}
	r.put(f)
	return nil
}

func (r *FamilyRepository) put(f family.Family) {
	if _, ok := r.index[f.ID]; !ok {
		r.order = append(r.order, f.ID)
	}
	r.index[f.ID] = f
	for _, email := range f.Emails() {
		r.byEmail[family.NormalizeEmail(email)] = f.ID
	}
}

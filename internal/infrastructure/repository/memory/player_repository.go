package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/youth-league/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	order []string
	index map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{index: make(map[string]player.Player, len(players))}
	for _, p := range players {
		if _, ok := r.index[p.ID]; !ok {
			r.order = append(r.order, p.ID)
		}
		r.index[p.ID] = p
	}
	return r
}

func (r *PlayerRepository) List(_ context.Context, filter player.Filter) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, id := range r.order {
		p := r.index[id]
		if filter.Match(p) {
			out = append(out, p)
		}
	}
	player.Sort(out, filter.Sort)
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validate player: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[p.ID]; exists {
		return fmt.Errorf("player %s already exists", p.ID)
	}
	r.order = append(r.order, p.ID)
	r.index[p.ID] = p
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validate player: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[p.ID]; !exists {
		return fmt.Errorf("player %s not found", p.ID)
	}
	r.index[p.ID] = p
	return nil
}

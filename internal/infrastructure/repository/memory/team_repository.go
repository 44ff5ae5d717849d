package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/youth-league/internal/domain/team"
)

// TeamRepository keeps teams in registration order, which is the default
// draft order.
type TeamRepository struct {
	mu    sync.RWMutex
	teams []team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	return &TeamRepository{teams: append([]team.Team(nil), teams...)}
}

func (r *TeamRepository) ListBySeason(_ context.Context, seasonID string) ([]team.Team, error) {
	return r.filter(func(t team.Team) bool { return t.SeasonID == seasonID }), nil
}

func (r *TeamRepository) ListByDivision(_ context.Context, divisionID string) ([]team.Team, error) {
	return r.filter(func(t team.Team) bool { return t.DivisionID == divisionID }), nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.teams {
		if item.ID == teamID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) filter(keep func(team.Team) bool) []team.Team {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, item := range r.teams {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/youth-league/internal/domain/team"
	"github.com/riskibarqy/youth-league/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/youth-league/internal/platform/cache"
)

type countingTeams struct {
	team.Repository
	lists atomic.Int32
	gets  atomic.Int32
	fail  bool
}

func (c *countingTeams) ListByDivision(ctx context.Context, divisionID string) ([]team.Team, error) {
	c.lists.Add(1)
	if c.fail {
		return nil, errors.New("db down")
	}
	return c.Repository.ListByDivision(ctx, divisionID)
}

func (c *countingTeams) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	c.gets.Add(1)
	return c.Repository.GetByID(ctx, teamID)
}

func TestTeamRepository_CachesListsAndMisses(t *testing.T) {
	next := &countingTeams{Repository: memory.NewTeamRepository(memory.SeedTeams())}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))
	ctx := t.Context()

	first, err := repo.ListByDivision(ctx, memory.DivisionID10U)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(first))
	}

	first[0].Name = "mutated"
	second, err := repo.ListByDivision(ctx, memory.DivisionID10U)
	if err != nil {
		t.Fatalf("list teams again: %v", err)
	}
	if second[0].Name != "Astros" {
		t.Fatalf("cached slice was mutated by caller: %q", second[0].Name)
	}
	if got := next.lists.Load(); got != 1 {
		t.Fatalf("expected 1 underlying list call, got %d", got)
	}

	for range 2 {
		_, ok, err := repo.GetByID(ctx, "10u-ghosts")
		if err != nil {
			t.Fatalf("get missing team: %v", err)
		}
		if ok {
			t.Fatalf("expected miss for unknown team")
		}
	}
	if got := next.gets.Load(); got != 1 {
		t.Fatalf("expected cached miss, got %d underlying gets", got)
	}
}

func TestTeamRepository_DoesNotCacheErrors(t *testing.T) {
	next := &countingTeams{Repository: memory.NewTeamRepository(memory.SeedTeams()), fail: true}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	for range 2 {
		if _, err := repo.ListByDivision(t.Context(), memory.DivisionID8U); err == nil {
			t.Fatalf("expected underlying error")
		}
	}
	if got := next.lists.Load(); got != 2 {
		t.Fatalf("expected errors to bypass cache, got %d calls", got)
	}
}

func TestSeasonRepository_NilStorePassesThrough(t *testing.T) {
	repo := NewSeasonRepository(memory.NewSeasonRepository(memory.SeedSeasons()), nil)

	s, ok, err := repo.GetByID(t.Context(), memory.SeasonIDSpring2026)
	if err != nil || !ok {
		t.Fatalf("get season: ok=%v err=%v", ok, err)
	}
	if s.Name != "Spring 2026" {
		t.Fatalf("unexpected season name %q", s.Name)
	}
}

package cache

import (
	"context"

	"github.com/riskibarqy/youth-league/internal/domain/division"
	"github.com/riskibarqy/youth-league/internal/domain/season"
	"github.com/riskibarqy/youth-league/internal/domain/team"
	basecache "github.com/riskibarqy/youth-league/internal/platform/cache"
)

// found carries a lookup result so misses are cached too.
type found[T any] struct {
	value  T
	exists bool
}

func loadOne[T any](ctx context.Context, store *basecache.Store, key string, get func(context.Context) (T, bool, error)) (T, bool, error) {
	v, err := basecache.Load(ctx, store, key, func(ctx context.Context) (found[T], error) {
		item, exists, err := get(ctx)
		if err != nil {
			return found[T]{}, err
		}
		return found[T]{value: item, exists: exists}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v.value, v.exists, nil
}

func loadList[T any](ctx context.Context, store *basecache.Store, key string, list func(context.Context) ([]T, error)) ([]T, error) {
	items, err := basecache.Load(ctx, store, key, func(ctx context.Context) ([]T, error) {
		items, err := list(ctx)
		if err != nil {
			return nil, err
		}
		return append([]T(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]T(nil), items...), nil
}

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	return loadList(ctx, r.cache, "season:list", r.next.List)
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	return loadOne(ctx, r.cache, "season:id:"+seasonID, func(ctx context.Context) (season.Season, bool, error) {
		return r.next.GetByID(ctx, seasonID)
	})
}

type DivisionRepository struct {
	next  division.Repository
	cache *basecache.Store
}

func NewDivisionRepository(next division.Repository, cache *basecache.Store) *DivisionRepository {
	return &DivisionRepository{next: next, cache: cache}
}

func (r *DivisionRepository) ListBySeason(ctx context.Context, seasonID string) ([]division.Division, error) {
	return loadList(ctx, r.cache, "division:season:"+seasonID, func(ctx context.Context) ([]division.Division, error) {
		return r.next.ListBySeason(ctx, seasonID)
	})
}

func (r *DivisionRepository) GetByID(ctx context.Context, divisionID string) (division.Division, bool, error) {
	return loadOne(ctx, r.cache, "division:id:"+divisionID, func(ctx context.Context) (division.Division, bool, error) {
		return r.next.GetByID(ctx, divisionID)
	})
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListBySeason(ctx context.Context, seasonID string) ([]team.Team, error) {
	return loadList(ctx, r.cache, "team:season:"+seasonID, func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListBySeason(ctx, seasonID)
	})
}

func (r *TeamRepository) ListByDivision(ctx context.Context, divisionID string) ([]team.Team, error) {
	return loadList(ctx, r.cache, "team:division:"+divisionID, func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByDivision(ctx, divisionID)
	})
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return loadOne(ctx, r.cache, "team:id:"+teamID, func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByID(ctx, teamID)
	})
}

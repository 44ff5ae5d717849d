package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/youth-league/internal/domain/family"
	"github.com/riskibarqy/youth-league/internal/domain/player"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
)

// seasonFamilies returns the families with a player or a volunteer
// registered in the season, ordered by family id.
func seasonFamilies(
	ctx context.Context,
	playerRepo player.Repository,
	volunteerRepo volunteer.Repository,
	familyRepo family.Repository,
	seasonID string,
) ([]family.Family, error) {
	players, err := playerRepo.List(ctx, player.Filter{SeasonID: seasonID})
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	volunteers, err := volunteerRepo.List(ctx, volunteer.Filter{SeasonID: seasonID})
	if err != nil {
		return nil, fmt.Errorf("list volunteers: %w", err)
	}

	seen := make(map[string]struct{}, len(players))
	ids := make([]string, 0, len(players))
	add := func(familyID string) {
		if familyID == "" {
			return
		}
		if _, ok := seen[familyID]; ok {
			return
		}
		seen[familyID] = struct{}{}
		ids = append(ids, familyID)
	}
	for _, p := range players {
		add(p.FamilyID)
	}
	for _, v := range volunteers {
		add(v.FamilyID)
	}
	sort.Strings(ids)

	families, err := familyRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get families: %w", err)
	}
	return families, nil
}

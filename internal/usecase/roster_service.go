package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/youth-league/internal/domain/division"
	"github.com/riskibarqy/youth-league/internal/domain/family"
	"github.com/riskibarqy/youth-league/internal/domain/player"
	"github.com/riskibarqy/youth-league/internal/domain/season"
	"github.com/riskibarqy/youth-league/internal/domain/team"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
)

// PlayerUpdate carries the fields an admin may change on a player. Nil
// fields are left as they are.
type PlayerUpdate struct {
	Status          *string
	PaymentReceived *bool
	TeamID          *string
}

// FamilyDetail is a family with its children and volunteers for a season.
type FamilyDetail struct {
	Family     family.Family
	Players    []player.Player
	Volunteers []volunteer.Volunteer
}

type RosterService struct {
	seasonRepo    season.Repository
	divisionRepo  division.Repository
	teamRepo      team.Repository
	playerRepo    player.Repository
	familyRepo    family.Repository
	volunteerRepo volunteer.Repository
	logger        *logging.Logger
}

func NewRosterService(
	seasonRepo season.Repository,
	divisionRepo division.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	familyRepo family.Repository,
	volunteerRepo volunteer.Repository,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		seasonRepo:    seasonRepo,
		divisionRepo:  divisionRepo,
		teamRepo:      teamRepo,
		playerRepo:    playerRepo,
		familyRepo:    familyRepo,
		volunteerRepo: volunteerRepo,
		logger:        logger,
	}
}

func (s *RosterService) ListSeasons(ctx context.Context) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListSeasons")
	defer span.End()

	seasons, err := s.seasonRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return seasons, nil
}

func (s *RosterService) ListDivisions(ctx context.Context, seasonID string) ([]division.Division, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListDivisions")
	defer span.End()

	seasonID, err := requireSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}

	divisions, err := s.divisionRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}
	return divisions, nil
}

func (s *RosterService) ListTeams(ctx context.Context, seasonID, divisionID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListTeams")
	defer span.End()

	seasonID, err := requireSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}

	divisionID = strings.TrimSpace(divisionID)
	if divisionID == "" {
		teams, err := s.teamRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, fmt.Errorf("list teams: %w", err)
		}
		return teams, nil
	}

	teams, err := s.teamRepo.ListByDivision(ctx, divisionID)
	if err != nil {
		return nil, fmt.Errorf("list teams by division: %w", err)
	}
	return teams, nil
}

func (s *RosterService) ListPlayers(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListPlayers")
	defer span.End()

	seasonID, err := requireSeason(ctx, s.seasonRepo, filter.SeasonID)
	if err != nil {
		return nil, err
	}
	filter.SeasonID = seasonID

	if filter.Status != "" {
		status, ok := player.ParseStatus(string(filter.Status))
		if !ok {
			return nil, fmt.Errorf("%w: unknown player status %q", ErrInvalidInput, filter.Status)
		}
		filter.Status = status
	}
	sortKey, ok := player.ParseSortKey(string(filter.Sort))
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, filter.Sort)
	}
	filter.Sort = sortKey

	players, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *RosterService) UpdatePlayer(ctx context.Context, playerID string, update PlayerUpdate) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.UpdatePlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if update.Status == nil && update.PaymentReceived == nil && update.TeamID == nil {
		return player.Player{}, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	if update.Status != nil {
		status, ok := player.ParseStatus(*update.Status)
		if !ok {
			return player.Player{}, fmt.Errorf("%w: unknown player status %q", ErrInvalidInput, *update.Status)
		}
		p.Status = status
	}
	if update.PaymentReceived != nil {
		p.PaymentReceived = *update.PaymentReceived
	}
	if update.TeamID != nil {
		teamID := strings.TrimSpace(*update.TeamID)
		if teamID != "" {
			t, exists, err := s.teamRepo.GetByID(ctx, teamID)
			if err != nil {
				return player.Player{}, fmt.Errorf("get team: %w", err)
			}
			if !exists {
				return player.Player{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
			}
			if t.DivisionID != p.DivisionID {
				return player.Player{}, fmt.Errorf("%w: team %s is not in the player's division", ErrInvalidInput, teamID)
			}
		}
		p.TeamID = teamID
	}

	if err := s.playerRepo.Update(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	s.logger.InfoContext(ctx, "player updated", "player_id", p.ID, "status", p.Status, "team_id", p.TeamID)
	return p, nil
}

// ListFamilies lists every stored family, or only the families with a
// player or volunteer in the season when seasonID is set.
func (s *RosterService) ListFamilies(ctx context.Context, seasonID string) ([]family.Family, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListFamilies")
	defer span.End()

	if strings.TrimSpace(seasonID) != "" {
		seasonID, err := requireSeason(ctx, s.seasonRepo, seasonID)
		if err != nil {
			return nil, err
		}
		return seasonFamilies(ctx, s.playerRepo, s.volunteerRepo, s.familyRepo, seasonID)
	}

	families, err := s.familyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list families: %w", err)
	}
	return families, nil
}

func (s *RosterService) GetFamily(ctx context.Context, familyID, seasonID string) (FamilyDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetFamily")
	defer span.End()

	familyID = strings.TrimSpace(familyID)
	if familyID == "" {
		return FamilyDetail{}, fmt.Errorf("%w: family id is required", ErrInvalidInput)
	}

	f, exists, err := s.familyRepo.GetByID(ctx, familyID)
	if err != nil {
		return FamilyDetail{}, fmt.Errorf("get family: %w", err)
	}
	if !exists {
		return FamilyDetail{}, fmt.Errorf("%w: family=%s", ErrNotFound, familyID)
	}

	seasonID = strings.TrimSpace(seasonID)
	players, err := s.playerRepo.List(ctx, player.Filter{SeasonID: seasonID, FamilyID: familyID, Sort: player.SortByBirthDate})
	if err != nil {
		return FamilyDetail{}, fmt.Errorf("list family players: %w", err)
	}
	volunteers, err := s.volunteerRepo.List(ctx, volunteer.Filter{SeasonID: seasonID, FamilyID: familyID})
	if err != nil {
		return FamilyDetail{}, fmt.Errorf("list family volunteers: %w", err)
	}

	return FamilyDetail{Family: f, Players: players, Volunteers: volunteers}, nil
}

func requireSeason(ctx context.Context, repo season.Repository, seasonID string) (string, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return "", fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	_, exists, err := repo.GetByID(ctx, seasonID)
	if err != nil {
		return "", fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return seasonID, nil
}

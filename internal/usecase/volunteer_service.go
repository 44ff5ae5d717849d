package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/youth-league/internal/domain/season"
	"github.com/riskibarqy/youth-league/internal/domain/team"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
)

// AssignRoleInput sets a volunteer's single role. Team roles need a team;
// the division follows the team.
type AssignRoleInput struct {
	VolunteerID string
	Role        string
	SeasonID    string
	DivisionID  string
	TeamID      string
}

type VolunteerService struct {
	seasonRepo    season.Repository
	teamRepo      team.Repository
	volunteerRepo volunteer.Repository
	logger        *logging.Logger
}

func NewVolunteerService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	volunteerRepo volunteer.Repository,
	logger *logging.Logger,
) *VolunteerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &VolunteerService{
		seasonRepo:    seasonRepo,
		teamRepo:      teamRepo,
		volunteerRepo: volunteerRepo,
		logger:        logger,
	}
}

func (s *VolunteerService) List(ctx context.Context, filter volunteer.Filter) ([]volunteer.Volunteer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VolunteerService.List")
	defer span.End()

	seasonID, err := requireSeason(ctx, s.seasonRepo, filter.SeasonID)
	if err != nil {
		return nil, err
	}
	filter.SeasonID = seasonID

	if filter.Role != "" {
		role, ok := volunteer.CanonicalRole(filter.Role)
		if !ok {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, filter.Role)
		}
		filter.Role = role
	}

	items, err := s.volunteerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list volunteers: %w", err)
	}
	return items, nil
}

func (s *VolunteerService) AssignRole(ctx context.Context, input AssignRoleInput) (volunteer.Volunteer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VolunteerService.AssignRole")
	defer span.End()

	input.VolunteerID = strings.TrimSpace(input.VolunteerID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.DivisionID = strings.TrimSpace(input.DivisionID)
	input.SeasonID = strings.TrimSpace(input.SeasonID)

	if input.VolunteerID == "" {
		return volunteer.Volunteer{}, fmt.Errorf("%w: volunteer id is required", ErrInvalidInput)
	}
	role, ok := volunteer.CanonicalRole(input.Role)
	if !ok {
		return volunteer.Volunteer{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, input.Role)
	}

	v, exists, err := s.volunteerRepo.GetByID(ctx, input.VolunteerID)
	if err != nil {
		return volunteer.Volunteer{}, fmt.Errorf("get volunteer: %w", err)
	}
	if !exists {
		return volunteer.Volunteer{}, fmt.Errorf("%w: volunteer=%s", ErrNotFound, input.VolunteerID)
	}
	if input.SeasonID != "" && input.SeasonID != v.SeasonID {
		return volunteer.Volunteer{}, fmt.Errorf("%w: volunteer %s is registered for season %s", ErrInvalidInput, v.ID, v.SeasonID)
	}

	v.Role = role
	if input.TeamID != "" {
		t, exists, err := s.teamRepo.GetByID(ctx, input.TeamID)
		if err != nil {
			return volunteer.Volunteer{}, fmt.Errorf("get team: %w", err)
		}
		if !exists {
			return volunteer.Volunteer{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
		}
		if t.SeasonID != v.SeasonID {
			return volunteer.Volunteer{}, fmt.Errorf("%w: team %s is not in season %s", ErrInvalidInput, t.ID, v.SeasonID)
		}
		v.TeamID = t.ID
		v.DivisionID = t.DivisionID
	} else {
		if v.HoldsTeamRole() {
			return volunteer.Volunteer{}, fmt.Errorf("%w: role %s requires a team", ErrInvalidInput, role)
		}
		v.TeamID = ""
		if input.DivisionID != "" {
			v.DivisionID = input.DivisionID
		}
	}

	if err := s.volunteerRepo.Update(ctx, v); err != nil {
		return volunteer.Volunteer{}, fmt.Errorf("update volunteer: %w", err)
	}

	s.logger.InfoContext(ctx, "volunteer role assigned",
		"volunteer_id", v.ID,
		"role", v.Role,
		"team_id", v.TeamID,
		"division_id", v.DivisionID,
	)
	return v, nil
}

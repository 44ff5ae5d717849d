package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/youth-league/internal/domain/division"
	"github.com/riskibarqy/youth-league/internal/domain/draft"
	"github.com/riskibarqy/youth-league/internal/domain/player"
	"github.com/riskibarqy/youth-league/internal/domain/season"
	"github.com/riskibarqy/youth-league/internal/domain/team"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type DraftConfig struct {
	// FallbackEnabled serves a synthesized, view-only board for a division
	// that has no stored session.
	FallbackEnabled bool
}

// DraftBoard is everything a draft room renders: the session, who is on
// the clock and which players are still available.
type DraftBoard struct {
	Session    draft.Session
	Teams      []team.Team
	OnTheClock *draft.Manager
	Round      int
	Available  []player.Player
}

type CreateDraftInput struct {
	SeasonID   string
	DivisionID string
	// TeamOrder lists team ids in pick order. Empty means the division's
	// team order.
	TeamOrder []string
}

// PickResult is a recorded pick plus the drafted player's family
// volunteers who could take a team role.
type PickResult struct {
	Pick           draft.Pick
	Player         player.Player
	RoleCandidates []draft.RoleCandidate
}

type DraftService struct {
	seasonRepo    season.Repository
	divisionRepo  division.Repository
	teamRepo      team.Repository
	playerRepo    player.Repository
	volunteerRepo volunteer.Repository
	draftRepo     draft.Repository
	ids           IDGenerators
	cfg           DraftConfig
	clock         clockwork.Clock
	logger        *logging.Logger
}

func NewDraftService(
	seasonRepo season.Repository,
	divisionRepo division.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	volunteerRepo volunteer.Repository,
	draftRepo draft.Repository,
	ids IDGenerators,
	cfg DraftConfig,
	clock clockwork.Clock,
	logger *logging.Logger,
) *DraftService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &DraftService{
		seasonRepo:    seasonRepo,
		divisionRepo:  divisionRepo,
		teamRepo:      teamRepo,
		playerRepo:    playerRepo,
		volunteerRepo: volunteerRepo,
		draftRepo:     draftRepo,
		ids:           ids.withDefaults(),
		cfg:           cfg,
		clock:         clock,
		logger:        logger,
	}
}

func (s *DraftService) GetBoard(ctx context.Context, seasonID, divisionID string) (DraftBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.GetBoard",
		attribute.String("season.id", seasonID),
		attribute.String("division.id", divisionID),
	)
	defer span.End()

	div, err := s.requireDivision(ctx, seasonID, divisionID)
	if err != nil {
		return DraftBoard{}, err
	}

	teams, err := s.teamRepo.ListByDivision(ctx, div.ID)
	if err != nil {
		return DraftBoard{}, fmt.Errorf("list teams: %w", err)
	}

	session, exists, err := s.draftRepo.GetByDivision(ctx, div.SeasonID, div.ID)
	if err != nil {
		return DraftBoard{}, fmt.Errorf("get draft session: %w", err)
	}
	if !exists {
		if !s.cfg.FallbackEnabled {
			return DraftBoard{}, fmt.Errorf("%w: no draft session for division=%s", ErrNotFound, div.ID)
		}
		s.logger.WarnContext(ctx, "no stored draft session, serving synthesized board",
			"season_id", div.SeasonID,
			"division_id", div.ID,
			"teams", len(teams),
		)
		session = draft.SynthesizeSession(div.SeasonID, div.ID, teams)
	}

	roster, err := s.playerRepo.List(ctx, player.Filter{
		SeasonID:   div.SeasonID,
		DivisionID: div.ID,
		Status:     player.StatusActive,
		Sort:       player.SortByLastName,
	})
	if err != nil {
		return DraftBoard{}, fmt.Errorf("list division players: %w", err)
	}

	board := DraftBoard{
		Session:   session,
		Teams:     teams,
		Round:     session.Round(),
		Available: draft.Available(roster, session),
	}
	if current, ok := session.OnTheClock(); ok {
		board.OnTheClock = &current
	}
	return board, nil
}

func (s *DraftService) CreateSession(ctx context.Context, input CreateDraftInput) (draft.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.CreateSession")
	defer span.End()

	div, err := s.requireDivision(ctx, input.SeasonID, input.DivisionID)
	if err != nil {
		return draft.Session{}, err
	}

	_, exists, err := s.draftRepo.GetByDivision(ctx, div.SeasonID, div.ID)
	if err != nil {
		return draft.Session{}, fmt.Errorf("get draft session: %w", err)
	}
	if exists {
		return draft.Session{}, fmt.Errorf("%w: %w: division=%s", ErrConflict, draft.ErrSessionExists, div.ID)
	}

	teams, err := s.teamRepo.ListByDivision(ctx, div.ID)
	if err != nil {
		return draft.Session{}, fmt.Errorf("list teams: %w", err)
	}
	ordered, err := orderTeams(teams, input.TeamOrder)
	if err != nil {
		return draft.Session{}, err
	}

	managers := make([]draft.Manager, 0, len(ordered))
	for _, t := range ordered {
		m, err := s.managerFor(ctx, div.SeasonID, t)
		if err != nil {
			return draft.Session{}, err
		}
		managers = append(managers, m)
	}

	sessionID, err := s.ids.Session.NewID()
	if err != nil {
		return draft.Session{}, fmt.Errorf("generate draft session id: %w", err)
	}
	session := draft.Session{
		ID:         sessionID,
		SeasonID:   div.SeasonID,
		DivisionID: div.ID,
		Managers:   managers,
		CreatedAt:  s.clock.Now().UTC(),
	}
	if err := session.Validate(); err != nil {
		return draft.Session{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.draftRepo.Create(ctx, session); err != nil {
		if errors.Is(err, draft.ErrSessionExists) {
			return draft.Session{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return draft.Session{}, fmt.Errorf("create draft session: %w", err)
	}

	s.logger.InfoContext(ctx, "draft session created",
		"session_id", session.ID,
		"division_id", session.DivisionID,
		"managers", len(session.Managers),
	)
	return session, nil
}

// MakePick records a pick for the team on the clock and assigns the player
// to that team. A failed team assignment is logged; the pick stands.
func (s *DraftService) MakePick(ctx context.Context, req draft.PickRequest) (PickResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.MakePick",
		attribute.String("draft.session_id", req.SessionID),
		attribute.Int("draft.pick_number", req.PickNumber),
	)
	defer span.End()

	req.SessionID = strings.TrimSpace(req.SessionID)
	req.TeamID = strings.TrimSpace(req.TeamID)
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	if req.SessionID == "" || req.TeamID == "" || req.PlayerID == "" {
		return PickResult{}, fmt.Errorf("%w: session id, team id and player id are required", ErrInvalidInput)
	}
	if req.PickNumber < 1 {
		return PickResult{}, fmt.Errorf("%w: pick number must be at least 1", ErrInvalidInput)
	}

	session, exists, err := s.draftRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		return PickResult{}, fmt.Errorf("get draft session: %w", err)
	}
	if !exists {
		return PickResult{}, fmt.Errorf("%w: draft session=%s", ErrNotFound, req.SessionID)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, req.PlayerID)
	if err != nil {
		return PickResult{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return PickResult{}, fmt.Errorf("%w: player=%s", ErrNotFound, req.PlayerID)
	}
	if p.SeasonID != session.SeasonID || p.DivisionID != session.DivisionID || p.Status != player.StatusActive {
		return PickResult{}, fmt.Errorf("%w: %w: player=%s", ErrInvalidInput, draft.ErrPlayerIneligible, p.ID)
	}

	_, pick, err := session.Apply(req, s.clock.Now())
	if err != nil {
		return PickResult{}, mapDraftError(err)
	}
	if err := s.draftRepo.AppendPick(ctx, session.ID, pick); err != nil {
		return PickResult{}, mapDraftError(err)
	}

	p.TeamID = pick.TeamID
	if err := s.playerRepo.Update(ctx, p); err != nil {
		s.logger.WarnContext(ctx, "assign drafted player to team failed",
			"session_id", session.ID,
			"player_id", p.ID,
			"team_id", pick.TeamID,
			"error", err,
		)
	}

	result := PickResult{Pick: pick, Player: p}
	if p.FamilyID != "" {
		volunteers, err := s.volunteerRepo.List(ctx, volunteer.Filter{SeasonID: session.SeasonID, FamilyID: p.FamilyID})
		if err != nil {
			s.logger.WarnContext(ctx, "load family volunteers after pick failed",
				"player_id", p.ID,
				"family_id", p.FamilyID,
				"error", err,
			)
		} else {
			result.RoleCandidates = draft.RoleCandidates(volunteers)
		}
	}

	s.logger.InfoContext(ctx, "draft pick recorded",
		"session_id", session.ID,
		"pick_number", pick.PickNumber,
		"team_id", pick.TeamID,
		"player_id", pick.PlayerID,
		"role_candidates", len(result.RoleCandidates),
	)
	return result, nil
}

func (s *DraftService) requireDivision(ctx context.Context, seasonID, divisionID string) (division.Division, error) {
	seasonID, err := requireSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return division.Division{}, err
	}
	divisionID = strings.TrimSpace(divisionID)
	if divisionID == "" {
		return division.Division{}, fmt.Errorf("%w: division id is required", ErrInvalidInput)
	}

	div, exists, err := s.divisionRepo.GetByID(ctx, divisionID)
	if err != nil {
		return division.Division{}, fmt.Errorf("get division: %w", err)
	}
	if !exists || div.SeasonID != seasonID {
		return division.Division{}, fmt.Errorf("%w: division=%s season=%s", ErrNotFound, divisionID, seasonID)
	}
	return div, nil
}

// managerFor picks the team's volunteer holding the Manager role, else the
// team itself.
func (s *DraftService) managerFor(ctx context.Context, seasonID string, t team.Team) (draft.Manager, error) {
	volunteers, err := s.volunteerRepo.List(ctx, volunteer.Filter{
		SeasonID: seasonID,
		TeamID:   t.ID,
		Role:     volunteer.RoleManager,
	})
	if err != nil {
		return draft.Manager{}, fmt.Errorf("list team managers: %w", err)
	}
	if len(volunteers) > 0 {
		v := volunteers[0]
		return draft.Manager{ID: v.ID, Name: v.Name, Role: volunteer.RoleManager, TeamID: t.ID}, nil
	}
	return draft.Manager{ID: t.ID, Name: t.Name, Role: draft.SynthesizedManagerRole, TeamID: t.ID}, nil
}

func orderTeams(teams []team.Team, order []string) ([]team.Team, error) {
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, draft.ErrNoManagers)
	}
	if len(order) == 0 {
		return teams, nil
	}

	byID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	out := make([]team.Team, 0, len(order))
	seen := make(map[string]struct{}, len(order))
	for _, teamID := range order {
		teamID = strings.TrimSpace(teamID)
		t, ok := byID[teamID]
		if !ok {
			return nil, fmt.Errorf("%w: team %s is not in this division", ErrInvalidInput, teamID)
		}
		if _, dup := seen[teamID]; dup {
			return nil, fmt.Errorf("%w: team %s appears twice in the draft order", ErrInvalidInput, teamID)
		}
		seen[teamID] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

func mapDraftError(err error) error {
	switch {
	case errors.Is(err, draft.ErrOutOfOrder),
		errors.Is(err, draft.ErrNotOnTheClock),
		errors.Is(err, draft.ErrAlreadyPicked):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, draft.ErrSynthesized),
		errors.Is(err, draft.ErrNoManagers),
		errors.Is(err, draft.ErrPlayerIneligible):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return fmt.Errorf("record pick: %w", err)
	}
}

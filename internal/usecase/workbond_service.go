package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/youth-league/internal/domain/family"
	"github.com/riskibarqy/youth-league/internal/domain/player"
	"github.com/riskibarqy/youth-league/internal/domain/season"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
	"github.com/riskibarqy/youth-league/internal/domain/workbond"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
)

type WorkbondConfig struct {
	RequiredHours float64
}

type CreateShiftInput struct {
	SeasonID string
	Name     string
	Location string
	StartsAt time.Time
	EndsAt   time.Time
	Hours    float64
	Capacity int
}

type SignupInput struct {
	ShiftID       string
	FamilyID      string
	VolunteerName string
}

// ShiftOverview is a shift with how many of its slots are taken.
type ShiftOverview struct {
	Shift     workbond.Shift
	Signups   []workbond.Signup
	Remaining int
}

type WorkbondService struct {
	seasonRepo    season.Repository
	familyRepo    family.Repository
	playerRepo    player.Repository
	volunteerRepo volunteer.Repository
	workbondRepo  workbond.Repository
	ids           IDGenerators
	cfg           WorkbondConfig
	clock         clockwork.Clock
	logger        *logging.Logger
}

func NewWorkbondService(
	seasonRepo season.Repository,
	familyRepo family.Repository,
	playerRepo player.Repository,
	volunteerRepo volunteer.Repository,
	workbondRepo workbond.Repository,
	ids IDGenerators,
	cfg WorkbondConfig,
	clock clockwork.Clock,
	logger *logging.Logger,
) *WorkbondService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.RequiredHours <= 0 {
		cfg.RequiredHours = workbond.DefaultRequiredHours
	}

	return &WorkbondService{
		seasonRepo:    seasonRepo,
		familyRepo:    familyRepo,
		playerRepo:    playerRepo,
		volunteerRepo: volunteerRepo,
		workbondRepo:  workbondRepo,
		ids:           ids.withDefaults(),
		cfg:           cfg,
		clock:         clock,
		logger:        logger,
	}
}

func (s *WorkbondService) ListShifts(ctx context.Context, seasonID string) ([]ShiftOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkbondService.ListShifts")
	defer span.End()

	seasonID, err := requireSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}

	shifts, err := s.workbondRepo.ListShifts(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	signups, err := s.workbondRepo.ListSignupsBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list signups: %w", err)
	}

	byShift := make(map[string][]workbond.Signup, len(shifts))
	for _, su := range signups {
		byShift[su.ShiftID] = append(byShift[su.ShiftID], su)
	}

	out := make([]ShiftOverview, 0, len(shifts))
	for _, shift := range shifts {
		taken := byShift[shift.ID]
		out = append(out, ShiftOverview{
			Shift:     shift,
			Signups:   taken,
			Remaining: max(shift.Capacity-len(taken), 0),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Shift.StartsAt.Before(out[j].Shift.StartsAt)
	})
	return out, nil
}

func (s *WorkbondService) CreateShift(ctx context.Context, input CreateShiftInput) (workbond.Shift, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkbondService.CreateShift")
	defer span.End()

	seasonID, err := requireSeason(ctx, s.seasonRepo, input.SeasonID)
	if err != nil {
		return workbond.Shift{}, err
	}

	shiftID, err := s.ids.Shift.NewID()
	if err != nil {
		return workbond.Shift{}, fmt.Errorf("generate shift id: %w", err)
	}
	shift := workbond.Shift{
		ID:       shiftID,
		SeasonID: seasonID,
		Name:     strings.TrimSpace(input.Name),
		Location: strings.TrimSpace(input.Location),
		StartsAt: input.StartsAt.UTC(),
		EndsAt:   input.EndsAt.UTC(),
		Hours:    input.Hours,
		Capacity: input.Capacity,
	}
	if err := shift.Validate(); err != nil {
		return workbond.Shift{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.workbondRepo.CreateShift(ctx, shift); err != nil {
		return workbond.Shift{}, fmt.Errorf("create shift: %w", err)
	}

	s.logger.InfoContext(ctx, "workbond shift created", "shift_id", shift.ID, "season_id", seasonID)
	return shift, nil
}

func (s *WorkbondService) SignUp(ctx context.Context, input SignupInput) (workbond.Signup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkbondService.SignUp")
	defer span.End()

	input.ShiftID = strings.TrimSpace(input.ShiftID)
	input.FamilyID = strings.TrimSpace(input.FamilyID)
	if input.ShiftID == "" || input.FamilyID == "" {
		return workbond.Signup{}, fmt.Errorf("%w: shift id and family id are required", ErrInvalidInput)
	}

	shift, exists, err := s.workbondRepo.GetShift(ctx, input.ShiftID)
	if err != nil {
		return workbond.Signup{}, fmt.Errorf("get shift: %w", err)
	}
	if !exists {
		return workbond.Signup{}, fmt.Errorf("%w: shift=%s", ErrNotFound, input.ShiftID)
	}
	f, exists, err := s.familyRepo.GetByID(ctx, input.FamilyID)
	if err != nil {
		return workbond.Signup{}, fmt.Errorf("get family: %w", err)
	}
	if !exists {
		return workbond.Signup{}, fmt.Errorf("%w: family=%s", ErrNotFound, input.FamilyID)
	}

	signupID, err := s.ids.Signup.NewID()
	if err != nil {
		return workbond.Signup{}, fmt.Errorf("generate signup id: %w", err)
	}
	name := strings.TrimSpace(input.VolunteerName)
	if name == "" {
		name = f.DisplayName()
	}
	signup := workbond.Signup{
		ID:            signupID,
		ShiftID:       shift.ID,
		FamilyID:      f.ID,
		VolunteerName: name,
		Status:        workbond.SignupScheduled,
		CreatedAt:     s.clock.Now().UTC(),
	}

	if err := s.workbondRepo.CreateSignup(ctx, signup, shift.Capacity); err != nil {
		if errors.Is(err, workbond.ErrShiftFull) || errors.Is(err, workbond.ErrAlreadySignedUp) {
			return workbond.Signup{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return workbond.Signup{}, fmt.Errorf("create signup: %w", err)
	}

	s.logger.InfoContext(ctx, "workbond signup created", "signup_id", signup.ID, "shift_id", shift.ID, "family_id", f.ID)
	return signup, nil
}

func (s *WorkbondService) MarkSignup(ctx context.Context, signupID, status string) (workbond.Signup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkbondService.MarkSignup")
	defer span.End()

	signupID = strings.TrimSpace(signupID)
	if signupID == "" {
		return workbond.Signup{}, fmt.Errorf("%w: signup id is required", ErrInvalidInput)
	}
	next, ok := workbond.ParseSignupStatus(status)
	if !ok {
		return workbond.Signup{}, fmt.Errorf("%w: unknown signup status %q", ErrInvalidInput, status)
	}

	signup, exists, err := s.workbondRepo.GetSignup(ctx, signupID)
	if err != nil {
		return workbond.Signup{}, fmt.Errorf("get signup: %w", err)
	}
	if !exists {
		return workbond.Signup{}, fmt.Errorf("%w: signup=%s", ErrNotFound, signupID)
	}
	if signup.Status == next {
		return signup, nil
	}

	if err := s.workbondRepo.UpdateSignupStatus(ctx, signupID, next); err != nil {
		return workbond.Signup{}, fmt.Errorf("update signup status: %w", err)
	}
	signup.Status = next
	return signup, nil
}

// Summary reports every family with a player or a signup in the season.
func (s *WorkbondService) Summary(ctx context.Context, seasonID string) ([]workbond.FamilySummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkbondService.Summary")
	defer span.End()

	seasonID, err := requireSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.List(ctx, player.Filter{SeasonID: seasonID})
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	volunteers, err := s.volunteerRepo.List(ctx, volunteer.Filter{SeasonID: seasonID})
	if err != nil {
		return nil, fmt.Errorf("list volunteers: %w", err)
	}
	shifts, err := s.workbondRepo.ListShifts(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	signups, err := s.workbondRepo.ListSignupsBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list signups: %w", err)
	}

	familyIDs := make(map[string]struct{})
	for _, p := range players {
		familyIDs[p.FamilyID] = struct{}{}
	}
	for _, su := range signups {
		familyIDs[su.FamilyID] = struct{}{}
	}
	ids := make([]string, 0, len(familyIDs))
	for id := range familyIDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	families, err := s.familyRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get families: %w", err)
	}

	teamRoles := make(map[string]string)
	for _, v := range volunteers {
		if v.FamilyID == "" || !v.HoldsTeamRole() {
			continue
		}
		if _, ok := teamRoles[v.FamilyID]; !ok {
			teamRoles[v.FamilyID] = v.Role
		}
	}
	shiftByID := make(map[string]workbond.Shift, len(shifts))
	for _, shift := range shifts {
		shiftByID[shift.ID] = shift
	}

	out := make([]workbond.FamilySummary, 0, len(families))
	for _, f := range families {
		out = append(out, workbond.Summarize(f.ID, f.DisplayName(), s.cfg.RequiredHours, workbond.ExemptionInput{
			Flagged:      f.WorkbondExempt,
			FlagNote:     f.WorkbondNote,
			TeamRoleHeld: teamRoles[f.ID],
		}, shiftByID, signups))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].FamilyName) < strings.ToLower(out[j].FamilyName)
	})
	return out, nil
}

package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/youth-league/internal/domain/division"
	"github.com/riskibarqy/youth-league/internal/domain/draft"
	"github.com/riskibarqy/youth-league/internal/domain/family"
	"github.com/riskibarqy/youth-league/internal/domain/player"
	"github.com/riskibarqy/youth-league/internal/domain/season"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
	"github.com/riskibarqy/youth-league/internal/domain/workbond"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

type PlayerTotals struct {
	Total    int
	ByStatus map[player.Status]int
	New      int
	Travel   int
	Paid     int
	Unpaid   int
}

type DivisionCount struct {
	DivisionID string
	Name       string
	Players    int
	Unassigned int
}

type VolunteerTotals struct {
	Total  int
	ByRole map[string]int
}

type WorkbondTotals struct {
	Families   int
	Complete   int
	Incomplete int
	Exempt     int
}

type DraftProgress struct {
	DivisionID string
	Name       string
	Started    bool
	Picks      int
	Round      int
	Available  int
}

// DashboardWarning names a section that could not be loaded.
type DashboardWarning struct {
	Section string
	Message string
}

type Dashboard struct {
	SeasonID   string
	Players    PlayerTotals
	Divisions  []DivisionCount
	Volunteers VolunteerTotals
	Families   int
	Workbond   WorkbondTotals
	Drafts     []DraftProgress
	Warnings   []DashboardWarning
}

type DashboardService struct {
	seasonRepo    season.Repository
	divisionRepo  division.Repository
	playerRepo    player.Repository
	familyRepo    family.Repository
	volunteerRepo volunteer.Repository
	draftRepo     draft.Repository
	workbondSvc   workbondSummaryProvider
	logger        *logging.Logger
}

func NewDashboardService(
	seasonRepo season.Repository,
	divisionRepo division.Repository,
	playerRepo player.Repository,
	familyRepo family.Repository,
	volunteerRepo volunteer.Repository,
	draftRepo draft.Repository,
	workbondSvc workbondSummaryProvider,
	logger *logging.Logger,
) *DashboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DashboardService{
		seasonRepo:    seasonRepo,
		divisionRepo:  divisionRepo,
		playerRepo:    playerRepo,
		familyRepo:    familyRepo,
		volunteerRepo: volunteerRepo,
		draftRepo:     draftRepo,
		workbondSvc:   workbondSvc,
		logger:        logger,
	}
}

// Get loads every dashboard section concurrently. A section that fails is
// left at its zero value and reported in Warnings; the others still load.
func (s *DashboardService) Get(ctx context.Context, seasonID string) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	seasonID, err := requireSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return Dashboard{}, err
	}

	out := Dashboard{SeasonID: seasonID}
	var (
		mu sync.Mutex
		wg conc.WaitGroup
	)
	section := func(name string, load func() error) {
		wg.Go(func() {
			if err := load(); err != nil {
				s.logger.WarnContext(ctx, "dashboard section failed", "section", name, "season_id", seasonID, "error", err)
				mu.Lock()
				out.Warnings = append(out.Warnings, DashboardWarning{Section: name, Message: err.Error()})
				mu.Unlock()
			}
		})
	}

	section("players", func() error {
		players, err := s.playerRepo.List(ctx, player.Filter{SeasonID: seasonID})
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		divisions, err := s.divisionRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("list divisions: %w", err)
		}
		totals, perDivision := summarizePlayers(players, divisions)
		mu.Lock()
		out.Players = totals
		out.Divisions = perDivision
		mu.Unlock()
		return nil
	})

	section("volunteers", func() error {
		volunteers, err := s.volunteerRepo.List(ctx, volunteer.Filter{SeasonID: seasonID})
		if err != nil {
			return fmt.Errorf("list volunteers: %w", err)
		}
		totals := VolunteerTotals{Total: len(volunteers), ByRole: make(map[string]int)}
		for _, v := range volunteers {
			role := v.Role
			if role == "" {
				role = "Unassigned"
			}
			totals.ByRole[role]++
		}
		mu.Lock()
		out.Volunteers = totals
		mu.Unlock()
		return nil
	})

	section("families", func() error {
		families, err := seasonFamilies(ctx, s.playerRepo, s.volunteerRepo, s.familyRepo, seasonID)
		if err != nil {
			return err
		}
		mu.Lock()
		out.Families = len(families)
		mu.Unlock()
		return nil
	})

	section("workbond", func() error {
		if s.workbondSvc == nil {
			return fmt.Errorf("%w: workbond summary is not configured", ErrDependencyUnavailable)
		}
		summaries, err := s.workbondSvc.Summary(ctx, seasonID)
		if err != nil {
			return err
		}
		totals := WorkbondTotals{Families: len(summaries)}
		for _, sum := range summaries {
			switch sum.Status {
			case workbond.SummaryComplete:
				totals.Complete++
			case workbond.SummaryExempt:
				totals.Exempt++
			default:
				totals.Incomplete++
			}
		}
		mu.Lock()
		out.Workbond = totals
		mu.Unlock()
		return nil
	})

	section("drafts", func() error {
		progress, err := s.draftProgress(ctx, seasonID)
		if err != nil {
			return err
		}
		mu.Lock()
		out.Drafts = progress
		mu.Unlock()
		return nil
	})

	wg.Wait()

	sort.Slice(out.Warnings, func(i, j int) bool {
		return out.Warnings[i].Section < out.Warnings[j].Section
	})
	return out, nil
}

func (s *DashboardService) draftProgress(ctx context.Context, seasonID string) ([]DraftProgress, error) {
	divisions, err := s.divisionRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}
	sessions, err := s.draftRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list draft sessions: %w", err)
	}
	players, err := s.playerRepo.List(ctx, player.Filter{SeasonID: seasonID, Status: player.StatusActive})
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	byDivision := make(map[string]draft.Session, len(sessions))
	for _, session := range sessions {
		byDivision[session.DivisionID] = session
	}
	rosters := make(map[string][]player.Player, len(divisions))
	for _, p := range players {
		rosters[p.DivisionID] = append(rosters[p.DivisionID], p)
	}

	out := make([]DraftProgress, 0, len(divisions))
	for _, d := range divisions {
		row := DraftProgress{DivisionID: d.ID, Name: d.Name, Available: len(rosters[d.ID])}
		if session, ok := byDivision[d.ID]; ok {
			row.Started = true
			row.Picks = session.CurrentPick()
			row.Round = session.Round()
			row.Available = len(draft.Available(rosters[d.ID], session))
		}
		out = append(out, row)
	}
	return out, nil
}

func summarizePlayers(players []player.Player, divisions []division.Division) (PlayerTotals, []DivisionCount) {
	totals := PlayerTotals{Total: len(players), ByStatus: make(map[player.Status]int)}
	counts := make(map[string]*DivisionCount, len(divisions))
	perDivision := make([]DivisionCount, len(divisions))
	for i, d := range divisions {
		perDivision[i] = DivisionCount{DivisionID: d.ID, Name: d.Name}
		counts[d.ID] = &perDivision[i]
	}

	for _, p := range players {
		totals.ByStatus[p.Status]++
		if p.IsNewPlayer {
			totals.New++
		}
		if p.IsTravelPlayer {
			totals.Travel++
		}
		if p.PaymentReceived {
			totals.Paid++
		} else {
			totals.Unpaid++
		}
		if c, ok := counts[p.DivisionID]; ok {
			c.Players++
			if p.TeamID == "" {
				c.Unassigned++
			}
		}
	}
	return totals, perDivision
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/youth-league/internal/domain/division"
	"github.com/riskibarqy/youth-league/internal/domain/family"
	"github.com/riskibarqy/youth-league/internal/domain/importrow"
	"github.com/riskibarqy/youth-league/internal/domain/player"
	"github.com/riskibarqy/youth-league/internal/domain/season"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
	"github.com/riskibarqy/youth-league/internal/domain/workbond"
	"github.com/riskibarqy/youth-league/internal/platform/csvcodec"
	"github.com/riskibarqy/youth-league/internal/platform/id"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultImportWorkers = 4

type ImportConfig struct {
	Workers         int
	PreviewRowLimit int
}

// ImportResult reports what happened to every data line of an upload.
type ImportResult struct {
	Kind            string
	Imported        int
	Rejected        int
	FamiliesCreated int
	Errors          []importrow.Rejection
}

func (r ImportResult) Success() bool {
	return r.Rejected == 0
}

type ImportService struct {
	seasonRepo    season.Repository
	divisionRepo  division.Repository
	familyRepo    family.Repository
	playerRepo    player.Repository
	volunteerRepo volunteer.Repository
	workbondRepo  workbond.Repository
	ids           IDGenerators
	cfg           ImportConfig
	logger        *logging.Logger
}

func NewImportService(
	seasonRepo season.Repository,
	divisionRepo division.Repository,
	familyRepo family.Repository,
	playerRepo player.Repository,
	volunteerRepo volunteer.Repository,
	workbondRepo workbond.Repository,
	ids IDGenerators,
	cfg ImportConfig,
	logger *logging.Logger,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultImportWorkers
	}
	if cfg.PreviewRowLimit <= 0 {
		cfg.PreviewRowLimit = csvcodec.DefaultPreviewRows
	}

	return &ImportService{
		seasonRepo:    seasonRepo,
		divisionRepo:  divisionRepo,
		familyRepo:    familyRepo,
		playerRepo:    playerRepo,
		volunteerRepo: volunteerRepo,
		workbondRepo:  workbondRepo,
		ids:           ids.withDefaults(),
		cfg:           cfg,
		logger:        logger,
	}
}

// Preview shows the first rows of an upload before it is committed. It uses
// the bare-comma splitter, so quoted commas are not honoured here.
func (s *ImportService) Preview(ctx context.Context, filename, content string) (csvcodec.Table, error) {
	_, span := startUsecaseSpan(ctx, "usecase.ImportService.Preview")
	defer span.End()

	if err := requireCSVName(filename); err != nil {
		return csvcodec.Table{}, err
	}

	table, err := csvcodec.Preview(content, s.cfg.PreviewRowLimit)
	if err != nil {
		if errors.Is(err, csvcodec.ErrEmpty) {
			return csvcodec.Table{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
		}
		return csvcodec.Table{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return table, nil
}

func (s *ImportService) Import(ctx context.Context, kind, seasonID, filename, content string) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.Import",
		attribute.String("import.kind", kind),
		attribute.String("season.id", seasonID),
	)
	defer span.End()

	kind = strings.ToLower(strings.TrimSpace(kind))
	if _, err := csvcodec.Template(kind); err != nil {
		return ImportResult{}, fmt.Errorf("%w: unknown import kind %q", ErrInvalidInput, kind)
	}
	if err := requireCSVName(filename); err != nil {
		return ImportResult{}, err
	}
	seasonID, err := requireSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return ImportResult{}, err
	}

	table, err := csvcodec.DecodeString(content)
	if err != nil {
		if errors.Is(err, csvcodec.ErrEmpty) {
			return ImportResult{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
		}
		return ImportResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	table = table.Normalize()

	var result ImportResult
	switch kind {
	case csvcodec.KindPlayers:
		result, err = s.importPlayers(ctx, seasonID, table)
	case csvcodec.KindVolunteers:
		result, err = s.importVolunteers(ctx, seasonID, table)
	case csvcodec.KindFamilies:
		result, err = s.importFamilies(ctx, table)
	case csvcodec.KindWorkbond:
		result, err = s.importShifts(ctx, seasonID, table)
	}
	if err != nil {
		recordSpanError(span, err)
		return ImportResult{}, err
	}

	result.Kind = kind
	result.Rejected = len(result.Errors)
	sort.SliceStable(result.Errors, func(i, j int) bool {
		return result.Errors[i].Line < result.Errors[j].Line
	})

	s.logger.InfoContext(ctx, "csv import finished",
		"kind", kind,
		"season_id", seasonID,
		"imported", result.Imported,
		"rejected", result.Rejected,
		"families_created", result.FamiliesCreated,
	)
	return result, nil
}

// importJob is one accepted row waiting to be persisted.
type importJob struct {
	line int
	save func(ctx context.Context) error
}

func (s *ImportService) importPlayers(ctx context.Context, seasonID string, table csvcodec.Table) (ImportResult, error) {
	if err := requireColumns[importrow.PlayerRow](table); err != nil {
		return ImportResult{}, err
	}
	records, rejected := importrow.Bind[importrow.PlayerRow](table)

	divisions, err := s.divisionRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return ImportResult{}, fmt.Errorf("list divisions: %w", err)
	}

	result := ImportResult{Errors: rejected}
	families := newFamilyResolver(s.familyRepo, s.ids.Family)
	jobs := make([]importJob, 0, len(records))
	for _, rec := range records {
		row := rec.Row
		div, ok := division.Resolve(divisions, row.Division)
		if !ok {
			result.Errors = append(result.Errors, importrow.Rejection{Line: rec.Line, Reason: fmt.Sprintf("division %q not found in season", row.Division)})
			continue
		}

		familyID, created, err := families.resolve(ctx, row.FamilyID, family.Family{
			Primary:   family.Contact{Name: row.PrimaryGuardianName, Email: row.PrimaryGuardianEmail, Phone: row.PrimaryGuardianPhone},
			Secondary: family.Contact{Name: row.SecondaryGuardianName, Email: row.SecondaryGuardianEmail, Phone: row.SecondaryGuardianPhone},
		})
		if err != nil {
			result.Errors = append(result.Errors, importrow.Rejection{Line: rec.Line, Reason: err.Error()})
			continue
		}
		if created {
			result.FamiliesCreated++
		}

		playerID, err := s.ids.Player.NewID()
		if err != nil {
			return ImportResult{}, fmt.Errorf("generate player id: %w", err)
		}
		status := player.StatusActive
		if row.Status != "" {
			status, _ = player.ParseStatus(row.Status)
		}

		p := player.Player{
			ID:              playerID,
			SeasonID:        seasonID,
			DivisionID:      div.ID,
			FamilyID:        familyID,
			FirstName:       row.FirstName,
			LastName:        row.LastName,
			BirthDate:       row.BirthDate,
			Gender:          row.Gender,
			Status:          status,
			IsNewPlayer:     flagValue(row.IsNewPlayer),
			IsTravelPlayer:  flagValue(row.IsTravelPlayer),
			PaymentReceived: flagValue(row.PaymentReceived),
			MedicalNotes:    row.MedicalNotes,
		}
		jobs = append(jobs, importJob{line: rec.Line, save: func(ctx context.Context) error {
			return s.playerRepo.Create(ctx, p)
		}})
	}

	return s.persist(ctx, result, jobs)
}

func (s *ImportService) importVolunteers(ctx context.Context, seasonID string, table csvcodec.Table) (ImportResult, error) {
	if err := requireColumns[importrow.VolunteerRow](table); err != nil {
		return ImportResult{}, err
	}
	records, rejected := importrow.Bind[importrow.VolunteerRow](table)

	divisions, err := s.divisionRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return ImportResult{}, fmt.Errorf("list divisions: %w", err)
	}

	result := ImportResult{Errors: rejected}
	families := newFamilyResolver(s.familyRepo, s.ids.Family)
	jobs := make([]importJob, 0, len(records))
	for _, rec := range records {
		row := rec.Row

		divisionID := ""
		if strings.TrimSpace(row.Division) != "" {
			div, ok := division.Resolve(divisions, row.Division)
			if !ok {
				result.Errors = append(result.Errors, importrow.Rejection{Line: rec.Line, Reason: fmt.Sprintf("division %q not found in season", row.Division)})
				continue
			}
			divisionID = div.ID
		}

		familyID, created, err := families.resolve(ctx, row.FamilyID, family.Family{
			Primary: family.Contact{Name: row.Name, Email: row.FamilyEmail(), Phone: row.Phone},
		})
		if err != nil {
			result.Errors = append(result.Errors, importrow.Rejection{Line: rec.Line, Reason: err.Error()})
			continue
		}
		if created {
			result.FamiliesCreated++
		}

		volunteerID, err := s.ids.Volunteer.NewID()
		if err != nil {
			return ImportResult{}, fmt.Errorf("generate volunteer id: %w", err)
		}
		role := ""
		if row.Role != "" {
			role, _ = volunteer.CanonicalRole(row.Role)
		}

		v := volunteer.Volunteer{
			ID:                    volunteerID,
			SeasonID:              seasonID,
			FamilyID:              familyID,
			DivisionID:            divisionID,
			Name:                  row.Name,
			Email:                 row.Email,
			Phone:                 row.Phone,
			Role:                  role,
			InterestedRoles:       row.InterestedRoles,
			TrainingCompleted:     flagValue(row.TrainingCompleted),
			BackgroundCheckStatus: row.BackgroundCheckStatus,
		}
		jobs = append(jobs, importJob{line: rec.Line, save: func(ctx context.Context) error {
			return s.volunteerRepo.Create(ctx, v)
		}})
	}

	return s.persist(ctx, result, jobs)
}

func (s *ImportService) importFamilies(ctx context.Context, table csvcodec.Table) (ImportResult, error) {
	if err := requireColumns[importrow.FamilyRow](table); err != nil {
		return ImportResult{}, err
	}
	records, rejected := importrow.Bind[importrow.FamilyRow](table)

	result := ImportResult{Errors: rejected}
	seen := make(map[string]int, len(records))
	jobs := make([]importJob, 0, len(records))
	for _, rec := range records {
		row := rec.Row
		email := family.NormalizeEmail(row.PrimaryGuardianEmail)
		if first, dup := seen[email]; dup {
			result.Errors = append(result.Errors, importrow.Rejection{Line: rec.Line, Reason: fmt.Sprintf("primary_guardian_email duplicates line %d", first)})
			continue
		}
		seen[email] = rec.Line

		_, exists, err := s.familyRepo.FindByEmail(ctx, email)
		if err != nil {
			return ImportResult{}, fmt.Errorf("find family by email: %w", err)
		}
		if exists {
			result.Errors = append(result.Errors, importrow.Rejection{Line: rec.Line, Reason: "a family with this guardian email already exists"})
			continue
		}

		familyID, err := s.ids.Family.NewID()
		if err != nil {
			return ImportResult{}, fmt.Errorf("generate family id: %w", err)
		}
		f := family.Family{
			ID:             familyID,
			Primary:        family.Contact{Name: row.PrimaryGuardianName, Email: row.PrimaryGuardianEmail, Phone: row.PrimaryGuardianPhone},
			Secondary:      family.Contact{Name: row.SecondaryGuardianName, Email: row.SecondaryGuardianEmail, Phone: row.SecondaryGuardianPhone},
			Address:        row.Address,
			WorkbondExempt: flagValue(row.WorkbondExempt),
			WorkbondNote:   row.WorkbondNote,
		}
		jobs = append(jobs, importJob{line: rec.Line, save: func(ctx context.Context) error {
			return s.familyRepo.Create(ctx, f)
		}})
	}

	return s.persist(ctx, result, jobs)
}

func (s *ImportService) importShifts(ctx context.Context, seasonID string, table csvcodec.Table) (ImportResult, error) {
	if err := requireColumns[importrow.ShiftRow](table); err != nil {
		return ImportResult{}, err
	}
	records, rejected := importrow.Bind[importrow.ShiftRow](table)

	result := ImportResult{Errors: rejected}
	jobs := make([]importJob, 0, len(records))
	for _, rec := range records {
		row := rec.Row
		shiftID, err := s.ids.Shift.NewID()
		if err != nil {
			return ImportResult{}, fmt.Errorf("generate shift id: %w", err)
		}
		start, end := row.Times()
		shift := workbond.Shift{
			ID:       shiftID,
			SeasonID: seasonID,
			Name:     row.ShiftName,
			Location: row.Location,
			StartsAt: start,
			EndsAt:   end,
			Hours:    row.Hours,
			Capacity: row.Capacity,
		}
		jobs = append(jobs, importJob{line: rec.Line, save: func(ctx context.Context) error {
			return s.workbondRepo.CreateShift(ctx, shift)
		}})
	}

	return s.persist(ctx, result, jobs)
}

// persist saves accepted rows on a bounded worker pool. A failed save turns
// into a rejection for that line; sibling rows keep going.
func (s *ImportService) persist(ctx context.Context, result ImportResult, jobs []importJob) (ImportResult, error) {
	if len(jobs) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(min(s.cfg.Workers, len(jobs)))
	if err != nil {
		return ImportResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	failures := make(chan importrow.Rejection, len(jobs))
	var imported atomic.Int32

	var workers sync.WaitGroup
	for _, job := range jobs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if err := job.save(ctx); err != nil {
				s.logger.WarnContext(ctx, "import row not saved", "line", job.line, "error", err)
				failures <- importrow.Rejection{Line: job.line, Reason: "could not save row: " + err.Error()}
				return
			}
			imported.Add(1)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return ImportResult{}, fmt.Errorf("submit import row to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(failures)

	for rej := range failures {
		result.Errors = append(result.Errors, rej)
	}
	result.Imported = int(imported.Load())
	return result, nil
}

// familyResolver finds or creates families by guardian email. It runs
// before rows reach the worker pool so siblings in one file share a family.
type familyResolver struct {
	repo    family.Repository
	ids     id.Generator
	byEmail map[string]string
}

func newFamilyResolver(repo family.Repository, ids id.Generator) *familyResolver {
	return &familyResolver{repo: repo, ids: ids, byEmail: make(map[string]string)}
}

func (r *familyResolver) resolve(ctx context.Context, familyID string, candidate family.Family) (string, bool, error) {
	if familyID = strings.TrimSpace(familyID); familyID != "" {
		_, exists, err := r.repo.GetByID(ctx, familyID)
		if err != nil {
			return "", false, fmt.Errorf("look up family %s: %v", familyID, err)
		}
		if !exists {
			return "", false, fmt.Errorf("family_id %q not found", familyID)
		}
		return familyID, false, nil
	}

	email := family.NormalizeEmail(candidate.Primary.Email)
	if email == "" {
		return "", false, errors.New("a guardian email is required to link the family")
	}
	if known, ok := r.byEmail[email]; ok {
		return known, false, nil
	}

	existing, exists, err := r.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", false, fmt.Errorf("look up family by email: %v", err)
	}
	if exists {
		r.byEmail[email] = existing.ID
		return existing.ID, false, nil
	}

	newID, err := r.ids.NewID()
	if err != nil {
		return "", false, fmt.Errorf("generate family id: %v", err)
	}
	candidate.ID = newID
	if err := r.repo.Create(ctx, candidate); err != nil {
		return "", false, fmt.Errorf("create family: %v", err)
	}
	r.byEmail[email] = newID
	return newID, true, nil
}

func requireCSVName(filename string) error {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return fmt.Errorf("%w: a file is required", ErrInvalidInput)
	}
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return fmt.Errorf("%w: only .csv files can be imported", ErrInvalidInput)
	}
	return nil
}

func requireColumns[T any](table csvcodec.Table) error {
	missing := importrow.MissingColumns[T](table.Headers)
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: missing required columns: %s", ErrInvalidInput, strings.Join(missing, ", "))
}

func flagValue(v *bool) bool {
	return v != nil && *v
}

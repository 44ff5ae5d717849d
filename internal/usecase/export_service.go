package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/youth-league/internal/domain/division"
	"github.com/riskibarqy/youth-league/internal/domain/family"
	"github.com/riskibarqy/youth-league/internal/domain/player"
	"github.com/riskibarqy/youth-league/internal/domain/season"
	"github.com/riskibarqy/youth-league/internal/domain/team"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
	"github.com/riskibarqy/youth-league/internal/domain/workbond"
	"github.com/riskibarqy/youth-league/internal/platform/csvcodec"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	ReportPlayers    = "players"
	ReportVolunteers = "volunteers"
	ReportFamilies   = "families"
	ReportWorkbond   = "workbond"

	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportFile is a named download.
type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
}

type workbondSummaryProvider interface {
	Summary(ctx context.Context, seasonID string) ([]workbond.FamilySummary, error)
}

type ExportService struct {
	seasonRepo    season.Repository
	divisionRepo  division.Repository
	teamRepo      team.Repository
	playerRepo    player.Repository
	familyRepo    family.Repository
	volunteerRepo volunteer.Repository
	workbondSvc   workbondSummaryProvider
	clock         clockwork.Clock
	logger        *logging.Logger
}

func NewExportService(
	seasonRepo season.Repository,
	divisionRepo division.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	familyRepo family.Repository,
	volunteerRepo volunteer.Repository,
	workbondSvc workbondSummaryProvider,
	clock clockwork.Clock,
	logger *logging.Logger,
) *ExportService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &ExportService{
		seasonRepo:    seasonRepo,
		divisionRepo:  divisionRepo,
		teamRepo:      teamRepo,
		playerRepo:    playerRepo,
		familyRepo:    familyRepo,
		volunteerRepo: volunteerRepo,
		workbondSvc:   workbondSvc,
		clock:         clock,
		logger:        logger,
	}
}

func (s *ExportService) Template(ctx context.Context, kind string) (ExportFile, error) {
	_, span := startUsecaseSpan(ctx, "usecase.ExportService.Template")
	defer span.End()

	spec, err := csvcodec.Template(kind)
	if err != nil {
		if errors.Is(err, csvcodec.ErrUnknownTemplate) {
			return ExportFile{}, fmt.Errorf("%w: unknown template %q", ErrInvalidInput, kind)
		}
		return ExportFile{}, err
	}

	return ExportFile{
		Name:        spec.FileName(),
		ContentType: ContentTypeCSV,
		Body:        []byte(spec.CSV()),
	}, nil
}

func (s *ExportService) Report(ctx context.Context, entity, seasonID, format string) (ExportFile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.Report",
		attribute.String("report.entity", entity),
		attribute.String("report.format", format),
	)
	defer span.End()

	entity = strings.ToLower(strings.TrimSpace(entity))
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		return ExportFile{}, fmt.Errorf("%w: unknown report format %q", ErrInvalidInput, format)
	}

	seasonID, err := requireSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return ExportFile{}, err
	}

	var (
		headers []string
		rows    []csvcodec.Row
	)
	switch entity {
	case ReportPlayers:
		headers, rows, err = s.playerReport(ctx, seasonID)
	case ReportVolunteers:
		headers, rows, err = s.volunteerReport(ctx, seasonID)
	case ReportFamilies:
		headers, rows, err = s.familyReport(ctx, seasonID)
	case ReportWorkbond:
		headers, rows, err = s.workbondReport(ctx, seasonID)
	default:
		return ExportFile{}, fmt.Errorf("%w: unknown report %q", ErrInvalidInput, entity)
	}
	if err != nil {
		recordSpanError(span, err)
		return ExportFile{}, err
	}

	var buf bytes.Buffer
	file := ExportFile{Name: csvcodec.ReportFileName(entity, s.clock.Now(), format)}
	switch format {
	case FormatXLSX:
		file.ContentType = ContentTypeXLSX
		err = csvcodec.EncodeXLSX(&buf, entity, headers, rows)
	default:
		file.ContentType = ContentTypeCSV
		err = csvcodec.Encode(&buf, headers, rows)
	}
	if err != nil {
		return ExportFile{}, fmt.Errorf("encode %s report: %w", entity, err)
	}
	file.Body = buf.Bytes()

	s.logger.InfoContext(ctx, "report exported", "entity", entity, "season_id", seasonID, "format", format, "rows", len(rows))
	return file, nil
}

func (s *ExportService) playerReport(ctx context.Context, seasonID string) ([]string, []csvcodec.Row, error) {
	players, err := s.playerRepo.List(ctx, player.Filter{SeasonID: seasonID, Sort: player.SortByLastName})
	if err != nil {
		return nil, nil, fmt.Errorf("list players: %w", err)
	}
	divisions, teams, err := s.names(ctx, seasonID)
	if err != nil {
		return nil, nil, err
	}
	families, err := s.familiesByID(ctx, playerFamilyIDs(players))
	if err != nil {
		return nil, nil, err
	}

	headers := []string{
		"id", "first_name", "last_name", "birth_date", "gender", "division", "team", "status",
		"is_new_player", "is_travel_player", "payment_received",
		"primary_guardian_name", "primary_guardian_email", "primary_guardian_phone",
	}
	rows := make([]csvcodec.Row, 0, len(players))
	for _, p := range players {
		f := families[p.FamilyID]
		rows = append(rows, csvcodec.RowFromValues(headers, []string{
			p.ID, p.FirstName, p.LastName, p.BirthDate, p.Gender,
			divisions[p.DivisionID], teams[p.TeamID], string(p.Status),
			strconv.FormatBool(p.IsNewPlayer), strconv.FormatBool(p.IsTravelPlayer), strconv.FormatBool(p.PaymentReceived),
			f.Primary.Name, f.Primary.Email, f.Primary.Phone,
		}))
	}
	return headers, rows, nil
}

func (s *ExportService) volunteerReport(ctx context.Context, seasonID string) ([]string, []csvcodec.Row, error) {
	volunteers, err := s.volunteerRepo.List(ctx, volunteer.Filter{SeasonID: seasonID})
	if err != nil {
		return nil, nil, fmt.Errorf("list volunteers: %w", err)
	}
	divisions, teams, err := s.names(ctx, seasonID)
	if err != nil {
		return nil, nil, err
	}

	headers := []string{
		"id", "name", "email", "phone", "role", "interested_roles", "division", "team",
		"training_completed", "background_check_status",
	}
	rows := make([]csvcodec.Row, 0, len(volunteers))
	for _, v := range volunteers {
		rows = append(rows, csvcodec.RowFromValues(headers, []string{
			v.ID, v.Name, v.Email, v.Phone, v.Role, v.InterestedRoles,
			divisions[v.DivisionID], teams[v.TeamID],
			strconv.FormatBool(v.TrainingCompleted), v.BackgroundCheckStatus,
		}))
	}
	return headers, rows, nil
}

func (s *ExportService) familyReport(ctx context.Context, seasonID string) ([]string, []csvcodec.Row, error) {
	players, err := s.playerRepo.List(ctx, player.Filter{SeasonID: seasonID})
	if err != nil {
		return nil, nil, fmt.Errorf("list players: %w", err)
	}
	ids := playerFamilyIDs(players)
	families, err := s.familyRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("get families: %w", err)
	}
	children := make(map[string]int, len(families))
	for _, p := range players {
		children[p.FamilyID]++
	}

	headers := []string{
		"id", "primary_guardian_name", "primary_guardian_email", "primary_guardian_phone",
		"secondary_guardian_name", "secondary_guardian_email", "secondary_guardian_phone",
		"address", "players", "workbond_exempt", "workbond_note",
	}
	rows := make([]csvcodec.Row, 0, len(families))
	for _, f := range families {
		rows = append(rows, csvcodec.RowFromValues(headers, []string{
			f.ID, f.Primary.Name, f.Primary.Email, f.Primary.Phone,
			f.Secondary.Name, f.Secondary.Email, f.Secondary.Phone,
			f.Address, strconv.Itoa(children[f.ID]), strconv.FormatBool(f.WorkbondExempt), f.WorkbondNote,
		}))
	}
	return headers, rows, nil
}

func (s *ExportService) workbondReport(ctx context.Context, seasonID string) ([]string, []csvcodec.Row, error) {
	if s.workbondSvc == nil {
		return nil, nil, fmt.Errorf("%w: workbond reporting is not configured", ErrDependencyUnavailable)
	}
	summaries, err := s.workbondSvc.Summary(ctx, seasonID)
	if err != nil {
		return nil, nil, err
	}

	headers := []string{
		"family_id", "family_name", "required_hours", "completed_hours", "scheduled_hours", "status", "exempt_reason",
	}
	rows := make([]csvcodec.Row, 0, len(summaries))
	for _, sum := range summaries {
		rows = append(rows, csvcodec.RowFromValues(headers, []string{
			sum.FamilyID, sum.FamilyName,
			formatHours(sum.RequiredHours), formatHours(sum.CompletedHours), formatHours(sum.ScheduledHours),
			string(sum.Status), sum.ExemptReason,
		}))
	}
	return headers, rows, nil
}

func (s *ExportService) names(ctx context.Context, seasonID string) (map[string]string, map[string]string, error) {
	divisions, err := s.divisionRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, nil, fmt.Errorf("list divisions: %w", err)
	}
	teams, err := s.teamRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, nil, fmt.Errorf("list teams: %w", err)
	}

	divisionNames := make(map[string]string, len(divisions))
	for _, d := range divisions {
		divisionNames[d.ID] = d.Name
	}
	teamNames := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}
	return divisionNames, teamNames, nil
}

func (s *ExportService) familiesByID(ctx context.Context, ids []string) (map[string]family.Family, error) {
	families, err := s.familyRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get families: %w", err)
	}
	out := make(map[string]family.Family, len(families))
	for _, f := range families {
		out[f.ID] = f
	}
	return out, nil
}

func playerFamilyIDs(players []player.Player) []string {
	seen := make(map[string]struct{}, len(players))
	out := make([]string, 0, len(players))
	for _, p := range players {
		if p.FamilyID == "" {
			continue
		}
		if _, ok := seen[p.FamilyID]; ok {
			continue
		}
		seen[p.FamilyID] = struct{}{}
		out = append(out, p.FamilyID)
	}
	return out
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package usecase

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/youth-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/youth-league/internal/platform/id"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
)

var testNow = time.Date(2026, time.March, 14, 18, 0, 0, 0, time.UTC)

type testServices struct {
	repos     memory.Repositories
	clock     *clockwork.FakeClock
	roster    *RosterService
	volunteer *VolunteerService
	imports   *ImportService
	exports   *ExportService
	draft     *DraftService
	workbond  *WorkbondService
	dashboard *DashboardService
	mailing   *MailingService
}

func sequenceIDs() IDGenerators {
	return IDGenerators{
		Player:    id.NewSequenceGenerator("ply-new-"),
		Family:    id.NewSequenceGenerator("fam-new-"),
		Volunteer: id.NewSequenceGenerator("vol-new-"),
		Shift:     id.NewSequenceGenerator("shf-new-"),
		Signup:    id.NewSequenceGenerator("sgn-new-"),
		Session:   id.NewSequenceGenerator("dft-"),
	}
}

func newTestServices(t *testing.T, draftCfg DraftConfig) testServices {
	t.Helper()

	repos := memory.NewSeededRepositories()
	clock := clockwork.NewFakeClockAt(testNow)
	logger := logging.NewNop()
	ids := sequenceIDs()

	workbondSvc := NewWorkbondService(repos.Seasons, repos.Families, repos.Players, repos.Volunteers, repos.Workbond, ids, WorkbondConfig{}, clock, logger)

	return testServices{
		repos:     repos,
		clock:     clock,
		roster:    NewRosterService(repos.Seasons, repos.Divisions, repos.Teams, repos.Players, repos.Families, repos.Volunteers, logger),
		volunteer: NewVolunteerService(repos.Seasons, repos.Teams, repos.Volunteers, logger),
		imports:   NewImportService(repos.Seasons, repos.Divisions, repos.Families, repos.Players, repos.Volunteers, repos.Workbond, ids, ImportConfig{Workers: 3}, logger),
		exports:   NewExportService(repos.Seasons, repos.Divisions, repos.Teams, repos.Players, repos.Families, repos.Volunteers, workbondSvc, clock, logger),
		draft:     NewDraftService(repos.Seasons, repos.Divisions, repos.Teams, repos.Players, repos.Volunteers, repos.Drafts, ids, draftCfg, clock, logger),
		workbond:  workbondSvc,
		dashboard: NewDashboardService(repos.Seasons, repos.Divisions, repos.Players, repos.Families, repos.Volunteers, repos.Drafts, workbondSvc, logger),
		mailing:   NewMailingService(repos.Seasons, repos.Players, repos.Families, repos.Volunteers, logger),
	}
}

func ptr[T any](v T) *T {
	return &v
}

package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/youth-league/internal/domain/workbond"
	"github.com/riskibarqy/youth-league/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/require"
)

func TestWorkbondService_Summary(t *testing.T) {
	svc := newTestServices(t, DraftConfig{}).workbond

	got, err := svc.Summary(t.Context(), memory.SeasonIDSpring2026)
	require.NoError(t, err)
	require.Len(t, got, 4)

	byFamily := make(map[string]workbond.FamilySummary, len(got))
	for _, s := range got {
		byFamily[s.FamilyID] = s
	}
	require.Equal(t, "Ana Rivera", got[0].FamilyName)

	require.Equal(t, workbond.SummaryComplete, byFamily["fam-okafor"].Status)
	require.Equal(t, 5.0, byFamily["fam-okafor"].CompletedHours)

	require.Equal(t, workbond.SummaryIncomplete, byFamily["fam-rivera"].Status)
	require.Equal(t, 3.0, byFamily["fam-rivera"].ScheduledHours)
	require.Zero(t, byFamily["fam-rivera"].CompletedHours)

	require.Equal(t, workbond.SummaryExempt, byFamily["fam-chen"].Status)
	require.Equal(t, "holds team role: Manager", byFamily["fam-chen"].ExemptReason)

	require.Equal(t, workbond.SummaryExempt, byFamily["fam-novak"].Status)
	require.Equal(t, "board approved hardship exemption", byFamily["fam-novak"].ExemptReason)
	require.Equal(t, workbond.DefaultRequiredHours, byFamily["fam-novak"].RequiredHours)
}

func TestWorkbondService_SignUpAndMark(t *testing.T) {
	ts := newTestServices(t, DraftConfig{})
	svc := ts.workbond
	ctx := t.Context()

	_, err := svc.SignUp(ctx, SignupInput{ShiftID: "shf-concessions", FamilyID: "fam-chen"})
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, workbond.ErrShiftFull)

	_, err = svc.SignUp(ctx, SignupInput{ShiftID: "shf-field-prep", FamilyID: "fam-okafor"})
	require.ErrorIs(t, err, workbond.ErrAlreadySignedUp)

	_, err = svc.SignUp(ctx, SignupInput{ShiftID: "shf-field-prep", FamilyID: "fam-ghost"})
	require.ErrorIs(t, err, ErrNotFound)

	signup, err := svc.SignUp(ctx, SignupInput{ShiftID: "shf-field-prep", FamilyID: "fam-rivera"})
	require.NoError(t, err)
	require.Equal(t, "Ana Rivera", signup.VolunteerName)
	require.Equal(t, workbond.SignupScheduled, signup.Status)
	require.Equal(t, testNow, signup.CreatedAt)

	marked, err := svc.MarkSignup(ctx, signup.ID, "completed")
	require.NoError(t, err)
	require.Equal(t, workbond.SignupCompleted, marked.Status)

	_, err = svc.MarkSignup(ctx, signup.ID, "finished")
	require.ErrorIs(t, err, ErrInvalidInput)

	summaries, err := svc.Summary(ctx, memory.SeasonIDSpring2026)
	require.NoError(t, err)
	for _, s := range summaries {
		if s.FamilyID == "fam-rivera" {
			require.Equal(t, 2.0, s.CompletedHours)
			require.Equal(t, workbond.SummaryIncomplete, s.Status)
		}
	}
}

func TestWorkbondService_CreateAndListShifts(t *testing.T) {
	svc := newTestServices(t, DraftConfig{}).workbond
	ctx := t.Context()

	start := time.Date(2026, time.May, 2, 8, 0, 0, 0, time.UTC)
	_, err := svc.CreateShift(ctx, CreateShiftInput{
		SeasonID: memory.SeasonIDSpring2026,
		Name:     "Opening day setup",
		StartsAt: start,
		EndsAt:   start.Add(-time.Hour),
		Hours:    1,
		Capacity: 2,
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	shift, err := svc.CreateShift(ctx, CreateShiftInput{
		SeasonID: memory.SeasonIDSpring2026,
		Name:     " Opening day setup ",
		StartsAt: start,
		EndsAt:   start.Add(2 * time.Hour),
		Hours:    2,
		Capacity: 6,
	})
	require.NoError(t, err)
	require.Equal(t, "Opening day setup", shift.Name)

	overview, err := svc.ListShifts(ctx, memory.SeasonIDSpring2026)
	require.NoError(t, err)
	require.Len(t, overview, 3)
	require.Equal(t, "shf-field-prep", overview[0].Shift.ID)
	require.Equal(t, 3, overview[0].Remaining)
	require.Zero(t, overview[1].Remaining)
	require.Equal(t, shift.ID, overview[2].Shift.ID)
	require.Equal(t, 6, overview[2].Remaining)
}

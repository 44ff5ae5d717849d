package workbond

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	shifts := map[string]Shift{
		"sh-1": {ID: "sh-1", Hours: 3},
		"sh-2": {ID: "sh-2", Hours: 2},
		"sh-3": {ID: "sh-3", Hours: 1.5},
	}
	signups := []Signup{
		{ShiftID: "sh-1", FamilyID: "fam-1", Status: SignupCompleted},
		{ShiftID: "sh-2", FamilyID: "fam-1", Status: SignupScheduled},
		{ShiftID: "sh-3", FamilyID: "fam-1", Status: SignupNoShow},
		{ShiftID: "sh-2", FamilyID: "fam-2", Status: SignupCompleted},
		{ShiftID: "sh-1", FamilyID: "fam-2", Status: SignupCompleted},
		{ShiftID: "missing", FamilyID: "fam-2", Status: SignupCompleted},
	}

	got := Summarize("fam-1", "Rivera", 4, ExemptionInput{}, shifts, signups)
	require.Equal(t, 3.0, got.CompletedHours)
	require.Equal(t, 2.0, got.ScheduledHours)
	require.Equal(t, SummaryIncomplete, got.Status)

	got = Summarize("fam-2", "Chen", 4, ExemptionInput{}, shifts, signups)
	require.Equal(t, 5.0, got.CompletedHours)
	require.Equal(t, SummaryComplete, got.Status)

	got = Summarize("fam-3", "Okafor", 0, ExemptionInput{TeamRoleHeld: "Manager"}, shifts, signups)
	require.Equal(t, DefaultRequiredHours, got.RequiredHours)
	require.True(t, got.Exempt)
	require.Equal(t, SummaryExempt, got.Status)
	require.Equal(t, "holds team role: Manager", got.ExemptReason)

	got = Summarize("fam-1", "Rivera", 4, ExemptionInput{Flagged: true, FlagNote: "board member family"}, shifts, signups)
	require.Equal(t, SummaryExempt, got.Status)
	require.Equal(t, "board member family", got.ExemptReason)
}

func TestShiftValidate(t *testing.T) {
	start := time.Date(2026, 4, 18, 9, 0, 0, 0, time.UTC)
	s := Shift{ID: "sh-1", SeasonID: "s1", Name: "Concessions", StartsAt: start, EndsAt: start.Add(3 * time.Hour), Hours: 3, Capacity: 2}
	require.NoError(t, s.Validate())

	s.EndsAt = start
	require.Error(t, s.Validate())
}

func TestParseSignupStatus(t *testing.T) {
	s, ok := ParseSignupStatus("No_Show")
	require.True(t, ok)
	require.Equal(t, SignupNoShow, s)

	_, ok = ParseSignupStatus("cancelled")
	require.False(t, ok)
}

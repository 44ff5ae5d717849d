package draft

import (
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/youth-league/internal/domain/player"
	"github.com/riskibarqy/youth-league/internal/domain/team"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
	"github.com/stretchr/testify/require"
)

func threeManagers() []Manager {
	return []Manager{
		{ID: "m-a", Name: "A", Role: volunteer.RoleManager, TeamID: "team-a"},
		{ID: "m-b", Name: "B", Role: volunteer.RoleManager, TeamID: "team-b"},
		{ID: "m-c", Name: "C", Role: volunteer.RoleManager, TeamID: "team-c"},
	}
}

func roster(n int) []player.Player {
	out := make([]player.Player, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, player.Player{ID: fmt.Sprintf("ply-%02d", i), DivisionID: "div-10u", Status: player.StatusActive})
	}
	return out
}

func TestManagerAt_Rotation(t *testing.T) {
	managers := threeManagers()

	m, ok := ManagerAt(managers, 4)
	require.True(t, ok)
	require.Equal(t, "B", m.Name)

	for k := 0; k < 30; k++ {
		m, ok := ManagerAt(managers, k)
		require.True(t, ok)
		require.Equal(t, managers[k%3], m, "pick index %d", k)
	}
}

func TestManagerAt_EmptyAndNegative(t *testing.T) {
	_, ok := ManagerAt(nil, 0)
	require.False(t, ok)
	_, ok = ManagerAt([]Manager{}, 7)
	require.False(t, ok)
	_, ok = ManagerAt(threeManagers(), -1)
	require.False(t, ok)

	s := Session{ID: "ds-1"}
	require.NotPanics(t, func() {
		_, ok = s.OnTheClock()
	})
	require.False(t, ok)
	require.Zero(t, s.Round())
	require.ErrorIs(t, s.ValidatePick(PickRequest{PickNumber: 1}), ErrNoManagers)
}

func TestApply_FullDraftKeepsInvariants(t *testing.T) {
	s := Session{ID: "ds-1", SeasonID: "s1", DivisionID: "div-10u", Managers: threeManagers()}
	players := roster(9)
	at := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	for i := 0; i < len(players); i++ {
		available := Available(players, s)
		require.Len(t, available, len(players)-i)
		picked := s.PickedPlayerIDs()
		for _, p := range available {
			_, dup := picked[p.ID]
			require.False(t, dup, "available player %s was already picked", p.ID)
		}

		current, ok := s.OnTheClock()
		require.True(t, ok)

		next, pick, err := s.Apply(PickRequest{
			SessionID:  s.ID,
			TeamID:     current.TeamID,
			PlayerID:   available[0].ID,
			PickNumber: s.CurrentPick() + 1,
		}, at.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.Equal(t, i+1, pick.PickNumber)
		require.Len(t, s.Picks, i, "apply must not mutate the receiver")

		s = next
		require.Equal(t, len(s.Picks), s.CurrentPick())
	}

	require.Empty(t, Available(players, s))
	require.Equal(t, 4, s.Round())
	require.Equal(t, "team-a", s.Picks[3].TeamID)
	require.Equal(t, "team-c", s.Picks[8].TeamID)
}

func TestValidatePick_Errors(t *testing.T) {
	s := Session{
		ID:       "ds-1",
		Managers: threeManagers(),
		Picks:    []Pick{{PickNumber: 1, TeamID: "team-a", PlayerID: "ply-01"}},
	}

	require.ErrorIs(t, s.ValidatePick(PickRequest{TeamID: "team-b", PlayerID: "ply-02", PickNumber: 1}), ErrOutOfOrder)
	require.ErrorIs(t, s.ValidatePick(PickRequest{TeamID: "team-b", PlayerID: "ply-02", PickNumber: 3}), ErrOutOfOrder)
	require.ErrorIs(t, s.ValidatePick(PickRequest{TeamID: "team-a", PlayerID: "ply-02", PickNumber: 2}), ErrNotOnTheClock)
	require.ErrorIs(t, s.ValidatePick(PickRequest{TeamID: "team-b", PlayerID: "ply-01", PickNumber: 2}), ErrAlreadyPicked)
	require.NoError(t, s.ValidatePick(PickRequest{TeamID: "team-b", PlayerID: "ply-02", PickNumber: 2}))
}

func TestSynthesizeSession(t *testing.T) {
	teams := []team.Team{
		{ID: "team-b", Name: "Bears"},
		{ID: "team-a", Name: "Astros"},
	}
	s := SynthesizeSession("s1", "div-10u", teams)

	require.True(t, s.Synthesized)
	require.Empty(t, s.ID)
	require.Equal(t, []Manager{
		{ID: "team-b", Name: "Bears", Role: SynthesizedManagerRole, TeamID: "team-b"},
		{ID: "team-a", Name: "Astros", Role: SynthesizedManagerRole, TeamID: "team-a"},
	}, s.Managers)

	m, ok := s.OnTheClock()
	require.True(t, ok)
	require.Equal(t, "team-b", m.TeamID)

	_, _, err := s.Apply(PickRequest{TeamID: "team-b", PlayerID: "ply-01", PickNumber: 1}, time.Now())
	require.ErrorIs(t, err, ErrSynthesized)

	empty := SynthesizeSession("s1", "div-10u", nil)
	require.True(t, empty.Synthesized)
	_, ok = empty.OnTheClock()
	require.False(t, ok)
}

func TestSessionValidate(t *testing.T) {
	s := Session{ID: "ds-1", SeasonID: "s1", DivisionID: "d1", Managers: threeManagers()}
	require.NoError(t, s.Validate())

	s.Managers = append(s.Managers, Manager{Name: "dup", TeamID: "team-a"})
	require.Error(t, s.Validate())

	s.Managers = nil
	require.Error(t, s.Validate())
}

func TestRoleCandidates(t *testing.T) {
	vols := []volunteer.Volunteer{
		{ID: "v1", Name: "Umpire Only", InterestedRoles: "Umpire"},
		{ID: "v2", Name: "Ana Rivera", InterestedRoles: "Team Parent; manager"},
		{ID: "v3", Name: "Luis Rivera", InterestedRoles: "assistant coach"},
	}

	got := RoleCandidates(vols)
	require.Equal(t, []RoleCandidate{
		{VolunteerID: "v2", VolunteerName: "Ana Rivera", Roles: []string{volunteer.RoleTeamParent, volunteer.RoleManager}},
		{VolunteerID: "v3", VolunteerName: "Luis Rivera", Roles: []string{volunteer.RoleAssistantCoach}},
	}, got)

	require.Empty(t, RoleCandidates(vols[:1]))
}

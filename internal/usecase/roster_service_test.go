package usecase

import (
	"testing"

	"github.com/riskibarqy/youth-league/internal/domain/family"
	"github.com/riskibarqy/youth-league/internal/domain/player"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
	"github.com/riskibarqy/youth-league/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/require"
)

func playerNames(players []player.Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.FullName())
	}
	return out
}

func TestRosterService_ListPlayers(t *testing.T) {
	svc := newTestServices(t, DraftConfig{}).roster
	ctx := t.Context()

	got, err := svc.ListPlayers(ctx, player.Filter{SeasonID: memory.SeasonIDSpring2026, DivisionID: memory.DivisionID10U})
	require.NoError(t, err)
	require.Equal(t, []string{"Leo Chen", "Sofia Chen", "Jonas Novak", "Ava Okafor", "Mateo Rivera", "Maya Rivera"}, playerNames(got))

	got, err = svc.ListPlayers(ctx, player.Filter{SeasonID: memory.SeasonIDSpring2026, DivisionID: memory.DivisionID10U, Sort: player.SortByBirthDate})
	require.NoError(t, err)
	require.Equal(t, "Sofia Chen", got[0].FullName())
	require.Equal(t, "Mateo Rivera", got[len(got)-1].FullName())

	got, err = svc.ListPlayers(ctx, player.Filter{SeasonID: memory.SeasonIDSpring2026, Search: "CHEN"})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestRosterService_ListPlayersRejectsBadInput(t *testing.T) {
	svc := newTestServices(t, DraftConfig{}).roster
	ctx := t.Context()

	_, err := svc.ListPlayers(ctx, player.Filter{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListPlayers(ctx, player.Filter{SeasonID: "winter-1999"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ListPlayers(ctx, player.Filter{SeasonID: memory.SeasonIDSpring2026, Sort: "shoe_size"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListPlayers(ctx, player.Filter{SeasonID: memory.SeasonIDSpring2026, Status: "retired"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRosterService_UpdatePlayer(t *testing.T) {
	svc := newTestServices(t, DraftConfig{}).roster
	ctx := t.Context()

	updated, err := svc.UpdatePlayer(ctx, "ply-maya", PlayerUpdate{
		Status:          ptr("Withdrawn"),
		PaymentReceived: ptr(true),
	})
	require.NoError(t, err)
	require.Equal(t, player.StatusWithdrawn, updated.Status)
	require.True(t, updated.PaymentReceived)

	_, err = svc.UpdatePlayer(ctx, "ply-maya", PlayerUpdate{TeamID: ptr("8u-dodgers")})
	require.ErrorIs(t, err, ErrInvalidInput)

	updated, err = svc.UpdatePlayer(ctx, "ply-maya", PlayerUpdate{TeamID: ptr("10u-cubs")})
	require.NoError(t, err)
	require.Equal(t, "10u-cubs", updated.TeamID)

	_, err = svc.UpdatePlayer(ctx, "ply-maya", PlayerUpdate{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdatePlayer(ctx, "ply-ghost", PlayerUpdate{PaymentReceived: ptr(true)})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRosterService_GetFamily(t *testing.T) {
	svc := newTestServices(t, DraftConfig{}).roster

	detail, err := svc.GetFamily(t.Context(), "fam-rivera", memory.SeasonIDSpring2026)
	require.NoError(t, err)
	require.Equal(t, "Ana Rivera", detail.Family.DisplayName())
	require.Equal(t, []string{"Maya Rivera", "Mateo Rivera"}, playerNames(detail.Players))
	require.Len(t, detail.Volunteers, 1)

	_, err = svc.GetFamily(t.Context(), "fam-missing", "")
	require.ErrorIs(t, err, ErrNotFound)
}

// addFallFamily registers a family whose only player is in the fall season.
func addFallFamily(t *testing.T, ts testServices) {
	t.Helper()
	ctx := t.Context()

	require.NoError(t, ts.repos.Families.Create(ctx, family.Family{
		ID:      "fam-diaz",
		Primary: family.Contact{Name: "Rosa Diaz", Email: "rosa.diaz@example.com"},
	}))
	require.NoError(t, ts.repos.Players.Create(ctx, player.Player{
		ID:         "ply-iris",
		SeasonID:   memory.SeasonIDFall2025,
		DivisionID: "fall-10u",
		FamilyID:   "fam-diaz",
		FirstName:  "Iris",
		LastName:   "Diaz",
		BirthDate:  "2016-05-01",
		Status:     player.StatusActive,
	}))
}

func familyIDs(families []family.Family) []string {
	out := make([]string, 0, len(families))
	for _, f := range families {
		out = append(out, f.ID)
	}
	return out
}

func TestRosterService_ListFamiliesBySeason(t *testing.T) {
	ts := newTestServices(t, DraftConfig{})
	addFallFamily(t, ts)
	ctx := t.Context()

	got, err := ts.roster.ListFamilies(ctx, memory.SeasonIDSpring2026)
	require.NoError(t, err)
	require.Equal(t, []string{"fam-chen", "fam-novak", "fam-okafor", "fam-rivera"}, familyIDs(got))

	got, err = ts.roster.ListFamilies(ctx, memory.SeasonIDFall2025)
	require.NoError(t, err)
	require.Equal(t, []string{"fam-diaz"}, familyIDs(got))

	got, err = ts.roster.ListFamilies(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 5)

	_, err = ts.roster.ListFamilies(ctx, "winter-1999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVolunteerService_AssignRole(t *testing.T) {
	svc := newTestServices(t, DraftConfig{}).volunteer
	ctx := t.Context()

	v, err := svc.AssignRole(ctx, AssignRoleInput{
		VolunteerID: "vol-ana",
		Role:        "team parent",
		SeasonID:    memory.SeasonIDSpring2026,
		TeamID:      "10u-astros",
	})
	require.NoError(t, err)
	require.Equal(t, volunteer.RoleTeamParent, v.Role)
	require.Equal(t, "10u-astros", v.TeamID)
	require.Equal(t, memory.DivisionID10U, v.DivisionID)

	_, err = svc.AssignRole(ctx, AssignRoleInput{VolunteerID: "vol-ana", Role: "Mascot"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AssignRole(ctx, AssignRoleInput{VolunteerID: "vol-ngozi", Role: volunteer.RoleManager})
	require.ErrorIs(t, err, ErrInvalidInput)

	v, err = svc.AssignRole(ctx, AssignRoleInput{VolunteerID: "vol-ngozi", Role: "umpire", DivisionID: memory.DivisionID8U})
	require.NoError(t, err)
	require.Equal(t, volunteer.RoleUmpire, v.Role)
	require.Empty(t, v.TeamID)

	_, err = svc.AssignRole(ctx, AssignRoleInput{VolunteerID: "vol-ana", Role: "Coach", SeasonID: memory.SeasonIDFall2025})
	require.ErrorIs(t, err, ErrInvalidInput)

	managers, err := svc.List(ctx, volunteer.Filter{SeasonID: memory.SeasonIDSpring2026, Role: "manager"})
	require.NoError(t, err)
	require.Len(t, managers, 1)
	require.Equal(t, "vol-wei", managers[0].ID)
}

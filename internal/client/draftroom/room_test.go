package draftroom

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/youth-league/internal/client/leagueapi"
	"github.com/riskibarqy/youth-league/internal/domain/draft"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

const (
	seasonID   = "spring-2026"
	divisionID = "spring-2026-10u"
)

type fakeBackend struct {
	boards    []leagueapi.DraftBoard
	boardErrs []error
	boardHits int

	pickResult leagueapi.PickResult
	pickErr    error
	picks      []leagueapi.PickRequest

	assignErr   error
	assignments map[string]leagueapi.RoleAssignment
}

func (f *fakeBackend) GetDraftBoard(_ context.Context, season, division string) (leagueapi.DraftBoard, error) {
	i := f.boardHits
	f.boardHits++
	if i < len(f.boardErrs) && f.boardErrs[i] != nil {
		return leagueapi.DraftBoard{}, f.boardErrs[i]
	}
	if len(f.boards) == 0 {
		return leagueapi.DraftBoard{}, errors.New("no board")
	}
	return f.boards[min(i, len(f.boards)-1)], nil
}

func (f *fakeBackend) MakePick(_ context.Context, in leagueapi.PickRequest) (leagueapi.PickResult, error) {
	f.picks = append(f.picks, in)
	if f.pickErr != nil {
		return leagueapi.PickResult{}, f.pickErr
	}
	return f.pickResult, nil
}

func (f *fakeBackend) AssignRole(_ context.Context, volunteerID string, in leagueapi.RoleAssignment) (leagueapi.Volunteer, error) {
	if f.assignErr != nil {
		return leagueapi.Volunteer{}, f.assignErr
	}
	if f.assignments == nil {
		f.assignments = map[string]leagueapi.RoleAssignment{}
	}
	f.assignments[volunteerID] = in
	return leagueapi.Volunteer{ID: volunteerID, Role: in.Role, TeamID: in.TeamID}, nil
}

var managers = []leagueapi.Manager{
	{ID: "10u-astros", Name: "Astros", TeamID: "10u-astros"},
	{ID: "vol-wei", Name: "Wei Chen", Role: "Manager", TeamID: "10u-bears"},
	{ID: "10u-cubs", Name: "Cubs", TeamID: "10u-cubs"},
}

func boardAt(currentPick int, available ...string) leagueapi.DraftBoard {
	board := leagueapi.DraftBoard{
		Session: leagueapi.DraftSession{
			ID:          "dft-1",
			SeasonID:    seasonID,
			DivisionID:  divisionID,
			Managers:    managers,
			CurrentPick: currentPick,
		},
	}
	for _, id := range available {
		board.Available = append(board.Available, leagueapi.Player{ID: id})
	}
	return board
}

func newRoom(backend Backend, opts ...Option) *Room {
	return New(backend, seasonID, divisionID, append([]Option{WithLogger(logging.NewNop())}, opts...)...)
}

func TestRoom_LoadFailureStaysIdle(t *testing.T) {
	backend := &fakeBackend{boardErrs: []error{errors.New("503")}}
	room := newRoom(backend)

	require.Error(t, room.Load(t.Context()))
	require.Equal(t, StateIdle, room.State())

	_, ok := room.OnTheClock()
	require.False(t, ok)
	require.ErrorIs(t, room.Select("ply-maya"), ErrNoSession)

	_, err := room.Pick(t.Context())
	require.ErrorIs(t, err, ErrNoSession)
	require.Empty(t, backend.picks)
}

func TestRoom_OfflineFallbackIsViewOnly(t *testing.T) {
	backend := &fakeBackend{boardErrs: []error{errors.New("connection refused")}}
	room := newRoom(backend, WithOfflineFallback([]leagueapi.Team{
		{ID: "10u-astros", Name: "Astros", DivisionID: divisionID},
		{ID: "8u-dodgers", Name: "Dodgers", DivisionID: "spring-2026-8u"},
		{ID: "10u-bears", Name: "Bears", DivisionID: divisionID},
	}))

	require.NoError(t, room.Load(t.Context()))
	require.Equal(t, StateOnTheClock, room.State())
	require.True(t, room.Synthesized())

	board := room.Board()
	require.Len(t, board.Session.Managers, 2)
	require.Equal(t, draft.SynthesizedManagerRole, board.Session.Managers[0].Role)

	manager, ok := room.OnTheClock()
	require.True(t, ok)
	require.Equal(t, "10u-astros", manager.TeamID)

	_, err := room.Pick(t.Context())
	require.ErrorIs(t, err, draft.ErrSynthesized)
	require.Empty(t, backend.picks)
}

func TestRoom_EmptyManagers(t *testing.T) {
	board := boardAt(0, "ply-maya")
	board.Session.Managers = nil
	room := newRoom(&fakeBackend{boards: []leagueapi.DraftBoard{board}})

	require.NoError(t, room.Load(t.Context()))
	_, ok := room.OnTheClock()
	require.False(t, ok)

	require.NoError(t, room.Select("ply-maya"))
	_, err := room.Pick(t.Context())
	require.ErrorIs(t, err, draft.ErrNoManagers)
}

func TestRoom_PickWithoutCandidates(t *testing.T) {
	backend := &fakeBackend{
		boards: []leagueapi.DraftBoard{
			boardAt(4, "ply-leo", "ply-jonas"),
			boardAt(5, "ply-leo"),
		},
		pickResult: leagueapi.PickResult{Pick: leagueapi.Pick{PickNumber: 5, TeamID: "10u-bears", PlayerID: "ply-jonas"}},
	}
	room := newRoom(backend)
	require.NoError(t, room.Load(t.Context()))

	manager, ok := room.OnTheClock()
	require.True(t, ok)
	require.Equal(t, "10u-bears", manager.TeamID)

	_, err := room.Pick(t.Context())
	require.ErrorIs(t, err, ErrNoSelection)
	require.ErrorIs(t, room.Select("ply-maya"), ErrPlayerUnavailable)
	require.NoError(t, room.Select("ply-jonas"))

	result, err := room.Pick(t.Context())
	require.NoError(t, err)
	require.Equal(t, 5, result.Pick.PickNumber)
	require.Equal(t, []leagueapi.PickRequest{{SessionID: "dft-1", TeamID: "10u-bears", PlayerID: "ply-jonas", PickNumber: 5}}, backend.picks)

	require.Equal(t, StateOnTheClock, room.State())
	require.Empty(t, room.Selected())
	require.Equal(t, 5, room.Board().Session.CurrentPick)

	manager, _ = room.OnTheClock()
	require.Equal(t, "10u-cubs", manager.TeamID)
}

func TestRoom_PickFailureChangesNothing(t *testing.T) {
	backend := &fakeBackend{
		boards:  []leagueapi.DraftBoard{boardAt(0, "ply-maya")},
		pickErr: errors.New("player already picked"),
	}
	room := newRoom(backend)
	require.NoError(t, room.Load(t.Context()))
	require.NoError(t, room.Select("ply-maya"))

	_, err := room.Pick(t.Context())
	require.Error(t, err)
	require.Equal(t, StateOnTheClock, room.State())
	require.Equal(t, "ply-maya", room.Selected())
	require.Equal(t, 1, backend.boardHits)
}

func TestRoom_RoleAssignmentFlow(t *testing.T) {
	backend := &fakeBackend{
		boards: []leagueapi.DraftBoard{boardAt(0, "ply-maya", "ply-leo"), boardAt(1, "ply-leo")},
		pickResult: leagueapi.PickResult{
			Pick:   leagueapi.Pick{PickNumber: 1, TeamID: "10u-astros", PlayerID: "ply-maya"},
			Player: leagueapi.Player{ID: "ply-maya", FirstName: "Maya"},
			RoleCandidates: []leagueapi.RoleCandidate{
				{VolunteerID: "vol-ana", VolunteerName: "Ana Rivera", Roles: []string{"Manager", "Team Parent"}},
				{VolunteerID: "vol-luis", VolunteerName: "Luis Rivera", Roles: []string{"Assistant Coach"}},
			},
		},
	}
	room := newRoom(backend)
	ctx := t.Context()
	require.NoError(t, room.Load(ctx))
	require.NoError(t, room.Select("ply-maya"))

	_, err := room.Pick(ctx)
	require.NoError(t, err)
	require.Equal(t, StateAssigningRole, room.State())

	a, ok := room.Assignment()
	require.True(t, ok)
	require.Equal(t, "vol-ana", a.VolunteerID)
	require.Equal(t, "Manager", a.Role)
	require.Equal(t, "10u-astros", a.TeamID)

	require.ErrorIs(t, room.Select("ply-leo"), ErrRolePending)
	_, err = room.Pick(ctx)
	require.ErrorIs(t, err, ErrRolePending)

	require.ErrorIs(t, room.Choose("vol-luis", "Manager"), ErrUnknownCandidate)
	require.NoError(t, room.Choose("vol-luis", "assistant coach"))

	backend.assignErr = errors.New("timeout")
	_, err = room.ConfirmRole(ctx)
	require.Error(t, err)
	require.Equal(t, StateAssigningRole, room.State())

	backend.assignErr = nil
	v, err := room.ConfirmRole(ctx)
	require.NoError(t, err)
	require.Equal(t, "Assistant Coach", v.Role)
	require.Equal(t, leagueapi.RoleAssignment{
		Role:       "Assistant Coach",
		SeasonID:   seasonID,
		DivisionID: divisionID,
		TeamID:     "10u-astros",
	}, backend.assignments["vol-luis"])

	require.Equal(t, StateOnTheClock, room.State())
	_, ok = room.Assignment()
	require.False(t, ok)
	require.ErrorIs(t, room.SkipRole(), ErrNotAssigningRole)
}

func TestRoom_SkipRoleAfterFailedRefresh(t *testing.T) {
	backend := &fakeBackend{
		boards:    []leagueapi.DraftBoard{boardAt(0, "ply-maya")},
		boardErrs: []error{nil, errors.New("502")},
		pickResult: leagueapi.PickResult{
			Pick:           leagueapi.Pick{PickNumber: 1, TeamID: "10u-astros", PlayerID: "ply-maya"},
			RoleCandidates: []leagueapi.RoleCandidate{{VolunteerID: "vol-ana", Roles: []string{"Team Parent"}}},
		},
	}
	room := newRoom(backend)
	require.NoError(t, room.Load(t.Context()))
	require.NoError(t, room.Select("ply-maya"))

	result, err := room.Pick(t.Context())
	require.Error(t, err)
	require.Equal(t, 1, result.Pick.PickNumber)
	require.Equal(t, StateAssigningRole, room.State())

	require.NoError(t, room.SkipRole())
	require.Equal(t, StateIdle, room.State())
	require.Empty(t, backend.assignments)
}

// Package draftroom drives a live draft from the operator's side: it loads
// the board, tracks the selected player, submits picks in rotation order and
// walks the operator through the volunteer role prompt that follows a pick.
package draftroom

import (
	"context"
	"strings"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/youth-league/internal/client/leagueapi"
	"github.com/riskibarqy/youth-league/internal/domain/draft"
	"github.com/riskibarqy/youth-league/internal/domain/team"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
)

type State int

const (
	StateIdle State = iota
	StateOnTheClock
	StateAssigningRole
)

func (s State) String() string {
	switch s {
	case StateOnTheClock:
		return "on_the_clock"
	case StateAssigningRole:
		return "assigning_role"
	default:
		return "idle"
	}
}

var (
	ErrNoSession         = crerr.New("no draft session loaded")
	ErrNoSelection       = crerr.New("select an available player first")
	ErrPlayerUnavailable = crerr.New("player is not available in this draft")
	ErrRolePending       = crerr.New("finish or skip the volunteer role assignment first")
	ErrNotAssigningRole  = crerr.New("no volunteer role assignment in progress")
	ErrUnknownCandidate  = crerr.New("not an eligible volunteer or role for this pick")
)

// Backend is the slice of the league API the room uses.
type Backend interface {
	GetDraftBoard(ctx context.Context, seasonID, divisionID string) (leagueapi.DraftBoard, error)
	MakePick(ctx context.Context, in leagueapi.PickRequest) (leagueapi.PickResult, error)
	AssignRole(ctx context.Context, volunteerID string, in leagueapi.RoleAssignment) (leagueapi.Volunteer, error)
}

// Assignment is the pending role prompt after a pick whose family has
// eligible volunteers.
type Assignment struct {
	Player      leagueapi.Player
	TeamID      string
	Candidates  []leagueapi.RoleCandidate
	VolunteerID string
	Role        string
}

type Option func(*Room)

// WithOfflineFallback lets Load show a synthesized, view-only board built
// from teams when the service cannot return one.
func WithOfflineFallback(teams []leagueapi.Team) Option {
	return func(r *Room) {
		r.fallbackTeams = append([]leagueapi.Team(nil), teams...)
		r.fallback = true
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(r *Room) {
		if logger != nil {
			r.logger = logger
		}
	}
}

type Room struct {
	backend    Backend
	seasonID   string
	divisionID string
	logger     *logging.Logger

	fallback      bool
	fallbackTeams []leagueapi.Team

	mu         sync.Mutex
	state      State
	board      leagueapi.DraftBoard
	selected   string
	assignment *Assignment
	stale      bool
}

func New(backend Backend, seasonID, divisionID string, opts ...Option) *Room {
	r := &Room{
		backend:    backend,
		seasonID:   strings.TrimSpace(seasonID),
		divisionID: strings.TrimSpace(divisionID),
		logger:     logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Room) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Room) Board() leagueapi.DraftBoard {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.board
}

func (r *Room) Selected() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected
}

// Synthesized reports whether the loaded board is the offline stand-in.
func (r *Room) Synthesized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state != StateIdle && r.board.Session.Synthesized
}

// OnTheClock is the manager whose turn it is, computed from the loaded
// session rather than trusted from the response.
func (r *Room) OnTheClock() (leagueapi.Manager, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateIdle {
		return leagueapi.Manager{}, false
	}
	return onTheClock(r.board.Session)
}

func (r *Room) Assignment() (Assignment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.assignment == nil {
		return Assignment{}, false
	}
	out := *r.assignment
	return out, true
}

// Load fetches the board. Without a fallback a failure leaves the room Idle.
func (r *Room) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.selected = ""
	r.assignment = nil
	err := r.refreshLocked(ctx)
	if err == nil {
		return nil
	}
	if !r.fallback {
		r.state = StateIdle
		r.board = leagueapi.DraftBoard{}
		return err
	}

	r.logger.WarnContext(ctx, "draft board unavailable, showing offline rotation",
		"season_id", r.seasonID,
		"division_id", r.divisionID,
		"error", err,
	)
	r.board = r.synthesizeBoard()
	r.state = StateOnTheClock
	r.stale = false
	return nil
}

func (r *Room) refreshLocked(ctx context.Context) error {
	board, err := r.backend.GetDraftBoard(ctx, r.seasonID, r.divisionID)
	if err != nil {
		return crerr.Wrap(err, "load draft board")
	}

	r.board = board
	r.stale = false
	if r.assignment == nil {
		r.state = StateOnTheClock
	}
	if r.selected != "" && !isAvailable(board, r.selected) {
		r.selected = ""
	}
	return nil
}

func (r *Room) synthesizeBoard() leagueapi.DraftBoard {
	teams := make([]team.Team, 0, len(r.fallbackTeams))
	for _, t := range r.fallbackTeams {
		if t.DivisionID != "" && t.DivisionID != r.divisionID {
			continue
		}
		teams = append(teams, team.Team{ID: t.ID, SeasonID: t.SeasonID, DivisionID: t.DivisionID, Name: t.Name})
	}

	session := draft.SynthesizeSession(r.seasonID, r.divisionID, teams)
	managers := make([]leagueapi.Manager, 0, len(session.Managers))
	for _, m := range session.Managers {
		managers = append(managers, leagueapi.Manager{ID: m.ID, Name: m.Name, Role: m.Role, TeamID: m.TeamID})
	}

	board := leagueapi.DraftBoard{
		Session: leagueapi.DraftSession{
			SeasonID:    session.SeasonID,
			DivisionID:  session.DivisionID,
			Managers:    managers,
			Synthesized: true,
		},
		Round: session.Round(),
	}
	for _, t := range teams {
		board.Teams = append(board.Teams, leagueapi.Team{ID: t.ID, SeasonID: t.SeasonID, DivisionID: t.DivisionID, Name: t.Name})
	}
	if m, ok := onTheClock(board.Session); ok {
		board.OnTheClock = &m
	}
	return board
}

// Select marks an available player as the next pick.
func (r *Room) Select(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case StateIdle:
		return ErrNoSession
	case StateAssigningRole:
		return ErrRolePending
	}
	playerID = strings.TrimSpace(playerID)
	if !isAvailable(r.board, playerID) {
		return crerr.Wrapf(ErrPlayerUnavailable, "player %s", playerID)
	}
	r.selected = playerID
	return nil
}

// Pick submits the selected player for the manager on the clock. On
// failure nothing changes. On success the board is re-fetched and, when the
// player's family has eligible volunteers, the room moves to AssigningRole.
func (r *Room) Pick(ctx context.Context) (leagueapi.PickResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case StateIdle:
		return leagueapi.PickResult{}, ErrNoSession
	case StateAssigningRole:
		return leagueapi.PickResult{}, ErrRolePending
	}
	if r.board.Session.Synthesized {
		return leagueapi.PickResult{}, draft.ErrSynthesized
	}
	if r.selected == "" {
		return leagueapi.PickResult{}, ErrNoSelection
	}
	manager, ok := onTheClock(r.board.Session)
	if !ok {
		return leagueapi.PickResult{}, draft.ErrNoManagers
	}

	result, err := r.backend.MakePick(ctx, leagueapi.PickRequest{
		SessionID:  r.board.Session.ID,
		TeamID:     manager.TeamID,
		PlayerID:   r.selected,
		PickNumber: r.board.Session.CurrentPick + 1,
	})
	if err != nil {
		return leagueapi.PickResult{}, err
	}

	r.selected = ""
	if len(result.RoleCandidates) > 0 {
		first := result.RoleCandidates[0]
		a := &Assignment{
			Player:      result.Player,
			TeamID:      result.Pick.TeamID,
			Candidates:  result.RoleCandidates,
			VolunteerID: first.VolunteerID,
		}
		if len(first.Roles) > 0 {
			a.Role = first.Roles[0]
		}
		r.assignment = a
		r.state = StateAssigningRole
	}

	if err := r.refreshLocked(ctx); err != nil {
		// The pick is recorded; picks stay blocked until a Load succeeds.
		r.stale = true
		if r.assignment == nil {
			r.state = StateIdle
		}
		r.logger.WarnContext(ctx, "refresh draft board after pick failed", "pick_number", result.Pick.PickNumber, "error", err)
		return result, err
	}
	return result, nil
}

// Choose changes the pre-selected volunteer and role of the pending prompt.
func (r *Room) Choose(volunteerID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateAssigningRole || r.assignment == nil {
		return ErrNotAssigningRole
	}
	for _, c := range r.assignment.Candidates {
		if c.VolunteerID != volunteerID {
			continue
		}
		for _, candidateRole := range c.Roles {
			if strings.EqualFold(candidateRole, strings.TrimSpace(role)) {
				r.assignment.VolunteerID = c.VolunteerID
				r.assignment.Role = candidateRole
				return nil
			}
		}
	}
	return crerr.Wrapf(ErrUnknownCandidate, "volunteer %s role %q", volunteerID, role)
}

// ConfirmRole assigns the chosen role on the drafted player's team. A
// failure keeps the prompt open so the operator can retry or skip.
func (r *Room) ConfirmRole(ctx context.Context) (leagueapi.Volunteer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateAssigningRole || r.assignment == nil {
		return leagueapi.Volunteer{}, ErrNotAssigningRole
	}
	a := r.assignment
	volunteer, err := r.backend.AssignRole(ctx, a.VolunteerID, leagueapi.RoleAssignment{
		Role:       a.Role,
		SeasonID:   r.seasonID,
		DivisionID: r.divisionID,
		TeamID:     a.TeamID,
	})
	if err != nil {
		return leagueapi.Volunteer{}, err
	}

	r.finishAssignment()
	return volunteer, nil
}

// SkipRole closes the prompt. The pick itself is unaffected.
func (r *Room) SkipRole() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateAssigningRole || r.assignment == nil {
		return ErrNotAssigningRole
	}
	r.finishAssignment()
	return nil
}

func (r *Room) finishAssignment() {
	r.assignment = nil
	if r.stale {
		r.state = StateIdle
		return
	}
	r.state = StateOnTheClock
}

func onTheClock(s leagueapi.DraftSession) (leagueapi.Manager, bool) {
	managers := make([]draft.Manager, 0, len(s.Managers))
	for _, m := range s.Managers {
		managers = append(managers, draft.Manager{ID: m.ID, Name: m.Name, Role: m.Role, TeamID: m.TeamID})
	}
	m, ok := draft.ManagerAt(managers, s.CurrentPick)
	if !ok {
		return leagueapi.Manager{}, false
	}
	return leagueapi.Manager{ID: m.ID, Name: m.Name, Role: m.Role, TeamID: m.TeamID}, true
}

func isAvailable(board leagueapi.DraftBoard, playerID string) bool {
	if playerID == "" {
		return false
	}
	for _, p := range board.Available {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

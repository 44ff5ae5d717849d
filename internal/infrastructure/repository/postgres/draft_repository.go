package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/youth-league/internal/domain/draft"
	qb "github.com/riskibarqy/youth-league/internal/platform/querybuilder"
)

const (
	draftSessionDivisionConstraint = "uq_draft_sessions_division"
	draftPickNumberConstraint      = "draft_picks_pkey"
	draftPickPlayerConstraint      = "uq_draft_picks_player"
)

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) GetByID(ctx context.Context, sessionID string) (draft.Session, bool, error) {
	return r.getOne(ctx, "id", qb.Eq("public_id", sessionID))
}

func (r *DraftRepository) GetByDivision(ctx context.Context, seasonID, divisionID string) (draft.Session, bool, error) {
	return r.getOne(ctx, "division",
		qb.Eq("season_public_id", seasonID),
		qb.Eq("division_public_id", divisionID),
	)
}

func (r *DraftRepository) ListBySeason(ctx context.Context, seasonID string) ([]draft.Session, error) {
	query, args, err := qb.Select("*").From("draft_sessions").
		Where(qb.Eq("season_public_id", seasonID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select draft sessions by season query: %w", err)
	}

	var rows []draftSessionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select draft sessions by season: %w", err)
	}

	out := make([]draft.Session, 0, len(rows))
	for _, row := range rows {
		s, err := r.hydrate(ctx, row)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *DraftRepository) Create(ctx context.Context, s draft.Session) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validate draft session: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for draft session create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertInto("draft_sessions").
		Columns("public_id", "season_public_id", "division_public_id", "created_at").
		Values(s.ID, s.SeasonID, s.DivisionID, s.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert draft session query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if uniqueViolationOn(err, draftSessionDivisionConstraint) {
			return fmt.Errorf("%w: division=%s", draft.ErrSessionExists, s.DivisionID)
		}
		return fmt.Errorf("insert draft session=%s: %w", s.ID, err)
	}

	managers := qb.InsertInto("draft_managers").
		Columns("session_public_id", "position", "manager_id", "name", "role", "team_public_id")
	for i, m := range s.Managers {
		managers.Values(s.ID, i, m.ID, m.Name, m.Role, m.TeamID)
	}
	query, args, err = managers.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert draft managers query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert draft managers session=%s: %w", s.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit draft session create tx: %w", err)
	}
	return nil
}

// AppendPick locks the session row so concurrent pickers serialize; the
// primary key on (session, pick_number) and the per-session player
// constraint back the same rules at the storage level.
func (r *DraftRepository) AppendPick(ctx context.Context, sessionID string, pick draft.Pick) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for draft pick: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("public_id").From("draft_sessions").
		Where(qb.Eq("public_id", sessionID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock draft session query: %w", err)
	}
	var locked string
	if err := tx.GetContext(ctx, &locked, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("draft session %s not found", sessionID)
		}
		return fmt.Errorf("lock draft session=%s: %w", sessionID, err)
	}

	const stateQuery = `
SELECT COUNT(1) AS picks,
       COUNT(1) FILTER (WHERE player_public_id = $2) AS player_picks
FROM draft_picks
WHERE session_public_id = $1`
	var state struct {
		Picks       int `db:"picks"`
		PlayerPicks int `db:"player_picks"`
	}
	if err := tx.GetContext(ctx, &state, stateQuery, sessionID, pick.PlayerID); err != nil {
		return fmt.Errorf("count draft picks session=%s: %w", sessionID, err)
	}
	if pick.PickNumber != state.Picks+1 {
		return fmt.Errorf("%w: got %d, expected %d", draft.ErrOutOfOrder, pick.PickNumber, state.Picks+1)
	}
	if state.PlayerPicks > 0 {
		return fmt.Errorf("%w: player=%s", draft.ErrAlreadyPicked, pick.PlayerID)
	}

	query, args, err := qb.InsertInto("draft_picks").
		Columns("session_public_id", "pick_number", "team_public_id", "player_public_id", "picked_at").
		Values(sessionID, pick.PickNumber, pick.TeamID, pick.PlayerID, pick.PickedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert draft pick query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		switch {
		case uniqueViolationOn(err, draftPickNumberConstraint):
			return fmt.Errorf("%w: pick %d already taken", draft.ErrOutOfOrder, pick.PickNumber)
		case uniqueViolationOn(err, draftPickPlayerConstraint):
			return fmt.Errorf("%w: player=%s", draft.ErrAlreadyPicked, pick.PlayerID)
		}
		return fmt.Errorf("insert draft pick session=%s: %w", sessionID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit draft pick tx: %w", err)
	}
	return nil
}

func (r *DraftRepository) getOne(ctx context.Context, by string, conds ...qb.Condition) (draft.Session, bool, error) {
	query, args, err := qb.Select("*").From("draft_sessions").
		Where(conds...).
		Limit(1).
		ToSQL()
	if err != nil {
		return draft.Session{}, false, fmt.Errorf("build select draft session by %s query: %w", by, err)
	}

	var row draftSessionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draft.Session{}, false, nil
		}
		return draft.Session{}, false, fmt.Errorf("select draft session by %s: %w", by, err)
	}

	s, err := r.hydrate(ctx, row)
	if err != nil {
		return draft.Session{}, false, err
	}
	return s, true, nil
}

func (r *DraftRepository) hydrate(ctx context.Context, row draftSessionTableModel) (draft.Session, error) {
	managerQuery, managerArgs, err := qb.Select("*").From("draft_managers").
		Where(qb.Eq("session_public_id", row.PublicID)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return draft.Session{}, fmt.Errorf("build select draft managers query: %w", err)
	}
	var managerRows []draftManagerTableModel
	if err := r.db.SelectContext(ctx, &managerRows, managerQuery, managerArgs...); err != nil {
		return draft.Session{}, fmt.Errorf("select draft managers session=%s: %w", row.PublicID, err)
	}

	pickQuery, pickArgs, err := qb.Select("*").From("draft_picks").
		Where(qb.Eq("session_public_id", row.PublicID)).
		OrderBy("pick_number").
		ToSQL()
	if err != nil {
		return draft.Session{}, fmt.Errorf("build select draft picks query: %w", err)
	}
	var pickRows []draftPickTableModel
	if err := r.db.SelectContext(ctx, &pickRows, pickQuery, pickArgs...); err != nil {
		return draft.Session{}, fmt.Errorf("select draft picks session=%s: %w", row.PublicID, err)
	}

	s := draft.Session{
		ID:         row.PublicID,
		SeasonID:   row.SeasonID,
		DivisionID: row.DivisionID,
		Managers:   make([]draft.Manager, 0, len(managerRows)),
		Picks:      make([]draft.Pick, 0, len(pickRows)),
		CreatedAt:  row.CreatedAt.UTC(),
	}
	for _, m := range managerRows {
		s.Managers = append(s.Managers, draft.Manager{ID: m.ManagerID, Name: m.Name, Role: m.Role, TeamID: m.TeamID})
	}
	for _, p := range pickRows {
		s.Picks = append(s.Picks, draft.Pick{
			PickNumber: p.PickNumber,
			TeamID:     p.TeamID,
			PlayerID:   p.PlayerID,
			PickedAt:   p.PickedAt.UTC(),
		})
	}
	return s, nil
}

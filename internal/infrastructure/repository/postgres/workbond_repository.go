package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/youth-league/internal/domain/workbond"
	qb "github.com/riskibarqy/youth-league/internal/platform/querybuilder"
)

const workbondSignupFamilyConstraint = "uq_workbond_signups_family"

type WorkbondRepository struct {
	db *sqlx.DB
}

func NewWorkbondRepository(db *sqlx.DB) *WorkbondRepository {
	return &WorkbondRepository{db: db}
}

func (r *WorkbondRepository) ListShifts(ctx context.Context, seasonID string) ([]workbond.Shift, error) {
	query, args, err := qb.Select("*").From("workbond_shifts").
		Where(qb.Eq("season_public_id", seasonID)).
		OrderBy("starts_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select workbond shifts query: %w", err)
	}

	var rows []workbondShiftTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select workbond shifts: %w", err)
	}

	out := make([]workbond.Shift, 0, len(rows))
	for _, row := range rows {
		out = append(out, shiftFromRow(row))
	}
	return out, nil
}

func (r *WorkbondRepository) GetShift(ctx context.Context, shiftID string) (workbond.Shift, bool, error) {
	query, args, err := qb.Select("*").From("workbond_shifts").
		Where(qb.Eq("public_id", shiftID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return workbond.Shift{}, false, fmt.Errorf("build select workbond shift query: %w", err)
	}

	var row workbondShiftTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return workbond.Shift{}, false, nil
		}
		return workbond.Shift{}, false, fmt.Errorf("select workbond shift: %w", err)
	}
	return shiftFromRow(row), true, nil
}

func (r *WorkbondRepository) CreateShift(ctx context.Context, s workbond.Shift) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validate shift: %w", err)
	}

	query, args, err := qb.InsertInto("workbond_shifts").
		Columns("public_id", "season_public_id", "name", "location", "starts_at", "ends_at", "hours", "capacity").
		Values(s.ID, s.SeasonID, s.Name, s.Location, s.StartsAt, s.EndsAt, s.Hours, s.Capacity).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert workbond shift query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if uniqueViolationOn(err, "") {
			return fmt.Errorf("shift %s already exists", s.ID)
		}
		return fmt.Errorf("insert workbond shift=%s: %w", s.ID, err)
	}
	return nil
}

func (r *WorkbondRepository) ListSignupsBySeason(ctx context.Context, seasonID string) ([]workbond.Signup, error) {
	const query = `
SELECT su.*
FROM workbond_signups su
JOIN workbond_shifts sh ON sh.public_id = su.shift_public_id
WHERE sh.season_public_id = $1
ORDER BY su.created_at, su.public_id`

	var rows []workbondSignupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, seasonID); err != nil {
		return nil, fmt.Errorf("select workbond signups by season: %w", err)
	}

	out := make([]workbond.Signup, 0, len(rows))
	for _, row := range rows {
		out = append(out, signupFromRow(row))
	}
	return out, nil
}

func (r *WorkbondRepository) GetSignup(ctx context.Context, signupID string) (workbond.Signup, bool, error) {
	query, args, err := qb.Select("*").From("workbond_signups").
		Where(qb.Eq("public_id", signupID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return workbond.Signup{}, false, fmt.Errorf("build select workbond signup query: %w", err)
	}

	var row workbondSignupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return workbond.Signup{}, false, nil
		}
		return workbond.Signup{}, false, fmt.Errorf("select workbond signup: %w", err)
	}
	return signupFromRow(row), true, nil
}

// CreateSignup locks the shift row, so two families racing for the last
// slot cannot both fit.
func (r *WorkbondRepository) CreateSignup(ctx context.Context, su workbond.Signup, capacity int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for workbond signup: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("public_id").From("workbond_shifts").
		Where(qb.Eq("public_id", su.ShiftID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock workbond shift query: %w", err)
	}
	var locked string
	if err := tx.GetContext(ctx, &locked, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("shift %s not found", su.ShiftID)
		}
		return fmt.Errorf("lock workbond shift=%s: %w", su.ShiftID, err)
	}

	const stateQuery = `
SELECT COUNT(1) AS taken,
       COUNT(1) FILTER (WHERE family_public_id = $2) AS family_signups
FROM workbond_signups
WHERE shift_public_id = $1`
	var state struct {
		Taken         int `db:"taken"`
		FamilySignups int `db:"family_signups"`
	}
	if err := tx.GetContext(ctx, &state, stateQuery, su.ShiftID, su.FamilyID); err != nil {
		return fmt.Errorf("count workbond signups shift=%s: %w", su.ShiftID, err)
	}
	if state.FamilySignups > 0 {
		return fmt.Errorf("%w: shift=%s family=%s", workbond.ErrAlreadySignedUp, su.ShiftID, su.FamilyID)
	}
	if state.Taken >= capacity {
		return fmt.Errorf("%w: shift=%s capacity=%d", workbond.ErrShiftFull, su.ShiftID, capacity)
	}

	query, args, err := qb.InsertInto("workbond_signups").
		Columns("public_id", "shift_public_id", "family_public_id", "volunteer_name", "status", "created_at").
		Values(su.ID, su.ShiftID, su.FamilyID, su.VolunteerName, string(su.Status), su.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert workbond signup query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if uniqueViolationOn(err, workbondSignupFamilyConstraint) {
			return fmt.Errorf("%w: shift=%s family=%s", workbond.ErrAlreadySignedUp, su.ShiftID, su.FamilyID)
		}
		return fmt.Errorf("insert workbond signup=%s: %w", su.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit workbond signup tx: %w", err)
	}
	return nil
}

func (r *WorkbondRepository) UpdateSignupStatus(ctx context.Context, signupID string, status workbond.SignupStatus) error {
	query, args, err := qb.Update("workbond_signups").
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", signupID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update workbond signup query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update workbond signup=%s: %w", signupID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("signup %s not found", signupID)
	}
	return nil
}

func shiftFromRow(row workbondShiftTableModel) workbond.Shift {
	return workbond.Shift{
		ID:       row.PublicID,
		SeasonID: row.SeasonID,
		Name:     row.Name,
		Location: row.Location,
		StartsAt: row.StartsAt.UTC(),
		EndsAt:   row.EndsAt.UTC(),
		Hours:    row.Hours,
		Capacity: row.Capacity,
	}
}

func signupFromRow(row workbondSignupTableModel) workbond.Signup {
	return workbond.Signup{
		ID:            row.PublicID,
		ShiftID:       row.ShiftID,
		FamilyID:      row.FamilyID,
		VolunteerName: row.VolunteerName,
		Status:        workbond.SignupStatus(row.Status),
		CreatedAt:     row.CreatedAt.UTC(),
	}
}

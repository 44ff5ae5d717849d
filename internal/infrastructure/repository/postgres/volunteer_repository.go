package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
	qb "github.com/riskibarqy/youth-league/internal/platform/querybuilder"
)

type VolunteerRepository struct {
	db *sqlx.DB
}

func NewVolunteerRepository(db *sqlx.DB) *VolunteerRepository {
	return &VolunteerRepository{db: db}
}

// List returns matches ordered by name.
func (r *VolunteerRepository) List(ctx context.Context, filter volunteer.Filter) ([]volunteer.Volunteer, error) {
	var conds []qb.Condition
	if filter.SeasonID != "" {
		conds = append(conds, qb.Eq("season_public_id", filter.SeasonID))
	}
	if filter.DivisionID != "" {
		conds = append(conds, qb.Eq("division_public_id", filter.DivisionID))
	}
	if filter.TeamID != "" {
		conds = append(conds, qb.Eq("team_public_id", filter.TeamID))
	}
	if filter.FamilyID != "" {
		conds = append(conds, qb.Eq("family_public_id", filter.FamilyID))
	}
	if role := strings.TrimSpace(filter.Role); role != "" {
		conds = append(conds, qb.Eq("LOWER(role)", strings.ToLower(role)))
	}

	query, args, err := qb.Select("*").From("volunteers").
		Where(conds...).
		OrderBy("LOWER(name)", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select volunteers query: %w", err)
	}

	var rows []volunteerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select volunteers: %w", err)
	}

	out := make([]volunteer.Volunteer, 0, len(rows))
	for _, row := range rows {
		out = append(out, volunteerFromRow(row))
	}
	return out, nil
}

func (r *VolunteerRepository) GetByID(ctx context.Context, volunteerID string) (volunteer.Volunteer, bool, error) {
	query, args, err := qb.Select("*").From("volunteers").
		Where(qb.Eq("public_id", volunteerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return volunteer.Volunteer{}, false, fmt.Errorf("build select volunteer by id query: %w", err)
	}

	var row volunteerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return volunteer.Volunteer{}, false, nil
		}
		return volunteer.Volunteer{}, false, fmt.Errorf("select volunteer by id: %w", err)
	}
	return volunteerFromRow(row), true, nil
}

func (r *VolunteerRepository) Create(ctx context.Context, v volunteer.Volunteer) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("validate volunteer: %w", err)
	}

	query, args, err := qb.InsertModel("volunteers", volunteerInsertModel{
		PublicID:              v.ID,
		SeasonID:              v.SeasonID,
		FamilyID:              nullString(v.FamilyID),
		DivisionID:            nullString(v.DivisionID),
		TeamID:                nullString(v.TeamID),
		Name:                  v.Name,
		Email:                 v.Email,
		Phone:                 v.Phone,
		Role:                  v.Role,
		InterestedRoles:       v.InterestedRoles,
		TrainingCompleted:     v.TrainingCompleted,
		BackgroundCheckStatus: v.BackgroundCheckStatus,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert volunteer query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if uniqueViolationOn(err, "") {
			return fmt.Errorf("volunteer %s already exists", v.ID)
		}
		return fmt.Errorf("insert volunteer=%s: %w", v.ID, err)
	}
	return nil
}

func (r *VolunteerRepository) Update(ctx context.Context, v volunteer.Volunteer) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("validate volunteer: %w", err)
	}

	query, args, err := qb.Update("volunteers").
		Set("family_public_id", nullString(v.FamilyID)).
		Set("division_public_id", nullString(v.DivisionID)).
		Set("team_public_id", nullString(v.TeamID)).
		Set("name", v.Name).
		Set("email", v.Email).
		Set("phone", v.Phone).
		Set("role", v.Role).
		Set("interested_roles", v.InterestedRoles).
		Set("training_completed", v.TrainingCompleted).
		Set("background_check_status", v.BackgroundCheckStatus).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", v.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update volunteer query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update volunteer=%s: %w", v.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("volunteer %s not found", v.ID)
	}
	return nil
}

func volunteerFromRow(row volunteerTableModel) volunteer.Volunteer {
	return volunteer.Volunteer{
		ID:                    row.PublicID,
		SeasonID:              row.SeasonID,
		FamilyID:              nullStringValue(row.FamilyID),
		DivisionID:            nullStringValue(row.DivisionID),
		TeamID:                nullStringValue(row.TeamID),
		Name:                  row.Name,
		Email:                 row.Email,
		Phone:                 row.Phone,
		Role:                  row.Role,
		InterestedRoles:       row.InterestedRoles,
		TrainingCompleted:     row.TrainingCompleted,
		BackgroundCheckStatus: row.BackgroundCheckStatus,
	}
}

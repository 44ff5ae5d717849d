package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/youth-league/internal/domain/family"
	qb "github.com/riskibarqy/youth-league/internal/platform/querybuilder"
)

type FamilyRepository struct {
	db *sqlx.DB
}

func NewFamilyRepository(db *sqlx.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

func (r *FamilyRepository) List(ctx context.Context) ([]family.Family, error) {
	return r.selectFamilies(ctx, "all")
}

func (r *FamilyRepository) GetByIDs(ctx context.Context, familyIDs []string) ([]family.Family, error) {
	if len(familyIDs) == 0 {
		return []family.Family{}, nil
	}
	return r.selectFamilies(ctx, "by ids", qb.In("public_id", stringSliceToAny(familyIDs)))
}

func (r *FamilyRepository) GetByID(ctx context.Context, familyID string) (family.Family, bool, error) {
	return r.getOne(ctx, "id", qb.Eq("public_id", familyID))
}

func (r *FamilyRepository) FindByEmail(ctx context.Context, email string) (family.Family, bool, error) {
	key := family.NormalizeEmail(email)
	if key == "" {
		return family.Family{}, false, nil
	}
	return r.getOne(ctx, "email", qb.AnyOf(
		qb.Eq("LOWER(primary_email)", key),
		qb.Eq("LOWER(secondary_email)", key),
	))
}

// Create refuses a family whose guardian email already belongs to another
// family, checking both email columns inside one transaction.
func (r *FamilyRepository) Create(ctx context.Context, f family.Family) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("validate family: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for family create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	emails := make([]string, 0, 2)
	for _, e := range f.Emails() {
		emails = append(emails, family.NormalizeEmail(e))
	}

	const ownerQuery = `
SELECT public_id
FROM families
WHERE LOWER(primary_email) = ANY($1)
   OR (secondary_email <> '' AND LOWER(secondary_email) = ANY($1))
LIMIT 1`
	var owner string
	err = tx.GetContext(ctx, &owner, ownerQuery, pq.Array(emails))
	switch {
	case err == nil:
		return fmt.Errorf("guardian email already belongs to family %s", owner)
	case !isNotFound(err):
		return fmt.Errorf("check family emails: %w", err)
	}

	query, args, err := qb.InsertModel("families", familyInsertModel{
		PublicID:       f.ID,
		PrimaryName:    f.Primary.Name,
		PrimaryEmail:   f.Primary.Email,
		PrimaryPhone:   f.Primary.Phone,
		SecondaryName:  f.Secondary.Name,
		SecondaryEmail: f.Secondary.Email,
		SecondaryPhone: f.Secondary.Phone,
		Address:        f.Address,
		WorkbondExempt: f.WorkbondExempt,
		WorkbondNote:   f.WorkbondNote,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert family query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if uniqueViolationOn(err, "") {
			return fmt.Errorf("family %s or its guardian email already exists", f.ID)
		}
		return fmt.Errorf("insert family=%s: %w", f.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit family create tx: %w", err)
	}
	return nil
}

func (r *FamilyRepository) getOne(ctx context.Context, by string, cond qb.Condition) (family.Family, bool, error) {
	query, args, err := qb.Select("*").From("families").
		Where(cond).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return family.Family{}, false, fmt.Errorf("build select family by %s query: %w", by, err)
	}

	var row familyTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return family.Family{}, false, nil
		}
		return family.Family{}, false, fmt.Errorf("select family by %s: %w", by, err)
	}
	return familyFromRow(row), true, nil
}

func (r *FamilyRepository) selectFamilies(ctx context.Context, scope string, conds ...qb.Condition) ([]family.Family, error) {
	query, args, err := qb.Select("*").From("families").
		Where(conds...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select families %s query: %w", scope, err)
	}

	var rows []familyTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select families %s: %w", scope, err)
	}

	out := make([]family.Family, 0, len(rows))
	for _, row := range rows {
		out = append(out, familyFromRow(row))
	}
	return out, nil
}

func familyFromRow(row familyTableModel) family.Family {
	return family.Family{
		ID:             row.PublicID,
		Primary:        family.Contact{Name: row.PrimaryName, Email: row.PrimaryEmail, Phone: row.PrimaryPhone},
		Secondary:      family.Contact{Name: row.SecondaryName, Email: row.SecondaryEmail, Phone: row.SecondaryPhone},
		Address:        row.Address,
		WorkbondExempt: row.WorkbondExempt,
		WorkbondNote:   row.WorkbondNote,
	}
}

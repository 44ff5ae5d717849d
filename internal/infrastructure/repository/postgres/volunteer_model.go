package postgres

import (
	"database/sql"
	"time"
)

type volunteerTableModel struct {
	ID                    int64          `db:"id"`
	PublicID              string         `db:"public_id"`
	SeasonID              string         `db:"season_public_id"`
	FamilyID              sql.NullString `db:"family_public_id"`
	DivisionID            sql.NullString `db:"division_public_id"`
	TeamID                sql.NullString `db:"team_public_id"`
	Name                  string         `db:"name"`
	Email                 string         `db:"email"`
	Phone                 string         `db:"phone"`
	Role                  string         `db:"role"`
	InterestedRoles       string         `db:"interested_roles"`
	TrainingCompleted     bool           `db:"training_completed"`
	BackgroundCheckStatus string         `db:"background_check_status"`
	CreatedAt             time.Time      `db:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at"`
}

type volunteerInsertModel struct {
	PublicID              string         `db:"public_id"`
	SeasonID              string         `db:"season_public_id"`
	FamilyID              sql.NullString `db:"family_public_id"`
	DivisionID            sql.NullString `db:"division_public_id"`
	TeamID                sql.NullString `db:"team_public_id"`
	Name                  string         `db:"name"`
	Email                 string         `db:"email"`
	Phone                 string         `db:"phone"`
	Role                  string         `db:"role"`
	InterestedRoles       string         `db:"interested_roles"`
	TrainingCompleted     bool           `db:"training_completed"`
	BackgroundCheckStatus string         `db:"background_check_status"`
}

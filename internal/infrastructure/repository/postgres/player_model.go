package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	SeasonID        string         `db:"season_public_id"`
	DivisionID      string         `db:"division_public_id"`
	TeamID          sql.NullString `db:"team_public_id"`
	FamilyID        string         `db:"family_public_id"`
	FirstName       string         `db:"first_name"`
	LastName        string         `db:"last_name"`
	BirthDate       time.Time      `db:"birth_date"`
	Gender          string         `db:"gender"`
	Status          string         `db:"status"`
	IsNewPlayer     bool           `db:"is_new_player"`
	IsTravelPlayer  bool           `db:"is_travel_player"`
	PaymentReceived bool           `db:"payment_received"`
	MedicalNotes    string         `db:"medical_notes"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type playerInsertModel struct {
	PublicID        string         `db:"public_id"`
	SeasonID        string         `db:"season_public_id"`
	DivisionID      string         `db:"division_public_id"`
	TeamID          sql.NullString `db:"team_public_id"`
	FamilyID        string         `db:"family_public_id"`
	FirstName       string         `db:"first_name"`
	LastName        string         `db:"last_name"`
	BirthDate       string         `db:"birth_date"`
	Gender          string         `db:"gender"`
	Status          string         `db:"status"`
	IsNewPlayer     bool           `db:"is_new_player"`
	IsTravelPlayer  bool           `db:"is_travel_player"`
	PaymentReceived bool           `db:"payment_received"`
	MedicalNotes    string         `db:"medical_notes"`
}

package postgres

import "time"

type workbondShiftTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	SeasonID  string    `db:"season_public_id"`
	Name      string    `db:"name"`
	Location  string    `db:"location"`
	StartsAt  time.Time `db:"starts_at"`
	EndsAt    time.Time `db:"ends_at"`
	Hours     float64   `db:"hours"`
	Capacity  int       `db:"capacity"`
	CreatedAt time.Time `db:"created_at"`
}

type workbondSignupTableModel struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	ShiftID       string    `db:"shift_public_id"`
	FamilyID      string    `db:"family_public_id"`
	VolunteerName string    `db:"volunteer_name"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

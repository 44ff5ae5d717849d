package postgres

import "time"

type familyTableModel struct {
	ID             int64     `db:"id"`
	PublicID       string    `db:"public_id"`
	PrimaryName    string    `db:"primary_name"`
	PrimaryEmail   string    `db:"primary_email"`
	PrimaryPhone   string    `db:"primary_phone"`
	SecondaryName  string    `db:"secondary_name"`
	SecondaryEmail string    `db:"secondary_email"`
	SecondaryPhone string    `db:"secondary_phone"`
	Address        string    `db:"address"`
	WorkbondExempt bool      `db:"workbond_exempt"`
	WorkbondNote   string    `db:"workbond_note"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type familyInsertModel struct {
	PublicID       string `db:"public_id"`
	PrimaryName    string `db:"primary_name"`
	PrimaryEmail   string `db:"primary_email"`
	PrimaryPhone   string `db:"primary_phone"`
	SecondaryName  string `db:"secondary_name"`
	SecondaryEmail string `db:"secondary_email"`
	SecondaryPhone string `db:"secondary_phone"`
	Address        string `db:"address"`
	WorkbondExempt bool   `db:"workbond_exempt"`
	WorkbondNote   string `db:"workbond_note"`
}

package postgres

import "time"

type teamTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	SeasonID   string    `db:"season_public_id"`
	DivisionID string    `db:"division_public_id"`
	Name       string    `db:"name"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

package postgres

import "time"

type draftSessionTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	SeasonID   string    `db:"season_public_id"`
	DivisionID string    `db:"division_public_id"`
	CreatedAt  time.Time `db:"created_at"`
}

type draftManagerTableModel struct {
	SessionID string `db:"session_public_id"`
	Position  int    `db:"position"`
	ManagerID string `db:"manager_id"`
	Name      string `db:"name"`
	Role      string `db:"role"`
	TeamID    string `db:"team_public_id"`
}

type draftPickTableModel struct {
	SessionID  string    `db:"session_public_id"`
	PickNumber int       `db:"pick_number"`
	TeamID     string    `db:"team_public_id"`
	PlayerID   string    `db:"player_public_id"`
	PickedAt   time.Time `db:"picked_at"`
}

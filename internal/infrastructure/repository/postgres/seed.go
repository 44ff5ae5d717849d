package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/youth-league/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/youth-league/internal/platform/querybuilder"
)

const seedConflictSuffix = "ON CONFLICT DO NOTHING"

type seedRow struct {
	table string
	key   string
	model any
}

// BootstrapSeed loads the demo league into an empty database. It does
// nothing once any season exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM seasons`); err != nil {
		return fmt.Errorf("count seasons for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, row := range seedRows() {
		query, args, err := qb.InsertModel(row.table, row.model, seedConflictSuffix)
		if err != nil {
			return fmt.Errorf("build seed %s %s query: %w", row.table, row.key, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed %s %s: %w", row.table, row.key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

func seedRows() []seedRow {
	var rows []seedRow
	add := func(table, key string, model any) {
		rows = append(rows, seedRow{table: table, key: key, model: model})
	}

	for _, s := range memory.SeedSeasons() {
		add("seasons", s.ID, struct {
			PublicID string `db:"public_id"`
			Name     string `db:"name"`
			Year     int    `db:"year"`
			IsActive bool   `db:"is_active"`
		}{s.ID, s.Name, s.Year, s.IsActive})
	}
	for _, d := range memory.SeedDivisions() {
		add("divisions", d.ID, struct {
			PublicID string `db:"public_id"`
			SeasonID string `db:"season_public_id"`
			Name     string `db:"name"`
		}{d.ID, d.SeasonID, d.Name})
	}
	for _, t := range memory.SeedTeams() {
		add("teams", t.ID, struct {
			PublicID   string `db:"public_id"`
			SeasonID   string `db:"season_public_id"`
			DivisionID string `db:"division_public_id"`
			Name       string `db:"name"`
		}{t.ID, t.SeasonID, t.DivisionID, t.Name})
	}
	for _, f := range memory.SeedFamilies() {
		add("families", f.ID, familyInsertModel{
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
		})
	}
	for _, p := range memory.SeedPlayers() {
		add("players", p.ID, playerInsertModel{
			PublicID:        p.ID,
			SeasonID:        p.SeasonID,
			DivisionID:      p.DivisionID,
			TeamID:          nullString(p.TeamID),
			FamilyID:        p.FamilyID,
			FirstName:       p.FirstName,
			LastName:        p.LastName,
			BirthDate:       p.BirthDate,
			Gender:          p.Gender,
			Status:          string(p.Status),
			IsNewPlayer:     p.IsNewPlayer,
			IsTravelPlayer:  p.IsTravelPlayer,
			PaymentReceived: p.PaymentReceived,
			MedicalNotes:    p.MedicalNotes,
		})
	}
	for _, v := range memory.SeedVolunteers() {
		add("volunteers", v.ID, volunteerInsertModel{
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
		})
	}
	for _, s := range memory.SeedShifts() {
		add("workbond_shifts", s.ID, struct {
			PublicID string    `db:"public_id"`
			SeasonID string    `db:"season_public_id"`
			Name     string    `db:"name"`
			Location string    `db:"location"`
			StartsAt time.Time `db:"starts_at"`
			EndsAt   time.Time `db:"ends_at"`
			Hours    float64   `db:"hours"`
			Capacity int       `db:"capacity"`
		}{s.ID, s.SeasonID, s.Name, s.Location, s.StartsAt, s.EndsAt, s.Hours, s.Capacity})
	}
	for _, su := range memory.SeedSignups() {
		add("workbond_signups", su.ID, struct {
			PublicID      string    `db:"public_id"`
			ShiftID       string    `db:"shift_public_id"`
			FamilyID      string    `db:"family_public_id"`
			VolunteerName string    `db:"volunteer_name"`
			Status        string    `db:"status"`
			CreatedAt     time.Time `db:"created_at"`
		}{su.ID, su.ShiftID, su.FamilyID, su.VolunteerName, string(su.Status), su.CreatedAt})
	}
	return rows
}

package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/youth-league/internal/domain/player"
	qb "github.com/riskibarqy/youth-league/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(playerConditions(filter)...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	player.Sort(out, filter.Sort)
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("public_id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by id: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validate player: %w", err)
	}

	query, args, err := qb.InsertModel("players", playerInsertModel{
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
	}, "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if uniqueViolationOn(err, "") {
			return fmt.Errorf("player %s already exists", p.ID)
		}
		return fmt.Errorf("insert player=%s: %w", p.ID, err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validate player: %w", err)
	}

	query, args, err := qb.Update("players").
		Set("division_public_id", p.DivisionID).
		Set("team_public_id", nullString(p.TeamID)).
		Set("family_public_id", p.FamilyID).
		Set("first_name", p.FirstName).
		Set("last_name", p.LastName).
		Set("birth_date", p.BirthDate).
		Set("gender", p.Gender).
		Set("status", string(p.Status)).
		Set("is_new_player", p.IsNewPlayer).
		Set("is_travel_player", p.IsTravelPlayer).
		Set("payment_received", p.PaymentReceived).
		Set("medical_notes", p.MedicalNotes).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", p.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player=%s: %w", p.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("player %s not found", p.ID)
	}
	return nil
}

func playerConditions(filter player.Filter) []qb.Condition {
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
	if filter.Status != "" {
		conds = append(conds, qb.Eq("status", string(filter.Status)))
	}
	if filter.Unassigned {
		conds = append(conds, qb.IsNull("team_public_id"))
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		conds = append(conds, qb.ILike("first_name || ' ' || last_name", q))
	}
	return conds
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:              row.PublicID,
		SeasonID:        row.SeasonID,
		DivisionID:      row.DivisionID,
		TeamID:          nullStringValue(row.TeamID),
		FamilyID:        row.FamilyID,
		FirstName:       row.FirstName,
		LastName:        row.LastName,
		BirthDate:       row.BirthDate.UTC().Format(time.DateOnly),
		Gender:          row.Gender,
		Status:          player.Status(row.Status),
		IsNewPlayer:     row.IsNewPlayer,
		IsTravelPlayer:  row.IsTravelPlayer,
		PaymentReceived: row.PaymentReceived,
		MedicalNotes:    row.MedicalNotes,
	}
}

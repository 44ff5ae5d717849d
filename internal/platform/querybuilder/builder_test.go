package querybuilder

import (
	"reflect"
	"testing"
)

func assertSQL(t *testing.T, query string, args []any, err error, wantQuery string, wantArgs []any) {
	t.Helper()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if query != wantQuery {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, wantQuery)
	}
	if len(args) == 0 && len(wantArgs) == 0 {
		return
	}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("unexpected args: got %#v, want %#v", args, wantArgs)
	}
}

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "first_name").
		From("players").
		Where(Eq("season_id", "spring-2026"), IsNull("deleted_at")).
		OrderBy("last_name", "first_name").
		Limit(10).
		ToSQL()
	assertSQL(t, query, args, err,
		"SELECT id, first_name FROM players WHERE season_id = $1 AND deleted_at IS NULL ORDER BY last_name, first_name LIMIT 10",
		[]any{"spring-2026"})
}

func TestSelectBuilder_SearchAndLock(t *testing.T) {
	query, args, err := Select("id").
		From("players").
		Where(
			Eq("division_id", "div-10u"),
			AnyOf(ILike("first_name", "o'n_"), ILike("last_name", "o'n_")),
		).
		ForUpdate().
		ToSQL()
	assertSQL(t, query, args, err,
		"SELECT id FROM players WHERE division_id = $1 AND (first_name ILIKE $2 OR last_name ILIKE $3) FOR UPDATE",
		[]any{"div-10u", `%o'n\_%`, `%o'n\_%`})
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	query, args, err := Select("id").From("families").Where(In("id", nil)).ToSQL()
	assertSQL(t, query, args, err, "SELECT id FROM families WHERE 1=0", nil)
}

func TestSelectBuilder_RequiresColumnsAndTable(t *testing.T) {
	if _, _, err := Select().From("players").ToSQL(); err == nil {
		t.Fatalf("expected error without columns")
	}
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("draft_picks").
		Columns("session_id", "pick_number").
		Values("ds-1", 4).
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	assertSQL(t, query, args, err,
		"INSERT INTO draft_picks (session_id, pick_number) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		[]any{"ds-1", 4})
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("players").
		Set("team_id", "team-a").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "ply-1")).
		ToSQL()
	assertSQL(t, query, args, err,
		"UPDATE players SET team_id = $1, updated_at = NOW() WHERE id = $2",
		[]any{"team-a", "ply-1"})
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID       string `db:"id"`
		Name     string `db:"name"`
		Internal string
		skipped  string
	}

	query, args, err := InsertModel("seasons", row{ID: "s1", Name: "Spring", skipped: "x"}, "")
	assertSQL(t, query, args, err,
		"INSERT INTO seasons (id, name) VALUES ($1, $2)",
		[]any{"s1", "Spring"})
}

package postgres

import (
	"strings"
	"testing"

	"github.com/riskibarqy/youth-league/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/youth-league/internal/platform/querybuilder"
)

func TestSeedRowsBuildInsertsInDependencyOrder(t *testing.T) {
	rows := seedRows()

	want := len(memory.SeedSeasons()) + len(memory.SeedDivisions()) + len(memory.SeedTeams()) +
		len(memory.SeedFamilies()) + len(memory.SeedPlayers()) + len(memory.SeedVolunteers()) +
		len(memory.SeedShifts()) + len(memory.SeedSignups())
	if len(rows) != want {
		t.Fatalf("expected %d seed rows, got %d", want, len(rows))
	}

	firstSeen := make(map[string]int)
	for i, row := range rows {
		if _, ok := firstSeen[row.table]; !ok {
			firstSeen[row.table] = i
		}

		query, args, err := qb.InsertModel(row.table, row.model, seedConflictSuffix)
		if err != nil {
			t.Fatalf("build insert for %s: %v", row.key, err)
		}
		if !strings.HasPrefix(query, "INSERT INTO "+row.table+" (") || !strings.HasSuffix(query, seedConflictSuffix) {
			t.Fatalf("unexpected seed query %s", query)
		}
		if args[0] != row.key {
			t.Fatalf("expected first arg %s, got %v", row.key, args[0])
		}
	}

	for _, pair := range [][2]string{
		{"seasons", "divisions"},
		{"teams", "players"},
		{"families", "players"},
		{"workbond_shifts", "workbond_signups"},
	} {
		if firstSeen[pair[0]] >= firstSeen[pair[1]] {
			t.Fatalf("expected %s before %s", pair[0], pair[1])
		}
	}
}

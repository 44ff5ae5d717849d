package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestUniqueViolationOn(t *testing.T) {
	pickDup := &pq.Error{Code: "23505", Constraint: "uq_draft_picks_player"}

	if !uniqueViolationOn(pickDup, "") {
		t.Fatalf("expected any-constraint match")
	}
	if !uniqueViolationOn(fmt.Errorf("insert pick: %w", pickDup), "uq_draft_picks_player") {
		t.Fatalf("expected wrapped constraint match")
	}
	if uniqueViolationOn(pickDup, "draft_picks_pkey") {
		t.Fatalf("unexpected match on other constraint")
	}
	if uniqueViolationOn(&pq.Error{Code: "23503"}, "") {
		t.Fatalf("foreign key violation is not a unique violation")
	}
	if uniqueViolationOn(sql.ErrNoRows, "") {
		t.Fatalf("non-pq error is not a unique violation")
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) || !isNotFound(fmt.Errorf("get player: %w", sql.ErrNoRows)) {
		t.Fatalf("expected no-rows errors to be not found")
	}
	if isNotFound(sql.ErrConnDone) {
		t.Fatalf("conn done is not a not-found error")
	}
}

func TestNullString(t *testing.T) {
	if got := nullString("  "); got != (sql.NullString{}) {
		t.Fatalf("expected invalid null string, got %+v", got)
	}
	if got := nullString(" 10u-bears "); got != (sql.NullString{String: "10u-bears", Valid: true}) {
		t.Fatalf("unexpected null string %+v", got)
	}
	if got := nullStringValue(sql.NullString{String: "stale"}); got != "" {
		t.Fatalf("expected empty value for invalid null string, got %q", got)
	}
}

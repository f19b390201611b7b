package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	qb "github.com/finleysg/bhmc-admin-sub001/internal/platform/querybuilder"
	"github.com/lib/pq"
)

func TestNullString(t *testing.T) {
	t.Parallel()

	if got := nullString("  "); got.Valid {
		t.Fatalf("expected blank value to be null, got=%+v", got)
	}
	got := nullString(" 1234567 ")
	if !got.Valid || got.String != "1234567" {
		t.Fatalf("unexpected null string: %+v", got)
	}
	if v := nullStringValue(sql.NullString{}); v != "" {
		t.Fatalf("expected empty value, got=%q", v)
	}
	if v := nullStringValue(sql.NullString{String: " gg-1 ", Valid: true}); v != "gg-1" {
		t.Fatalf("expected trimmed value, got=%q", v)
	}
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("get player: %w", sql.ErrNoRows)
	if !isNotFound(wrapped) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("unexpected not found")
	}

	dup := fmt.Errorf("insert round: %w", &pq.Error{Code: "23505"})
	if !isUniqueViolation(dup) {
		t.Fatalf("expected unique violation")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatalf("foreign key violation reported as unique")
	}
}

type fakeResult struct {
	affected int64
	err      error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.affected, r.err }

func TestMustAffectOne(t *testing.T) {
	t.Parallel()

	if err := mustAffectOne(fakeResult{affected: 1}, "update player"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mustAffectOne(fakeResult{}, "update player"); err == nil {
		t.Fatalf("expected not found error")
	}
	if err := mustAffectOne(fakeResult{err: errors.New("driver")}, "update player"); err == nil {
		t.Fatalf("expected driver error")
	}
}

func TestDeleteResultsByEventQuery(t *testing.T) {
	t.Parallel()

	query, args, err := qb.DeleteFrom("tournament_results").
		Where(qb.Expr("tournament_id IN (SELECT id FROM event_tournaments WHERE event_id = ?)", int64(9))).
		ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	want := "DELETE FROM tournament_results WHERE tournament_id IN (SELECT id FROM event_tournaments WHERE event_id = $1)"
	if query != want {
		t.Fatalf("unexpected query:\n got=%s\nwant=%s", query, want)
	}
	if len(args) != 1 || args[0] != int64(9) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestScorecardUpsertQuery(t *testing.T) {
	t.Parallel()

	query, args, err := qb.InsertModel("scorecards", scorecardInsertModel{EventID: 1, RoundID: 2, PlayerID: 3, CourseID: 4, TeeID: 5, HandicapIndex: "8.4", CourseHandicap: 9}, scorecardUpsertSuffix)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if len(args) != 7 {
		t.Fatalf("expected 7 args, got=%d", len(args))
	}
	for _, fragment := range []string{"INSERT INTO scorecards", "ON CONFLICT (event_id, round_id, player_id)", "(xmax = 0) AS inserted"} {
		if !strings.Contains(query, fragment) {
			t.Fatalf("query missing %q: %s", fragment, query)
		}
	}
}

package result

import (
	"errors"
	"testing"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/player"
)

func resolverFor(players map[string]player.Player) Resolver {
	return func(card MemberCard) (player.Player, error) {
		p, ok := players[card.MemberCardID]
		if !ok {
			return player.Player{}, errors.New("player not found for member card " + card.MemberCardID)
		}
		return p, nil
	}
}

func mustParser(t *testing.T, f Format) Parser {
	t.Helper()
	p, err := ParserFor(f)
	if err != nil {
		t.Fatalf("parser for %s: %v", f, err)
	}
	return p
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, f := range Formats() {
		got, err := ParseFormat(" " + string(f) + " ")
		if err != nil || got != f {
			t.Fatalf("ParseFormat(%s): got=%s err=%v", f, got, err)
		}
		if _, err := ParserFor(f); err != nil {
			t.Fatalf("ParserFor(%s): %v", f, err)
		}
	}
	if got, err := ParseFormat(" Proxy "); err != nil || got != FormatUserScored {
		t.Fatalf("ParseFormat(proxy): got=%s err=%v", got, err)
	}
	if _, err := ParseFormat("match_play"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestInferFormat(t *testing.T) {
	t.Parallel()

	cases := map[string]Format{
		"stroke":            FormatStroke,
		"Stroke Play":       FormatStroke,
		"Gross Skins":       FormatSkins,
		"Quota":             FormatQuota,
		"Season Points":     FormatPoints,
		"User Scored":       FormatUserScored,
		"Two Man Best Ball": FormatTeam,
	}

	for label, want := range cases {
		got, ok := InferFormat(label)
		if !ok || got != want {
			t.Fatalf("InferFormat(%q): got=%s ok=%v want=%s", label, got, ok, want)
		}
	}
	if _, ok := InferFormat("match play bracket"); ok {
		t.Fatalf("expected unknown label to be rejected")
	}
}

func TestProcess_ProxyOnlyPaysWinner(t *testing.T) {
	t.Parallel()

	payload := Payload{Scopes: []Scope{{
		Name: "Hole 7",
		Aggregates: []Aggregate{
			{Name: "Ann Lee", Position: "1", Purse: "$25.00", MemberCards: []MemberCard{{MemberCardID: "mc-1"}}},
			{Name: "Bo Diaz", Position: "2", Purse: "$10.00", MemberCards: []MemberCard{{MemberCardID: "mc-2"}}},
			{Name: "Cy Park", Position: "", Purse: "", MemberCards: []MemberCard{{MemberCardID: "mc-unknown"}}},
		},
	}}}
	batch, err := Process(mustParser(t, FormatUserScored), payload, 5, resolverFor(map[string]player.Player{
		"mc-1": {ID: 1, FirstName: "Ann", LastName: "Lee"},
		"mc-2": {ID: 2, FirstName: "Bo", LastName: "Diaz"},
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(batch.Rows) != 1 {
		t.Fatalf("expected only the winner, got=%d rows", len(batch.Rows))
	}
	row := batch.Rows[0]
	if row.PlayerID != 1 || row.Position != 1 || row.Amount != "25.00" || row.Flight != "Hole 7" {
		t.Fatalf("unexpected row: %+v", row)
	}
	if len(batch.Errors) != 0 {
		t.Fatalf("non-winners must be skipped silently, got errors %+v", batch.Errors)
	}
}

func TestProcess_SkinsPositionDefaultsToOne(t *testing.T) {
	t.Parallel()

	payload := Payload{Scopes: []Scope{{
		Name: "Flight A",
		Aggregates: []Aggregate{
			{Position: "1", Total: "3", Purse: "$30", MemberCards: []MemberCard{{MemberCardID: "mc-1"}}},
			{Position: "2", Total: "", Purse: "$10", MemberCards: []MemberCard{{MemberCardID: "mc-2"}}},
			{Position: "3", Total: "0", Purse: "$0", MemberCards: []MemberCard{{MemberCardID: "mc-3"}}},
		},
	}}}
	batch, err := Process(mustParser(t, FormatSkins), payload, 9, resolverFor(map[string]player.Player{
		"mc-1": {ID: 1}, "mc-2": {ID: 2}, "mc-3": {ID: 3},
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(batch.Rows) != 2 {
		t.Fatalf("expected 2 paid rows, got=%d", len(batch.Rows))
	}
	if batch.Rows[0].Position != 3 || batch.Rows[1].Position != 1 {
		t.Fatalf("unexpected skins positions: %d, %d", batch.Rows[0].Position, batch.Rows[1].Position)
	}
	if batch.Skipped != 1 {
		t.Fatalf("expected zero purse to be skipped, got=%d", batch.Skipped)
	}
}

func TestProcess_StrokeToleratesBlanks(t *testing.T) {
	t.Parallel()

	payload := Payload{Scopes: []Scope{{
		Name: "",
		Aggregates: []Aggregate{
			{Position: "T2", Total: "71", Purse: "$1,050.00", MemberCards: []MemberCard{{MemberCardID: "mc-1"}}},
			{Position: "", Total: "", Purse: "$5", MemberCards: []MemberCard{{MemberCardID: "mc-2"}}},
		},
	}}}
	batch, err := Process(mustParser(t, FormatStroke), payload, 1, resolverFor(map[string]player.Player{
		"mc-1": {ID: 1}, "mc-2": {ID: 2},
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(batch.Rows) != 2 {
		t.Fatalf("expected 2 rows, got=%d", len(batch.Rows))
	}
	first, second := batch.Rows[0], batch.Rows[1]
	if first.Position != 2 || first.Score == nil || *first.Score != 71 || first.Amount != "1050.00" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if second.Position != 0 || second.Score != nil {
		t.Fatalf("expected blanks to stay empty: %+v", second)
	}
	if first.Flight != "N/A" {
		t.Fatalf("expected N/A flight for unnamed scope, got %q", first.Flight)
	}
}

func TestProcess_QuotaSummary(t *testing.T) {
	t.Parallel()

	payload := Payload{Scopes: []Scope{{
		Name: "Quota",
		Aggregates: []Aggregate{
			{Position: "1", Total: "40", Score: "+6", Purse: "$20", MemberCards: []MemberCard{{MemberCardID: "mc-1"}}},
			{Position: "2", Total: "38", Score: "", Purse: "$10", MemberCards: []MemberCard{{MemberCardID: "mc-2"}}},
		},
	}}}
	batch, err := Process(mustParser(t, FormatQuota), payload, 1, resolverFor(map[string]player.Player{
		"mc-1": {ID: 1}, "mc-2": {ID: 2},
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if batch.Rows[0].Summary != "Quota score: +6" {
		t.Fatalf("unexpected summary %q", batch.Rows[0].Summary)
	}
	if batch.Rows[1].Summary != "" {
		t.Fatalf("expected empty summary without score, got %q", batch.Rows[1].Summary)
	}
}

func TestProcess_TeamSkipsBlindPlayers(t *testing.T) {
	t.Parallel()

	payload := Payload{Scopes: []Scope{{
		Name: "Net",
		Aggregates: []Aggregate{{
			ID:       "team-1",
			Name:     "Smith + Bl[Jones]",
			Position: "1",
			Total:    "62",
			Purse:    "$40.00",
			Individuals: []Individual{
				{MemberCardID: "mc-smith", Name: "Tom Smith"},
				{MemberCardID: "mc-jones", Name: "Al Jones"},
			},
		}},
	}}}
	batch, err := Process(mustParser(t, FormatTeam), payload, 3, resolverFor(map[string]player.Player{
		"mc-smith": {ID: 10, FirstName: "Tom", LastName: "Smith"},
		"mc-jones": {ID: 11, FirstName: "Al", LastName: "Jones"},
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(batch.Rows) != 1 || batch.Rows[0].PlayerID != 10 {
		t.Fatalf("expected one row for Smith, got %+v", batch.Rows)
	}
	if batch.BlindSkipped != 1 {
		t.Fatalf("expected blind counter of 1, got=%d", batch.BlindSkipped)
	}
	row := batch.Rows[0]
	if row.TeamID != "team-1" || row.PayoutTo != PayoutToTeam || row.Amount != "40.00" {
		t.Fatalf("unexpected team row: %+v", row)
	}
}

func TestProcess_TeamRowsShareTeamPurse(t *testing.T) {
	t.Parallel()

	payload := Payload{Scopes: []Scope{{
		Aggregates: []Aggregate{{
			ID:       "team-2",
			Name:     "Smith + Jones",
			Position: "T2",
			Total:    "64",
			Purse:    "$40.00",
			Individuals: []Individual{
				{MemberCardID: "mc-smith", Name: "Tom Smith", Purse: "$5.00"},
				{MemberCardID: "mc-jones", Name: "Al Jones"},
			},
		}},
	}}}
	batch, err := Process(mustParser(t, FormatTeam), payload, 3, resolverFor(map[string]player.Player{
		"mc-smith": {ID: 10, FirstName: "Tom", LastName: "Smith"},
		"mc-jones": {ID: 11, FirstName: "Al", LastName: "Jones"},
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(batch.Rows) != 2 {
		t.Fatalf("expected two rows, got %+v", batch.Rows)
	}
	for _, row := range batch.Rows {
		if row.Amount != "40.00" || row.Position != 2 || row.TeamID != "team-2" {
			t.Fatalf("player %d does not carry the team values: %+v", row.PlayerID, row)
		}
		if row.Score == nil || *row.Score != 64 {
			t.Fatalf("player %d score: %v", row.PlayerID, row.Score)
		}
	}
}

func TestProcess_TeamRequiresIndividuals(t *testing.T) {
	t.Parallel()

	payload := Payload{Scopes: []Scope{{Aggregates: []Aggregate{{Name: "Team"}}}}}
	if _, err := Process(mustParser(t, FormatTeam), payload, 1, resolverFor(nil)); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestProcess_RecordsPerItemErrors(t *testing.T) {
	t.Parallel()

	payload := Payload{Scopes: []Scope{{
		Name: "A",
		Aggregates: []Aggregate{
			{Position: "1", Purse: "$free", MemberCards: []MemberCard{{MemberCardID: "mc-1"}}},
			{Position: "2", Purse: "$10", MemberCards: []MemberCard{{MemberCardID: "mc-missing", Name: "Ghost"}}},
			{Position: "3", Purse: "$5"},
			{Position: "4", Purse: "$5", MemberCards: []MemberCard{{MemberCardID: "mc-2"}}},
		},
	}}}
	batch, err := Process(mustParser(t, FormatStroke), payload, 1, resolverFor(map[string]player.Player{
		"mc-1": {ID: 1}, "mc-2": {ID: 2},
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(batch.Errors) != 3 {
		t.Fatalf("expected 3 item errors, got=%d (%+v)", len(batch.Errors), batch.Errors)
	}
	if len(batch.Rows) != 1 || batch.Rows[0].PlayerID != 2 {
		t.Fatalf("expected surviving row for mc-2, got %+v", batch.Rows)
	}
}

func TestProcess_PointsUseConfirmedPayout(t *testing.T) {
	t.Parallel()

	payload := Payload{Scopes: []Scope{{
		Name: "Season",
		Aggregates: []Aggregate{
			{Position: "1", Points: "50", MemberCards: []MemberCard{{MemberCardID: "mc-1"}}},
			{Position: "20", Points: "", MemberCards: []MemberCard{{MemberCardID: "mc-2"}}},
		},
	}}}
	batch, err := Process(mustParser(t, FormatPoints), payload, 1, resolverFor(map[string]player.Player{
		"mc-1": {ID: 1}, "mc-2": {ID: 2},
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(batch.Rows) != 1 {
		t.Fatalf("expected 1 row, got=%d", len(batch.Rows))
	}
	row := batch.Rows[0]
	if row.Amount != "50.00" || row.PayoutType != PayoutTypePoints || row.PayoutStatus != PayoutStatusConfirmed {
		t.Fatalf("unexpected points row: %+v", row)
	}
}

func TestProcess_EmptyPayloadIsInvalid(t *testing.T) {
	t.Parallel()

	if _, err := Process(mustParser(t, FormatSkins), Payload{}, 1, resolverFor(nil)); err == nil {
		t.Fatalf("expected error for payload without scopes")
	}
}

func TestBlindNames(t *testing.T) {
	t.Parallel()

	names := BlindNames("Smith + bl[ Jones ] + BL[Mary Ann Cole]")
	if len(names) != 2 || names[0] != "jones" || names[1] != "mary ann cole" {
		t.Fatalf("unexpected blind names: %+v", names)
	}
	if !IsBlind(names, "Mary Ann Cole", "Cole", "") {
		t.Fatalf("expected full name match")
	}
	if IsBlind(names, "Tom Smith", "Smith", "Tom Smith") {
		t.Fatalf("expected Smith to be a real player")
	}
}

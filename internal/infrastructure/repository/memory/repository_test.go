package memory

import (
	"context"
	"testing"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/event"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/result"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/scorecard"
)

func TestPlayerRepository_FindByGHINNormalizesBothSides(t *testing.T) {
	t.Parallel()

	repo := NewPlayerRepository(SeedPlayers())
	ctx := context.Background()

	cases := map[string]int64{
		"2345678":     2,
		"  002345678": 2,
		"1234567":     1,
	}
	for ghin, want := range cases {
		got, ok, err := repo.FindByGHIN(ctx, ghin)
		if err != nil {
			t.Fatalf("find by ghin %q: %v", ghin, err)
		}
		if !ok || got.ID != want {
			t.Fatalf("find by ghin %q: got=%d ok=%v want=%d", ghin, got.ID, ok, want)
		}
	}

	for _, blank := range []string{"", "0", "000"} {
		if _, ok, _ := repo.FindByGHIN(ctx, blank); ok {
			t.Fatalf("expected no match for %q", blank)
		}
	}
}

func TestPlayerRepository_ListMembersOnlyMembers(t *testing.T) {
	t.Parallel()

	repo := NewPlayerRepository(SeedPlayers())
	members, err := repo.ListMembers(context.Background())
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("expected 3 members, got=%d", len(members))
	}
	for _, p := range members {
		if !p.IsMember {
			t.Fatalf("non-member listed: %+v", p)
		}
	}
}

func TestRegistrationRepository_SlotsSeePlayerUpdates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	players := NewPlayerRepository(SeedPlayers())
	repo := NewRegistrationRepository(SeedSlots(SeedPlayers()), SeedFees(), players)

	if err := players.UpdateRemoteID(ctx, 1, "mc-1"); err != nil {
		t.Fatalf("update remote id: %v", err)
	}
	if err := repo.UpdateSlotRemoteID(ctx, 101, "rm-101"); err != nil {
		t.Fatalf("update slot remote id: %v", err)
	}

	slot, ok, err := repo.GetSlot(ctx, 101)
	if err != nil || !ok {
		t.Fatalf("get slot: ok=%v err=%v", ok, err)
	}
	if slot.RemoteID != "rm-101" || slot.Player.RemoteID != "mc-1" {
		t.Fatalf("unexpected slot: %+v", slot)
	}

	fees, err := repo.ListEventFees(ctx, SeedEventID)
	if err != nil {
		t.Fatalf("list fees: %v", err)
	}
	if len(fees) != 3 {
		t.Fatalf("expected 3 fees, got=%d", len(fees))
	}
}

func TestScorecardRepository_UpsertReportsCreation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewScorecardRepository(SeedCourses(), SeedTees(), SeedHoles())

	course, ok, _ := repo.FindCourseByName(ctx, " east ")
	if !ok {
		t.Fatalf("expected course lookup to ignore case")
	}
	if _, ok, _ := repo.FindTee(ctx, course.ID, "CLUB"); !ok {
		t.Fatalf("expected tee lookup to ignore case")
	}

	card := scorecard.Scorecard{EventID: 1, RoundID: 2, PlayerID: 3, Scores: []scorecard.HoleScore{{HoleNumber: 1, Score: 4}}}
	created, err := repo.Upsert(ctx, card)
	if err != nil || !created {
		t.Fatalf("first upsert: created=%v err=%v", created, err)
	}

	card.Scores = []scorecard.HoleScore{{HoleNumber: 1, Score: 5}}
	created, err = repo.Upsert(ctx, card)
	if err != nil || created {
		t.Fatalf("second upsert: created=%v err=%v", created, err)
	}

	stored, ok := repo.Get(1, 2, 3)
	if !ok || len(stored.Scores) != 1 || stored.Scores[0].Score != 5 {
		t.Fatalf("unexpected stored card: %+v", stored)
	}
}

func TestEventAndResultRepositories_DeleteCascadeOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	events := NewEventRepository(SeedEvents())
	results := NewResultRepository(events.EventOfTournament)

	round, err := events.CreateRound(ctx, event.Round{EventID: SeedEventID, Number: 1, RemoteID: "r-1"})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}
	tournament, err := events.CreateTournament(ctx, event.Tournament{EventID: SeedEventID, RoundID: round.ID, RemoteID: "t-1"})
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	if err := results.ReplaceForTournament(ctx, tournament.ID, []result.Result{{TournamentID: tournament.ID, PlayerID: 1, Amount: "5.00"}}); err != nil {
		t.Fatalf("replace results: %v", err)
	}

	if err := events.DeleteRoundsByEvent(ctx, SeedEventID); err == nil {
		t.Fatalf("expected rounds delete to fail while tournaments exist")
	}

	if err := results.DeleteByEvent(ctx, SeedEventID); err != nil {
		t.Fatalf("delete results: %v", err)
	}
	if err := events.DeleteTournamentsByEvent(ctx, SeedEventID); err != nil {
		t.Fatalf("delete tournaments: %v", err)
	}
	if err := events.DeleteRoundsByEvent(ctx, SeedEventID); err != nil {
		t.Fatalf("delete rounds: %v", err)
	}

	rows, _ := results.ListByTournament(ctx, tournament.ID)
	if len(rows) != 0 {
		t.Fatalf("expected results removed, got=%d", len(rows))
	}
	rounds, _ := events.ListRounds(ctx, SeedEventID)
	if len(rounds) != 0 {
		t.Fatalf("expected rounds removed, got=%d", len(rounds))
	}
}

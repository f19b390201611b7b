package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/event"
	eventmock "github.com/finleysg/bhmc-admin-sub001/internal/mocks/domain/event"
	resultmock "github.com/finleysg/bhmc-admin-sub001/internal/mocks/domain/result"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEventSyncService_SyncEvent_RebuildsRoundsAndTournaments(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := seasonedProvider()
	provider.events["s-2025"] = []ExternalEvent{
		{ID: "gg-77", Name: "Spring 4-Ball", StartDate: "2025-05-10", Website: "bhmc.golfgenius.com/pages/77"},
	}
	provider.rounds["gg-77"] = []ExternalRound{
		{ID: "r-1", Name: "Round 1", Date: "2025-05-10", Index: 1},
		{ID: "r-2", Name: "Round 2", Date: "", Index: 2},
	}
	provider.tourney["r-1"] = []ExternalTournament{
		{ID: "t-1", Name: "Gross Skins", Format: "skins", HandicapFormat: "Gross"},
		{ID: "t-2", Name: "Net Stroke", Format: "Stroke Play", HandicapFormat: "USGA Net"},
	}
	provider.tourney["r-2"] = []ExternalTournament{
		{ID: "t-3", Name: "Quota", Format: "quota", HandicapFormat: ""},
	}

	local := event.Event{ID: 12, Name: "Spring Four Ball", StartDate: time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)}
	eventRepo := eventmock.NewRepository(t)
	resultRepo := resultmock.NewRepository(t)

	var order []string
	record := func(step string) func(mock.Arguments) {
		return func(mock.Arguments) { order = append(order, step) }
	}

	eventRepo.On("GetByID", mock.Anything, int64(12)).Return(local, true, nil).Once()
	resultRepo.On("DeleteByEvent", mock.Anything, int64(12)).Run(record("results")).Return(nil).Once()
	eventRepo.On("DeleteTournamentsByEvent", mock.Anything, int64(12)).Run(record("tournaments")).Return(nil).Once()
	eventRepo.On("DeleteRoundsByEvent", mock.Anything, int64(12)).Run(record("rounds")).Return(nil).Once()

	var rounds []event.Round
	nextRoundID := int64(100)
	eventRepo.
		On("CreateRound", mock.Anything, mock.AnythingOfType("event.Round")).
		Return(func(_ context.Context, r event.Round) (event.Round, error) {
			nextRoundID++
			r.ID = nextRoundID
			rounds = append(rounds, r)
			return r, nil
		}).
		Times(2)

	var tournaments []event.Tournament
	eventRepo.
		On("CreateTournament", mock.Anything, mock.AnythingOfType("event.Tournament")).
		Return(func(_ context.Context, tr event.Tournament) (event.Tournament, error) {
			tournaments = append(tournaments, tr)
			return tr, nil
		}).
		Times(3)

	eventRepo.
		On("UpdateRemoteLink", mock.Anything, int64(12), "gg-77", "https://bhmc.golfgenius.com/pages/77").
		Return(nil).
		Once()

	svc := NewEventSyncService(provider, newTestResolver(provider), eventRepo, resultRepo, nil)
	got, err := svc.SyncEvent(ctx, 12)
	require.NoError(t, err)

	require.Equal(t, []string{"results", "tournaments", "rounds"}, order)
	require.Equal(t, EventSyncResult{
		EventID:       12,
		RemoteEventID: "gg-77",
		PortalURL:     "https://bhmc.golfgenius.com/pages/77",
		Rounds:        2,
		Tournaments:   3,
	}, got)

	require.Len(t, rounds, 2)
	require.Equal(t, "r-1", rounds[0].RemoteID)
	require.Equal(t, 1, rounds[0].Number)
	require.Equal(t, local.StartDate, rounds[1].Date)

	byRemote := make(map[string]event.Tournament, len(tournaments))
	for _, tr := range tournaments {
		byRemote[tr.RemoteID] = tr
	}
	require.Equal(t, "skins", byRemote["t-1"].Format)
	require.False(t, byRemote["t-1"].IsNet)
	require.Equal(t, "stroke", byRemote["t-2"].Format)
	require.True(t, byRemote["t-2"].IsNet)
	require.Equal(t, "quota", byRemote["t-3"].Format)
	require.Equal(t, int64(102), byRemote["t-3"].RoundID)
}

func TestEventSyncService_SyncEvent_ResolveFailureLeavesDataUntouched(t *testing.T) {
	t.Parallel()

	provider := seasonedProvider()
	local := event.Event{ID: 5, Name: "Nothing Scheduled", StartDate: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)}

	eventRepo := eventmock.NewRepository(t)
	resultRepo := resultmock.NewRepository(t)
	eventRepo.On("GetByID", mock.Anything, int64(5)).Return(local, true, nil).Once()

	svc := NewEventSyncService(provider, newTestResolver(provider), eventRepo, resultRepo, nil)
	_, err := svc.SyncEvent(context.Background(), 5)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventSyncService_SyncEvent_UnknownEvent(t *testing.T) {
	t.Parallel()

	eventRepo := eventmock.NewRepository(t)
	resultRepo := resultmock.NewRepository(t)
	eventRepo.On("GetByID", mock.Anything, int64(404)).Return(event.Event{}, false, nil).Once()

	provider := seasonedProvider()
	svc := NewEventSyncService(provider, newTestResolver(provider), eventRepo, resultRepo, nil)
	_, err := svc.SyncEvent(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPortalURL(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                            "",
		"bhmc.golfgenius.com/x":       "https://bhmc.golfgenius.com/x",
		"//bhmc.golfgenius.com/x":     "https://bhmc.golfgenius.com/x",
		"http://bhmc.golfgenius.com":  "http://bhmc.golfgenius.com",
		"HTTPS://bhmc.golfgenius.com": "HTTPS://bhmc.golfgenius.com",
	}
	for in, want := range cases {
		if got := portalURL(in); got != want {
			t.Fatalf("portalURL(%q)=%q want=%q", in, got, want)
		}
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/registration"
	"github.com/finleysg/bhmc-admin-sub001/internal/infrastructure/repository/memory"
	registrationmock "github.com/finleysg/bhmc-admin-sub001/internal/mocks/domain/registration"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type exportFixture struct {
	provider      *fakeProvider
	players       *memory.PlayerRepository
	registrations *memory.RegistrationRepository
	events        *memory.EventRepository
	tracker       *progress.Tracker[ExportResult]
}

func newExportFixture(remoteEventID string, withFees bool) exportFixture {
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	fees := memory.SeedFees()
	if !withFees {
		fees = nil
	}
	events := memory.SeedEvents()
	events[0].RemoteID = remoteEventID

	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	return exportFixture{
		provider:      newFakeProvider(),
		players:       players,
		registrations: memory.NewRegistrationRepository(memory.SeedSlots(memory.SeedPlayers()), fees, players),
		events:        memory.NewEventRepository(events),
		tracker:       progress.NewTracker[ExportResult](progress.Config{}, nil).WithClock(func() time.Time { return now }),
	}
}

func (f exportFixture) service(concurrency int) *RosterExportService {
	return NewRosterExportService(f.provider, f.events, f.registrations, f.tracker, RosterExportConfig{Concurrency: concurrency}, nil)
}

func TestRosterExportService_Export_SecondRunUpdatesInsteadOfCreating(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newExportFixture("gg-77", true)
	svc := fx.service(2)

	first, err := svc.Export(ctx, memory.SeedEventID, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Total)
	assert.Equal(t, 4, first.Created)
	assert.Zero(t, first.Updated)
	assert.Empty(t, first.Errors)

	second, err := svc.Export(ctx, memory.SeedEventID, nil)
	require.NoError(t, err)
	assert.Zero(t, second.Created)
	assert.Equal(t, 4, second.Updated)
	assert.Equal(t, 4, fx.provider.createdCount())

	slots, err := fx.registrations.ListRegisteredSlots(ctx, memory.SeedEventID)
	require.NoError(t, err)
	for _, slot := range slots {
		assert.NotEmpty(t, slot.RemoteID, "slot %d should carry its roster member id", slot.ID)
	}
}

func TestRosterExportService_Export_MatchesExistingMemberByGHIN(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newExportFixture("gg-77", true)
	fx.provider.eventRoster["gg-77"] = []ExternalRosterMember{
		{ID: "rm-ben", FirstName: "Ben", LastName: "Ortiz", GHIN: "2345678"},
	}

	out, err := fx.service(10).Export(ctx, memory.SeedEventID, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Created)
	assert.Equal(t, 1, out.Updated)

	update, ok := fx.provider.updated["rm-ben"]
	require.True(t, ok)
	assert.Equal(t, "102", update.ExternalID)
	assert.Equal(t, "2345678", update.GHIN)
	assert.Equal(t, map[string]string{"EF": "Y", "GS": "Y", "NS": "Y"}, update.CustomFields)

	slot, _, err := fx.registrations.GetSlot(ctx, 102)
	require.NoError(t, err)
	assert.Equal(t, "rm-ben", slot.RemoteID)
}

func TestRosterExportService_Export_CustomFieldsAndMissingGHIN(t *testing.T) {
	t.Parallel()

	fx := newExportFixture("gg-77", true)
	_, err := fx.service(4).Export(context.Background(), memory.SeedEventID, nil)
	require.NoError(t, err)

	byExternal := make(map[string]RosterMemberInput)
	for _, in := range fx.provider.created {
		byExternal[in.ExternalID] = in
	}
	assert.Equal(t, map[string]string{"EF": "Y", "GS": "Y", "NS": "N"}, byExternal["101"].CustomFields)
	assert.Equal(t, "1234567", byExternal["101"].GHIN)
	assert.Empty(t, byExternal["103"].GHIN)
}

func TestRosterExportService_Export_RecordsItemErrors(t *testing.T) {
	t.Parallel()

	fx := newExportFixture("gg-77", true)
	fx.provider.createErr["103"] = errors.New("golf genius rejected member")

	out, err := fx.service(2).Export(context.Background(), memory.SeedEventID, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Created)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, int64(103), out.Errors[0].SlotID)
	assert.Equal(t, int64(3), out.Errors[0].PlayerID)
	assert.Contains(t, out.Errors[0].Error, "rejected")
}

func TestRosterExportService_Export_ReportsProgressPerBatch(t *testing.T) {
	t.Parallel()

	fx := newExportFixture("gg-77", true)
	var seen []progress.Event
	report := Reporter(func(ev progress.Event) { seen = append(seen, ev) })

	_, err := fx.service(3).Export(context.Background(), memory.SeedEventID, report)
	require.NoError(t, err)

	processed := make([]int, 0, len(seen))
	for _, ev := range seen {
		assert.Equal(t, 4, ev.TotalUnits)
		assert.Equal(t, progress.StatusProcessing, ev.Status)
		processed = append(processed, ev.ProcessedUnits)
	}
	assert.Equal(t, []int{0, 3, 4}, processed)
}

func TestRosterExportService_Export_Preconditions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		remoteID string
		withFees bool
		eventID  int64
		want     error
	}{
		{name: "event not linked", remoteID: "", withFees: true, eventID: memory.SeedEventID, want: ErrInvalidInput},
		{name: "no fees configured", remoteID: "gg-77", withFees: false, eventID: memory.SeedEventID, want: ErrInvalidInput},
		{name: "unknown event", remoteID: "gg-77", withFees: true, eventID: 999, want: ErrNotFound},
		{name: "invalid event id", remoteID: "gg-77", withFees: true, eventID: 0, want: ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fx := newExportFixture(tc.remoteID, tc.withFees)
			_, err := fx.service(2).Export(context.Background(), tc.eventID, nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if fx.provider.createdCount() != 0 {
				t.Fatalf("expected no provider writes")
			}
		})
	}
}

func TestRosterExportService_Export_SlotUpdateFailureIsItemError(t *testing.T) {
	t.Parallel()

	fx := newExportFixture("gg-77", true)
	slots, err := fx.registrations.ListRegisteredSlots(context.Background(), memory.SeedEventID)
	require.NoError(t, err)

	regRepo := registrationmock.NewRepository(t)
	regRepo.On("ListEventFees", mock.Anything, memory.SeedEventID).Return(memory.SeedFees(), nil).Once()
	regRepo.On("ListRegisteredSlots", mock.Anything, memory.SeedEventID).Return(slots[:1], nil).Once()
	regRepo.On("UpdateSlotRemoteID", mock.Anything, slots[0].ID, mock.AnythingOfType("string")).Return(errors.New("db down")).Once()

	svc := NewRosterExportService(fx.provider, fx.events, regRepo, fx.tracker, RosterExportConfig{Concurrency: 2}, nil)
	out, err := svc.Export(context.Background(), memory.SeedEventID, nil)
	require.NoError(t, err)
	assert.Zero(t, out.Created)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, slots[0].ID, out.Errors[0].SlotID)
	assert.Contains(t, out.Errors[0].Error, "db down")
	assert.Equal(t, 1, fx.provider.createdCount(), "the member was created before the slot write failed")
}

func TestRosterExportService_Export_FeeLookupFailure(t *testing.T) {
	t.Parallel()

	fx := newExportFixture("gg-77", true)
	regRepo := registrationmock.NewRepository(t)
	regRepo.On("ListEventFees", mock.Anything, memory.SeedEventID).Return([]registration.Fee(nil), errors.New("db down")).Once()

	svc := NewRosterExportService(fx.provider, fx.events, regRepo, fx.tracker, RosterExportConfig{}, nil)
	_, err := svc.Export(context.Background(), memory.SeedEventID, nil)
	require.Error(t, err)
	assert.Zero(t, fx.provider.createdCount())
}

func TestRosterExportService_StartExport_TracksRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newExportFixture("gg-77", true)
	svc := fx.service(2)

	stream, err := svc.StartExport(ctx, memory.SeedEventID)
	require.NoError(t, err)

	_, err = svc.StartExport(ctx, memory.SeedEventID)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	select {
	case <-stream.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("export did not finish")
	}

	last, ok := stream.Last()
	require.True(t, ok)
	assert.Equal(t, progress.StatusComplete, last.Status)
	assert.Equal(t, 4, last.ProcessedUnits)
	assert.Contains(t, last.Message, "Exported 4 players")

	outcome, err := fx.tracker.GetResult(memory.SeedEventID)
	require.NoError(t, err)
	assert.Equal(t, 4, outcome.Result.Created)
}

func TestStartTracked_FailurePublishesError(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	tracker := progress.NewTracker[ExportResult](progress.Config{}, nil).WithClock(func() time.Time { return now })

	runErr := errors.New("golf genius unavailable")
	stream, err := startTracked(context.Background(), tracker, 7, "test op", nil, func(context.Context, Reporter) (ExportResult, error) {
		return ExportResult{}, runErr
	})
	require.NoError(t, err)
	<-stream.Done()

	last, _ := stream.Last()
	assert.Equal(t, progress.StatusError, last.Status)
	assert.Equal(t, runErr.Error(), last.Message)

	outcome, err := tracker.GetResult(7)
	require.NoError(t, err)
	assert.Equal(t, progress.StatusError, outcome.Status)
}

func TestStartTracked_FailureKeepsPartialResult(t *testing.T) {
	t.Parallel()

	tracker := progress.NewTracker[ExportResult](progress.Config{}, nil)
	partial := ExportResult{EventID: 8, Created: 2, Total: 4}

	stream, err := startTracked(context.Background(), tracker, 8, "test op", nil, func(context.Context, Reporter) (ExportResult, error) {
		return partial, errors.New("golf genius unavailable")
	})
	require.NoError(t, err)
	<-stream.Done()

	outcome, err := tracker.GetResult(8)
	require.NoError(t, err)
	assert.Equal(t, progress.StatusError, outcome.Status)
	assert.Equal(t, partial, outcome.Result)
}

package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/result"
)

var errUnexpectedCall = errors.New("unexpected provider call")

// fakeProvider answers provider calls from canned data and records writes.
type fakeProvider struct {
	mu sync.Mutex

	seasons     []ExternalSeason
	seasonsErr  error
	seasonCalls int

	events  map[string][]ExternalEvent
	rounds  map[string][]ExternalRound
	tourney map[string][]ExternalTournament

	eventRoster  map[string][]ExternalRosterMember
	masterRoster []ExternalRosterMember
	rosterPages  []int
	memberByMail map[string]ExternalRosterMember

	teeSheets map[string][]ExternalTeeSheetPlayer
	results   map[string]result.Payload
	resultErr map[string]error

	nextMemberID int
	created      []RosterMemberInput
	updated      map[string]RosterMemberInput
	createErr    map[string]error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		events:       make(map[string][]ExternalEvent),
		rounds:       make(map[string][]ExternalRound),
		tourney:      make(map[string][]ExternalTournament),
		eventRoster:  make(map[string][]ExternalRosterMember),
		memberByMail: make(map[string]ExternalRosterMember),
		teeSheets:    make(map[string][]ExternalTeeSheetPlayer),
		results:      make(map[string]result.Payload),
		resultErr:    make(map[string]error),
		updated:      make(map[string]RosterMemberInput),
		createErr:    make(map[string]error),
		nextMemberID: 9000,
	}
}

func (f *fakeProvider) ListSeasons(_ context.Context) ([]ExternalSeason, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seasonCalls++
	return f.seasons, f.seasonsErr
}

func (f *fakeProvider) ListEvents(_ context.Context, seasonID, _ string) ([]ExternalEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[seasonID], nil
}

func (f *fakeProvider) ListRounds(_ context.Context, eventID string) ([]ExternalRound, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rounds[eventID], nil
}

func (f *fakeProvider) ListTournaments(_ context.Context, _, roundID string) ([]ExternalTournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tourney[roundID], nil
}

func (f *fakeProvider) ListEventRoster(_ context.Context, eventID string, page int) ([]ExternalRosterMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return pageOf(f.eventRoster[eventID], page), nil
}

func (f *fakeProvider) ListMasterRoster(_ context.Context, page int) ([]ExternalRosterMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rosterPages = append(f.rosterPages, page)
	return pageOf(f.masterRoster, page), nil
}

func (f *fakeProvider) GetMasterRosterMember(_ context.Context, email string) (ExternalRosterMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.memberByMail[email]
	if !ok {
		return ExternalRosterMember{}, ErrNotFound
	}
	return m, nil
}

func (f *fakeProvider) GetTeeSheet(_ context.Context, _, roundID string) ([]ExternalTeeSheetPlayer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.teeSheets[roundID], nil
}

func (f *fakeProvider) GetTournamentResults(_ context.Context, _, _, tournamentID string) (result.Payload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.resultErr[tournamentID]; err != nil {
		return result.Payload{}, err
	}
	payload, ok := f.results[tournamentID]
	if !ok {
		return result.Payload{}, errUnexpectedCall
	}
	return payload, nil
}

// CreateRosterMember appends the member to the event roster so a later run sees it.
func (f *fakeProvider) CreateRosterMember(_ context.Context, eventID string, input RosterMemberInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.createErr[input.ExternalID]; err != nil {
		return "", err
	}
	f.nextMemberID++
	id := strconv.Itoa(f.nextMemberID)
	f.created = append(f.created, input)
	f.eventRoster[eventID] = append(f.eventRoster[eventID], ExternalRosterMember{
		ID:         id,
		ExternalID: input.ExternalID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		GHIN:       input.GHIN,
	})
	return id, nil
}

func (f *fakeProvider) UpdateRosterMember(_ context.Context, _, memberID string, input RosterMemberInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated[memberID] = input
	return nil
}

func (f *fakeProvider) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func pageOf(items []ExternalRosterMember, page int) []ExternalRosterMember {
	start := (page - 1) * ProviderPageSize
	if start >= len(items) || start < 0 {
		return nil
	}
	end := min(start+ProviderPageSize, len(items))
	return items[start:end]
}

func intPtr(v int) *int { return &v }

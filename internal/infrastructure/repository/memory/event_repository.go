package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/event"
)

type EventRepository struct {
	mu               sync.RWMutex
	events           map[int64]event.Event
	rounds           map[int64][]event.Round
	tournaments      map[int64][]event.Tournament
	nextRoundID      int64
	nextTournamentID int64
}

func NewEventRepository(events []event.Event) *EventRepository {
	byID := make(map[int64]event.Event, len(events))
	for _, ev := range events {
		byID[ev.ID] = ev
	}

	return &EventRepository{
		events:      byID,
		rounds:      make(map[int64][]event.Round),
		tournaments: make(map[int64][]event.Tournament),
	}
}

func (r *EventRepository) GetByID(_ context.Context, eventID int64) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ev, ok := r.events[eventID]
	return ev, ok, nil
}

func (r *EventRepository) UpdateRemoteLink(_ context.Context, eventID int64, remoteID, portalURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev, ok := r.events[eventID]
	if !ok {
		return fmt.Errorf("event not found: %d", eventID)
	}
	ev.RemoteID = remoteID
	ev.PortalURL = portalURL
	r.events[eventID] = ev
	return nil
}

func (r *EventRepository) ListRounds(_ context.Context, eventID int64) ([]event.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]event.Round(nil), r.rounds[eventID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *EventRepository) ListTournaments(_ context.Context, eventID int64) ([]event.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]event.Tournament(nil), r.tournaments[eventID]...), nil
}

func (r *EventRepository) DeleteTournamentsByEvent(_ context.Context, eventID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tournaments, eventID)
	return nil
}

func (r *EventRepository) DeleteRoundsByEvent(_ context.Context, eventID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.tournaments[eventID]) > 0 {
		return fmt.Errorf("event %d still has tournaments", eventID)
	}
	delete(r.rounds, eventID)
	return nil
}

func (r *EventRepository) CreateRound(_ context.Context, round event.Round) (event.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[round.EventID]; !ok {
		return event.Round{}, fmt.Errorf("event not found: %d", round.EventID)
	}
	r.nextRoundID++
	round.ID = r.nextRoundID
	r.rounds[round.EventID] = append(r.rounds[round.EventID], round)
	return round, nil
}

func (r *EventRepository) CreateTournament(_ context.Context, tournament event.Tournament) (event.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	for _, round := range r.rounds[tournament.EventID] {
		if round.ID == tournament.RoundID {
			found = true
			break
		}
	}
	if !found {
		return event.Tournament{}, fmt.Errorf("round not found: %d", tournament.RoundID)
	}
	r.nextTournamentID++
	tournament.ID = r.nextTournamentID
	r.tournaments[tournament.EventID] = append(r.tournaments[tournament.EventID], tournament)
	return tournament, nil
}

// EventOfTournament returns the event owning tournamentID, or zero.
func (r *EventRepository) EventOfTournament(tournamentID int64) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for eventID, items := range r.tournaments {
		for _, t := range items {
			if t.ID == tournamentID {
				return eventID
			}
		}
	}
	return 0
}

package memory

import (
	"context"
	"sync"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/result"
)

type ResultRepository struct {
	mu           sync.RWMutex
	byTournament map[int64][]result.Result
	eventOf      func(tournamentID int64) int64
}

// NewResultRepository needs eventOf to map tournaments to events for DeleteByEvent.
func NewResultRepository(eventOf func(tournamentID int64) int64) *ResultRepository {
	return &ResultRepository{
		byTournament: make(map[int64][]result.Result),
		eventOf:      eventOf,
	}
}

func (r *ResultRepository) DeleteByEvent(_ context.Context, eventID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for tournamentID := range r.byTournament {
		if r.eventOf == nil || r.eventOf(tournamentID) == eventID {
			delete(r.byTournament, tournamentID)
		}
	}
	return nil
}

func (r *ResultRepository) ReplaceForTournament(_ context.Context, tournamentID int64, rows []result.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(rows) == 0 {
		delete(r.byTournament, tournamentID)
		return nil
	}
	r.byTournament[tournamentID] = append([]result.Result(nil), rows...)
	return nil
}

func (r *ResultRepository) ListByTournament(_ context.Context, tournamentID int64) ([]result.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]result.Result(nil), r.byTournament[tournamentID]...), nil
}

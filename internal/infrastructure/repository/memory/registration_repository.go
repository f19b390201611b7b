package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/player"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/registration"
)

// RegistrationRepository reads slot players from a PlayerRepository so remote id
// updates on players show through.
type RegistrationRepository struct {
	mu      sync.RWMutex
	slots   map[int64]registration.Slot
	fees    map[int64][]registration.Fee
	players *PlayerRepository
}

func NewRegistrationRepository(slots []registration.Slot, fees []registration.Fee, players *PlayerRepository) *RegistrationRepository {
	bySlot := make(map[int64]registration.Slot, len(slots))
	for _, s := range slots {
		bySlot[s.ID] = cloneSlot(s)
	}
	byEvent := make(map[int64][]registration.Fee)
	for _, f := range fees {
		byEvent[f.EventID] = append(byEvent[f.EventID], f)
	}

	return &RegistrationRepository{
		slots:   bySlot,
		fees:    byEvent,
		players: players,
	}
}

func (r *RegistrationRepository) ListRegisteredSlots(ctx context.Context, eventID int64) ([]registration.Slot, error) {
	r.mu.RLock()
	out := make([]registration.Slot, 0)
	for _, s := range r.slots {
		if s.EventID == eventID && s.Player.ID > 0 {
			out = append(out, cloneSlot(s))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	for i := range out {
		out[i].Player = r.currentPlayer(ctx, out[i].Player)
	}
	return out, nil
}

func (r *RegistrationRepository) GetSlot(ctx context.Context, slotID int64) (registration.Slot, bool, error) {
	r.mu.RLock()
	s, ok := r.slots[slotID]
	r.mu.RUnlock()
	if !ok {
		return registration.Slot{}, false, nil
	}

	s = cloneSlot(s)
	s.Player = r.currentPlayer(ctx, s.Player)
	return s, true, nil
}

func (r *RegistrationRepository) UpdateSlotRemoteID(_ context.Context, slotID int64, remoteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[slotID]
	if !ok {
		return fmt.Errorf("registration slot not found: %d", slotID)
	}
	s.RemoteID = remoteID
	r.slots[slotID] = s
	return nil
}

func (r *RegistrationRepository) ListEventFees(_ context.Context, eventID int64) ([]registration.Fee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]registration.Fee(nil), r.fees[eventID]...), nil
}

func (r *RegistrationRepository) currentPlayer(ctx context.Context, p player.Player) player.Player {
	if r.players == nil || p.ID <= 0 {
		return p
	}
	if current, ok, _ := r.players.GetByID(ctx, p.ID); ok {
		return current
	}
	return p
}

func cloneSlot(s registration.Slot) registration.Slot {
	copied := s
	copied.PaidFeeIDs = append([]int64(nil), s.PaidFeeIDs...)
	return copied
}

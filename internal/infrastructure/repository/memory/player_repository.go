package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[int64]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	byID := make(map[int64]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	return &PlayerRepository{players: byID}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) ListMembers(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		if p.IsMember {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindByGHIN compares normalized handicap ids on both sides.
func (r *PlayerRepository) FindByGHIN(_ context.Context, ghin string) (player.Player, bool, error) {
	if !player.HasGHIN(ghin) {
		return player.Player{}, false, nil
	}
	want := player.NormalizeGHIN(ghin)

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.findLocked(func(p player.Player) bool { return player.NormalizeGHIN(p.GHIN) == want })
}

func (r *PlayerRepository) FindByRemoteID(_ context.Context, remoteID string) (player.Player, bool, error) {
	remoteID = strings.TrimSpace(remoteID)
	if remoteID == "" {
		return player.Player{}, false, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.findLocked(func(p player.Player) bool { return p.RemoteID == remoteID })
}

func (r *PlayerRepository) UpdateRemoteID(_ context.Context, playerID int64, remoteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[playerID]
	if !ok {
		return fmt.Errorf("player not found: %d", playerID)
	}
	p.RemoteID = remoteID
	r.players[playerID] = p
	return nil
}

// findLocked returns the lowest id match so lookups are deterministic.
func (r *PlayerRepository) findLocked(match func(player.Player) bool) (player.Player, bool, error) {
	var (
		best  player.Player
		found bool
	)
	for _, p := range r.players {
		if !match(p) {
			continue
		}
		if !found || p.ID < best.ID {
			best, found = p, true
		}
	}
	return best, found, nil
}

package registration

import "github.com/finleysg/bhmc-admin-sub001/internal/domain/player"

// Fee is a fee type configured for an event, exported as a custom roster field.
type Fee struct {
	ID      int64
	EventID int64
	Code    string
	Name    string
}

// Slot is one player's registration in an event.
type Slot struct {
	ID         int64
	EventID    int64
	Player     player.Player
	RemoteID   string
	PaidFeeIDs []int64
}

func (s Slot) PaidFee(feeID int64) bool {
	for _, id := range s.PaidFeeIDs {
		if id == feeID {
			return true
		}
	}
	return false
}

package registration

import "context"

// Repository describes registration persistence needs from use cases.
type Repository interface {
	ListRegisteredSlots(ctx context.Context, eventID int64) ([]Slot, error)
	GetSlot(ctx context.Context, slotID int64) (Slot, bool, error)
	UpdateSlotRemoteID(ctx context.Context, slotID int64, remoteID string) error
	ListEventFees(ctx context.Context, eventID int64) ([]Fee, error)
}

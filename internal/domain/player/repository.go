package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	ListMembers(ctx context.Context) ([]Player, error)
	FindByGHIN(ctx context.Context, ghin string) (Player, bool, error)
	FindByRemoteID(ctx context.Context, remoteID string) (Player, bool, error)
	UpdateRemoteID(ctx context.Context, playerID int64, remoteID string) error
}

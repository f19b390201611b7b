package event

import "context"

// Repository describes event persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, eventID int64) (Event, bool, error)
	UpdateRemoteLink(ctx context.Context, eventID int64, remoteID, portalURL string) error
	ListRounds(ctx context.Context, eventID int64) ([]Round, error)
	ListTournaments(ctx context.Context, eventID int64) ([]Tournament, error)
	DeleteTournamentsByEvent(ctx context.Context, eventID int64) error
	DeleteRoundsByEvent(ctx context.Context, eventID int64) error
	CreateRound(ctx context.Context, round Round) (Round, error)
	CreateTournament(ctx context.Context, tournament Tournament) (Tournament, error)
}

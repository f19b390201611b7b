package result

import "context"

// Repository describes tournament result persistence needs from use cases.
type Repository interface {
	DeleteByEvent(ctx context.Context, eventID int64) error
	// ReplaceForTournament swaps every stored row of a tournament for rows in one write.
	ReplaceForTournament(ctx context.Context, tournamentID int64, rows []Result) error
}

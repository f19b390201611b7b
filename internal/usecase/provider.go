package usecase

import (
	"context"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/result"
)

// ProviderPageSize is the page size the provider uses for roster listings.
// A page shorter than this is the last one.
const ProviderPageSize = 100

type GolfGeniusProvider interface {
	ListSeasons(ctx context.Context) ([]ExternalSeason, error)
	ListEvents(ctx context.Context, seasonID, categoryID string) ([]ExternalEvent, error)
	ListRounds(ctx context.Context, eventID string) ([]ExternalRound, error)
	ListTournaments(ctx context.Context, eventID, roundID string) ([]ExternalTournament, error)
	ListEventRoster(ctx context.Context, eventID string, page int) ([]ExternalRosterMember, error)
	ListMasterRoster(ctx context.Context, page int) ([]ExternalRosterMember, error)
	GetMasterRosterMember(ctx context.Context, email string) (ExternalRosterMember, error)
	GetTeeSheet(ctx context.Context, eventID, roundID string) ([]ExternalTeeSheetPlayer, error)
	GetTournamentResults(ctx context.Context, eventID, roundID, tournamentID string) (result.Payload, error)
	CreateRosterMember(ctx context.Context, eventID string, input RosterMemberInput) (string, error)
	UpdateRosterMember(ctx context.Context, eventID, memberID string, input RosterMemberInput) error
}

type ExternalSeason struct {
	ID      string
	Name    string
	Current bool
}

type ExternalEvent struct {
	ID         string
	Name       string
	StartDate  string
	EndDate    string
	Website    string
	SeasonID   string
	CategoryID string
}

// DateKey is the first ten characters of the start date, YYYY-MM-DD.
func (e ExternalEvent) DateKey() string {
	if len(e.StartDate) < 10 {
		return e.StartDate
	}
	return e.StartDate[:10]
}

type ExternalRound struct {
	ID    string
	Name  string
	Date  string
	Index int
}

type ExternalTournament struct {
	ID             string
	Name           string
	Format         string
	HandicapFormat string
}

// ExternalRosterMember is a provider roster entry. ExternalID carries the local
// registration slot id for event rosters.
type ExternalRosterMember struct {
	ID           string
	MemberCardID string
	ExternalID   string
	FirstName    string
	LastName     string
	Email        string
	GHIN         string
}

type ExternalTeeSheetPlayer struct {
	Name           string
	RosterID       string
	MemberCardID   string
	ExternalID     string
	GHIN           string
	HandicapIndex  string
	CourseHandicap string
	TeeName        string
	CourseName     string
	// Scores holds gross strokes per hole; nil marks an unplayed hole.
	Scores       []*int
	HandicapDots []int
}

type RosterMemberInput struct {
	ExternalID   string
	FirstName    string
	LastName     string
	Email        string
	GHIN         string
	CustomFields map[string]string
}

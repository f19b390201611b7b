package result

const (
	PayoutTypeCredit = "Credit"
	PayoutTypePoints = "Points"

	PayoutToIndividual = "Individual"
	PayoutToTeam       = "Team"

	PayoutStatusPending   = "Pending"
	PayoutStatusConfirmed = "Confirmed"
)

// Result is one normalized tournament result row. Amount is a positive
// two-decimal string; rows without a positive amount are never produced.
type Result struct {
	TournamentID int64
	PlayerID     int64
	TeamID       string
	Flight       string
	Position     int
	Score        *int
	Amount       string
	PayoutType   string
	PayoutTo     string
	PayoutStatus string
	Summary      string
	Details      string
}

// Payload is a provider tournament result document reduced to what the parsers read.
type Payload struct {
	TournamentRemoteID string
	Name               string
	Scopes             []Scope
}

// Scope is a flight or division inside a tournament.
type Scope struct {
	Name       string
	Aggregates []Aggregate
}

// Aggregate is one leaderboard line: a player, or a team for team formats.
type Aggregate struct {
	ID          string
	Name        string
	Position    string
	Total       string
	Score       string
	Purse       string
	Points      string
	MemberCards []MemberCard
	Individuals []Individual
}

type MemberCard struct {
	MemberCardID string
	Name         string
}

// Individual is a team member listed under a team aggregate.
type Individual struct {
	MemberCardID string
	Name         string
	FirstName    string
	LastName     string
	Purse        string
}

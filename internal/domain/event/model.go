package event

import "time"

// Event is a locally managed golf event. RemoteID links it to the provider event.
type Event struct {
	ID        int64
	Name      string
	StartDate time.Time
	RemoteID  string
	PortalURL string
}

// StartDateKey is the event start date as YYYY-MM-DD.
func (e Event) StartDateKey() string {
	return e.StartDate.Format(time.DateOnly)
}

func (e Event) Linked() bool {
	return e.RemoteID != ""
}

type Round struct {
	ID       int64
	EventID  int64
	RemoteID string
	Number   int
	Name     string
	Date     time.Time
}

type Tournament struct {
	ID       int64
	EventID  int64
	RoundID  int64
	RemoteID string
	Name     string
	Format   string
	IsNet    bool
}

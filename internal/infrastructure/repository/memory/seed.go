package memory

import (
	"time"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/event"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/player"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/registration"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/scorecard"
)

const (
	SeedEventID  int64 = 1
	SeedCourseID int64 = 1
)

func SeedEvents() []event.Event {
	return []event.Event{
		{ID: SeedEventID, Name: "Spring Four Ball", StartDate: time.Date(time.Now().Year(), time.May, 10, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Club Championship", StartDate: time.Date(time.Now().Year(), time.August, 2, 0, 0, 0, 0, time.UTC)},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: 1, FirstName: "Ada", LastName: "Park", Email: "ada.park@example.com", GHIN: "1234567", IsMember: true},
		{ID: 2, FirstName: "Ben", LastName: "Ortiz", Email: "ben.ortiz@example.com", GHIN: "0002345678", IsMember: true},
		{ID: 3, FirstName: "Cal", LastName: "Reyes", Email: "cal.reyes@example.com", IsMember: true},
		{ID: 4, FirstName: "Dee", LastName: "Quinn", Email: "dee.quinn@example.com", GHIN: "7654321", IsMember: false},
	}
}

func SeedFees() []registration.Fee {
	return []registration.Fee{
		{ID: 1, EventID: SeedEventID, Code: "EF", Name: "Event Fee"},
		{ID: 2, EventID: SeedEventID, Code: "GS", Name: "Gross Skins"},
		{ID: 3, EventID: SeedEventID, Code: "NS", Name: "Net Skins"},
	}
}

func SeedSlots(players []player.Player) []registration.Slot {
	byID := make(map[int64]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	return []registration.Slot{
		{ID: 101, EventID: SeedEventID, Player: byID[1], PaidFeeIDs: []int64{1, 2}},
		{ID: 102, EventID: SeedEventID, Player: byID[2], PaidFeeIDs: []int64{1, 2, 3}},
		{ID: 103, EventID: SeedEventID, Player: byID[3], PaidFeeIDs: []int64{1}},
		{ID: 104, EventID: SeedEventID, Player: byID[4], PaidFeeIDs: []int64{1, 3}},
	}
}

func SeedCourses() []scorecard.Course {
	return []scorecard.Course{{ID: SeedCourseID, Name: "East"}}
}

func SeedTees() []scorecard.Tee {
	return []scorecard.Tee{
		{ID: 1, CourseID: SeedCourseID, Name: "Club"},
		{ID: 2, CourseID: SeedCourseID, Name: "Forward"},
	}
}

func SeedHoles() []scorecard.Hole {
	pars := []int{4, 4, 3, 5, 4, 4, 3, 4, 5}
	out := make([]scorecard.Hole, 0, len(pars))
	for i, par := range pars {
		out = append(out, scorecard.Hole{ID: int64(i + 1), CourseID: SeedCourseID, Number: i + 1, Par: par})
	}
	return out
}

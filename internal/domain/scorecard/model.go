package scorecard

type Course struct {
	ID   int64
	Name string
}

type Tee struct {
	ID       int64
	CourseID int64
	Name     string
}

type Hole struct {
	ID       int64
	CourseID int64
	Number   int
	Par      int
}

type HoleScore struct {
	HoleID     int64
	HoleNumber int
	Score      int
	IsNet      bool
}

// Scorecard holds one player's gross and net hole scores for a round.
type Scorecard struct {
	ID             int64
	EventID        int64
	RoundID        int64
	PlayerID       int64
	CourseID       int64
	TeeID          int64
	HandicapIndex  string
	CourseHandicap int
	Scores         []HoleScore
}

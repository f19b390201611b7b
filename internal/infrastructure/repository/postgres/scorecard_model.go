package postgres

type courseTableModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type teeTableModel struct {
	ID       int64  `db:"id"`
	CourseID int64  `db:"course_id"`
	Name     string `db:"name"`
}

type holeTableModel struct {
	ID       int64 `db:"id"`
	CourseID int64 `db:"course_id"`
	Number   int   `db:"hole_number"`
	Par      int   `db:"par"`
}

type scorecardInsertModel struct {
	EventID        int64  `db:"event_id"`
	RoundID        int64  `db:"round_id"`
	PlayerID       int64  `db:"player_id"`
	CourseID       int64  `db:"course_id"`
	TeeID          int64  `db:"tee_id"`
	HandicapIndex  string `db:"handicap_index"`
	CourseHandicap int    `db:"course_handicap"`
}

type scoreInsertModel struct {
	ScorecardID int64 `db:"scorecard_id"`
	HoleID      int64 `db:"hole_id"`
	HoleNumber  int   `db:"hole_number"`
	Score       int   `db:"score"`
	IsNet       bool  `db:"is_net"`
}

type upsertedScorecard struct {
	ID       int64 `db:"id"`
	Inserted bool  `db:"inserted"`
}

package scorecard

import "context"

// Repository describes scorecard persistence needs from use cases.
type Repository interface {
	FindCourseByName(ctx context.Context, name string) (Course, bool, error)
	FindTee(ctx context.Context, courseID int64, name string) (Tee, bool, error)
	ListHoles(ctx context.Context, courseID int64) ([]Hole, error)
	// Upsert replaces the card for (event, round, player) and reports whether it was new.
	Upsert(ctx context.Context, card Scorecard) (bool, error)
}

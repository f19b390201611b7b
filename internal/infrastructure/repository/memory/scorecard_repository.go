package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/scorecard"
)

type ScorecardRepository struct {
	mu      sync.RWMutex
	courses []scorecard.Course
	tees    []scorecard.Tee
	holes   map[int64][]scorecard.Hole
	cards   map[string]scorecard.Scorecard
	nextID  int64
}

func NewScorecardRepository(courses []scorecard.Course, tees []scorecard.Tee, holes []scorecard.Hole) *ScorecardRepository {
	byCourse := make(map[int64][]scorecard.Hole)
	for _, h := range holes {
		byCourse[h.CourseID] = append(byCourse[h.CourseID], h)
	}
	for id := range byCourse {
		sort.Slice(byCourse[id], func(i, j int) bool { return byCourse[id][i].Number < byCourse[id][j].Number })
	}

	return &ScorecardRepository{
		courses: append([]scorecard.Course(nil), courses...),
		tees:    append([]scorecard.Tee(nil), tees...),
		holes:   byCourse,
		cards:   make(map[string]scorecard.Scorecard),
	}
}

// FindCourseByName matches names case-insensitively.
func (r *ScorecardRepository) FindCourseByName(_ context.Context, name string) (scorecard.Course, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.TrimSpace(name)
	for _, c := range r.courses {
		if strings.EqualFold(c.Name, name) {
			return c, true, nil
		}
	}
	return scorecard.Course{}, false, nil
}

func (r *ScorecardRepository) FindTee(_ context.Context, courseID int64, name string) (scorecard.Tee, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.TrimSpace(name)
	for _, t := range r.tees {
		if t.CourseID == courseID && strings.EqualFold(t.Name, name) {
			return t, true, nil
		}
	}
	return scorecard.Tee{}, false, nil
}

func (r *ScorecardRepository) ListHoles(_ context.Context, courseID int64) ([]scorecard.Hole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]scorecard.Hole(nil), r.holes[courseID]...), nil
}

func (r *ScorecardRepository) Upsert(_ context.Context, card scorecard.Scorecard) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := scorecardKey(card.EventID, card.RoundID, card.PlayerID)
	existing, ok := r.cards[key]
	if ok {
		card.ID = existing.ID
	} else {
		r.nextID++
		card.ID = r.nextID
	}
	r.cards[key] = cloneScorecard(card)
	return !ok, nil
}

// Get is a read helper for callers inspecting stored cards.
func (r *ScorecardRepository) Get(eventID, roundID, playerID int64) (scorecard.Scorecard, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	card, ok := r.cards[scorecardKey(eventID, roundID, playerID)]
	return cloneScorecard(card), ok
}

func scorecardKey(eventID, roundID, playerID int64) string {
	return fmt.Sprintf("%d::%d::%d", eventID, roundID, playerID)
}

func cloneScorecard(card scorecard.Scorecard) scorecard.Scorecard {
	copied := card
	copied.Scores = append([]scorecard.HoleScore(nil), card.Scores...)
	return copied
}

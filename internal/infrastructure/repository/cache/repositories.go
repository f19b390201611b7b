package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/scorecard"
	basecache "github.com/finleysg/bhmc-admin-sub001/internal/platform/cache"
)

// ScorecardRepository caches course reference data in front of next. A scores
// import looks up the same course, tee and holes for most tee sheet entries, so
// each distinct lookup reaches storage once per TTL. Upsert passes through.
type ScorecardRepository struct {
	next    scorecard.Repository
	courses *basecache.Store[cachedCourse]
	tees    *basecache.Store[cachedTee]
	holes   *basecache.Store[[]scorecard.Hole]
}

func NewScorecardRepository(next scorecard.Repository, ttl time.Duration) *ScorecardRepository {
	return &ScorecardRepository{
		next:    next,
		courses: basecache.NewStore[cachedCourse](ttl),
		tees:    basecache.NewStore[cachedTee](ttl),
		holes:   basecache.NewStore[[]scorecard.Hole](ttl),
	}
}

func (r *ScorecardRepository) FindCourseByName(ctx context.Context, name string) (scorecard.Course, bool, error) {
	key := "course:name:" + strings.ToLower(strings.TrimSpace(name))
	cached, err := r.courses.GetOrLoad(ctx, key, func(ctx context.Context) (cachedCourse, error) {
		item, exists, err := r.next.FindCourseByName(ctx, name)
		if err != nil {
			return cachedCourse{}, err
		}
		return cachedCourse{value: item, exists: exists}, nil
	})
	if err != nil {
		return scorecard.Course{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *ScorecardRepository) FindTee(ctx context.Context, courseID int64, name string) (scorecard.Tee, bool, error) {
	key := "tee:" + strconv.FormatInt(courseID, 10) + ":" + strings.ToLower(strings.TrimSpace(name))
	cached, err := r.tees.GetOrLoad(ctx, key, func(ctx context.Context) (cachedTee, error) {
		item, exists, err := r.next.FindTee(ctx, courseID, name)
		if err != nil {
			return cachedTee{}, err
		}
		return cachedTee{value: item, exists: exists}, nil
	})
	if err != nil {
		return scorecard.Tee{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *ScorecardRepository) ListHoles(ctx context.Context, courseID int64) ([]scorecard.Hole, error) {
	key := "holes:" + strconv.FormatInt(courseID, 10)
	items, err := r.holes.GetOrLoad(ctx, key, func(ctx context.Context) ([]scorecard.Hole, error) {
		items, err := r.next.ListHoles(ctx, courseID)
		if err != nil {
			return nil, err
		}
		return append([]scorecard.Hole(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]scorecard.Hole(nil), items...), nil
}

func (r *ScorecardRepository) Upsert(ctx context.Context, card scorecard.Scorecard) (bool, error) {
	return r.next.Upsert(ctx, card)
}

type cachedCourse struct {
	value  scorecard.Course
	exists bool
}

type cachedTee struct {
	value  scorecard.Tee
	exists bool
}

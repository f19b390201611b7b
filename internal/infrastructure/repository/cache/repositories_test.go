package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/scorecard"
	scorecardmock "github.com/finleysg/bhmc-admin-sub001/internal/mocks/domain/scorecard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScorecardRepository_CachesReferenceLookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := scorecardmock.NewRepository(t)
	next.On("FindCourseByName", mock.Anything, "East").Return(scorecard.Course{ID: 1, Name: "East"}, true, nil).Once()
	next.On("FindTee", mock.Anything, int64(1), "Club").Return(scorecard.Tee{ID: 1, CourseID: 1, Name: "Club"}, true, nil).Once()
	next.On("ListHoles", mock.Anything, int64(1)).Return([]scorecard.Hole{{ID: 1, CourseID: 1, Number: 1, Par: 4}}, nil).Once()

	repo := NewScorecardRepository(next, time.Minute)
	for i := 0; i < 3; i++ {
		course, ok, err := repo.FindCourseByName(ctx, "East")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(1), course.ID)

		_, ok, err = repo.FindTee(ctx, course.ID, "Club")
		require.NoError(t, err)
		require.True(t, ok)

		holes, err := repo.ListHoles(ctx, course.ID)
		require.NoError(t, err)
		require.Len(t, holes, 1)
		holes[0].Par = 99
	}

	holes, err := repo.ListHoles(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, holes[0].Par, "callers must not mutate the cached slice")
}

func TestScorecardRepository_CachesMissesButNotErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := scorecardmock.NewRepository(t)
	next.On("FindCourseByName", mock.Anything, "West").Return(scorecard.Course{}, false, nil).Once()
	next.On("ListHoles", mock.Anything, int64(2)).Return(nil, errors.New("db down")).Twice()

	repo := NewScorecardRepository(next, time.Minute)
	for i := 0; i < 2; i++ {
		_, ok, err := repo.FindCourseByName(ctx, "West")
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = repo.ListHoles(ctx, 2)
		assert.Error(t, err)
	}
}

func TestScorecardRepository_UpsertPassesThrough(t *testing.T) {
	t.Parallel()

	next := scorecardmock.NewRepository(t)
	card := scorecard.Scorecard{EventID: 1, RoundID: 2, PlayerID: 3}
	next.On("Upsert", mock.Anything, card).Return(true, nil).Twice()

	repo := NewScorecardRepository(next, time.Minute)
	for i := 0; i < 2; i++ {
		created, err := repo.Upsert(context.Background(), card)
		require.NoError(t, err)
		assert.True(t, created)
	}
}

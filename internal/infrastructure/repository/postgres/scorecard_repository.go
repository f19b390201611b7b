package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/scorecard"
	qb "github.com/finleysg/bhmc-admin-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

// xmax is zero only for a row this statement inserted.
const scorecardUpsertSuffix = `ON CONFLICT (event_id, round_id, player_id) DO UPDATE SET
	course_id = EXCLUDED.course_id,
	tee_id = EXCLUDED.tee_id,
	handicap_index = EXCLUDED.handicap_index,
	course_handicap = EXCLUDED.course_handicap,
	updated_at = NOW()
RETURNING id, (xmax = 0) AS inserted`

type ScorecardRepository struct {
	db *sqlx.DB
}

func NewScorecardRepository(db *sqlx.DB) *ScorecardRepository {
	return &ScorecardRepository{db: db}
}

func (r *ScorecardRepository) FindCourseByName(ctx context.Context, name string) (scorecard.Course, bool, error) {
	query, args, err := qb.Select("id", "name").From("courses").
		Where(qb.Expr("LOWER(name) = LOWER(?)", strings.TrimSpace(name))).
		Limit(1).
		ToSQL()
	if err != nil {
		return scorecard.Course{}, false, fmt.Errorf("build find course query: %w", err)
	}

	var row courseTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scorecard.Course{}, false, nil
		}
		return scorecard.Course{}, false, fmt.Errorf("find course: %w", err)
	}
	return scorecard.Course{ID: row.ID, Name: row.Name}, true, nil
}

func (r *ScorecardRepository) FindTee(ctx context.Context, courseID int64, name string) (scorecard.Tee, bool, error) {
	query, args, err := qb.Select("id", "course_id", "name").From("tees").
		Where(
			qb.Eq("course_id", courseID),
			qb.Expr("LOWER(name) = LOWER(?)", strings.TrimSpace(name)),
		).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return scorecard.Tee{}, false, fmt.Errorf("build find tee query: %w", err)
	}

	var row teeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scorecard.Tee{}, false, nil
		}
		return scorecard.Tee{}, false, fmt.Errorf("find tee: %w", err)
	}
	return scorecard.Tee{ID: row.ID, CourseID: row.CourseID, Name: row.Name}, true, nil
}

func (r *ScorecardRepository) ListHoles(ctx context.Context, courseID int64) ([]scorecard.Hole, error) {
	query, args, err := qb.Select("id", "course_id", "hole_number", "par").From("holes").
		Where(qb.Eq("course_id", courseID)).
		OrderBy("hole_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list holes query: %w", err)
	}

	var rows []holeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list holes: %w", err)
	}

	out := make([]scorecard.Hole, 0, len(rows))
	for _, row := range rows {
		out = append(out, scorecard.Hole{ID: row.ID, CourseID: row.CourseID, Number: row.Number, Par: row.Par})
	}
	return out, nil
}

// Upsert writes the card header and replaces its hole scores in one transaction.
func (r *ScorecardRepository) Upsert(ctx context.Context, card scorecard.Scorecard) (bool, error) {
	var created bool
	err := withTx(ctx, r.db, "upsert scorecard", func(tx *sqlx.Tx) error {
		query, args, err := qb.InsertModel("scorecards", scorecardInsertModel{
			EventID:        card.EventID,
			RoundID:        card.RoundID,
			PlayerID:       card.PlayerID,
			CourseID:       card.CourseID,
			TeeID:          card.TeeID,
			HandicapIndex:  card.HandicapIndex,
			CourseHandicap: card.CourseHandicap,
		}, scorecardUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert scorecard query: %w", err)
		}

		var saved upsertedScorecard
		if err := tx.QueryRowxContext(ctx, query, args...).StructScan(&saved); err != nil {
			return fmt.Errorf("upsert scorecard: %w", err)
		}
		created = saved.Inserted

		deleteQuery, deleteArgs, err := qb.DeleteFrom("scorecard_scores").
			Where(qb.Eq("scorecard_id", saved.ID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete scores query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("delete scores: %w", err)
		}

		if len(card.Scores) == 0 {
			return nil
		}
		scores := make([]scoreInsertModel, 0, len(card.Scores))
		for _, s := range card.Scores {
			scores = append(scores, scoreInsertModel{
				ScorecardID: saved.ID,
				HoleID:      s.HoleID,
				HoleNumber:  s.HoleNumber,
				Score:       s.Score,
				IsNet:       s.IsNet,
			})
		}
		insertQuery, insertArgs, err := qb.InsertModels("scorecard_scores", scores, "")
		if err != nil {
			return fmt.Errorf("build insert scores query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert scores: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

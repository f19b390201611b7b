package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/result"
	qb "github.com/finleysg/bhmc-admin-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) DeleteByEvent(ctx context.Context, eventID int64) error {
	query, args, err := qb.DeleteFrom("tournament_results").
		Where(qb.Expr("tournament_id IN (SELECT id FROM event_tournaments WHERE event_id = ?)", eventID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete results by event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete results by event: %w", err)
	}
	return nil
}

// ReplaceForTournament deletes and inserts inside one transaction so readers
// never observe a partially imported tournament.
func (r *ResultRepository) ReplaceForTournament(ctx context.Context, tournamentID int64, rows []result.Result) error {
	return withTx(ctx, r.db, "replace tournament results", func(tx *sqlx.Tx) error {
		query, args, err := qb.DeleteFrom("tournament_results").
			Where(qb.Eq("tournament_id", tournamentID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete tournament results query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete tournament results: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}
		models := make([]resultInsertModel, 0, len(rows))
		for _, row := range rows {
			models = append(models, resultModelFrom(tournamentID, row))
		}
		insertQuery, insertArgs, err := qb.InsertModels("tournament_results", models, "")
		if err != nil {
			return fmt.Errorf("build insert tournament results query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert tournament results: %w", err)
		}
		return nil
	})
}

func resultModelFrom(tournamentID int64, row result.Result) resultInsertModel {
	model := resultInsertModel{
		TournamentID: tournamentID,
		PlayerID:     row.PlayerID,
		TeamID:       nullString(row.TeamID),
		Flight:       row.Flight,
		Position:     row.Position,
		Amount:       row.Amount,
		PayoutType:   row.PayoutType,
		PayoutTo:     row.PayoutTo,
		PayoutStatus: row.PayoutStatus,
		Summary:      nullString(row.Summary),
		Details:      nullString(row.Details),
	}
	if row.Score != nil {
		model.Score = sql.NullInt64{Int64: int64(*row.Score), Valid: true}
	}
	return model
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/player"
	qb "github.com/finleysg/bhmc-admin-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

// normalizedGHINExpr mirrors player.NormalizeGHIN for stored values.
const normalizedGHINExpr = "NULLIF(LTRIM(BTRIM(ghin), '0'), '')"

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	return r.getOne(ctx, "get player by id", qb.Eq("id", playerID))
}

func (r *PlayerRepository) ListMembers(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("is_member", true)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list members query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) FindByGHIN(ctx context.Context, ghin string) (player.Player, bool, error) {
	if !player.HasGHIN(ghin) {
		return player.Player{}, false, nil
	}
	return r.getOne(ctx, "find player by ghin", qb.Expr(normalizedGHINExpr+" = ?", player.NormalizeGHIN(ghin)))
}

func (r *PlayerRepository) FindByRemoteID(ctx context.Context, remoteID string) (player.Player, bool, error) {
	remoteID = strings.TrimSpace(remoteID)
	if remoteID == "" {
		return player.Player{}, false, nil
	}
	return r.getOne(ctx, "find player by remote id", qb.Eq("gg_id", remoteID))
}

func (r *PlayerRepository) UpdateRemoteID(ctx context.Context, playerID int64, remoteID string) error {
	query, args, err := qb.Update("players").
		Set("gg_id", nullString(remoteID)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player remote id query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player remote id: %w", err)
	}
	return mustAffectOne(res, "update player remote id")
}

func (r *PlayerRepository) getOne(ctx context.Context, what string, cond qb.Condition) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(cond).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build %s query: %w", what, err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("%s: %w", what, err)
	}
	return playerFromRow(row), true, nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		GHIN:      nullStringValue(row.GHIN),
		RemoteID:  nullStringValue(row.RemoteID),
		IsMember:  row.IsMember,
	}
}

package postgres

import "database/sql"

type resultInsertModel struct {
	TournamentID int64          `db:"tournament_id"`
	PlayerID     int64          `db:"player_id"`
	TeamID       sql.NullString `db:"team_id"`
	Flight       string         `db:"flight"`
	Position     int            `db:"position"`
	Score        sql.NullInt64  `db:"score"`
	Amount       string         `db:"amount"`
	PayoutType   string         `db:"payout_type"`
	PayoutTo     string         `db:"payout_to"`
	PayoutStatus string         `db:"payout_status"`
	Summary      sql.NullString `db:"summary"`
	Details      sql.NullString `db:"details"`
}

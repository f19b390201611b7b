package postgres

import "database/sql"

// slotStatusReserved marks a slot held by a registered player.
const slotStatusReserved = "R"

type slotTableModel struct {
	ID              int64          `db:"id"`
	EventID         int64          `db:"event_id"`
	RemoteID        sql.NullString `db:"gg_id"`
	PlayerID        int64          `db:"player_id"`
	PlayerFirstName string         `db:"first_name"`
	PlayerLastName  string         `db:"last_name"`
	PlayerEmail     string         `db:"email"`
	PlayerGHIN      sql.NullString `db:"ghin"`
	PlayerRemoteID  sql.NullString `db:"player_gg_id"`
	PlayerIsMember  bool           `db:"is_member"`
}

type slotFeeTableModel struct {
	SlotID     int64 `db:"slot_id"`
	EventFeeID int64 `db:"event_fee_id"`
}

type feeTableModel struct {
	ID      int64  `db:"id"`
	EventID int64  `db:"event_id"`
	Code    string `db:"code"`
	Name    string `db:"name"`
}

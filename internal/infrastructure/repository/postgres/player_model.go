package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID        int64          `db:"id"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	Email     string         `db:"email"`
	GHIN      sql.NullString `db:"ghin"`
	RemoteID  sql.NullString `db:"gg_id"`
	IsMember  bool           `db:"is_member"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

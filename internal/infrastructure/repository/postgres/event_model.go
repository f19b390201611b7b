package postgres

import (
	"database/sql"
	"time"
)

type eventTableModel struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	StartDate time.Time      `db:"start_date"`
	RemoteID  sql.NullString `db:"gg_id"`
	PortalURL sql.NullString `db:"portal_url"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type roundTableModel struct {
	ID        int64     `db:"id"`
	EventID   int64     `db:"event_id"`
	Number    int       `db:"round_number"`
	Date      time.Time `db:"round_date"`
	RemoteID  string    `db:"gg_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type roundInsertModel struct {
	EventID  int64     `db:"event_id"`
	Number   int       `db:"round_number"`
	Date     time.Time `db:"round_date"`
	RemoteID string    `db:"gg_id"`
	Name     string    `db:"name"`
}

type tournamentTableModel struct {
	ID        int64     `db:"id"`
	EventID   int64     `db:"event_id"`
	RoundID   int64     `db:"round_id"`
	RemoteID  string    `db:"gg_id"`
	Name      string    `db:"name"`
	Format    string    `db:"format"`
	IsNet     bool      `db:"is_net"`
	CreatedAt time.Time `db:"created_at"`
}

type tournamentInsertModel struct {
	EventID  int64  `db:"event_id"`
	RoundID  int64  `db:"round_id"`
	RemoteID string `db:"gg_id"`
	Name     string `db:"name"`
	Format   string `db:"format"`
	IsNet    bool   `db:"is_net"`
}

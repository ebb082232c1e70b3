package database

import (
	"database/sql"
	"fmt"
)

// schema is applied at startup; every statement is idempotent. The samples
// table is the append-only per-user ledger the accrual machine reads from and
// writes to; rows are never updated or deleted.
const schema = `
CREATE TABLE IF NOT EXISTS samples (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id          TEXT    NOT NULL,
	ts               INTEGER NOT NULL, -- unix seconds
	tz_offset        INTEGER NOT NULL, -- client UTC offset, seconds
	is_outside       INTEGER NOT NULL,
	session_seconds  INTEGER NOT NULL,
	lifetime_seconds INTEGER NOT NULL,
	daily_seconds    INTEGER NOT NULL,
	daylight_hours   REAL    NOT NULL DEFAULT 0,
	gps_accuracy     REAL    NOT NULL,
	wifi             INTEGER NOT NULL,
	weather          TEXT    NOT NULL DEFAULT '',
	temperature      REAL,
	uv               REAL,
	lux              REAL,
	latitude         REAL,
	longitude        REAL,
	distance_m       REAL
);
CREATE INDEX IF NOT EXISTS idx_samples_user_ts ON samples(user_id, ts);

CREATE TABLE IF NOT EXISTS feedback (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id        TEXT    NOT NULL,
	ts             INTEGER NOT NULL,
	tz_offset      INTEGER NOT NULL,
	correct_result INTEGER NOT NULL,
	gps_accuracy   REAL    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_feedback_user_ts ON feedback(user_id, ts);
`

// CreateSchema creates all tables and indexes if they do not exist.
func CreateSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

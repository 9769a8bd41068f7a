package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the students table. IF NOT EXISTS makes it safe to run on
// every startup.
//
// date_of_birth is declared TEXT rather than DATE so the driver hands the
// stored string back untouched instead of converting it to a time.Time.
const schema = `
	CREATE TABLE IF NOT EXISTS students (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name        TEXT NOT NULL,
		last_name         TEXT NOT NULL,
		email             TEXT NOT NULL UNIQUE,
		phone             TEXT,
		date_of_birth     TEXT,
		address           TEXT,
		registration_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)
`

// InitSchema ensures the students table exists. Repeated calls have no
// effect after the first success.
func (s *SQLite) InitSchema(ctx context.Context) error {
	return s.withConn(ctx, "InitSchema", func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("InitSchema: create table: %w", err)
		}
		return nil
	})
}

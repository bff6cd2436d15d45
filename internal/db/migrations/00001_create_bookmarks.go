package migrations

// The bookmarks table keeps its timestamps in the type each driver scans into
// time.Time natively: TIMESTAMP for SQLite (modernc parses it), TIMESTAMPTZ for
// PostgreSQL, DATETIME(6) for MySQL (with parseTime=true).

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateBookmarks, downCreateBookmarks)
}

func upCreateBookmarks(ctx context.Context, tx *sql.Tx) error {
	var ts string
	switch dialect {
	case "postgres":
		ts = "TIMESTAMPTZ"
	case "mysql":
		ts = "DATETIME(6)"
	default: // sqlite3
		ts = "TIMESTAMP"
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS bookmarks (
    id          VARCHAR(36) PRIMARY KEY,
    title       TEXT NOT NULL,
    url         TEXT NOT NULL,
    rating      INTEGER NOT NULL CHECK (rating BETWEEN 0 AND 5),
    description TEXT NOT NULL,
    created_at  %[1]s NOT NULL,
    updated_at  %[1]s NOT NULL
)`, ts)
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create bookmarks table: %w", err)
	}
	_, err := tx.ExecContext(ctx, `CREATE INDEX bookmarks_created_at_idx ON bookmarks (created_at)`)
	return err
}

func downCreateBookmarks(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS bookmarks`)
	return err
}

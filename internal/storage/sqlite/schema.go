package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	entriesTable     = "entries"
	preferencesTable = "preferences"
	quotesTable      = "quotes"

	createdAtIndex = "idx_entries_created_at"
)

// schema creates every table and index. Statements are idempotent so two
// processes opening the same file concurrently both succeed.
const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at     INTEGER NOT NULL,
	text           TEXT    NOT NULL DEFAULT '',
	mood           INTEGER NOT NULL,
	social_comfort INTEGER NOT NULL,
	regret         INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at DESC);

-- Single row, enforced by the CHECK constraint
CREATE TABLE IF NOT EXISTS preferences (
	id               INTEGER PRIMARY KEY CHECK (id = 1),
	display_name     TEXT    NOT NULL DEFAULT '',
	reminder_enabled INTEGER NOT NULL DEFAULT 0,
	reminder_time    TEXT    NOT NULL DEFAULT '20:00',
	dark_mode        INTEGER NOT NULL DEFAULT 0,
	updated_at       TEXT
);

-- Reserved for bundled content; no operation reads or writes it yet
CREATE TABLE IF NOT EXISTS quotes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	text       TEXT NOT NULL,
	author     TEXT,
	created_at INTEGER NOT NULL
);
`

// applySchema runs the DDL in a single transaction
func applySchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return tx.Commit()
}

// tableExists checks if a table exists in the SQLite database.
// The check is case-insensitive to match SQLite's behavior.
func tableExists(ctx context.Context, db *sql.DB, tableName string) (bool, error) {
	var count int
	row := db.QueryRowContext(ctx, "SELECT count(*) FROM sqlite_master WHERE type='table' AND name COLLATE NOCASE = ?", tableName)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// indexExists checks if an index exists in the SQLite database
func indexExists(ctx context.Context, db *sql.DB, indexName string) (bool, error) {
	var count int
	row := db.QueryRowContext(ctx, "SELECT count(*) FROM sqlite_master WHERE type='index' AND name = ?", indexName)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

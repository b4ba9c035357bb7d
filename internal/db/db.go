// Package db provides SQLite database access for seqedit.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DB wraps the SQL handle together with the logger repositories report
// non-fatal scan problems to.
type DB struct {
	*sql.DB
	logger zerolog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS templates (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT '',
	tags_json   TEXT,
	builtin     INTEGER NOT NULL DEFAULT 0,
	payload     TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_templates_name ON templates(name);
CREATE INDEX IF NOT EXISTS idx_templates_category ON templates(category);
`

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for an ephemeral database in tests.
func Open(ctx context.Context, path string, logger zerolog.Logger) (*DB, error) {
	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite allows a single writer; avoid busy errors from pooling.
	handle.SetMaxOpenConns(1)

	if _, err := handle.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		handle.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := handle.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		handle.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := handle.ExecContext(ctx, schema); err != nil {
		handle.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Debug().Str("path", path).Msg("database opened")
	return &DB{DB: handle, logger: logger}, nil
}

// OpenInMemory opens an ephemeral database, used by tests.
func OpenInMemory(ctx context.Context) (*DB, error) {
	return Open(ctx, ":memory:", zerolog.Nop())
}

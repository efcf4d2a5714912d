package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'manager', 'user')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS inventory_lines (
    id       INTEGER PRIMARY KEY,
    position INTEGER NOT NULL,
    category TEXT NOT NULL CHECK (category IN ('filament', 'resin')),
    material TEXT NOT NULL,
    color    TEXT NOT NULL,
    brand    TEXT NOT NULL DEFAULT '',
    status   TEXT NOT NULL CHECK (status IN ('unopened', 'opened')),
    count    INTEGER NOT NULL CHECK (count >= 0),
    notes    TEXT NOT NULL DEFAULT ''
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_inventory_lines_identity
    ON inventory_lines(category, material, color, brand, status);

CREATE TABLE IF NOT EXISTS swatches (
    category   TEXT NOT NULL,
    material   TEXT NOT NULL,
    color      TEXT NOT NULL,
    brand      TEXT NOT NULL DEFAULT '',
    image      BLOB NOT NULL,
    image_mime TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (category, material, color, brand)
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

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
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS items (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    category       TEXT NOT NULL,
    style          TEXT,
    description    TEXT,
    colors         TEXT NOT NULL DEFAULT '[]',
    status         TEXT NOT NULL DEFAULT 'available'
                   CHECK (status IN ('available', 'unavailable', 'rarely_used')),
    last_action    TEXT CHECK (last_action IN ('use', 'laundry', 'repair', 'available')),
    last_action_at DATETIME,
    last_used_at   DATETIME,
    date_added     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at     DATETIME
);

CREATE INDEX IF NOT EXISTS idx_items_status_active
    ON items(status) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS item_images (
    id         INTEGER PRIMARY KEY,
    item_id    TEXT NOT NULL REFERENCES items(id),
    position   INTEGER NOT NULL DEFAULT 0,
    image      BLOB NOT NULL,
    mime       TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_item_images_item
    ON item_images(item_id, position);

CREATE TABLE IF NOT EXISTS item_actions (
    id           INTEGER PRIMARY KEY,
    item_id      TEXT NOT NULL REFERENCES items(id),
    action       TEXT NOT NULL CHECK (action IN ('use', 'laundry', 'repair', 'available')),
    performed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    performed_by INTEGER REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_item_actions_item
    ON item_actions(item_id, performed_at);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

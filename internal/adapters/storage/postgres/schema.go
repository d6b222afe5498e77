package postgres

import (
	"context"
	"database/sql"
)

const notificationsSchema = `
CREATE TABLE IF NOT EXISTS notifications (
	id             TEXT PRIMARY KEY,
	type           TEXT NOT NULL,
	user_id        TEXT NOT NULL,
	user_name      TEXT NOT NULL DEFAULT '',
	user_email     TEXT NOT NULL DEFAULT '',
	sheep_id       TEXT NOT NULL,
	sheep_info     JSONB NOT NULL DEFAULT '{}'::jsonb,
	message        TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	requested_at   TIMESTAMPTZ NULL,
	admin_response TEXT NOT NULL DEFAULT '',
	updated_at     TIMESTAMPTZ NULL,
	version        INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS notifications_created_at_idx ON notifications (created_at DESC);
`

// EnsureSchema crea la tabla si no existe (idempotente).
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, notificationsSchema)
	return err
}

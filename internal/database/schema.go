package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Sessions are stored as whole JSONB documents: every mutation reads the
// document, changes it in memory and writes it back. The access-code index
// covers the client verify-code lookup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS photo_sessions (
		id         TEXT PRIMARY KEY,
		doc        JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_photo_sessions_access_code
		ON photo_sessions ((doc->>'accessCode'))`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id           TEXT PRIMARY KEY,
		type         TEXT NOT NULL,
		session_id   TEXT NOT NULL,
		session_name TEXT NOT NULL,
		message      TEXT NOT NULL,
		read         BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS site_settings (
		id         INT PRIMARY KEY CHECK (id = 1),
		doc        JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

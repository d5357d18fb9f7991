package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
    id            SERIAL PRIMARY KEY,
    chat_id       BIGINT      NOT NULL,
    series_id     TEXT        NOT NULL,
    kind          TEXT        NOT NULL DEFAULT 'event',
    event_name    TEXT        NOT NULL,
    child_name    TEXT        NOT NULL DEFAULT '',
    event_date    DATE,
    event_time    TEXT        NOT NULL DEFAULT '',
    location      TEXT        NOT NULL DEFAULT '',
    notes         TEXT        NOT NULL DEFAULT '',
    contact_name  TEXT        NOT NULL DEFAULT '',
    phone_number  TEXT        NOT NULL DEFAULT '',
    email         TEXT        NOT NULL DEFAULT '',
    website_url   TEXT        NOT NULL DEFAULT '',
    event_type    TEXT        NOT NULL DEFAULT '',
    category      TEXT        NOT NULL DEFAULT '',
    start_time    TIMESTAMPTZ,
    notify_before INTEGER     NOT NULL DEFAULT 0,
    notified      BOOLEAN     NOT NULL DEFAULT false,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS events_chat_start_idx ON events (chat_id, start_time)`,
	`CREATE INDEX IF NOT EXISTS events_series_idx ON events (series_id)`,
	`CREATE INDEX IF NOT EXISTS events_pending_idx ON events (start_time) WHERE notified = false`,
}

// Migrate creates the tables the bot needs. It is safe to run repeatedly.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}

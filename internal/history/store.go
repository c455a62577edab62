// Package history is the append-only per-contact conversation log.
// Append is the only mutating operation and is atomic per contact, so
// analytics never observe a partially written entry.
//
// Expected schema:
//
//	contacts(id text primary key, name text, relationship_stage text,
//	         culture text, personality text, interests text, topics text,
//	         red_flags text, green_flags text,
//	         message_count int not null default 0,
//	         last_topic text, last_message_date timestamptz)
//	conversation_entries(id uuid primary key, contact_id text references contacts(id),
//	         her_message text not null, suggestions jsonb not null,
//	         pro_tip text, interest_level int, created_at timestamptz not null)
package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a contact does not exist.
var ErrNotFound = errors.New("history: contact not found")

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

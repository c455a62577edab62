package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/azizmatyakubov/flirtkey/internal/coach"
)

// UpsertContact creates or updates a contact's profile fields. The
// counters (message_count, last_topic, last_message_date) are owned by
// Append and never touched here.
func (s *Store) UpsertContact(ctx context.Context, c coach.Contact) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO contacts (id, name, relationship_stage, culture, personality, interests, topics, red_flags, green_flags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			relationship_stage = EXCLUDED.relationship_stage,
			culture = EXCLUDED.culture,
			personality = EXCLUDED.personality,
			interests = EXCLUDED.interests,
			topics = EXCLUDED.topics,
			red_flags = EXCLUDED.red_flags,
			green_flags = EXCLUDED.green_flags`,
		c.ID, c.Name, c.RelationshipStage, c.Culture, c.Personality,
		c.Interests, c.Topics, c.RedFlags, c.GreenFlags,
	)
	if err != nil {
		return fmt.Errorf("upsert contact: %w", err)
	}
	return nil
}

// GetContact fetches one contact by ID.
func (s *Store) GetContact(ctx context.Context, id string) (coach.Contact, error) {
	var c coach.Contact
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, relationship_stage, culture, personality, interests, topics,
		       red_flags, green_flags, message_count,
		       COALESCE(last_topic, ''), COALESCE(last_message_date, 'epoch'::timestamptz)
		FROM contacts WHERE id = $1`, id,
	).Scan(
		&c.ID, &c.Name, &c.RelationshipStage, &c.Culture, &c.Personality,
		&c.Interests, &c.Topics, &c.RedFlags, &c.GreenFlags, &c.MessageCount,
		&c.LastTopic, &c.LastMessageDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return coach.Contact{}, ErrNotFound
	}
	if err != nil {
		return coach.Contact{}, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

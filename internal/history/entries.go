package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/azizmatyakubov/flirtkey/internal/coach"
)

// lastTopicChars caps the excerpt of her message stored as the
// contact's last topic.
const lastTopicChars = 80

// Append writes one conversation entry and bumps the contact's
// counters in a single transaction: either the entry and the counter
// update both land, or neither does. Called exactly once per
// successful reply generation. Returns the entry ID.
func (s *Store) Append(ctx context.Context, entry coach.ConversationEntry) (uuid.UUID, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	suggestions, err := json.Marshal(entry.Suggestions)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal suggestions: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO conversation_entries (id, contact_id, her_message, suggestions, pro_tip, interest_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.ContactID, entry.HerMessage, suggestions,
		entry.ProTip, entry.InterestLevel, entry.Timestamp,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert entry: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE contacts
		SET message_count = message_count + 1,
		    last_topic = $2,
		    last_message_date = $3
		WHERE id = $1`,
		entry.ContactID, topicExcerpt(entry.HerMessage), entry.Timestamp,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("bump contact counters: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit append: %w", err)
	}
	return entry.ID, nil
}

// Recent returns up to limit entries for a contact, newest first.
func (s *Store) Recent(ctx context.Context, contactID string, limit int) ([]coach.ConversationEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, contact_id, her_message, suggestions, COALESCE(pro_tip, ''), interest_level, created_at
		FROM conversation_entries
		WHERE contact_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, contactID, limit)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []coach.ConversationEntry
	for rows.Next() {
		var e coach.ConversationEntry
		var suggestions []byte
		if err := rows.Scan(&e.ID, &e.ContactID, &e.HerMessage, &suggestions, &e.ProTip, &e.InterestLevel, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if err := json.Unmarshal(suggestions, &e.Suggestions); err != nil {
			return nil, fmt.Errorf("unmarshal suggestions: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return entries, nil
}

func topicExcerpt(msg string) string {
	if utf8.RuneCountInString(msg) <= lastTopicChars {
		return msg
	}
	runes := []rune(msg)
	return string(runes[:lastTopicChars])
}

// Package events publishes generation outcomes over NATS for
// downstream consumers (analytics jobs, notification fan-out). The
// publisher is optional at wiring time: the pipeline works without it,
// just without events.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	// SubjectReplyGenerated carries a ReplyGenerated payload after
	// every successful reply generation.
	SubjectReplyGenerated = "flirtkey.reply.generated"
	// SubjectOpenerGenerated carries an OpenerGenerated payload after
	// every successful opener generation.
	SubjectOpenerGenerated = "flirtkey.opener.generated"
)

// ReplyGenerated is emitted once per persisted reply generation.
type ReplyGenerated struct {
	ContactID     string `json:"contact_id"`
	EntryID       string `json:"entry_id"`
	Suggestions   int    `json:"suggestions"`
	InterestLevel *int   `json:"interest_level,omitempty"`
	Timestamp     string `json:"timestamp"`
}

// OpenerGenerated is emitted once per opener generation. Openers are
// never persisted, so the event is the only durable trace.
type OpenerGenerated struct {
	Openers    int    `json:"openers"`
	ToneFilter string `json:"tone_filter,omitempty"`
	Timestamp  string `json:"timestamp"`
}

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func Connect(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Publisher{conn: nc, logger: logger}, nil
}

func (p *Publisher) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return p.conn.Publish(subject, payload)
}

func (p *Publisher) Close() {
	p.conn.Close()
}

// Stamp fills the timestamp field format used across event payloads.
func Stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

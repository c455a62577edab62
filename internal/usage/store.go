// Package usage tracks aggregate app-open figures per user in Redis.
// The streak heuristic runs on these three values; there is no
// per-day open ledger.
package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/azizmatyakubov/flirtkey/internal/analytics"
)

const (
	keyOpens = "usage:%s:opens"
	keyFirst = "usage:%s:first_open"
	keyLast  = "usage:%s:last_open"
)

type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Connect dials Redis from a URL and verifies the connection.
func Connect(ctx context.Context, url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(rdb), nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

// RecordOpen registers one app open: bumps the counter, pins the
// first-open timestamp once, and refreshes the last-open timestamp.
func (s *Store) RecordOpen(ctx context.Context, userID string, now time.Time) error {
	ts := now.UTC().Format(time.RFC3339)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, fmt.Sprintf(keyOpens, userID))
		pipe.SetNX(ctx, fmt.Sprintf(keyFirst, userID), ts, 0)
		pipe.Set(ctx, fmt.Sprintf(keyLast, userID), ts, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record open: %w", err)
	}
	return nil
}

// Stats returns the user's aggregate open figures. A user with no
// recorded opens gets the zero value, which the streak heuristic
// reads as streak 0.
func (s *Store) Stats(ctx context.Context, userID string) (analytics.UsageStats, error) {
	var stats analytics.UsageStats

	opens, err := s.rdb.Get(ctx, fmt.Sprintf(keyOpens, userID)).Int()
	if err != nil && err != redis.Nil {
		return stats, fmt.Errorf("get open count: %w", err)
	}
	stats.AppOpens = opens

	if t, err := s.getTime(ctx, fmt.Sprintf(keyFirst, userID)); err != nil {
		return stats, err
	} else {
		stats.FirstOpenDate = t
	}
	if t, err := s.getTime(ctx, fmt.Sprintf(keyLast, userID)); err != nil {
		return stats, err
	} else {
		stats.LastOpenDate = t
	}
	return stats, nil
}

func (s *Store) getTime(ctx context.Context, key string) (time.Time, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get %s: %w", key, err)
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %w", key, err)
	}
	return t, nil
}

package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when nothing is cached for the table.
var ErrMiss = errors.New("redisstore: cache miss")

// ActiveSession stored in redis for quick dashboard access.
type ActiveSession struct {
	SessionID string    `json:"session_id"`
	TableID   string    `json:"table_id"`
	CafeID    string    `json:"cafe_id"`
	StaffID   string    `json:"staff_id"`
	StartTime time.Time `json:"start_time"`
	Players   int       `json:"players"`
}

// Store manages the open-session cache, one entry per table.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore returns redis-backed store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(tableID string) string {
	return fmt.Sprintf("sessions:active:%s", tableID)
}

// Save caches session.
func (s *Store) Save(ctx context.Context, session ActiveSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(session.TableID), data, s.ttl).Err()
}

// Get returns the cached session of a table.
func (s *Store) Get(ctx context.Context, tableID string) (*ActiveSession, error) {
	result, err := s.client.Get(ctx, s.key(tableID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	var session ActiveSession
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes cached session.
func (s *Store) Delete(ctx context.Context, tableID string) error {
	return s.client.Del(ctx, s.key(tableID)).Err()
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"anoa.com/storyassistant/internal/modules/session/dto"
	"github.com/redis/go-redis/v9"
)

// Store persists session state per user. Load returns nil, nil when
// nothing is stored.
type Store interface {
	Load(ctx context.Context, userID string) (*dto.State, error)
	Save(ctx context.Context, userID string, state *dto.State) error
	Delete(ctx context.Context, userID string) error
}

func sessionKey(userID string) string {
	return fmt.Sprintf("session:%s", userID)
}

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func (s *redisStore) Load(ctx context.Context, userID string) (*dto.State, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session from redis: %w", err)
	}

	var state dto.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &state, nil
}

func (s *redisStore) Save(ctx context.Context, userID string, state *dto.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.rdb.Set(ctx, sessionKey(userID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session to redis: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, sessionKey(userID)).Err()
}

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore keeps sessions in process. Entries are stored encoded so
// callers never share state values.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *memoryStore) Load(_ context.Context, userID string) (*dto.State, error) {
	s.mu.Lock()
	entry, ok := s.entries[userID]
	if ok && s.ttl > 0 && s.now().After(entry.expiresAt) {
		delete(s.entries, userID)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, nil
	}

	var state dto.State
	if err := json.Unmarshal(entry.raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &state, nil
}

func (s *memoryStore) Save(_ context.Context, userID string, state *dto.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	s.mu.Lock()
	s.entries[userID] = memoryEntry{raw: raw, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	delete(s.entries, userID)
	s.mu.Unlock()
	return nil
}

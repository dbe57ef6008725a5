package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripwise/tripwise/internal/domain"
	"github.com/tripwise/tripwise/internal/logging"
)

const (
	// Redis key prefix for sessions.
	sessionKeyPrefix = "session:"
	// Default TTL for session keys.
	defaultTTL = 24 * time.Hour
)

// RedisStore persists sessions as JSON blobs in Redis, letting multiple
// replicas share conversation state. Keys expire after the configured TTL
// of inactivity; the TTL is refreshed on every read and write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *logging.Logger
}

// NewRedisStore creates a Redis-backed session store. A non-positive ttl
// falls back to the driver default.
func NewRedisStore(client *redis.Client, ttl time.Duration, log *logging.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{client: client, ttl: ttl, log: log.Sub("session")}
}

// GetOrCreate implements Store.
func (s *RedisStore) GetOrCreate(ctx context.Context, key string) (*domain.Session, error) {
	sess, err := s.Get(ctx, key)
	if err == nil {
		return sess, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	sess = newSession(key)
	if err := s.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}

	// Refresh TTL on read
	if err := s.client.Expire(ctx, s.key(key), s.ttl).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("ttl refresh failed")
	}

	return &sess, nil
}

// Update implements Store.
func (s *RedisStore) Update(ctx context.Context, sess *domain.Session) error {
	val, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.Key), val, s.ttl).Err(); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

// Reset implements Store.
func (s *RedisStore) Reset(ctx context.Context, key string) (*domain.Session, error) {
	sess := newSession(key)
	if err := s.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(key string) string {
	return sessionKeyPrefix + key
}

// Package session provides pluggable persistence for conversation sessions.
// Three drivers are available: an in-process map for single-node setups and
// tests, SQLite for durable single-node persistence, and Redis for shared
// state across replicas.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tripwise/tripwise/internal/domain"
)

// ErrNotFound is returned when a session key has no stored record.
var ErrNotFound = errors.New("session not found")

// Store persists sessions keyed by the client-supplied session key.
// Implementations return deep copies; mutating a returned session has no
// effect until it is passed back through Update.
type Store interface {
	// GetOrCreate returns the session for key, creating a fresh one if
	// none exists.
	GetOrCreate(ctx context.Context, key string) (*domain.Session, error)

	// Get returns the session for key, or ErrNotFound.
	Get(ctx context.Context, key string) (*domain.Session, error)

	// Update persists the session record, replacing any previous state
	// under the same key.
	Update(ctx context.Context, sess *domain.Session) error

	// Reset replaces the session under key with a fresh zeroed record
	// and returns it. Resetting a key with no stored session still
	// succeeds; the session stays usable either way.
	Reset(ctx context.Context, key string) (*domain.Session, error)

	// Close releases the driver's resources.
	Close() error
}

// newSession builds a fresh session record for a key.
func newSession(key string) *domain.Session {
	now := time.Now()
	return &domain.Session{
		Key:       key,
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Options selects and configures a session store driver.
type Options struct {
	Driver        string // "memory", "sqlite" or "redis"
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration // redis only; zero means the driver default
}

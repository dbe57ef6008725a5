package session

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tripwise/tripwise/internal/logging"
)

// NewStore creates a session store from the given options.
func NewStore(opts Options, log *logging.Logger) (Store, error) {
	switch opts.Driver {
	case "", "memory":
		return NewMemoryStore(), nil

	case "sqlite":
		if opts.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite session store requires a database path")
		}
		return OpenSQLite(opts.SQLitePath, log)

	case "redis":
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis session store requires an address")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		return NewRedisStore(client, opts.TTL, log), nil

	default:
		return nil, fmt.Errorf("unknown session driver %q", opts.Driver)
	}
}

package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver

	"github.com/tripwise/tripwise/internal/domain"
	"github.com/tripwise/tripwise/internal/logging"
)

// SQLiteStore persists sessions in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	log *logging.Logger
}

// OpenSQLite opens (or creates) a SQLite database at the given path and runs
// migrations. Use ":memory:" for an in-memory database (useful for tests).
func OpenSQLite(path string, log *logging.Logger) (*SQLiteStore, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db, log: log.Sub("session")}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	s.log.Info().Str("path", path).Msg("session database opened")
	return s, nil
}

// GetOrCreate implements Store.
func (s *SQLiteStore) GetOrCreate(ctx context.Context, key string) (*domain.Session, error) {
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
func (s *SQLiteStore) Get(ctx context.Context, key string) (*domain.Session, error) {
	var (
		sess                 domain.Session
		createdAt, updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT key, id, message_count, off_topic_warnings, security_violations, created_at, updated_at
		 FROM sessions WHERE key = ?`, key,
	).Scan(
		&sess.Key, &sess.ID, &sess.MessageCount, &sess.OffTopicWarnings,
		&sess.SecurityViolations, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	sess.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	sess.Messages, err = s.loadMessages(ctx, key)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Update implements Store. The whole record is replaced in one transaction
// so counters and history never drift apart.
func (s *SQLiteStore) Update(ctx context.Context, sess *domain.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (key, id, message_count, off_topic_warnings, security_violations, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			id = excluded.id,
			message_count = excluded.message_count,
			off_topic_warnings = excluded.off_topic_warnings,
			security_violations = excluded.security_violations,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		sess.Key, sess.ID, sess.MessageCount, sess.OffTopicWarnings, sess.SecurityViolations,
		sess.CreatedAt.Format(time.RFC3339Nano), sess.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("storing session: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_key = ?`, sess.Key); err != nil {
		return fmt.Errorf("clearing messages: %w", err)
	}

	for _, msg := range sess.Messages {
		var callJSON sql.NullString
		if msg.FunctionCall != nil {
			if data, err := json.Marshal(msg.FunctionCall); err == nil {
				callJSON = sql.NullString{String: string(data), Valid: true}
			}
		}
		ts := msg.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO messages (session_key, role, content, name, function_call, timestamp)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			sess.Key, msg.Role, msg.Content, msg.Name, callJSON, ts.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("storing message: %w", err)
		}
	}

	return tx.Commit()
}

// Reset implements Store.
func (s *SQLiteStore) Reset(ctx context.Context, key string) (*domain.Session, error) {
	sess := newSession(key)
	if err := s.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.log.Info().Msg("closing session database")
	return s.db.Close()
}

// loadMessages loads the message history for a session.
func (s *SQLiteStore) loadMessages(ctx context.Context, key string) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content, name, function_call, timestamp
		 FROM messages WHERE session_key = ? ORDER BY id`, key,
	)
	if err != nil {
		return nil, fmt.Errorf("loading messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var (
			msg      domain.Message
			ts       string
			callJSON sql.NullString
		)
		if err := rows.Scan(&msg.Role, &msg.Content, &msg.Name, &callJSON, &ts); err != nil {
			continue
		}
		msg.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		if callJSON.Valid && callJSON.String != "" {
			_ = json.Unmarshal([]byte(callJSON.String), &msg.FunctionCall)
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// migrate runs all pending migrations.
func (s *SQLiteStore) migrate() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	for _, m := range migrations {
		applied, err := s.isMigrationApplied(m.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		s.log.Info().Int("version", m.Version).Str("name", m.Name).Msg("applying migration")

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

func (s *SQLiteStore) isMigrationApplied(version int) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking migration %d: %w", version, err)
	}
	return count > 0, nil
}

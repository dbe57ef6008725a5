package session

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create sessions and messages",
		SQL: `
			CREATE TABLE sessions (
				key                 TEXT PRIMARY KEY,
				id                  TEXT NOT NULL,
				message_count       INTEGER NOT NULL DEFAULT 0,
				off_topic_warnings  INTEGER NOT NULL DEFAULT 0,
				security_violations INTEGER NOT NULL DEFAULT 0,
				created_at          TEXT NOT NULL DEFAULT (datetime('now')),
				updated_at          TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE TABLE messages (
				id            INTEGER PRIMARY KEY AUTOINCREMENT,
				session_key   TEXT NOT NULL REFERENCES sessions(key) ON DELETE CASCADE,
				role          TEXT NOT NULL,
				content       TEXT NOT NULL,
				name          TEXT NOT NULL DEFAULT '',
				function_call TEXT,
				timestamp     TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_messages_session ON messages (session_key, id);
		`,
	},
}

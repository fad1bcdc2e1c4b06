package store

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a referenced chat or message does not exist.
var ErrNotFound = errors.New("not found")

// Store implements a SQLite store for chats, messages and votes.
type Store struct {
	db *sql.DB
}

// New store.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS chats (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT,
			visibility TEXT NOT NULL DEFAULT 'private',
			parent_id TEXT,
			creation_timestamp INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS chats_by_user ON chats (user_id, creation_timestamp DESC);

		CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			chat_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			creation_timestamp INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS messages_by_chat ON messages (chat_id, creation_timestamp);

		CREATE TABLE IF NOT EXISTS votes (
			chat_id TEXT NOT NULL,
			message_id TEXT NOT NULL,
			is_upvoted INTEGER NOT NULL,
			PRIMARY KEY (chat_id, message_id)
		);
	`)
	if err != nil {
		return nil, errors.Wrap(err, "creating tables")
	}

	return &Store{
		db: db,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

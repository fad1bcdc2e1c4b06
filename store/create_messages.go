package store

import (
	"database/sql"

	"github.com/pkg/errors"
)

// CreateMessagesRequest represents a request to bulk-insert messages.
type CreateMessagesRequest struct {
	Messages []*Message
}

// CreateMessages inserts the given messages in a single transaction.
func (s *Store) CreateMessages(req *CreateMessagesRequest) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	if err := insertMessages(tx, req.Messages); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}
	return nil
}

func insertMessages(tx *sql.Tx, messages []*Message) error {
	for _, message := range messages {
		_, err := tx.Exec(`
INSERT INTO messages (
    id,
    chat_id,
    role,
    content,
    creation_timestamp
) VALUES (?, ?, ?, ?, ?)`,
			message.ID,
			message.ChatID,
			message.Role,
			message.Content,
			message.CreationTimestamp,
		)
		if err != nil {
			return errors.Wrapf(err, "inserting message '%s'", message.ID)
		}
	}
	return nil
}

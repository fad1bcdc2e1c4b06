package store

import (
	"github.com/pkg/errors"
)

// DeleteChat removes a chat along with its messages and votes. Children of the
// chat are left untouched: they keep their now-stale parent reference.
func (s *Store) DeleteChat(chatID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM chats WHERE id = ?`, chatID)
	if err != nil {
		return errors.Wrap(err, "deleting chat from database")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "checking rows affected")
	}
	if rowsAffected == 0 {
		return errors.Wrap(ErrNotFound, "chat")
	}

	if _, err := tx.Exec(`DELETE FROM messages WHERE chat_id = ?`, chatID); err != nil {
		return errors.Wrap(err, "deleting chat messages")
	}
	if _, err := tx.Exec(`DELETE FROM votes WHERE chat_id = ?`, chatID); err != nil {
		return errors.Wrap(err, "deleting chat votes")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}
	return nil
}

package store

import (
	"database/sql"

	"github.com/pkg/errors"
)

func (s *Store) GetChat(chatID string) (*Chat, error) {
	row := s.db.QueryRow(`
        SELECT id, user_id, title, visibility, parent_id, creation_timestamp
        FROM chats
        WHERE id = ?
    `, chatID)

	chat, err := scanChat(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(ErrNotFound, "chat")
		}
		return nil, errors.Wrap(err, "querying chat")
	}

	return chat, nil
}

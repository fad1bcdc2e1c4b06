package store

import (
	"github.com/pkg/errors"
)

// ListMessages returns a chat's messages ordered by creation timestamp.
func (s *Store) ListMessages(chatID string) ([]*Message, error) {
	rows, err := s.db.Query(`
        SELECT id, chat_id, role, content, creation_timestamp
        FROM messages
        WHERE chat_id = ?
        ORDER BY creation_timestamp
    `, chatID)
	if err != nil {
		return nil, errors.Wrap(err, "querying messages")
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		message := &Message{}
		if err := rows.Scan(
			&message.ID,
			&message.ChatID,
			&message.Role,
			&message.Content,
			&message.CreationTimestamp,
		); err != nil {
			return nil, errors.Wrap(err, "scanning message row")
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating message rows")
	}
	return messages, nil
}

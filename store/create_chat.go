package store

import (
	"github.com/pkg/errors"
)

// CreateChatRequest represents a request to create a new chat.
type CreateChatRequest struct {
	Chat *Chat
	// Messages to insert alongside the chat, in the same transaction. A
	// branched chat must never be observable without its copied messages.
	Messages []*Message
}

func (s *Store) CreateChat(req *CreateChatRequest) (*Chat, error) {
	if req.Chat == nil {
		return nil, errors.New("chat cannot be nil")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
INSERT INTO chats (
    id,
    user_id,
    title,
    visibility,
    parent_id,
    creation_timestamp
) VALUES (?, ?, ?, ?, ?, ?)`,
		req.Chat.ID,
		req.Chat.UserID,
		req.Chat.Title,
		req.Chat.Visibility,
		req.Chat.ParentID,
		req.Chat.CreationTimestamp,
	)
	if err != nil {
		return nil, errors.Wrap(err, "inserting into chats table")
	}

	if err := insertMessages(tx, req.Messages); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing transaction")
	}

	return req.Chat, nil
}

package store

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// UpdateChatRequest represents a request to update a chat with specific fields.
// Only title and visibility are mutable; parent_id is immutable by design.
type UpdateChatRequest struct {
	Chat       *Chat
	UpdateMask []string
}

func (s *Store) UpdateChat(req *UpdateChatRequest) error {
	if req.Chat == nil {
		return errors.New("chat cannot be nil")
	}

	shouldUpdate := func(field string) bool {
		for _, f := range req.UpdateMask {
			if f == field {
				return true
			}
		}
		return false
	}

	var setClauses []string
	var args []interface{}

	if shouldUpdate("title") {
		setClauses = append(setClauses, "title = ?")
		args = append(args, req.Chat.Title)
	}
	if shouldUpdate("visibility") {
		setClauses = append(setClauses, "visibility = ?")
		args = append(args, req.Chat.Visibility)
	}

	if len(setClauses) == 0 {
		return nil
	}

	args = append(args, req.Chat.ID)
	query := fmt.Sprintf("UPDATE chats SET %s WHERE id = ?", strings.Join(setClauses, ", "))
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return errors.Wrap(err, "updating chat in database")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "checking rows affected")
	}
	if rowsAffected == 0 {
		return errors.Wrap(ErrNotFound, "chat")
	}
	return nil
}

package store

import (
	"database/sql"

	"github.com/pkg/errors"
)

// SetVoteRequest represents a request to up/downvote a message within a chat.
type SetVoteRequest struct {
	ChatID    string
	MessageID string
	IsUpvoted bool
}

// SetVote records a vote, replacing any prior vote for the same message. The
// message must belong to the chat.
func (s *Store) SetVote(req *SetVoteRequest) error {
	var exists int
	err := s.db.QueryRow(`
        SELECT 1 FROM messages WHERE id = ? AND chat_id = ?
    `, req.MessageID, req.ChatID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(ErrNotFound, "message")
	}
	if err != nil {
		return errors.Wrap(err, "querying message")
	}

	_, err = s.db.Exec(`
		REPLACE INTO votes (chat_id, message_id, is_upvoted)
		VALUES (?, ?, ?)
	`, req.ChatID, req.MessageID, boolToInt(req.IsUpvoted))
	if err != nil {
		return errors.Wrap(err, "writing vote to database")
	}
	return nil
}

package store

import (
	"github.com/pkg/errors"
)

// ListVotes returns all votes recorded for a chat.
func (s *Store) ListVotes(chatID string) ([]*Vote, error) {
	rows, err := s.db.Query(`
        SELECT chat_id, message_id, is_upvoted
        FROM votes
        WHERE chat_id = ?
    `, chatID)
	if err != nil {
		return nil, errors.Wrap(err, "querying votes")
	}
	defer rows.Close()

	var votes []*Vote
	for rows.Next() {
		vote := &Vote{}
		var isUpvoted int
		if err := rows.Scan(&vote.ChatID, &vote.MessageID, &isUpvoted); err != nil {
			return nil, errors.Wrap(err, "scanning vote row")
		}
		vote.IsUpvoted = isUpvoted != 0
		votes = append(votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating vote rows")
	}
	return votes, nil
}

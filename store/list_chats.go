package store

import (
	"strings"

	"github.com/pkg/errors"
)

// ListChatsRequest contains parameters for listing chats.
type ListChatsRequest struct {
	// Only return chats owned by this user.
	UserID string
	// Raw SQL filter fragment, e.g. "title IS NULL".
	Filter string
	// Maximum number of chats to return. 0 means no limit.
	PageSize int
}

// ListChatsResponse contains the result of a list chats operation.
type ListChatsResponse struct {
	Chats []*Chat
}

// ListChats returns chats newest-first.
func (s *Store) ListChats(req *ListChatsRequest) (*ListChatsResponse, error) {
	whereClause := strings.Builder{}
	var args []interface{}

	if req.UserID != "" {
		whereClause.WriteString("user_id = ?")
		args = append(args, req.UserID)
	}
	if req.Filter != "" {
		if whereClause.Len() > 0 {
			whereClause.WriteString(" AND ")
		}
		whereClause.WriteString(req.Filter)
	}

	query := `
        SELECT id, user_id, title, visibility, parent_id, creation_timestamp
        FROM chats
    `
	if whereClause.Len() > 0 {
		query += " WHERE " + whereClause.String()
	}
	query += ` ORDER BY creation_timestamp DESC`
	if req.PageSize > 0 {
		query += ` LIMIT ?`
		args = append(args, req.PageSize)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying chats")
	}
	defer rows.Close()

	chats, err := scanChats(rows)
	if err != nil {
		return nil, err
	}

	return &ListChatsResponse{Chats: chats}, nil
}

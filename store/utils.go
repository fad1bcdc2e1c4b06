package store

import (
	"database/sql"

	"github.com/pkg/errors"
)

func boolToInt(val bool) int {
	if val {
		return 1
	}
	return 0
}

func scanChat(row interface{ Scan(...interface{}) error }) (*Chat, error) {
	chat := &Chat{}
	if err := row.Scan(
		&chat.ID,
		&chat.UserID,
		&chat.Title,
		&chat.Visibility,
		&chat.ParentID,
		&chat.CreationTimestamp,
	); err != nil {
		return nil, err
	}
	return chat, nil
}

// scanChats helps avoid duplicate chat scanning code.
func scanChats(rows *sql.Rows) ([]*Chat, error) {
	var chats []*Chat
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning chat row")
		}
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating chat rows")
	}
	return chats, nil
}

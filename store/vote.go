package store

// Vote represents an up/down vote on a message within a chat.
type Vote struct {
	ChatID    string
	MessageID string
	IsUpvoted bool
}

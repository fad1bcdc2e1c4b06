package store

// Visibility of a chat.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Chat represents a chat. ParentID is set once, at creation time, when the
// chat was branched from another chat; it is never updated afterwards, even
// when the parent is deleted.
type Chat struct {
	ID                string
	UserID            string
	Title             *string
	Visibility        Visibility
	ParentID          *string
	CreationTimestamp int64
}

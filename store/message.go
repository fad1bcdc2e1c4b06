package store

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message represents a message owned by exactly one chat. Ordering within a
// chat is defined by CreationTimestamp (microseconds, strictly increasing
// within a bulk insert).
type Message struct {
	ID                string
	ChatID            string
	Role              string
	Content           string
	CreationTimestamp int64
}

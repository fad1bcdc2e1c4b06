package branch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/arbor-ai/arbor/store"
)

// CreateBranchRequest represents a request to branch a chat at a message.
type CreateBranchRequest struct {
	// The chat being branched from, recorded as the new chat's parent.
	SourceChatID string
	// The source chat's messages as the client currently sees them.
	Messages []*store.Message
	// The message at which to fork; the copied prefix includes it.
	ForkPointMessageID string
	// The authenticated user, empty when there is no session.
	UserID string
}

// CreateBranch persists a new chat owning copies of the source messages up to
// and including the fork point. The chat and its messages are written in one
// transaction; a failure leaves no trace. Concurrent branches from the same
// message are independent and each produce their own chat.
func (s *Service) CreateBranch(ctx context.Context, request *CreateBranchRequest) (*store.Chat, error) {
	if request.UserID == "" {
		return nil, ErrUnauthorized
	}

	forkIndex := -1
	for i, message := range request.Messages {
		if message.ID == request.ForkPointMessageID {
			forkIndex = i
			break
		}
	}
	if forkIndex == -1 {
		return nil, ErrForkPointNotFound
	}
	prefix := request.Messages[:forkIndex+1]

	parentID := request.SourceChatID
	now := time.Now().UnixMicro()
	title := s.titler.Title(ctx, prefix[forkIndex])
	chat := &store.Chat{
		ID:                uuid.NewString(),
		UserID:            request.UserID,
		Title:             &title,
		Visibility:        store.VisibilityPrivate,
		ParentID:          &parentID,
		CreationTimestamp: now,
	}

	// Copies, not shared references: votes and edits on one branch must never
	// leak into the other.
	messages := make([]*store.Message, len(prefix))
	for i, message := range prefix {
		messages[i] = &store.Message{
			ID:                uuid.NewString(),
			ChatID:            chat.ID,
			Role:              message.Role,
			Content:           message.Content,
			CreationTimestamp: now + int64(i),
		}
	}

	if _, err := s.store.CreateChat(&store.CreateChatRequest{
		Chat:     chat,
		Messages: messages,
	}); err != nil {
		return nil, errors.Wrap(err, "persisting branched chat")
	}

	log.Info().
		Str("chat_id", chat.ID).
		Str("parent_id", parentID).
		Str("user_id", request.UserID).
		Int("messages", len(messages)).
		Msg("created branch")
	return chat, nil
}

package llm

import (
	"context"
)

// Message of a conversation.
type Message struct {
	Role    string
	Content string
}

// CreateTextGenerationRequest holds parameters for a text generation call.
type CreateTextGenerationRequest struct {
	Model       string
	Messages    []*Message
	MaxTokens   int
	Temperature float32
}

// StreamEvent is a single token of a streamed generation.
type StreamEvent struct {
	Token        string
	FinishReason string
}

// Stream of generation events.
type Stream interface {
	Recv() (*StreamEvent, error)
	Close()
}

// Client for a streaming text completion provider.
type Client interface {
	CreateTextGeneration(context.Context, *CreateTextGenerationRequest) (Stream, error)
}

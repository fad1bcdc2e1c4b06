package branch

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/arbor-ai/arbor/internal/llm"
	"github.com/arbor-ai/arbor/store"
)

// PlaceholderTitle is the fixed title used when no generation is configured
// or generation fails.
const PlaceholderTitle = "Branched Chat"

// Titler produces a title for a branched chat from its fork-point message.
type Titler interface {
	Title(ctx context.Context, forkPoint *store.Message) string
}

// PlaceholderTitler titles every branch with the fixed placeholder.
type PlaceholderTitler struct{}

func (t *PlaceholderTitler) Title(ctx context.Context, forkPoint *store.Message) string {
	return PlaceholderTitle
}

// GeneratedTitler derives a short title from the fork-point message through a
// completion provider. Generation is best-effort: any failure falls back to
// the placeholder rather than failing the branch.
type GeneratedTitler struct {
	client llm.Client
	model  string
}

// NewGeneratedTitler instantiates and returns a new generated titler.
func NewGeneratedTitler(client llm.Client, model string) *GeneratedTitler {
	return &GeneratedTitler{
		client: client,
		model:  model,
	}
}

func (t *GeneratedTitler) Title(ctx context.Context, forkPoint *store.Message) string {
	request := &llm.CreateTextGenerationRequest{
		Model: t.model,
		Messages: []*llm.Message{
			{Role: store.RoleUser, Content: forkPoint.Content},
			{Role: store.RoleUser, Content: "Generate a brief, concise title (max 6 words) for this conversation so far. YOU MUST ALWAYS OUTPUT SOMETHING."},
		},
		MaxTokens: 50,
	}
	stream, err := t.client.CreateTextGeneration(ctx, request)
	if err != nil {
		log.Warn().Err(err).Msg("generating branch title")
		return PlaceholderTitle
	}
	defer stream.Close()

	var b strings.Builder
	for {
		event, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Msg("streaming branch title")
			return PlaceholderTitle
		}
		b.WriteString(event.Token)
	}

	title := strings.TrimSpace(b.String())
	title = strings.Trim(title, `"'`)
	title = strings.ReplaceAll(title, "\n", " ")
	if title == "" {
		return PlaceholderTitle
	}
	return title
}

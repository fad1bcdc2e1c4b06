package webserver

import (
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/arbor-ai/arbor/store"
)

// apiChat is the JSON shape of a chat on the wire.
type apiChat struct {
	ID         string  `json:"id"`
	Title      *string `json:"title"`
	ParentID   *string `json:"parentId"`
	CreatedAt  string  `json:"createdAt"`
	Visibility string  `json:"visibility"`
}

// apiMessage is the JSON shape of a message on the wire.
type apiMessage struct {
	ID        string `json:"id"`
	ChatID    string `json:"chatId,omitempty"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// apiVote is the JSON shape of a vote on the wire.
type apiVote struct {
	ChatID    string `json:"chatId"`
	MessageID string `json:"messageId"`
	IsUpvoted bool   `json:"isUpvoted"`
}

func toAPIChat(chat *store.Chat) apiChat {
	return apiChat{
		ID:         chat.ID,
		Title:      chat.Title,
		ParentID:   chat.ParentID,
		CreatedAt:  time.UnixMicro(chat.CreationTimestamp).UTC().Format(time.RFC3339Nano),
		Visibility: string(chat.Visibility),
	}
}

func toAPIMessage(message *store.Message) apiMessage {
	return apiMessage{
		ID:        message.ID,
		ChatID:    message.ChatID,
		Role:      message.Role,
		Content:   message.Content,
		CreatedAt: time.UnixMicro(message.CreationTimestamp).UTC().Format(time.RFC3339Nano),
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

// formatMessage preserves formatting while making the text HTML-safe.
func formatMessage(content string) template.HTML {
	re := regexp.MustCompile("```([a-zA-Z]*)\n([\\s\\S]+?)```")

	processed := re.ReplaceAllStringFunc(content, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 3 {
			return match
		}

		language := parts[1]
		code := strings.TrimSpace(parts[2])

		return fmt.Sprintf(`<pre><code class="language-%s">%s</code></pre>`,
			html.EscapeString(language),
			html.EscapeString(code))
	})
	return template.HTML(processed)
}

package webserver

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/arbor-ai/arbor/store"
)

// handleMessages returns a chat's persisted messages. The requester must own
// the chat or the chat must be public.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	chatID := r.URL.Query().Get("chatId")
	if chatID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	chat, err := s.store.GetChat(chatID)
	if errors.Is(err, store.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch chat")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if chat.Visibility == store.VisibilityPrivate && chat.UserID != userID {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	messages, err := s.store.ListMessages(chatID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list messages")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	response := make([]apiMessage, 0, len(messages))
	for _, message := range messages {
		response = append(response, toAPIMessage(message))
	}
	writeJSON(w, http.StatusOK, response)
}

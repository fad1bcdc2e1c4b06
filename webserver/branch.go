package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/arbor-ai/arbor/branch"
	"github.com/arbor-ai/arbor/store"
)

type branchRequest struct {
	Messages  []apiMessage `json:"messages"`
	MessageID string       `json:"messageId"`
	ChatID    string       `json:"chatId"`
}

type branchResponse struct {
	ChatID string `json:"chatId"`
}

// handleBranch forks a chat at a message. The response is all-or-nothing: on
// any failure no chat and no messages exist.
func (s *Server) handleBranch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var request branchRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	userID, _ := s.authenticator.UserID(r)
	messages := make([]*store.Message, len(request.Messages))
	for i, message := range request.Messages {
		messages[i] = &store.Message{
			ID:      message.ID,
			ChatID:  request.ChatID,
			Role:    message.Role,
			Content: message.Content,
		}
	}

	chat, err := s.branches.CreateBranch(r.Context(), &branch.CreateBranchRequest{
		SourceChatID:       request.ChatID,
		Messages:           messages,
		ForkPointMessageID: request.MessageID,
		UserID:             userID,
	})
	switch {
	case errors.Is(err, branch.ErrUnauthorized):
		w.WriteHeader(http.StatusUnauthorized)
		return
	case errors.Is(err, branch.ErrForkPointNotFound):
		w.WriteHeader(http.StatusNotFound)
		return
	case err != nil:
		log.Error().Err(err).Msg("failed to branch chat")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, &branchResponse{ChatID: chat.ID})
}

package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/arbor-ai/arbor/store"
)

type voteRequest struct {
	ChatID    string `json:"chatId"`
	MessageID string `json:"messageId"`
	Type      string `json:"type"` // "up" or "down"
}

// handleVote lists votes (GET) or records one (PATCH). Votes attach to the
// copied messages of each branch, so voting in one panel never affects
// another chat's copies.
func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListVotes(w, r)
	case http.MethodPatch:
		s.handleSetVote(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleListVotes(w http.ResponseWriter, r *http.Request) {
	chatID := r.URL.Query().Get("chatId")
	if chatID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	if !s.authorizeChatRead(w, chatID, userID) {
		return
	}

	votes, err := s.store.ListVotes(chatID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list votes")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	response := make([]apiVote, 0, len(votes))
	for _, vote := range votes {
		response = append(response, apiVote{
			ChatID:    vote.ChatID,
			MessageID: vote.MessageID,
			IsUpvoted: vote.IsUpvoted,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleSetVote(w http.ResponseWriter, r *http.Request) {
	var request voteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if request.Type != "up" && request.Type != "down" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	chat, err := s.store.GetChat(request.ChatID)
	if errors.Is(err, store.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch chat")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if chat.UserID != userID {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	err = s.store.SetVote(&store.SetVoteRequest{
		ChatID:    request.ChatID,
		MessageID: request.MessageID,
		IsUpvoted: request.Type == "up",
	})
	if errors.Is(err, store.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to set vote")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// authorizeChatRead writes the error status and returns false unless the user
// may read the chat.
func (s *Server) authorizeChatRead(w http.ResponseWriter, chatID, userID string) bool {
	chat, err := s.store.GetChat(chatID)
	if errors.Is(err, store.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return false
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch chat")
		w.WriteHeader(http.StatusInternalServerError)
		return false
	}
	if chat.Visibility == store.VisibilityPrivate && chat.UserID != userID {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	return true
}

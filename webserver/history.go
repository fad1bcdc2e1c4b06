package webserver

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/arbor-ai/arbor/store"
)

// handleHistory returns the current user's chats as a flat list. The client
// rebuilds the ancestry tree from the parent references.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	response, err := s.store.ListChats(&store.ListChatsRequest{UserID: userID})
	if err != nil {
		log.Error().Err(err).Msg("failed to list chats")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	chats := make([]apiChat, 0, len(response.Chats))
	for _, chat := range response.Chats {
		chats = append(chats, toAPIChat(chat))
	}
	writeJSON(w, http.StatusOK, chats)
}

package webserver

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/arbor-ai/arbor/history"
	"github.com/arbor-ai/arbor/store"
)

// handleChat serves chat metadata (GET) and deletion (DELETE). Deleting a
// chat never cascades to its branches; they keep their stale parent reference
// and drop out of the history tree.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	chatID := r.URL.Query().Get("id")
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

	switch r.Method {
	case http.MethodGet:
		if chat.Visibility == store.VisibilityPrivate && chat.UserID != userID {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, toAPIChat(chat))
	case http.MethodDelete:
		if chat.UserID != userID {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := s.store.DeleteChat(chatID); err != nil {
			log.Error().Err(err).Msg("failed to delete chat")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	default:
		http.NotFound(w, r)
	}
}

// handleInbox renders the history page: the user's chats as an indented
// ancestry tree, newest roots first.
func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	response, err := s.store.ListChats(&store.ListChatsRequest{UserID: userID})
	if err != nil {
		http.Error(w, "Failed to list chats", http.StatusInternalServerError)
		return
	}

	items := []HistoryItemViewModel{}
	for _, entry := range history.BuildForest(response.Chats) {
		items = append(items, HistoryItemViewModel{
			ChatViewModel: newChatViewModel(entry.Chat),
			Depth:         entry.Depth,
			IsBranch:      entry.Depth > 0,
		})
	}

	data := &PageData{
		Title:   "Chats",
		History: items,
	}
	if err := s.tmpl.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

// handleChatPage renders a single chat with its messages.
func (s *Server) handleChatPage(w http.ResponseWriter, r *http.Request) {
	chatID := chatIDFromPath(r.URL.Path)
	if chatID == "" {
		http.NotFound(w, r)
		return
	}

	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	chat, err := s.store.GetChat(chatID)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if chat.Visibility == store.VisibilityPrivate && chat.UserID != userID {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	messages, err := s.store.ListMessages(chatID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	messageViews := []MessageViewModel{}
	for _, message := range messages {
		messageViews = append(messageViews, MessageViewModel{
			Message:       message,
			FormattedTime: time.UnixMicro(message.CreationTimestamp).Format(time.RFC822),
		})
	}

	viewModel := newChatViewModel(chat)
	data := &PageData{
		Title:    viewModel.DisplayTitle,
		ShowBack: true,
		Chat:     &viewModel,
		Messages: messageViews,
	}
	if err := s.tmpl.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func newChatViewModel(chat *store.Chat) ChatViewModel {
	displayTitle := "New Chat"
	if chat.Title != nil && *chat.Title != "" {
		displayTitle = *chat.Title
	}
	return ChatViewModel{
		Chat:          chat,
		DisplayTitle:  displayTitle,
		FormattedTime: time.UnixMicro(chat.CreationTimestamp).Format("Jan 2, 2006 3:04 PM"),
	}
}

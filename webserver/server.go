package webserver

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arbor-ai/arbor/branch"
	"github.com/arbor-ai/arbor/internal/auth"
	"github.com/arbor-ai/arbor/store"
)

//go:embed templates
var templatesFS embed.FS

// PageData drives the HTML templates.
type PageData struct {
	Title    string
	ShowBack bool
	Chat     *ChatViewModel
	Messages []MessageViewModel
	History  []HistoryItemViewModel
}

// ChatViewModel represents a chat with formatted fields for the template.
type ChatViewModel struct {
	*store.Chat
	DisplayTitle  string
	FormattedTime string
}

// MessageViewModel represents a message for the template.
type MessageViewModel struct {
	*store.Message
	FormattedTime string
}

// HistoryItemViewModel is one row of the ancestry tree, with its indentation
// depth.
type HistoryItemViewModel struct {
	ChatViewModel
	Depth    int
	IsBranch bool
}

// NewServeCmd creates a new serve command.
func NewServeCmd(s *store.Store, branchService *branch.Service, authenticator auth.Authenticator) *cobra.Command {
	var opts struct {
		Port int
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the branching chat web interface and API",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := NewServer(s, branchService, authenticator)
			return server.Start(opts.Port)
		},
	}

	cmd.Flags().IntVarP(&opts.Port, "port", "p", 3030, "Port to serve on")
	return cmd
}

// Server handles the web interface and the JSON API.
type Server struct {
	store         *store.Store
	branches      *branch.Service
	authenticator auth.Authenticator
	tmpl          *template.Template
}

// NewServer instantiates and returns a new server.
func NewServer(s *store.Store, branchService *branch.Service, authenticator auth.Authenticator) *Server {
	return &Server{
		store:         s,
		branches:      branchService,
		authenticator: authenticator,
	}
}

// Handler parses the templates and returns the route handler.
func (s *Server) Handler() (http.Handler, error) {
	funcMap := sprig.HtmlFuncMap()
	funcMap["formatMessage"] = formatMessage
	funcMap["indent_px"] = func(depth int) int { return depth * 16 }

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS,
		"templates/*.tmpl",
		"templates/pages/*.tmpl",
	)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	s.tmpl = tmpl

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleInbox)
	mux.HandleFunc("/chat/", s.handleChatPage)
	mux.HandleFunc("/api/branch", s.handleBranch)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/messages", s.handleMessages)
	mux.HandleFunc("/api/vote", s.handleVote)
	mux.HandleFunc("/api/chat", s.handleChat)
	return mux, nil
}

// Start serves until the listener fails.
func (s *Server) Start(port int) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}
	addr := fmt.Sprintf(":%d", port)
	log.Info().Str("addr", addr).Msg("server starting")
	return http.ListenAndServe(addr, handler)
}

// authenticate resolves the requesting user or writes a 401.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := s.authenticator.UserID(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

func chatIDFromPath(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

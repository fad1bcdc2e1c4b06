// Package chat holds maintenance commands operating on persisted chats.
package chat

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arbor-ai/arbor/branch"
	"github.com/arbor-ai/arbor/store"
)

// NewGenerateChatTitlesCmd instantiates and returns the generate-chat-titles
// command. It replaces placeholder branch titles with generated ones.
func NewGenerateChatTitlesCmd(s *store.Store, titler branch.Titler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate-chat-titles",
		Short: "Generate titles for branched chats that still carry the placeholder",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			listChatsResponse, err := s.ListChats(&store.ListChatsRequest{
				Filter: "title IS NULL OR title = 'Branched Chat'",
			})
			if err != nil {
				fmt.Printf("Error fetching chats without titles: %v\n", err)
				os.Exit(1)
			}

			if len(listChatsResponse.Chats) == 0 {
				fmt.Println("No chats found without titles")
				return
			}

			fmt.Printf("Found %d chats without titles\n", len(listChatsResponse.Chats))

			for i, chat := range listChatsResponse.Chats {
				fmt.Printf("Processing chat %d/%d (ID: %s)... ", i+1, len(listChatsResponse.Chats), chat.ID)

				if err := generateChatTitle(ctx, s, titler, chat); err != nil {
					fmt.Printf("ERROR: %v\n", err)
					continue
				}
				fmt.Printf("Done\n")
			}

			fmt.Println("Finished processing all chats")
		},
	}

	return cmd
}

// generateChatTitle derives a title from the chat's last assistant message
// and persists it.
func generateChatTitle(ctx context.Context, s *store.Store, titler branch.Titler, chat *store.Chat) error {
	messages, err := s.ListMessages(chat.ID)
	if err != nil {
		return fmt.Errorf("listing messages: %w", err)
	}
	var seed *store.Message
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == store.RoleAssistant {
			seed = messages[i]
			break
		}
	}
	if seed == nil {
		return fmt.Errorf("no assistant message to derive a title from")
	}

	title := titler.Title(ctx, seed)
	if title == branch.PlaceholderTitle {
		return fmt.Errorf("title generation fell back to the placeholder")
	}

	chat.Title = &title
	if err := s.UpdateChat(&store.UpdateChatRequest{
		Chat:       chat,
		UpdateMask: []string{"title"},
	}); err != nil {
		return fmt.Errorf("updating chat title: %w", err)
	}
	return nil
}

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arbor-ai/arbor/branch"
	"github.com/arbor-ai/arbor/chat"
	"github.com/arbor-ai/arbor/configuration"
	"github.com/arbor-ai/arbor/internal/auth"
	"github.com/arbor-ai/arbor/internal/llm"
	"github.com/arbor-ai/arbor/store"
	"github.com/arbor-ai/arbor/webserver"
)

const configFilepath = "~/.config/arbor/config.json"

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "A branching chat server",
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config, err := configuration.Parse(configFilepath)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing configuration")
	}

	s, err := store.New(config.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("opening store")
	}
	defer s.Close()

	var titler branch.Titler = &branch.PlaceholderTitler{}
	if config.TitlePolicy == configuration.TitlePolicyGenerated {
		client := llm.NewOpenAIClient(config.OpenaiAPIKey, config.OpenaiAPIHost)
		titler = branch.NewGeneratedTitler(client, config.TitleModel)
	}

	branchService := branch.NewService(s, titler)
	authenticator := auth.NewTokenAuthenticator(config.Sessions)

	rootCmd.AddCommand(webserver.NewServeCmd(s, branchService, authenticator))
	rootCmd.AddCommand(chat.NewGenerateChatTitlesCmd(s, titler))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

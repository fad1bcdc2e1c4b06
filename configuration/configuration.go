package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// TitlePolicy selects how branched chats are titled.
type TitlePolicy string

const (
	// TitlePolicyPlaceholder titles every branch "Branched Chat".
	TitlePolicyPlaceholder TitlePolicy = "placeholder"
	// TitlePolicyGenerated derives a short title from the fork-point message.
	TitlePolicyGenerated TitlePolicy = "generated"
)

var defaultConfig = Config{
	OpenaiAPIKey:   "API_KEY",
	OpenaiAPIHost:  "https://api.openai.com/v1",
	RequestTimeout: 60,
	DatabasePath:   "~/.config/arbor/arbor.db",
	TitlePolicy:    TitlePolicyPlaceholder,
	TitleModel:     "gpt-4o-mini",
	Sessions:       map[string]string{},
}

// Config holds configuration for the arbor server.
type Config struct {
	OpenaiAPIKey   string `json:"openai_api_key"`
	OpenaiAPIHost  string `json:"openai_api_host"`
	RequestTimeout int    `json:"request_timeout"`

	// The sqlite database holding chats, messages and votes.
	DatabasePath string `json:"database_path"`

	// Title policy for branched chats.
	TitlePolicy TitlePolicy `json:"title_policy"`
	TitleModel  string      `json:"title_model"`

	// Session token -> user id. Authentication mechanics live outside this
	// system; the server only resolves an opaque token to a user id.
	Sessions map[string]string `json:"sessions"`
}

// Parse a configuration file.
func Parse(path string) (*Config, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}

	expandedDatabasePath, err := ExpandPath(config.DatabasePath)
	if err != nil {
		return nil, errors.Wrap(err, "expanding database path")
	}
	config.DatabasePath = expandedDatabasePath
	return config, nil
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating configuration directory")
	}
	if err := os.WriteFile(path, bytes, 0644); err != nil {
		return errors.Wrap(err, "writing file")
	}
	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}
	config := defaultConfig
	return config.save(path)
}

// ExpandPath expands a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "getting user home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInitializesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	config, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, TitlePolicyPlaceholder, config.TitlePolicy)
	assert.Equal(t, "gpt-4o-mini", config.TitleModel)
	assert.NotEmpty(t, config.DatabasePath)

	// The default file was written out for the user to edit.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestParseExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := Config{
		OpenaiAPIKey:   "key",
		OpenaiAPIHost:  "https://example.com/v1",
		RequestTimeout: 30,
		DatabasePath:   "/tmp/arbor-test.db",
		TitlePolicy:    TitlePolicyGenerated,
		TitleModel:     "gpt-4o",
		Sessions:       map[string]string{"token-1": "user-1"},
	}
	bytes, err := json.Marshal(content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, bytes, 0644))

	config, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, TitlePolicyGenerated, config.TitlePolicy)
	assert.Equal(t, "/tmp/arbor-test.db", config.DatabasePath)
	assert.Equal(t, "user-1", config.Sessions["token-1"])
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/.config/arbor/arbor.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/arbor/arbor.db"), expanded)

	absolute, err := ExpandPath("/var/lib/arbor.db")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/arbor.db", absolute)
}

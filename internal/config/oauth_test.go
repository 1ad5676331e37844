package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validOAuthClientJSON = `{
	"installed": {
		"client_id": "client-id.apps.googleusercontent.com",
		"project_id": "recall-roster",
		"auth_uri": "https://accounts.google.com/o/oauth2/auth",
		"token_uri": "https://oauth2.googleapis.com/token",
		"auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
		"client_secret": "secret",
		"redirect_uris": ["http://localhost"]
	}
}`

func TestLoadOAuthClientFromPath_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oauthClient.json")
	require.NoError(t, os.WriteFile(path, []byte(validOAuthClientJSON), 0600))

	cfg, err := LoadOAuthClientFromPath(path)

	require.NoError(t, err)
	assert.Equal(t, "client-id.apps.googleusercontent.com", cfg.Installed.ClientID)
	assert.Equal(t, "secret", cfg.Installed.ClientSecret)
}

func TestLoadOAuthClientFromPath_MissingClientSecret(t *testing.T) {
	incomplete := `{
		"installed": {
			"client_id": "client-id",
			"project_id": "recall-roster",
			"auth_uri": "https://accounts.google.com/o/oauth2/auth",
			"token_uri": "https://oauth2.googleapis.com/token",
			"auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
			"redirect_uris": ["http://localhost"]
		}
	}`

	path := filepath.Join(t.TempDir(), "oauthClient.json")
	require.NoError(t, os.WriteFile(path, []byte(incomplete), 0600))

	_, err := LoadOAuthClientFromPath(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadOAuthClientFromPath_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oauthClient.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := LoadOAuthClientFromPath(path)
	assert.Error(t, err)
}

func TestLoadOAuthClientWithEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oauthClient.test.json"),
		[]byte(validOAuthClientJSON), 0600))
	t.Chdir(dir)

	cfg, err := LoadOAuthClientWithEnv("test")

	require.NoError(t, err)
	assert.Equal(t, "recall-roster", cfg.Installed.ProjectID)
}

func TestEnvFileName(t *testing.T) {
	assert.Equal(t, "oauthClient.json", envFileName("oauthClient", "", "json"))
	assert.Equal(t, "oauthClient.test.json", envFileName("oauthClient", "test", "json"))
	assert.Equal(t, "recall_config.prod.yaml", envFileName("recall_config", "prod", "yaml"))
}

func TestFindFile_NotFound(t *testing.T) {
	_, err := findFile("no_such_file_anywhere.json")
	assert.Error(t, err)
}

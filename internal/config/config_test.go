// ABOUTME: Tests for configuration loading, validation, and defaults
// ABOUTME: Covers env var expansion, duration parsing, and key length checks

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validConfig = `
server:
  http_addr: ":8080"
database:
  path: "/tmp/starships.db"
jwt:
  key: "test-signing-key-0123456789abcdef"
  issuer: "starship-api"
  audience: "starship-ui"
  expire: "30m"
openai:
  key: "sk-test"
logging:
  level: "debug"
  format: "json"
`

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, validConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, "/tmp/starships.db", cfg.Database.Path)
	assert.Equal(t, "starship-api", cfg.JWT.Issuer)
	assert.Equal(t, "starship-ui", cfg.JWT.Audience)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expire)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":8080"
database:
  path: "/tmp/starships.db"
jwt:
  key: "test-signing-key-0123456789abcdef"
  issuer: "starship-api"
  audience: "starship-ui"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultTokenTTL, cfg.JWT.Expire)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "https://api.openai.com", cfg.OpenAI.BaseURL)
	assert.Equal(t, "https://swapi.info", cfg.Swapi.URL)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_JWT_KEY", "env-provided-key-0123456789abcdef")

	path := writeConfig(t, `
server:
  http_addr: ":8080"
database:
  path: "/tmp/starships.db"
jwt:
  key: "${TEST_JWT_KEY}"
  issuer: "starship-api"
  audience: "starship-ui"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-provided-key-0123456789abcdef", cfg.JWT.Key)
}

func TestLoad_EnvExpansion_UnsetVar(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":8080"
database:
  path: "/tmp/starships.db"
jwt:
  key: "${DEFINITELY_NOT_SET_VAR_XYZ}"
  issuer: "starship-api"
  audience: "starship-ui"
`)

	// Unset var expands to empty, so the key is missing
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.key is required")
}

func TestLoad_WeakKey(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":8080"
database:
  path: "/tmp/starships.db"
jwt:
  key: "too-short"
  issuer: "starship-api"
  audience: "starship-ui"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.key must be at least 32 bytes")
}

func TestLoad_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr string
	}{
		{
			name: "missing http_addr",
			config: `
database:
  path: "/tmp/starships.db"
jwt:
  key: "test-signing-key-0123456789abcdef"
  issuer: "starship-api"
  audience: "starship-ui"
`,
			wantErr: "server.http_addr is required",
		},
		{
			name: "missing database path",
			config: `
server:
  http_addr: ":8080"
jwt:
  key: "test-signing-key-0123456789abcdef"
  issuer: "starship-api"
  audience: "starship-ui"
`,
			wantErr: "database.path is required",
		},
		{
			name: "missing issuer",
			config: `
server:
  http_addr: ":8080"
database:
  path: "/tmp/starships.db"
jwt:
  key: "test-signing-key-0123456789abcdef"
  audience: "starship-ui"
`,
			wantErr: "jwt.issuer is required",
		},
		{
			name: "missing audience",
			config: `
server:
  http_addr: ":8080"
database:
  path: "/tmp/starships.db"
jwt:
  key: "test-signing-key-0123456789abcdef"
  issuer: "starship-api"
`,
			wantErr: "jwt.audience is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.config)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":8080"
database:
  path: "/tmp/starships.db"
jwt:
  key: "test-signing-key-0123456789abcdef"
  issuer: "starship-api"
  audience: "starship-ui"
  expire: "not-a-duration"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing jwt.expire")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

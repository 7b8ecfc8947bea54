package appconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DefaultTemplateWithoutEnv(t *testing.T) {
	cfg, err := parse(defaultTemplate, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "/api", cfg.BasePath)
	assert.Equal(t, "/api/docs", cfg.DocsPath)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost:5432/engineeringstudents?sslmode=disable", cfg.Database.Source)
	assert.Equal(t, "", cfg.Auth.TokenSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TTL())
	assert.Equal(t, []string{"*"}, cfg.CORS.Origins())
	assert.Equal(t, 3000, cfg.Site.Port)
	assert.Equal(t, "http://localhost:5000", cfg.Site.APIURL)
	assert.False(t, cfg.Contact.EmailEnabled())
}

func TestParse_DefaultTemplateWithEnv(t *testing.T) {
	cfg, err := parse(defaultTemplate, map[string]string{
		"PORT":           "8081",
		"DATABASE_URL":   "postgres://est:secret@db:5432/est?sslmode=disable&connect_timeout=5",
		"JWT_SECRET":     "s3cret",
		"TOKEN_TTL":      "2h",
		"CORS_ORIGINS":   "https://est.example, http://localhost:3000",
		"CONTACT_SENDER": "noreply@est.example",
	})
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	// The query string must survive templating unescaped
	assert.Equal(t, "postgres://est:secret@db:5432/est?sslmode=disable&connect_timeout=5", cfg.Database.Source)
	assert.Equal(t, "s3cret", cfg.Auth.TokenSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TTL())
	assert.Equal(t, []string{"https://est.example", "http://localhost:3000"}, cfg.CORS.Origins())
	assert.True(t, cfg.Contact.EmailEnabled())
}

func TestParse_LegacyEnvNames(t *testing.T) {
	cfg, err := parse(defaultTemplate, map[string]string{
		"MONGO_URI":         "postgres://legacy-db:5432/est",
		"REACT_APP_API_URL": "https://api.est.example",
	})
	require.NoError(t, err)

	assert.Equal(t, "postgres://legacy-db:5432/est", cfg.Database.Source)
	assert.Equal(t, "https://api.est.example", cfg.Site.APIURL)
}

func TestParse_CurrentEnvNamesWin(t *testing.T) {
	cfg, err := parse(defaultTemplate, map[string]string{
		"DATABASE_URL":      "postgres://db:5432/est",
		"MONGO_URI":         "postgres://legacy-db:5432/est",
		"API_URL":           "http://api:5000",
		"REACT_APP_API_URL": "https://api.est.example",
	})
	require.NoError(t, err)

	assert.Equal(t, "postgres://db:5432/est", cfg.Database.Source)
	assert.Equal(t, "http://api:5000", cfg.Site.APIURL)
}

func TestParse_DocsPathFollowsBasePath(t *testing.T) {
	cfg, err := parse("basePath: /v1\n", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "/v1/docs", cfg.DocsPath)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
host: 127.0.0.1
port: 9000
database:
  source: "{{ .EST_TEST_DB }}"
site:
  apiURL: http://api.internal
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("EST_TEST_DB", "postgres://file-config")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "postgres://file-config", cfg.Database.Source)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "/api", cfg.BasePath)
	assert.Equal(t, "/api/docs", cfg.DocsPath)
	assert.Equal(t, "est-session", cfg.Site.CookieName)
	assert.Equal(t, "http://api.internal", cfg.Site.APIURL)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestAuthConfig_TTLFallback(t *testing.T) {
	assert.Equal(t, 24*time.Hour, AuthConfig{TokenTTL: "soon"}.TTL())
	assert.Equal(t, 24*time.Hour, AuthConfig{TokenTTL: "-1h"}.TTL())
	assert.Equal(t, 15*time.Minute, AuthConfig{TokenTTL: "15m"}.TTL())
}

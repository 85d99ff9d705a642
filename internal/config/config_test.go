package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every variable Load consults so the host environment
// cannot leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"YOUTUBE_API_KEY", "RAZORPAY_KEY_ID", "RAZORPAY_WEBHOOK_SECRET",
		"KHALARI_LLM_PROVIDER", "KHALARI_LLM_GEMINI_API_KEY", "KHALARI_VIDEO_API_KEY",
		"KHALARI_SERVER_ADDR", "KHALARI_SERVER_JWT_SECRET", "KHALARI_DB_PATH",
		"KHALARI_PAYMENT_KEY_ID", "KHALARI_PAYMENT_WEBHOOK_SECRET", "KHALARI_LOG_LEVEL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("KHALARI_DB", "")
	os.Unsetenv("KHALARI_DB")
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(Options{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data", "khalari", "khalari.db"), cfg.DB.Path)
	assert.Equal(t, filepath.Join(dir, "state", "khalari", "khalari.log"), cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 90*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 6, cfg.Video.MaxResults)
	assert.Equal(t, "127.0.0.1:8787", cfg.Server.Addr)
	assert.Equal(t, 30*24*time.Hour, cfg.Server.TokenTTL)
	assert.False(t, cfg.LLM.HasKey())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := isolate(t)
	yaml := `
db:
  path: /tmp/k.db
llm:
  provider: openai
  openai:
    api_key: sk-file
  timeout: 30s
server:
  addr: ":9000"
  token_ttl: 2h
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("KHALARI_SERVER_JWT_SECRET", "s3cret")
	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	// the explicit provider wins over a discovered vendor key
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load(Options{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/k.db", cfg.DB.Path)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-file", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Server.TokenTTL)
	assert.Equal(t, "s3cret", cfg.Server.JWTSecret)
	assert.Equal(t, "yt-key", cfg.Video.APIKey)
	require.NoError(t, cfg.Server.Validate())
}

func TestLoad_DiscoversVendorKey(t *testing.T) {
	dir := isolate(t)
	t.Setenv("ANTHROPIC_API_KEY", "a-key")

	cfg, err := Load(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "a-key", cfg.LLM.Anthropic.APIKey)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(Options{File: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestServerConfig_Validate(t *testing.T) {
	assert.ErrorIs(t, ServerConfig{TokenTTL: time.Hour}.Validate(), ErrNoJWTSecret)
	assert.Error(t, ServerConfig{JWTSecret: "x"}.Validate())
	assert.NoError(t, ServerConfig{JWTSecret: "x", TokenTTL: time.Hour}.Validate())
}

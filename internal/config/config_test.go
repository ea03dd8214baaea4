package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anythingboes/studio-chat/internal/service/answer"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"API_PORT", "WIDGET_PORT", "CHAT_MODE", "CHAT_API_URL", "CHAT_DEV_ORIGIN",
		"CHAT_BACKEND_URL", "CHAT_REQUEST_TIMEOUT", "CORS_ALLOWED_ORIGINS",
		"LOG_LEVEL", "LOG_FORMAT", "ARK_API_KEY", "Model", "AI_LLM_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.API.Addr)
	assert.Equal(t, []string{"*"}, cfg.API.AllowedOrigins)
	assert.Equal(t, ":8080", cfg.Widget.Server.Addr)
	assert.Equal(t, answer.BuildMode(), cfg.Widget.Mode)
	assert.Equal(t, "http://localhost:8080", cfg.Widget.DevOrigin)
	assert.Equal(t, "http://localhost:3000", cfg.Widget.BackendURL)
	assert.Equal(t, 30*time.Second, cfg.Widget.RequestTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.AI.Enabled())
}

func TestLoadDevelopmentResolvesAgainstOrigin(t *testing.T) {
	t.Setenv("CHAT_MODE", "dev")
	t.Setenv("CHAT_API_URL", "")
	t.Setenv("WIDGET_PORT", "127.0.0.1:9000")
	t.Setenv("CHAT_DEV_ORIGIN", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Widget.Development())

	base, err := cfg.Widget.AnswerBaseURL()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/api", base)
}

func TestLoadProductionMode(t *testing.T) {
	t.Setenv("CHAT_MODE", "production")
	t.Setenv("CHAT_API_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Widget.Development())

	base, err := cfg.Widget.AnswerBaseURL()
	require.NoError(t, err)
	assert.Equal(t, answer.ProductionBaseURL, base)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"CHAT_MODE":            "staging",
		"CHAT_REQUEST_TIMEOUT": "0",
		"API_PORT":             "80 80",
		"ARK_TEMPERATURE":      "warm",
		"AI_LLM_ENABLED":       "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseListEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, parseListEnv("CORS_ALLOWED_ORIGINS", nil))

	t.Setenv("CORS_ALLOWED_ORIGINS", " , ")
	assert.Equal(t, []string{"*"}, parseListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}))
}

func TestAIConfigEnabled(t *testing.T) {
	cfg := AIConfig{Model: "m", APIKey: "k", LLMEnabled: true}
	assert.True(t, cfg.Enabled())

	cfg.LLMEnabled = false
	assert.False(t, cfg.Enabled())

	cfg = AIConfig{Model: "m", AccessKey: "a", SecretKey: "s", LLMEnabled: true}
	assert.True(t, cfg.Enabled())
}

package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every key Load reads. envconfig treats an empty variable
// as set, so defaults only apply to unset keys.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "LOG_FORMAT", "CORS_ALLOWED_ORIGINS",
		"AI_PROVIDER", "GROQ_API_KEY", "GROQ_MODEL", "GROQ_BASE_URL",
		"ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY", "ARK_MODEL", "ARK_BASE_URL", "ARK_REGION",
		"AI_TEMPERATURE", "AI_TIMEOUT", "AI_MAX_ATTEMPTS", "AI_RETRY_DELAY",
		"SESSION_TTL", "SESSION_SWEEP_INTERVAL", "REDIS_URL",
		"QUIZ_QUESTIONS", "CHARACTER_ROUNDS", "CHARACTER_HINT_FROM_ROUND",
	} {
		unsetForTest(t, key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, ProviderGroq, cfg.AI.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.AI.GroqModel)
	assert.Equal(t, 15*time.Second, cfg.AI.Timeout)
	assert.EqualValues(t, 1, cfg.AI.MaxAttempts)
	assert.InDelta(t, 0.9, cfg.AI.Temperature, 1e-9)
	assert.Equal(t, 10*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 5, cfg.Games.QuizQuestions)
	assert.Equal(t, 10, cfg.Games.CharacterRounds)
	assert.Equal(t, 7, cfg.Games.CharacterHintFromRound)
	assert.False(t, cfg.AI.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("AI_PROVIDER", "groq")
	t.Setenv("GROQ_API_KEY", " key ")
	t.Setenv("GROQ_MODEL", "llama-3.1-8b-instant")
	t.Setenv("AI_TIMEOUT", "3s")
	t.Setenv("SESSION_TTL", "2m")
	t.Setenv("CHARACTER_ROUNDS", "8")
	t.Setenv("CHARACTER_HINT_FROM_ROUND", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "key", cfg.AI.GroqAPIKey)
	assert.True(t, cfg.AI.Enabled())
	assert.Equal(t, "llama-3.1-8b-instant", cfg.AI.ModelName())
	assert.Len(t, cfg.AI.JSONModeOptions(), 1)
	assert.Equal(t, 8, cfg.Games.CharacterHintFromRound)

	chatModel, err := cfg.AI.NewChatModel(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, chatModel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"provider":   {"AI_PROVIDER", "openai"},
		"port":       {"PORT", "30 00"},
		"timeout":    {"AI_TIMEOUT", "soon"},
		"hint round": {"CHARACTER_HINT_FROM_ROUND", "11"},
		"log format": {"LOG_FORMAT", "xml"},
		"log level":  {"LOG_LEVEL", "loud"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestArkEnabled(t *testing.T) {
	cfg := AIConfig{Provider: ProviderArk, ArkModel: "doubao"}
	assert.False(t, cfg.Enabled())

	cfg.ArkAccessKey, cfg.ArkSecretKey = "ak", "sk"
	assert.True(t, cfg.Enabled())
	assert.Empty(t, cfg.JSONModeOptions())
}

func TestNewChatModelDisabled(t *testing.T) {
	_, err := AIConfig{Provider: ProviderGroq}.NewChatModel(context.Background())
	assert.Error(t, err)
}

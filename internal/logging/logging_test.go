package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/gamehub/backend/internal/config"
)

func TestInitWritesJSONAtLevel(t *testing.T) {
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
		zerolog.DefaultContextLogger = nil
	})

	var buf bytes.Buffer
	require.NoError(t, initTo(&buf, config.LogConfig{Level: "warn", Format: config.LogFormatJSON}))

	log.Info().Msg("hidden")
	log.Ctx(context.Background()).Warn().Str("op", "quiz.questions").Msg("fallback used")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"op":"quiz.questions"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, initTo(&bytes.Buffer{}, config.LogConfig{Level: "chatty", Format: config.LogFormatJSON}))
}

func TestComponentTagsEvents(t *testing.T) {
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
		zerolog.DefaultContextLogger = nil
	})

	var buf bytes.Buffer
	require.NoError(t, initTo(&buf, config.LogConfig{Level: "info", Format: config.LogFormatJSON}))

	logger := Component("ai")
	logger.Info().Msg("gateway ready")
	assert.Contains(t, buf.String(), `"component":"ai"`)
}

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TodayDesign/vercel-project-dashboard/internal/config"
)

func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Config{ServiceName: "dashboard-api", VercelTeamID: "team_1", LogLevel: "debug"})

	logger.Debug().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dashboard-api", entry["service"])
	assert.Equal(t, "team_1", entry["team"])
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	logger := newLogger(&bytes.Buffer{}, &config.Config{LogLevel: "chatty"})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	logger = newLogger(&bytes.Buffer{}, &config.Config{})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Config{LogLevel: "warn"})

	logger.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

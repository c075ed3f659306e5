package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/games/apps/go-server/internal/config"
)

func restoreGlobals(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestSetup_JSON(t *testing.T) {
	restoreGlobals(t)
	var buf bytes.Buffer
	c := Setup(config.Log{Level: "warn", Format: config.FormatJSON}, &buf)
	defer c.Close()

	log.Info().Msg("hidden")
	log.Warn().Str("kind", "boundary").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "boundary", entry["kind"])
	assert.Equal(t, "shown", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestSetup_UnknownLevelFallsBackToInfo(t *testing.T) {
	restoreGlobals(t)
	var buf bytes.Buffer
	Setup(config.Log{Level: "loud", Format: config.FormatJSON}, &buf)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetup_Console(t *testing.T) {
	restoreGlobals(t)
	var buf bytes.Buffer
	Setup(config.Log{Level: "info", Format: config.FormatConsole}, &buf)

	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestSetup_File(t *testing.T) {
	restoreGlobals(t)
	path := filepath.Join(t.TempDir(), "games.log")
	var buf bytes.Buffer
	c := Setup(config.Log{Level: "info", Format: config.FormatJSON, File: path, MaxSizeMB: 1}, &buf)

	log.Info().Msg("to both")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, buf.String(), "to both")
}

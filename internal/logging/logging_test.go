package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/toastimer/internal/config"
)

func TestSetupWithoutFileDiscards(t *testing.T) {
	log, closer, err := Setup(config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	require.Equal(t, zerolog.Disabled, log.GetLevel())
	require.NoError(t, closer.Close())
}

func TestSetupBadLevel(t *testing.T) {
	_, _, err := Setup(config.LogConfig{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")})
	require.Error(t, err)
}

func TestSetupWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "toastimer.log")
	log, closer, err := Setup(config.LogConfig{Level: "info", File: path, Format: "json"})
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("preset", "golden").Msg("toast started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"preset":"golden"`)
	require.NotContains(t, string(data), "hidden")
}

func TestNewTerminalFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.InfoLevel, "terminal")
	log.Info().Msg("toast finished")
	require.Contains(t, buf.String(), "toast finished")
	require.NotContains(t, buf.String(), `"message"`)
}

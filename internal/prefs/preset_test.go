package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLastPresetMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	name, err := LoadLastPreset()
	require.NoError(t, err)
	require.Empty(t, name)
}

func TestLastPresetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	require.NoError(t, SaveLastPreset("dark"))
	require.NoError(t, SaveLastPreset("light"))

	name, err := LoadLastPreset()
	require.NoError(t, err)
	require.Equal(t, "light", name)

	_, err = os.Stat(filepath.Join(dir, "toastimer", presetFile+".tmp"))
	require.True(t, os.IsNotExist(err))
}

func TestLastPresetCorrupt(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "toastimer"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "toastimer", presetFile), []byte("{"), 0o600))

	_, err := LoadLastPreset()
	require.Error(t, err)
}

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCreatesConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, runInit(initCmd, nil))

	data, err := os.ReadFile(filepath.Join(home, ".config", "drip", "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "commits_per_hour")
	assert.Contains(t, string(data), `mode = "end"`)
}

func TestInitPreservesExistingConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".config", "drip")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	custom := "[push]\nmode = \"every\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(custom), 0644))

	require.NoError(t, runInit(initCmd, nil))

	data, err := os.ReadFile(filepath.Join(configDir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, custom, string(data), "existing config is not overwritten")
}

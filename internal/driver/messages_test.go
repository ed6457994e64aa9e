package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drip/internal/errors"
)

func TestLoadMessagesDefaults(t *testing.T) {
	messages, err := LoadMessages("")
	require.NoError(t, err)
	assert.Equal(t, DefaultMessages, messages)
}

func TestLoadMessagesFromSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrases.txt")
	require.NoError(t, os.WriteFile(path, []byte("First note\n\n  Second note  \n"), 0644))

	messages, err := LoadMessages(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"First note", "Second note"}, messages)
}

func TestLoadMessagesMissingFile(t *testing.T) {
	_, err := LoadMessages(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidConfiguration)
}

func TestLoadMessagesEmptyFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0644))

	messages, err := LoadMessages(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMessages, messages)
}

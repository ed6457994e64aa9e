package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drip/internal/errors"
	"drip/internal/testutil"
)

// setRunFlags resets the run command to a fast deterministic baseline, then
// applies overrides. Explicit values for every flag keep tests independent
// despite cobra's persistent flag state.
func setRunFlags(t *testing.T, overrides map[string]string) {
	t.Helper()
	initConfig()

	baseline := map[string]string{
		"repo":              ".",
		"commits-per-hour":  "360000",
		"duration-hours":    "0.001",
		"max-commits":       "2",
		"target-file":       "activity-log.md",
		"jitter":            "0",
		"min-wait-seconds":  "0",
		"push-mode":         "none",
		"push-batch-size":   "5",
		"message-seed-file": "",
	}
	for k, v := range overrides {
		baseline[k] = v
	}
	for k, v := range baseline {
		require.NoError(t, runCmd.Flags().Set(k, v))
	}
	runDryRun = false
}

func TestRunCreatesCommits(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	before := repo.CommitCount()

	setRunFlags(t, map[string]string{"repo": repo.Path})

	require.NoError(t, runRun(runCmd, nil))

	assert.Equal(t, before+2, repo.CommitCount())

	lines := repo.FileLines("activity-log.md")
	require.Len(t, lines, 2)
	assert.NotEqual(t, lines[0], lines[1], "each appended line is unique")

	for _, msg := range repo.CommitMessages()[:2] {
		assert.Regexp(t, `#\d+/\d+$`, msg)
	}
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	before := repo.CommitCount()

	setRunFlags(t, map[string]string{"repo": repo.Path, "push-mode": "end"})
	runDryRun = true
	defer func() { runDryRun = false }()

	require.NoError(t, runRun(runCmd, nil))

	assert.Equal(t, before, repo.CommitCount())
	_, err := os.Stat(filepath.Join(repo.Path, "activity-log.md"))
	assert.True(t, os.IsNotExist(err), "dry-run must not create the target file")
}

func TestRunRejectsZeroRate(t *testing.T) {
	setRunFlags(t, map[string]string{"commits-per-hour": "0"})

	err := runRun(runCmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidConfiguration)
}

func TestRunRejectsBadPushMode(t *testing.T) {
	setRunFlags(t, map[string]string{"push-mode": "sometimes"})

	err := runRun(runCmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "push-mode")
}

func TestRunOutsideRepositoryFails(t *testing.T) {
	setRunFlags(t, map[string]string{"repo": t.TempDir()})

	err := runRun(runCmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotGitRepository)
}

func TestRunUsesSeedFileMessages(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	seedFile := filepath.Join(t.TempDir(), "phrases.txt")
	require.NoError(t, os.WriteFile(seedFile, []byte("Custom phrase\n"), 0644))

	setRunFlags(t, map[string]string{
		"repo":              repo.Path,
		"message-seed-file": seedFile,
	})

	require.NoError(t, runRun(runCmd, nil))

	for _, msg := range repo.CommitMessages()[:2] {
		assert.True(t, strings.HasPrefix(msg, "Custom phrase"), "got %q", msg)
	}
}

func TestRunMissingSeedFileFails(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	setRunFlags(t, map[string]string{
		"repo":              repo.Path,
		"message-seed-file": filepath.Join(t.TempDir(), "missing.txt"),
	})

	err := runRun(runCmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidConfiguration)
	assert.Equal(t, 1, repo.CommitCount(), "no commits before config validation passes")
}

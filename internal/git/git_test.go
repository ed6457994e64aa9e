package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drip/internal/errors"
	"drip/internal/testutil"
)

func TestIsRepository(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	assert.True(t, IsRepository(repo.Path))
	assert.False(t, IsRepository(t.TempDir()))
}

func TestStageAndCommit(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	client := NewClient(repo.Path)
	before := repo.CommitCount()

	repo.CreateFile("activity-log.md", "one line\n")
	require.NoError(t, client.Stage("activity-log.md"))
	require.NoError(t, client.Commit("Quick sync #1/4"))

	assert.Equal(t, before+1, repo.CommitCount())
	assert.Equal(t, "Quick sync #1/4", repo.CommitMessages()[0])
}

func TestCommitWithNothingStagedFails(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	client := NewClient(repo.Path)

	err := client.Commit("empty")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrGitOperationFailed)

	var gitErr *errors.GitError
	require.ErrorAs(t, err, &gitErr)
	assert.Equal(t, "commit", gitErr.Operation)
}

func TestPushToBareRemote(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.AddBareRemote()
	client := NewClient(repo.Path)

	repo.CreateFile("activity-log.md", "line\n")
	require.NoError(t, client.Stage("activity-log.md"))
	require.NoError(t, client.Commit("Health check #1/1"))
	require.NoError(t, client.Push())
}

func TestPushWithoutRemoteFails(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	client := NewClient(repo.Path)

	err := client.Push()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrGitOperationFailed)
}

func TestCurrentBranch(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	branch, err := NewClient(repo.Path).CurrentBranch()
	require.NoError(t, err)
	assert.NotEmpty(t, branch)
}

func TestHasRemote(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	client := NewClient(repo.Path)

	hasRemote, err := client.HasRemote()
	require.NoError(t, err)
	assert.False(t, hasRemote)

	repo.AddBareRemote()
	hasRemote, err = client.HasRemote()
	require.NoError(t, err)
	assert.True(t, hasRemote)
}

func TestSubjects(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.CreateFile("activity-log.md", "line\n")
	repo.Commit("Status refresh #1/2")

	entries, err := NewClient(repo.Path).Subjects()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0], "|Status refresh #1/2")
}

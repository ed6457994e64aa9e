package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitErrorMessage(t *testing.T) {
	err := NewGitError("commit", []string{"-m", "msg"}, fmt.Errorf("exit status 1"), "nothing to commit")
	err.Cycle = 3

	msg := err.Error()
	assert.Contains(t, msg, "git commit failed")
	assert.Contains(t, msg, "cycle 3")
	assert.Contains(t, msg, "nothing to commit")
}

func TestGitErrorWrapsSentinel(t *testing.T) {
	err := NewGitError("push", nil, fmt.Errorf("exit status 1"), "")
	assert.ErrorIs(t, err, ErrGitOperationFailed)

	var gitErr *GitError
	require.ErrorAs(t, error(err), &gitErr)
	assert.Equal(t, "push", gitErr.Operation)
}

func TestGitErrorDoesNotDoubleWrap(t *testing.T) {
	inner := NewGitError("add", nil, fmt.Errorf("exit status 1"), "")
	outer := NewGitError("add", nil, inner, "")
	assert.ErrorIs(t, outer, ErrGitOperationFailed)
}

func TestConfigErrorWrapsSentinel(t *testing.T) {
	err := NewConfigError("push-mode", "sometimes", "must be one of: none, every, batch, end")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "push-mode")
	assert.Contains(t, err.Error(), "sometimes")
}

func TestLockErrorIncludesPID(t *testing.T) {
	err := &LockError{LockFile: "/tmp/drip-abc.lock", PID: 1234, Err: ErrAlreadyRunning}
	assert.Contains(t, err.Error(), "PID 1234")
	assert.True(t, stderrors.Is(err, ErrAlreadyRunning))
}

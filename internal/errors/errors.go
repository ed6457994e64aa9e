// Package errors defines the error kinds drip reports: configuration
// errors, failed git invocations, and lock contention. Sentinel errors
// support errors.Is checks across package boundaries.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration indicates an invalid or conflicting option value.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNotGitRepository indicates the target path is not a git repository.
	ErrNotGitRepository = errors.New("not a git repository")

	// ErrGitOperationFailed indicates a git command returned a non-zero exit.
	ErrGitOperationFailed = errors.New("git operation failed")

	// ErrAlreadyRunning indicates another drip instance holds the repo lock.
	ErrAlreadyRunning = errors.New("another drip instance is already running for this repository")
)

// Wrap adds context to an error while keeping the chain intact.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is the formatted variant of Wrap.
func Wrapf(err error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// GitError reports a failed git invocation together with the command that
// failed and any stderr output it produced. Cycle carries the loop iteration
// during which the failure happened (zero outside the commit loop).
type GitError struct {
	Operation string
	Args      []string
	Cycle     int
	Output    string
	Err       error
}

func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Operation)
	if e.Cycle > 0 {
		msg = fmt.Sprintf("%s (cycle %d)", msg, e.Cycle)
	}
	if e.Output != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Output)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *GitError) Unwrap() error { return e.Err }

// NewGitError builds a GitError wrapping ErrGitOperationFailed unless err
// already carries it.
func NewGitError(operation string, args []string, err error, output string) *GitError {
	if err != nil && !errors.Is(err, ErrGitOperationFailed) {
		err = fmt.Errorf("%w: %w", ErrGitOperationFailed, err)
	}
	return &GitError{Operation: operation, Args: args, Err: err, Output: output}
}

// ConfigError reports an invalid configuration parameter and its value.
type ConfigError struct {
	Parameter string
	Value     any
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("configuration error for %s = %v: %v", e.Parameter, e.Value, e.Err)
	}
	return fmt.Sprintf("configuration error for %s: %v", e.Parameter, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError builds a ConfigError wrapping ErrInvalidConfiguration.
func NewConfigError(parameter string, value any, message string) *ConfigError {
	return &ConfigError{
		Parameter: parameter,
		Value:     value,
		Err:       fmt.Errorf("%s: %w", message, ErrInvalidConfiguration),
	}
}

// LockError reports a failure to acquire or release the repository lock.
type LockError struct {
	LockFile string
	PID      int
	Err      error
}

func (e *LockError) Error() string {
	if e.PID > 0 {
		return fmt.Sprintf("lock error with file %s (PID %d): %v", e.LockFile, e.PID, e.Err)
	}
	return fmt.Sprintf("lock error with file %s: %v", e.LockFile, e.Err)
}

func (e *LockError) Unwrap() error { return e.Err }

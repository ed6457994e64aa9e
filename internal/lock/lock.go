// Package lock prevents two drip processes from interleaving commits in
// the same repository. A flock-held pidfile in the temp dir, keyed by a
// hash of the repository path, guards each repo.
package lock

import (
	"crypto/sha256"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"drip/internal/errors"
)

// Locker holds the per-repository lock file.
type Locker struct {
	lockFile string
	fd       *os.File
	acquired bool
}

// New creates a Locker for the given repository path.
func New(repoPath string) *Locker {
	repoHash := fmt.Sprintf("%x", sha256.Sum256([]byte(repoPath)))[:16]
	return &Locker{
		lockFile: filepath.Join(os.TempDir(), fmt.Sprintf("drip-%s.lock", repoHash)),
	}
}

// Acquire takes the lock or fails with ErrAlreadyRunning when another live
// process holds it. Lock files left by dead processes are taken over, since
// flock releases automatically on process exit.
func (l *Locker) Acquire() error {
	fd, err := os.OpenFile(l.lockFile, os.O_CREATE|os.O_RDWR, 0666)
	if err != nil {
		return &errors.LockError{LockFile: l.lockFile, Err: err}
	}
	l.fd = fd

	if err := syscall.Flock(int(fd.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		pid := l.readPID()
		_ = fd.Close()
		l.fd = nil
		if stderrors.Is(err, syscall.EWOULDBLOCK) || stderrors.Is(err, syscall.EAGAIN) {
			return &errors.LockError{LockFile: l.lockFile, PID: pid, Err: errors.ErrAlreadyRunning}
		}
		return &errors.LockError{LockFile: l.lockFile, Err: err}
	}

	if err := l.writePID(); err != nil {
		_ = l.Release()
		return err
	}
	l.acquired = true
	return nil
}

// Release drops the lock and removes the lock file.
func (l *Locker) Release() error {
	if l.fd == nil {
		return nil
	}
	flockErr := syscall.Flock(int(l.fd.Fd()), syscall.LOCK_UN)
	closeErr := l.fd.Close()
	l.fd = nil
	if l.acquired {
		_ = os.Remove(l.lockFile)
		l.acquired = false
	}
	if flockErr != nil {
		return &errors.LockError{LockFile: l.lockFile, Err: flockErr}
	}
	if closeErr != nil {
		return &errors.LockError{LockFile: l.lockFile, Err: closeErr}
	}
	return nil
}

func (l *Locker) writePID() error {
	if err := l.fd.Truncate(0); err != nil {
		return &errors.LockError{LockFile: l.lockFile, Err: err}
	}
	if _, err := l.fd.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0); err != nil {
		return &errors.LockError{LockFile: l.lockFile, Err: err}
	}
	return nil
}

func (l *Locker) readPID() int {
	data, err := os.ReadFile(l.lockFile)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}

// Package testutil provides a real temporary git repository for tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TempGitRepo is a throwaway git repository rooted in a test temp dir.
type TempGitRepo struct {
	Path string
	T    *testing.T
}

// NewTempGitRepo initializes a repository with a configured user and one
// initial commit. Cleanup is handled by t.TempDir.
func NewTempGitRepo(t *testing.T) *TempGitRepo {
	t.Helper()

	repo := &TempGitRepo{Path: t.TempDir(), T: t}

	repo.git("init")
	repo.git("config", "user.name", "Test User")
	repo.git("config", "user.email", "test@example.com")

	readme := filepath.Join(repo.Path, "README.md")
	if err := os.WriteFile(readme, []byte("# Test Repository\n"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	repo.git("add", ".")
	repo.git("commit", "-m", "Initial commit")

	return repo
}

// AddBareRemote creates a bare repository and wires it up as origin with an
// upstream for the current branch, so pushes work without a network.
func (r *TempGitRepo) AddBareRemote() string {
	r.T.Helper()

	bare := r.T.TempDir()
	cmd := exec.Command("git", "init", "--bare", bare)
	if out, err := cmd.CombinedOutput(); err != nil {
		r.T.Fatalf("failed to init bare repo: %v: %s", err, out)
	}
	r.git("remote", "add", "origin", bare)
	branch := r.gitOutput("branch", "--show-current")
	r.git("push", "-u", "origin", branch)
	return bare
}

// CreateFile writes a file under the repository root.
func (r *TempGitRepo) CreateFile(name, content string) {
	r.T.Helper()
	path := filepath.Join(r.Path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		r.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.T.Fatalf("failed to create file: %v", err)
	}
}

// Commit stages and commits everything.
func (r *TempGitRepo) Commit(message string) {
	r.T.Helper()
	r.git("add", ".")
	r.git("commit", "-m", message)
}

// CommitCount returns the number of commits reachable from HEAD.
func (r *TempGitRepo) CommitCount() int {
	r.T.Helper()
	out := r.gitOutput("rev-list", "--count", "HEAD")
	n := 0
	for _, c := range out {
		n = n*10 + int(c-'0')
	}
	return n
}

// CommitMessages returns commit subjects, newest first.
func (r *TempGitRepo) CommitMessages() []string {
	r.T.Helper()
	out := r.gitOutput("log", "--pretty=format:%s")
	var messages []string
	for _, line := range strings.Split(out, "\n") {
		if line != "" {
			messages = append(messages, line)
		}
	}
	return messages
}

// FileLines reads a repo file and returns its non-empty lines.
func (r *TempGitRepo) FileLines(name string) []string {
	r.T.Helper()
	data, err := os.ReadFile(filepath.Join(r.Path, name))
	if err != nil {
		r.T.Fatalf("failed to read %s: %v", name, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func (r *TempGitRepo) git(args ...string) {
	r.T.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Path
	if out, err := cmd.CombinedOutput(); err != nil {
		r.T.Fatalf("git %s failed: %v: %s", strings.Join(args, " "), err, out)
	}
}

func (r *TempGitRepo) gitOutput(args ...string) string {
	r.T.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Path
	out, err := cmd.Output()
	if err != nil {
		r.T.Fatalf("git %s failed: %v", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out))
}

// Package git wraps the handful of git invocations drip needs: staging,
// committing, pushing, and a few read-only queries. All commands run with
// -C so the process never has to chdir into the repository.
package git

import (
	"os/exec"
	"strings"
)

// Client runs git commands against a single repository.
type Client struct {
	repoPath string
	exec     Executor
}

// NewClient returns a Client using the real exec-based executor.
func NewClient(repoPath string) *Client {
	return NewClientWithExecutor(repoPath, NewExecExecutor())
}

// NewClientWithExecutor returns a Client with a custom executor for tests.
func NewClientWithExecutor(repoPath string, executor Executor) *Client {
	return &Client{repoPath: repoPath, exec: executor}
}

// IsRepository checks whether path is inside a git work tree.
func IsRepository(path string) bool {
	cmd := exec.Command("git", "-C", path, "rev-parse", "--is-inside-work-tree")
	return NewExecExecutor().Execute(cmd) == nil
}

// CurrentBranch returns the checked-out branch name.
func (c *Client) CurrentBranch() (string, error) {
	out, err := c.output("branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// HasRemote reports whether the repository has at least one remote
// configured. Push modes other than none require one.
func (c *Client) HasRemote() (bool, error) {
	out, err := c.output("remote")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// Stage adds the given paths to the index.
func (c *Client) Stage(paths ...string) error {
	return c.run(append([]string{"add", "--"}, paths...)...)
}

// Commit records the staged changes with the given message.
func (c *Client) Commit(message string) error {
	return c.run("commit", "-m", message)
}

// Push sends accumulated commits to the default remote.
func (c *Client) Push() error {
	return c.run("push")
}

// Subjects returns one "date|subject" entry per commit reachable from HEAD,
// newest first. Used by the stats command to find drip-made commits.
func (c *Client) Subjects() ([]string, error) {
	out, err := c.output("log", "--pretty=format:%as|%s")
	if err != nil {
		return nil, err
	}
	var entries []string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			entries = append(entries, line)
		}
	}
	return entries, nil
}

func (c *Client) run(args ...string) error {
	cmd := exec.Command("git", append([]string{"-C", c.repoPath}, args...)...)
	return c.exec.Execute(cmd)
}

func (c *Client) output(args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", c.repoPath}, args...)...)
	return c.exec.ExecuteWithOutput(cmd)
}

package git

import (
	"bytes"
	"os/exec"
	"strings"

	"drip/internal/errors"
)

// Executor runs external commands. The indirection exists so tests can
// observe or fail invocations without a real git binary.
type Executor interface {
	Execute(cmd *exec.Cmd) error
	ExecuteWithOutput(cmd *exec.Cmd) (string, error)
}

// ExecExecutor is the production Executor backed by os/exec.
type ExecExecutor struct{}

func NewExecExecutor() *ExecExecutor { return &ExecExecutor{} }

func (e *ExecExecutor) Execute(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		op, args := splitArgs(cmd)
		return errors.NewGitError(op, args, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (e *ExecExecutor) ExecuteWithOutput(cmd *exec.Cmd) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		op, args := splitArgs(cmd)
		return "", errors.NewGitError(op, args, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// splitArgs pulls the git subcommand and its arguments out of a prepared
// command for error reporting. cmd.Args is ["git", "-C", repo, op, ...].
func splitArgs(cmd *exec.Cmd) (string, []string) {
	args := cmd.Args
	for len(args) > 0 && (args[0] == "git" || args[0] == "-C") {
		if args[0] == "-C" && len(args) > 1 {
			args = args[2:]
			continue
		}
		args = args[1:]
	}
	if len(args) == 0 {
		return "git", nil
	}
	return args[0], args[1:]
}

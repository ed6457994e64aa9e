// Package driver implements the commit session loop: wait a jittered
// interval, append a line to the activity log, commit it, and push
// according to the configured policy.
package driver

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"drip/internal/config"
	"drip/internal/errors"
	"drip/internal/models"
)

// Invoker is the version-control surface the driver depends on.
type Invoker interface {
	Stage(paths ...string) error
	Commit(message string) error
	Push() error
}

// Mutator appends one line to the activity log.
type Mutator interface {
	Append(line string) error
}

// Rand is the injectable randomness source. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// SleepFunc blocks for the given duration or until the context is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options wires a Driver's dependencies. Config, Git and Mutator are
// required; the rest default to production implementations.
type Options struct {
	Config  *config.Config
	Git     Invoker
	Mutator Mutator
	Logger  *zap.Logger
	Out     io.Writer
	Rand    Rand
	Sleep   SleepFunc
	Now     func() time.Time
}

// Driver owns the iteration state for a single run. It is not reused.
type Driver struct {
	cfg      *config.Config
	git      Invoker
	mutator  Mutator
	log      *zap.Logger
	out      io.Writer
	rng      Rand
	sleep    SleepFunc
	now      func() time.Time
	messages []string
	runID    string

	commits     int
	pending     int
	pushes      int
	planned     int
	start       time.Time
	interrupted bool
}

// New creates a Driver. The message pool is loaded here so a bad seed file
// fails before any waiting starts.
func New(opts Options) (*Driver, error) {
	messages, err := LoadMessages(opts.Config.MessageSeedFile)
	if err != nil {
		return nil, err
	}
	d := &Driver{
		cfg:      opts.Config,
		git:      opts.Git,
		mutator:  opts.Mutator,
		log:      opts.Logger,
		out:      opts.Out,
		rng:      opts.Rand,
		sleep:    opts.Sleep,
		now:      opts.Now,
		messages: messages,
		runID:    uuid.NewString()[:8],
	}
	if d.log == nil {
		d.log = zap.NewNop()
	}
	if d.out == nil {
		d.out = os.Stdout
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if d.sleep == nil {
		d.sleep = sleepContext
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d, nil
}

// Run executes the commit loop until the planned count is reached, the
// duration budget is exhausted, or the context is cancelled. The first
// failed git or filesystem operation halts the run.
func (d *Driver) Run(ctx context.Context) error {
	d.start = d.now()
	deadline := d.start.Add(d.cfg.Duration())
	d.planned = d.cfg.PlannedCommits()
	nominal := d.cfg.NominalInterval()

	fmt.Fprintf(d.out, "Planning %d commits over ~%.2fh (nominal interval %s)\n",
		d.planned, d.cfg.DurationHours, nominal.Round(time.Second))
	d.log.Info("session started",
		zap.String("run_id", d.runID),
		zap.Int("planned", d.planned),
		zap.Duration("nominal_interval", nominal),
		zap.String("push_mode", string(d.cfg.PushMode)),
		zap.Bool("dry_run", d.cfg.DryRun))

	for i := 1; i <= d.planned; i++ {
		if i > 1 {
			wait := d.nextWait(nominal)
			if d.cfg.DryRun {
				fmt.Fprintf(d.out, "[dry-run] would sleep %s before commit %d\n",
					wait.Round(100*time.Millisecond), i)
			} else if err := d.sleep(ctx, wait); err != nil {
				return d.onInterrupt(err)
			}
		}
		if d.now().After(deadline) {
			d.log.Warn("duration budget exhausted before reaching target",
				zap.Int("commits", d.commits), zap.Int("planned", d.planned))
			fmt.Fprintf(d.out, "Duration budget exhausted after %d of %d commits\n",
				d.commits, d.planned)
			break
		}
		if err := d.commitCycle(i); err != nil {
			return err
		}
		if err := d.pushAfterCommit(i); err != nil {
			return err
		}
	}

	return d.finalPush()
}

// commitCycle appends one unique line and commits it. In dry-run mode the
// cycle is counted but nothing is written or invoked.
func (d *Driver) commitCycle(i int) error {
	message := fmt.Sprintf("%s #%d/%d", d.pickMessage(), i, d.planned)
	line := fmt.Sprintf("%s :: %s [%s#%d]",
		d.now().UTC().Format(time.RFC3339Nano), message, d.runID, i)

	if d.cfg.DryRun {
		fmt.Fprintf(d.out, "[dry-run] would append to %s: %s\n", d.cfg.TargetFile, line)
		fmt.Fprintf(d.out, "[dry-run] would commit: %s\n", message)
		d.commits++
		d.pending++
		return nil
	}

	if err := d.mutator.Append(line); err != nil {
		d.log.Error("failed to append to target file", zap.Int("cycle", i), zap.Error(err))
		return errors.Wrapf(err, "cycle %d: failed to append to %s", i, d.cfg.TargetFile)
	}
	if err := d.git.Stage(d.cfg.TargetFile); err != nil {
		return d.gitFailure(i, err)
	}
	if err := d.git.Commit(message); err != nil {
		return d.gitFailure(i, err)
	}

	d.commits++
	d.pending++
	d.log.Info("commit created", zap.Int("cycle", i), zap.String("message", message))
	fmt.Fprintf(d.out, "Commit %d/%d: %s\n", i, d.planned, message)
	return nil
}

// pushAfterCommit applies the every/batch policies.
func (d *Driver) pushAfterCommit(i int) error {
	switch d.cfg.PushMode {
	case models.PushEvery:
		return d.push(i)
	case models.PushBatch:
		if d.pending >= d.cfg.PushBatchSize {
			return d.push(i)
		}
	}
	return nil
}

// finalPush flushes any remainder for the end and batch policies.
func (d *Driver) finalPush() error {
	if d.pending > 0 && (d.cfg.PushMode == models.PushEnd || d.cfg.PushMode == models.PushBatch) {
		return d.push(d.commits)
	}
	return nil
}

func (d *Driver) push(cycle int) error {
	if d.cfg.DryRun {
		fmt.Fprintln(d.out, "[dry-run] would push")
		d.pushes++
		d.pending = 0
		return nil
	}
	if err := d.git.Push(); err != nil {
		return d.gitFailure(cycle, err)
	}
	d.pushes++
	d.pending = 0
	d.log.Info("pushed", zap.Int("commits_flushed", cycle), zap.Int("pushes", d.pushes))
	return nil
}

// onInterrupt handles context cancellation mid-wait: pending commits are
// flushed when the push mode pushes at all, then the cancellation error is
// surfaced so the caller reports an interrupted run.
func (d *Driver) onInterrupt(cause error) error {
	d.interrupted = true
	d.log.Warn("run interrupted", zap.Int("commits", d.commits), zap.Error(cause))
	if d.pending > 0 && d.cfg.PushMode != models.PushNone && !d.cfg.DryRun {
		fmt.Fprintln(d.out, "Interrupted. Attempting to push partial work...")
		if err := d.git.Push(); err != nil {
			d.log.Error("failed to push partial work", zap.Error(err))
		} else {
			d.pushes++
			d.pending = 0
		}
	}
	return cause
}

// gitFailure attaches the cycle index to a git error and halts the run.
func (d *Driver) gitFailure(cycle int, err error) error {
	var gitErr *errors.GitError
	if stderrors.As(err, &gitErr) {
		gitErr.Cycle = cycle
	}
	d.log.Error("git operation failed, halting run",
		zap.Int("cycle", cycle), zap.Int("commits", d.commits), zap.Error(err))
	return err
}

func (d *Driver) pickMessage() string {
	idx := int(d.rng.Float64() * float64(len(d.messages)))
	if idx >= len(d.messages) {
		idx = len(d.messages) - 1
	}
	return d.messages[idx]
}

// Summary reports the final iteration state. Valid after Run returns.
func (d *Driver) Summary() models.Summary {
	return models.Summary{
		RunID:       d.runID,
		Planned:     d.planned,
		Commits:     d.commits,
		Pushes:      d.pushes,
		Elapsed:     models.Duration(d.now().Sub(d.start)),
		DryRun:      d.cfg.DryRun,
		Interrupted: d.interrupted,
	}
}

// PrintSummary writes the session summary in a human-readable form.
func (d *Driver) PrintSummary() {
	s := d.Summary()
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, "Session summary")
	fmt.Fprintln(d.out, "---------------")
	fmt.Fprintf(d.out, "  Run ID:   %s\n", s.RunID)
	fmt.Fprintf(d.out, "  Commits:  %d of %d planned\n", s.Commits, s.Planned)
	fmt.Fprintf(d.out, "  Pushes:   %d\n", s.Pushes)
	fmt.Fprintf(d.out, "  Elapsed:  %s\n", time.Duration(s.Elapsed).Round(time.Second))
	if s.DryRun {
		fmt.Fprintln(d.out, "  Mode:     dry-run (no files or git touched)")
	}
	if s.Interrupted {
		fmt.Fprintln(d.out, "  Status:   interrupted")
	}
}

// sleepContext is the production SleepFunc: a cancellable timer.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

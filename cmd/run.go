package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"drip/internal/driver"
	"drip/internal/errors"
	"drip/internal/git"
	"drip/internal/lock"
	"drip/internal/logger"
	"drip/internal/models"
)

var runDryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a commit session",
	Long: `Run the commit loop: wait a jittered interval, append a unique line to
the target file, commit it, and push according to the push mode.

The session plans round(commits-per-hour x duration-hours) commits and
stops early if the wall-clock duration is exceeded. A failing git command
halts the run immediately; nothing is retried.

Examples:
  drip run --commits-per-hour 4 --duration-hours 2
  drip run --push-mode batch --push-batch-size 5
  drip run --dry-run`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	addSessionFlags(runCmd)
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Report planned actions without touching files or git")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := sessionConfig(cmd)
	cfg.DryRun = runDryRun
	if err := cfg.Finalize(); err != nil {
		return err
	}

	log, err := logger.New(logger.Options{Debug: debug, File: logFile})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	client := git.NewClient(cfg.RepoPath)

	if !cfg.DryRun {
		if !git.IsRepository(cfg.RepoPath) {
			return errors.Wrap(errors.ErrNotGitRepository, cfg.RepoPath)
		}

		locker := lock.New(cfg.RepoPath)
		if err := locker.Acquire(); err != nil {
			return err
		}
		defer func() { _ = locker.Release() }()

		if cfg.PushMode != models.PushNone {
			if hasRemote, err := client.HasRemote(); err == nil && !hasRemote {
				log.Warn("no remote configured; pushes will fail",
					zap.String("push_mode", string(cfg.PushMode)))
			}
		}

		if branch, err := client.CurrentBranch(); err == nil {
			fmt.Printf("Repository: %s (branch %s)\n", cfg.RepoPath, branch)
		}
	}

	drv, err := driver.New(driver.Options{
		Config:  cfg,
		Git:     client,
		Mutator: driver.NewLogAppender(cfg.RepoPath, cfg.TargetFile),
		Logger:  log,
		Out:     os.Stdout,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := drv.Run(ctx)
	drv.PrintSummary()

	if stderrors.Is(runErr, context.Canceled) {
		return fmt.Errorf("run interrupted before completing all commits")
	}
	return runErr
}

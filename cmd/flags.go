package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"drip/internal/config"
	"drip/internal/models"
)

// addSessionFlags registers the flags shared by run and plan. Defaults come
// from viper so the config file and DRIP_* environment still apply; a flag
// set on the command line wins.
func addSessionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("repo", "", "Path to the git repository (default: current directory)")
	f.Float64("commits-per-hour", 20, "Average commits per hour to generate")
	f.Float64("duration-hours", 1, "How many hours to keep the session running")
	f.Int("max-commits", 0, "Hard cap on the number of commits regardless of duration")
	f.String("target-file", "activity-log.md", "File that receives one appended line per commit")
	f.Float64("jitter", 0.5, "Randomization factor for wait intervals (0 disables jitter)")
	f.Float64("min-wait-seconds", 15, "Lower bound on interval seconds")
	f.String("push-mode", "end", "When to push commits: none|every|batch|end")
	f.Int("push-batch-size", 5, "Commits per push when push-mode=batch")
	f.String("message-seed-file", "", "File with one commit message fragment per line")
}

// sessionConfig resolves the effective configuration for a command:
// viper state first, then explicit flag overrides.
func sessionConfig(cmd *cobra.Command) *config.Config {
	cfg := config.FromViper()
	f := cmd.Flags()

	if f.Changed("repo") {
		cfg.RepoPath, _ = f.GetString("repo")
	}
	if f.Changed("commits-per-hour") {
		cfg.CommitsPerHour, _ = f.GetFloat64("commits-per-hour")
	}
	if f.Changed("duration-hours") {
		cfg.DurationHours, _ = f.GetFloat64("duration-hours")
	}
	if f.Changed("max-commits") {
		cfg.MaxCommits, _ = f.GetInt("max-commits")
	}
	if f.Changed("target-file") {
		cfg.TargetFile, _ = f.GetString("target-file")
	}
	if f.Changed("jitter") {
		cfg.Jitter, _ = f.GetFloat64("jitter")
	}
	if f.Changed("min-wait-seconds") {
		secs, _ := f.GetFloat64("min-wait-seconds")
		cfg.MinWait = time.Duration(secs * float64(time.Second))
	}
	if f.Changed("push-mode") {
		mode, _ := f.GetString("push-mode")
		cfg.PushMode = models.PushMode(mode)
	}
	if f.Changed("push-batch-size") {
		cfg.PushBatchSize, _ = f.GetInt("push-batch-size")
	}
	if f.Changed("message-seed-file") {
		cfg.MessageSeedFile, _ = f.GetString("message-seed-file")
	}
	return cfg
}

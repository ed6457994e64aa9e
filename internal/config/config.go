// Package config resolves a run configuration from viper defaults, the
// config file, environment, and command-line flags. The resulting Config is
// validated once and treated as immutable by the rest of the program.
package config

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"drip/internal/errors"
	"drip/internal/models"
)

// Config holds all settings for one commit session.
type Config struct {
	RepoPath        string
	CommitsPerHour  float64
	DurationHours   float64
	MaxCommits      int
	TargetFile      string
	Jitter          float64
	MinWait         time.Duration
	PushMode        models.PushMode
	PushBatchSize   int
	MessageSeedFile string
	DryRun          bool
}

// FromViper builds a Config from the resolved viper state. Flags bound to
// the same keys override config-file and environment values.
func FromViper() *Config {
	return &Config{
		RepoPath:        viper.GetString("repo"),
		CommitsPerHour:  viper.GetFloat64("cadence.commits_per_hour"),
		DurationHours:   viper.GetFloat64("cadence.duration_hours"),
		MaxCommits:      viper.GetInt("cadence.max_commits"),
		TargetFile:      viper.GetString("commit.target_file"),
		Jitter:          viper.GetFloat64("cadence.jitter"),
		MinWait:         time.Duration(viper.GetFloat64("cadence.min_wait_seconds") * float64(time.Second)),
		PushMode:        models.PushMode(viper.GetString("push.mode")),
		PushBatchSize:   viper.GetInt("push.batch_size"),
		MessageSeedFile: viper.GetString("commit.message_seed_file"),
	}
}

// Finalize resolves the repository path and validates every parameter.
// It returns a ConfigError describing the first invalid value found.
func (c *Config) Finalize() error {
	if c.RepoPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.NewConfigError("repo", "", "failed to determine working directory")
		}
		c.RepoPath = wd
	}
	abs, err := filepath.Abs(c.RepoPath)
	if err != nil {
		return errors.NewConfigError("repo", c.RepoPath, "failed to resolve absolute path")
	}
	c.RepoPath = abs

	if c.CommitsPerHour <= 0 {
		return errors.NewConfigError("commits-per-hour", c.CommitsPerHour, "must be positive")
	}
	if c.DurationHours <= 0 {
		return errors.NewConfigError("duration-hours", c.DurationHours, "must be positive")
	}
	if c.TargetCommits() < 1 {
		return errors.NewConfigError("commits-per-hour", c.CommitsPerHour,
			"commits-per-hour x duration-hours rounds to zero commits")
	}
	if c.MaxCommits < 0 {
		return errors.NewConfigError("max-commits", c.MaxCommits, "must not be negative")
	}
	if c.Jitter < 0 {
		return errors.NewConfigError("jitter", c.Jitter, "must not be negative")
	}
	if c.MinWait < 0 {
		return errors.NewConfigError("min-wait-seconds", c.MinWait, "must not be negative")
	}
	if c.TargetFile == "" {
		return errors.NewConfigError("target-file", "", "must not be empty")
	}
	if !c.PushMode.Valid() {
		return errors.NewConfigError("push-mode", string(c.PushMode),
			"must be one of: none, every, batch, end")
	}
	if c.PushMode == models.PushBatch && c.PushBatchSize < 1 {
		return errors.NewConfigError("push-batch-size", c.PushBatchSize, "must be at least 1")
	}
	return nil
}

// TargetCommits is the rounded number of commits the session aims for,
// before any max-commits cap is applied.
func (c *Config) TargetCommits() int {
	return int(math.Round(c.CommitsPerHour * c.DurationHours))
}

// PlannedCommits is the target after the max-commits cap.
func (c *Config) PlannedCommits() int {
	n := c.TargetCommits()
	if c.MaxCommits > 0 && c.MaxCommits < n {
		n = c.MaxCommits
	}
	return n
}

// Duration is the configured wall-clock budget for the session.
func (c *Config) Duration() time.Duration {
	return time.Duration(c.DurationHours * float64(time.Hour))
}

// NominalInterval spreads the rounded target evenly over the duration.
// The cap shortens the run rather than stretching the spacing.
func (c *Config) NominalInterval() time.Duration {
	return c.Duration() / time.Duration(c.TargetCommits())
}

// Plan renders the schedule this configuration produces.
func (c *Config) Plan() models.Plan {
	nominal := c.NominalInterval()
	low := 1.0 - c.Jitter
	if low < 0.05 {
		low = 0.05
	}
	minInterval := time.Duration(low * float64(nominal))
	if minInterval < c.MinWait {
		minInterval = c.MinWait
	}
	maxInterval := time.Duration((1.0 + c.Jitter) * float64(nominal))
	if maxInterval < c.MinWait {
		maxInterval = c.MinWait
	}
	planned := c.PlannedCommits()
	return models.Plan{
		TargetCommits:   planned,
		NominalInterval: models.Duration(nominal),
		MinInterval:     models.Duration(minInterval),
		MaxInterval:     models.Duration(maxInterval),
		Duration:        models.Duration(c.Duration()),
		PushMode:        c.PushMode,
		EstimatedPushes: models.EstimatePushes(c.PushMode, planned, c.PushBatchSize),
		TargetFile:      c.TargetFile,
	}
}

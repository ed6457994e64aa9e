package models

import (
	"math"
	"time"
)

// PushMode controls when accumulated commits are pushed to the remote.
type PushMode string

const (
	PushNone  PushMode = "none"
	PushEvery PushMode = "every"
	PushBatch PushMode = "batch"
	PushEnd   PushMode = "end"
)

// Valid reports whether the mode is one of the known push modes.
func (m PushMode) Valid() bool {
	switch m {
	case PushNone, PushEvery, PushBatch, PushEnd:
		return true
	default:
		return false
	}
}

// Plan describes a commit session before it runs.
type Plan struct {
	TargetCommits   int      `json:"target_commits"`
	NominalInterval Duration `json:"nominal_interval"`
	MinInterval     Duration `json:"min_interval"`
	MaxInterval     Duration `json:"max_interval"`
	Duration        Duration `json:"duration"`
	PushMode        PushMode `json:"push_mode"`
	EstimatedPushes int      `json:"estimated_pushes"`
	TargetFile      string   `json:"target_file"`
}

// EstimatePushes returns the number of push invocations a run of n commits
// will make under the given mode.
func EstimatePushes(mode PushMode, n, batchSize int) int {
	switch mode {
	case PushEvery:
		return n
	case PushBatch:
		if batchSize < 1 {
			batchSize = 1
		}
		return int(math.Ceil(float64(n) / float64(batchSize)))
	case PushEnd:
		return 1
	default:
		return 0
	}
}

// Summary describes a finished (or interrupted) commit session.
type Summary struct {
	RunID       string   `json:"run_id"`
	Planned     int      `json:"planned"`
	Commits     int      `json:"commits"`
	Pushes      int      `json:"pushes"`
	Elapsed     Duration `json:"elapsed"`
	DryRun      bool     `json:"dry_run"`
	Interrupted bool     `json:"interrupted,omitempty"`
}

// Duration wraps time.Duration so plans and summaries encode as
// human-readable strings instead of nanosecond counts.
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

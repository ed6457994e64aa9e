package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"
)

var (
	planJSON bool
	planToon bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview the schedule for a session without running it",
	Long: `Show what a run with the given configuration would do: how many commits,
the nominal and jittered interval bounds, and how many pushes the push
mode produces.

Examples:
  drip plan
  drip plan --commits-per-hour 4 --duration-hours 1 --json`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	addSessionFlags(planCmd)
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Output as JSON")
	planCmd.Flags().BoolVar(&planToon, "toon", false, "Output as Toon (token-efficient format for LLMs)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg := sessionConfig(cmd)
	if err := cfg.Finalize(); err != nil {
		return err
	}

	plan := cfg.Plan()

	if planJSON {
		output, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if planToon {
		output, err := gotoon.Encode(plan)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Println("Session Plan")
	fmt.Println("━━━━━━━━━━━━")
	fmt.Println()
	fmt.Printf("Commits:          %d over %s\n", plan.TargetCommits, time.Duration(plan.Duration))
	fmt.Printf("Nominal interval: %s\n", time.Duration(plan.NominalInterval).Round(time.Second))
	fmt.Printf("Jitter window:    %s to %s\n",
		time.Duration(plan.MinInterval).Round(time.Second),
		time.Duration(plan.MaxInterval).Round(time.Second))
	fmt.Printf("Target file:      %s\n", plan.TargetFile)
	fmt.Printf("Push mode:        %s (%d push(es))\n", plan.PushMode, plan.EstimatedPushes)

	return nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Write a default configuration to ~/.config/drip/config.toml if none
exists. Every value can still be overridden per invocation with flags or
DRIP_* environment variables.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

const defaultConfig = `[cadence]
commits_per_hour = 20.0
duration_hours = 1.0
jitter = 0.5
min_wait_seconds = 15.0
# max_commits = 0

[commit]
target_file = "activity-log.md"
# message_seed_file = "phrases.txt"

[push]
mode = "end"
batch_size = 5
`

func runInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".config", "drip")
	configPath := filepath.Join(configDir, "config.toml")

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config already exists: %s\n", configPath)
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("✓ Created default config: %s\n", configPath)
	fmt.Println("  You can now use: drip run")
	return nil
}

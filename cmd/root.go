package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	debug   bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "drip",
	Short: "Drip-feed randomized commits to a git repository",
	Long: `drip periodically appends a line to an activity log and commits the
change, with jittered spacing so the commit pattern looks organic rather
than perfectly periodic.

A session is shaped by a commit rate and a duration:
  drip run --commits-per-hour 20 --duration-hours 1

Preview the schedule without touching the repository:
  drip plan
  drip run --dry-run`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/drip/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write a rotated JSON session log to this file")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "drip")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("drip")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("cadence.commits_per_hour", 20.0)
	viper.SetDefault("cadence.duration_hours", 1.0)
	viper.SetDefault("cadence.max_commits", 0)
	viper.SetDefault("cadence.jitter", 0.5)
	viper.SetDefault("cadence.min_wait_seconds", 15.0)
	viper.SetDefault("commit.target_file", "activity-log.md")
	viper.SetDefault("commit.message_seed_file", "")
	viper.SetDefault("push.mode", "end")
	viper.SetDefault("push.batch_size", 5)

	_ = viper.ReadInConfig()
}

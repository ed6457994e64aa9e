package cmd

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"drip/internal/git"
)

var (
	statsRepo string
	statsJSON bool
	statsToon bool
)

// markerPattern matches the "#<seq>/<total>" suffix drip appends to every
// commit message.
var markerPattern = regexp.MustCompile(`#\d+/\d+$`)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics about drip-made commits in the repository",
	Long: `Scan the repository history for commits carrying drip's sequence marker
and summarize them by date.

Examples:
  drip stats
  drip stats --json`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsRepo, "repo", "", "Path to the git repository (default: current directory)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsToon, "toon", false, "Output as Toon (token-efficient format for LLMs)")
}

type dailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type commitStats struct {
	TotalCommits int          `json:"total_commits"`
	BotCommits   int          `json:"bot_commits"`
	FirstDate    string       `json:"first_date,omitempty"`
	LastDate     string       `json:"last_date,omitempty"`
	ByDate       []dailyCount `json:"by_date"`
}

func runStats(cmd *cobra.Command, args []string) error {
	repoPath := statsRepo
	if repoPath == "" {
		repoPath = "."
	}
	if !git.IsRepository(repoPath) {
		return fmt.Errorf("not a git repository: %s", repoPath)
	}

	entries, err := git.NewClient(repoPath).Subjects()
	if err != nil {
		return fmt.Errorf("failed to read commit history: %w", err)
	}

	stats := collectStats(entries)

	if statsJSON {
		output, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if statsToon {
		output, err := gotoon.Encode(stats)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Println("Commit Statistics")
	fmt.Println("━━━━━━━━━━━━━━━━━")
	fmt.Println()
	fmt.Printf("Total commits: %d\n", stats.TotalCommits)
	fmt.Printf("Drip commits:  %d\n", stats.BotCommits)
	if stats.FirstDate != "" {
		fmt.Printf("Date range:    %s to %s\n", stats.FirstDate, stats.LastDate)
	}
	if len(stats.ByDate) > 0 {
		fmt.Println()
		fmt.Println("By date:")
		for _, d := range stats.ByDate {
			fmt.Printf("  %s  %3d\n", d.Date, d.Count)
		}
	}

	return nil
}

// collectStats splits "date|subject" entries and counts the ones carrying
// the sequence marker.
func collectStats(entries []string) commitStats {
	stats := commitStats{ByDate: []dailyCount{}}
	byDate := make(map[string]int)

	for _, entry := range entries {
		stats.TotalCommits++
		date, subject, ok := strings.Cut(entry, "|")
		if !ok || !markerPattern.MatchString(subject) {
			continue
		}
		stats.BotCommits++
		byDate[date]++
		if stats.FirstDate == "" || date < stats.FirstDate {
			stats.FirstDate = date
		}
		if date > stats.LastDate {
			stats.LastDate = date
		}
	}

	for date, count := range byDate {
		stats.ByDate = append(stats.ByDate, dailyCount{Date: date, Count: count})
	}
	sort.Slice(stats.ByDate, func(i, j int) bool {
		return stats.ByDate[i].Date > stats.ByDate[j].Date
	})

	return stats
}

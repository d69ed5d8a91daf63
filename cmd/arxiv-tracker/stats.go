package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-tracker/internal/feed"
	"github.com/pdiddy/arxiv-tracker/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection-wide counts and top keywords",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Bool("json", false, "output statistics as JSON")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := trackerConfig(cmd)
	if err != nil {
		return err
	}
	papers, err := store.Load(snapshotPath(cfg))
	if err != nil {
		return err
	}

	stats := papers.Stats()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Printf("Papers:     %d total, %d published today\n", stats.Total, stats.Today)
	fmt.Printf("Read:       %d\n", stats.Read)
	fmt.Printf("Bookmarked: %d\n", stats.Bookmarked)
	if !stats.LastSync.IsZero() {
		fmt.Printf("Last sync:  %s\n", stats.LastSync.Local().Format("2006-01-02 15:04:05"))
	}

	if len(stats.Categories) > 0 {
		fmt.Println("\nBy primary category:")
		lex := feed.DefaultLexicon()
		codes := make([]string, 0, len(stats.Categories))
		for code := range stats.Categories {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			fmt.Printf("  %-12s %-38s %d\n", code, lex.Resolve(code), stats.Categories[code])
		}
	}

	if len(stats.TopKeywords) > 0 {
		fmt.Println("\nTop keywords:")
		for _, k := range stats.TopKeywords {
			fmt.Printf("  %-20s %d\n", k.Word, k.Count)
		}
	}

	return nil
}

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-tracker/internal/feed"
	"github.com/pdiddy/arxiv-tracker/internal/store"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List known arXiv categories and per-category paper counts",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	cfg, err := trackerConfig(cmd)
	if err != nil {
		return err
	}
	papers, err := store.Load(snapshotPath(cfg))
	if err != nil {
		return err
	}
	counts := papers.Stats().Categories

	lex := feed.DefaultLexicon()
	codes := make([]string, 0, len(lex))
	for code := range lex {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		if n := counts[code]; n > 0 {
			fmt.Printf("%-12s %-40s %d papers\n", code, lex[code], n)
		} else {
			fmt.Printf("%-12s %s\n", code, lex[code])
		}
	}
	return nil
}

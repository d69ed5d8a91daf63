// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-tracker/internal/feed"
	"github.com/pdiddy/arxiv-tracker/internal/store"
	"github.com/pdiddy/arxiv-tracker/internal/tracker"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the latest papers for a category and merge them",
	Long: `Sync queries the arXiv API for the most recent submissions in a category,
annotates each paper with keywords, a one-line summary, and reading
estimates, and merges the batch into the local collection. Papers already
in the collection keep their read flags, bookmarks, and notes. Running
sync twice against an unchanged feed changes nothing.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().String("category", "", "arXiv category to sync (default cs.AI)")
	syncCmd.Flags().Int("max-results", 0, "number of records to request (default 10)")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := trackerConfig(cmd)
	if err != nil {
		return err
	}
	if category, _ := cmd.Flags().GetString("category"); category != "" {
		cfg.Fetch.Category = category
	}
	if n, _ := cmd.Flags().GetInt("max-results"); n > 0 {
		cfg.Fetch.MaxResults = n
	}

	path := snapshotPath(cfg)
	papers, err := store.Load(path)
	if err != nil {
		return err
	}

	tr := tracker.New(feed.NewClient(cfg.Fetch), papers, feed.DefaultLexicon(), cfg.Analysis.TopKeywords)
	if _, err := tr.Sync(context.Background(), cfg.Fetch.Category, cfg.Fetch.MaxResults, os.Stdout); err != nil {
		return err
	}

	return store.Save(papers, path)
}

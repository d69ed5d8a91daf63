// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-tracker/internal/store"
	"github.com/pdiddy/arxiv-tracker/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List papers in the collection with filters and paging",
	Long: `List prints the collection, newest publications first. Filters narrow by
category (code or display-name fragment), read or bookmark state, and
free-text search across titles, summaries, authors, and keywords.

Sort orders: published (default), popularity, readtime.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("category", "", "filter by category code or display-name fragment")
	listCmd.Flags().Bool("read", false, "only papers marked read")
	listCmd.Flags().Bool("unread", false, "only papers not marked read")
	listCmd.Flags().Bool("bookmarked", false, "only bookmarked papers")
	listCmd.Flags().String("search", "", "free-text search over title, summary, authors, keywords")
	listCmd.Flags().String("sort", "published", "sort order: published, popularity, or readtime")
	listCmd.Flags().Int("limit", 0, "page size (default 50)")
	listCmd.Flags().Int("offset", 0, "number of papers to skip")
	listCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := trackerConfig(cmd)
	if err != nil {
		return err
	}
	papers, err := store.Load(snapshotPath(cfg))
	if err != nil {
		return err
	}

	opts, err := listOptsFromFlags(cmd)
	if err != nil {
		return err
	}

	page, total := papers.Query(opts)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	if total == 0 {
		fmt.Println("No papers found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-13s  %-10s  %-5s  %-4s  %-5s  %s\n",
		"ID", "arXiv", "Published", "Score", "Min", "Flags", "Title")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, p := range page {
		title := p.Title
		if len(title) > 48 {
			title = title[:45] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-13s  %-10s  %-5d  %-4d  %-5s  %s\n",
			p.LocalID, p.ArxivID, p.Published.Format("2006-01-02"),
			p.Annotation.PopularityScore, p.Annotation.ReadMinutes,
			flagMarks(p), title)
	}

	fmt.Fprintf(os.Stdout, "\n%d of %d papers\n", len(page), total)
	return nil
}

func listOptsFromFlags(cmd *cobra.Command) (store.QueryOptions, error) {
	category, _ := cmd.Flags().GetString("category")
	search, _ := cmd.Flags().GetString("search")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	opts := store.QueryOptions{
		Category: category,
		Search:   search,
		Limit:    limit,
		Offset:   offset,
	}

	read, _ := cmd.Flags().GetBool("read")
	unread, _ := cmd.Flags().GetBool("unread")
	if read && unread {
		return opts, fmt.Errorf("--read and --unread are mutually exclusive")
	}
	if read || unread {
		isRead := read
		opts.IsRead = &isRead
	}
	if bookmarked, _ := cmd.Flags().GetBool("bookmarked"); bookmarked {
		opts.IsBookmarked = &bookmarked
	}

	sortBy, _ := cmd.Flags().GetString("sort")
	switch store.SortOrder(sortBy) {
	case store.SortPublished, store.SortPopularity, store.SortReadTime, "":
		opts.SortBy = store.SortOrder(sortBy)
	default:
		return opts, fmt.Errorf("unknown sort order %q: use published, popularity, or readtime", sortBy)
	}

	return opts, nil
}

// flagMarks renders the user flags as a compact column: R for read,
// B for bookmarked, N for notes.
func flagMarks(p types.Paper) string {
	var b strings.Builder
	if p.IsRead {
		b.WriteByte('R')
	}
	if p.IsBookmarked {
		b.WriteByte('B')
	}
	if p.Notes != "" {
		b.WriteByte('N')
	}
	return b.String()
}

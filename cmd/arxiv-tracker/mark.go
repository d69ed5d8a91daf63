// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-tracker/internal/store"
)

var markCmd = &cobra.Command{
	Use:   "mark [id]",
	Short: "Update read state, bookmark, notes, or text fields of a paper",
	Long: `Mark updates the user-owned fields of one paper: the read flag, the
bookmark flag, free-form notes, and manual title or summary corrections.
Derived fields like keywords and scores cannot be set; they are recomputed
on the next sync.`,
	Args: cobra.ExactArgs(1),
	RunE: runMark,
}

func init() {
	markCmd.Flags().Bool("read", false, "mark the paper as read")
	markCmd.Flags().Bool("unread", false, "mark the paper as unread")
	markCmd.Flags().Bool("bookmark", false, "bookmark the paper")
	markCmd.Flags().Bool("unbookmark", false, "remove the bookmark")
	markCmd.Flags().String("notes", "", "set free-form notes (empty string clears them)")
	markCmd.Flags().String("title", "", "correct the paper title")
	markCmd.Flags().String("summary", "", "correct the paper summary")

	rootCmd.AddCommand(markCmd)
}

func runMark(cmd *cobra.Command, args []string) error {
	localID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid paper ID %q", args[0])
	}

	fields, err := markFieldsFromFlags(cmd)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("nothing to update: provide --read, --unread, --bookmark, --unbookmark, --notes, --title, or --summary")
	}

	cfg, err := trackerConfig(cmd)
	if err != nil {
		return err
	}
	path := snapshotPath(cfg)
	papers, err := store.Load(path)
	if err != nil {
		return err
	}

	p, err := papers.Update(localID, fields)
	if err != nil {
		return err
	}
	if err := store.Save(papers, path); err != nil {
		return err
	}

	fmt.Printf("Updated [%d] %s\n", p.LocalID, p.Title)
	return nil
}

func markFieldsFromFlags(cmd *cobra.Command) (map[string]any, error) {
	fields := make(map[string]any)

	read, _ := cmd.Flags().GetBool("read")
	unread, _ := cmd.Flags().GetBool("unread")
	if read && unread {
		return nil, fmt.Errorf("--read and --unread are mutually exclusive")
	}
	if read || unread {
		fields["is_read"] = read
	}

	bookmark, _ := cmd.Flags().GetBool("bookmark")
	unbookmark, _ := cmd.Flags().GetBool("unbookmark")
	if bookmark && unbookmark {
		return nil, fmt.Errorf("--bookmark and --unbookmark are mutually exclusive")
	}
	if bookmark || unbookmark {
		fields["is_bookmarked"] = bookmark
	}

	// Changed distinguishes "clear the notes" from "leave them alone".
	for _, name := range []string{"notes", "title", "summary"} {
		if cmd.Flags().Changed(name) {
			value, _ := cmd.Flags().GetString(name)
			fields[name] = value
		}
	}

	return fields, nil
}

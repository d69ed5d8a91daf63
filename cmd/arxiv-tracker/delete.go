package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-tracker/internal/store"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Remove a paper from the collection",
	Long: `Delete removes one paper by its local ID. The ID is never reassigned,
so references in notes or scripts stay unambiguous. A later sync may bring
the paper back under a fresh ID.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	localID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid paper ID %q", args[0])
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

	if err := papers.Delete(localID); err != nil {
		return err
	}
	if err := store.Save(papers, path); err != nil {
		return err
	}

	fmt.Printf("Deleted paper %d\n", localID)
	return nil
}

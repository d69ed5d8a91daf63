package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-tracker/internal/store"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one paper in full, including its annotation",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().Bool("json", false, "output the paper as JSON")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	localID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid paper ID %q", args[0])
	}

	cfg, err := trackerConfig(cmd)
	if err != nil {
		return err
	}
	papers, err := store.Load(snapshotPath(cfg))
	if err != nil {
		return err
	}

	p, err := papers.Get(localID)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	fmt.Printf("[%d] %s\n", p.LocalID, p.Title)
	fmt.Printf("arXiv:      %s\n", p.ArxivID)
	fmt.Printf("Authors:    %s\n", strings.Join(p.Authors, ", "))

	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		if c.Name != c.Code {
			names = append(names, fmt.Sprintf("%s (%s)", c.Code, c.Name))
		} else {
			names = append(names, c.Code)
		}
	}
	fmt.Printf("Categories: %s\n", strings.Join(names, ", "))
	fmt.Printf("Published:  %s\n", p.Published.Format("2006-01-02 15:04"))
	fmt.Printf("Links:      %s  %s\n", p.AbsURL, p.PDFURL)
	fmt.Println()

	fmt.Printf("In a line:  %s\n", p.Annotation.OneLiner)
	words := make([]string, 0, len(p.Annotation.Keywords))
	for _, k := range p.Annotation.Keywords {
		words = append(words, fmt.Sprintf("%s(%d)", k.Word, k.Count))
	}
	fmt.Printf("Keywords:   %s\n", strings.Join(words, " "))
	fmt.Printf("Types:      %s\n", strings.Join(p.Annotation.ResearchTypes, ", "))
	fmt.Printf("Popularity: %d/100   Read time: ~%d min\n",
		p.Annotation.PopularityScore, p.Annotation.ReadMinutes)

	var status []string
	if p.IsRead {
		status = append(status, "read")
	}
	if p.IsBookmarked {
		status = append(status, "bookmarked")
	}
	if len(status) > 0 {
		fmt.Printf("Status:     %s\n", strings.Join(status, ", "))
	}
	if p.Notes != "" {
		fmt.Printf("Notes:      %s\n", p.Notes)
	}

	fmt.Println()
	fmt.Println(p.Summary)
	return nil
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-tracker/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the collection to YAML or JSON",
	Long: `Export writes every paper, newest publications first, to a YAML or JSON
file in the data directory. Use --out to write elsewhere.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("out", "", "output file (default: <data-dir>/export.<format>)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	cfg, err := trackerConfig(cmd)
	if err != nil {
		return err
	}
	papers, err := store.Load(snapshotPath(cfg))
	if err != nil {
		return err
	}

	switch format {
	case "yaml", "":
		if out == "" {
			out = filepath.Join(cfg.Store.DataDir, "export.yaml")
		}
		if err := store.ExportYAML(papers, out); err != nil {
			return err
		}
	case "json":
		if out == "" {
			out = filepath.Join(cfg.Store.DataDir, "export.json")
		}
		if err := store.ExportJSON(papers, out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Printf("Exported %d papers to %s\n", papers.Size(), out)
	return nil
}

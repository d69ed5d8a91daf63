// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-tracker CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-tracker/internal/store"
	"github.com/pdiddy/arxiv-tracker/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the arxiv-tracker CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-tracker",
	Short: "Track, annotate, and browse recent arXiv papers",
	Long: `arxiv-tracker maintains a local, annotated collection of recent arXiv
papers. It fetches the latest submissions for a category, derives keywords,
summaries, and reading estimates for each paper, and merges them into a
collection that survives restarts through a SQLite snapshot.

Each operation is a subcommand: sync, list, show, mark, delete, stats,
categories, and export.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-tracker.yaml or ~/.config/arxiv-tracker/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for the snapshot database and exports (default: data)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-tracker")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-tracker"))
		}
	}

	viper.SetEnvPrefix("ARXIV_TRACKER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// trackerConfig resolves the effective configuration: config file and
// environment first, documented defaults for whatever is left unset. The
// --data-dir flag overrides both.
func trackerConfig(cmd *cobra.Command) (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.Store.DataDir = dir
	}
	cfg.Defaults()
	return cfg, nil
}

func snapshotPath(cfg types.Config) string {
	return filepath.Join(cfg.Store.DataDir, store.DBFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

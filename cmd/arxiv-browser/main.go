// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-browser CLI, a
// command-line browser and batch downloader for arXiv.org articles.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the arxiv-browser CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-browser",
	Short: "Browse and batch-download arXiv.org articles",
	Long: `arxiv-browser queries the arXiv API, lists matching articles with their
metadata, and optionally downloads the PDFs under deterministic filenames.

Search queries use the arXiv query syntax (field prefixes ti:, au:, abs:,
co:, jr:, cat:, rn:, all: with AND, OR, ANDNOT); spaces, parentheses, and
double quotes need no escaping, the program URL-encodes for you. See
https://info.arxiv.org/help/api/user-manual.html for the query grammar.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-browser.yaml or ~/.config/arxiv-browser/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-browser")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-browser"))
		}
	}

	viper.SetEnvPrefix("ARXIV_BROWSER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

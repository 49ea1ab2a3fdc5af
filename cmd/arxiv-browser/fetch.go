// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-browser/internal/download"
	"github.com/pdiddy/arxiv-browser/internal/feed"
	"github.com/pdiddy/arxiv-browser/internal/render"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <ids...>",
	Short: "Download articles by arXiv id",
	Long: `Fetch looks up the given arXiv ids and downloads every listed PDF to
the output directory. It is shorthand for
"search --id-list ... --download --select all".

Example:
  arxiv-browser fetch 2309.06314 1811.02452`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("output-dir", "D", ".", "directory downloaded PDFs are written to")
	fetchCmd.Flags().StringP("output-template", "o", render.DefaultTemplate, "filename template with {id} {auth} {title} {pub} {updt} placeholders")
	fetchCmd.Flags().Bool("force", false, "overwrite existing files instead of skipping them")
	fetchCmd.Flags().Bool("metadata", false, "write a YAML metadata sidecar next to each PDF")
	fetchCmd.Flags().Bool("all-links", false, "download every PDF link of an entry, suffixing extras --2, --3, ...")
	fetchCmd.Flags().BoolP("remove-non-pdf", "r", false, "remove downloaded files that are not PDFs")
	fetchCmd.Flags().BoolP("keep-non-pdf", "k", false, "keep non-PDF downloads without warning")
	fetchCmd.Flags().Duration("delay", 0, "delay between requests (default 3s)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.MarkFlagsMutuallyExclusive("remove-non-pdf", "keep-non-pdf")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	client := feed.NewClient(feedConfig(cmd))
	records, err := client.List(cmd.Context(), feed.Request{
		IDList:     strings.Join(args, ","),
		MaxResults: len(args),
	})
	if err != nil {
		return err
	}

	template, _ := cmd.Flags().GetString("output-template")
	for i, a := range records {
		render.Display(os.Stdout, i+1, a, template)
	}
	if len(records) == 0 {
		return errors.New("no articles found for the given ids")
	}

	downloader := download.NewDownloader(downloadConfig(cmd), template)
	result := downloader.Batch(cmd.Context(), records, os.Stdout)
	if result.HasFailures() {
		return errors.New(download.FailureSummary(result))
	}
	return nil
}

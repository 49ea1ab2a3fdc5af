// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-browser/internal/download"
	"github.com/pdiddy/arxiv-browser/internal/feed"
	"github.com/pdiddy/arxiv-browser/internal/query"
	"github.com/pdiddy/arxiv-browser/internal/render"
	"github.com/pdiddy/arxiv-browser/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultDelay     = 3 * time.Second
	defaultUserAgent = "arxiv-browser/0.1"
)

var searchCmd = &cobra.Command{
	Use:   "search [clauses...]",
	Short: "List articles matching a query, optionally downloading PDFs",
	Long: `Search builds one arXiv query from positional clauses (raw arXiv query
syntax, joined with AND), field flags, a year range, and an optional
id-list, then lists matching articles page by page. With --download the
selected entries' PDFs are written to the output directory.

Examples:
  arxiv-browser search "au:ficial_a_i"
  arxiv-browser search --title quantum --years 2015-2018
  arxiv-browser search --id-list 2309.06314,1811.02452 --download
  arxiv-browser search -d --select 1,3-5 "au:ficial_a_i AND ti:quantum"`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("title", "", "title clause (ti:)")
	searchCmd.Flags().String("author", "", "author clause (au:)")
	searchCmd.Flags().String("abstract", "", "abstract clause (abs:)")
	searchCmd.Flags().String("comment", "", "comment clause (co:)")
	searchCmd.Flags().String("journal", "", "journal reference clause (jr:)")
	searchCmd.Flags().String("category", "", "category clause (cat:)")
	searchCmd.Flags().String("report-number", "", "report number clause (rn:)")
	searchCmd.Flags().String("all", "", "all-fields clause (all:)")
	searchCmd.Flags().String("years", "", "inclusive submission year range, e.g. 2017 or 2015-2018")
	searchCmd.Flags().StringP("id-list", "i", "", "comma-separated arXiv ids to look up")
	searchCmd.Flags().Int("start", 0, "result offset to start listing from")
	searchCmd.Flags().IntP("max-results", "m", feed.DefaultMaxResults, "maximum number of results to list")
	searchCmd.Flags().String("sort-by", string(feed.SortByLastUpdatedDate), "sort criterion: relevance, lastUpdatedDate, or submittedDate")
	searchCmd.Flags().String("sort-order", string(feed.SortOrderDescending), "sort order: ascending or descending")
	searchCmd.Flags().String("publish-years", "", "display filter on publish years, e.g. 2017 or 2015-2018,2021")
	searchCmd.Flags().String("update-years", "", "display filter on update years, same grammar as --publish-years")
	searchCmd.Flags().BoolP("download", "d", false, "download the PDFs of the selected entries")
	searchCmd.Flags().StringP("select", "s", "all", "entries to download: index terms like 1,3-5, or all")
	searchCmd.Flags().StringP("output-dir", "D", ".", "directory downloaded PDFs are written to")
	searchCmd.Flags().StringP("output-template", "o", render.DefaultTemplate, "filename template with {id} {auth} {title} {pub} {updt} placeholders")
	searchCmd.Flags().Bool("force", false, "overwrite existing files instead of skipping them")
	searchCmd.Flags().Bool("metadata", false, "write a YAML metadata sidecar next to each PDF")
	searchCmd.Flags().Bool("all-links", false, "download every PDF link of an entry, suffixing extras --2, --3, ...")
	searchCmd.Flags().BoolP("remove-non-pdf", "r", false, "remove downloaded files that are not PDFs")
	searchCmd.Flags().BoolP("keep-non-pdf", "k", false, "keep non-PDF downloads without warning")
	searchCmd.Flags().Duration("delay", 0, "delay between requests (default 3s)")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	searchCmd.MarkFlagsMutuallyExclusive("remove-non-pdf", "keep-non-pdf")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	spec, err := buildSpec(cmd, args)
	if err != nil {
		return err
	}

	start, _ := cmd.Flags().GetInt("start")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	sortBy, _ := cmd.Flags().GetString("sort-by")
	sortOrder, _ := cmd.Flags().GetString("sort-order")

	publishYears, updateYears, err := displayFilters(cmd)
	if err != nil {
		return err
	}

	client := feed.NewClient(feedConfig(cmd))
	records, err := client.List(cmd.Context(), feed.Request{
		SearchQuery: spec.SearchQuery,
		IDList:      spec.IDList,
		Start:       start,
		MaxResults:  maxResults,
		SortBy:      feed.SortBy(sortBy),
		SortOrder:   feed.SortOrder(sortOrder),
	})
	if err != nil {
		return err
	}

	records = render.FilterByYears(records, publishYears, updateYears)

	template, _ := cmd.Flags().GetString("output-template")
	for i, a := range records {
		render.Display(os.Stdout, i+1, a, template)
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "No results found.")
	}

	doDownload, _ := cmd.Flags().GetBool("download")
	if !doDownload || len(records) == 0 {
		return nil
	}

	selection, _ := cmd.Flags().GetString("select")
	selected, err := render.Select(records, selection)
	if err != nil {
		return err
	}

	downloader := download.NewDownloader(downloadConfig(cmd), template)
	result := downloader.Batch(cmd.Context(), selected, os.Stdout)
	if result.HasFailures() {
		return errors.New(download.FailureSummary(result))
	}
	return nil
}

// buildSpec assembles the query spec from positional clauses, field
// flags, the year range, and the id-list. Pre-flight errors (empty
// query, inverted range) surface here, before any request is made.
func buildSpec(cmd *cobra.Command, args []string) (query.Spec, error) {
	b := query.NewBuilder()
	for _, clause := range args {
		b.Raw(clause)
	}

	for _, ff := range []struct {
		flag  string
		field query.Field
	}{
		{"title", query.FieldTitle},
		{"author", query.FieldAuthor},
		{"abstract", query.FieldAbstract},
		{"comment", query.FieldComment},
		{"journal", query.FieldJournal},
		{"category", query.FieldCategory},
		{"report-number", query.FieldReportNumber},
		{"all", query.FieldAll},
	} {
		value, _ := cmd.Flags().GetString(ff.flag)
		b.Field(ff.field, value)
	}

	if years, _ := cmd.Flags().GetString("years"); years != "" {
		from, to, err := query.ParseYearRange(years)
		if err != nil {
			return query.Spec{}, err
		}
		b.Years(from, to)
	}

	if ids, _ := cmd.Flags().GetString("id-list"); ids != "" {
		b.IDList(ids)
	}

	return b.Build()
}

func displayFilters(cmd *cobra.Command) (publish, update *render.RangeSet, err error) {
	if expr, _ := cmd.Flags().GetString("publish-years"); expr != "" {
		publish, err = render.ParseRangeSet(expr)
		if err != nil {
			return nil, nil, fmt.Errorf("--publish-years: %w", err)
		}
	}
	if expr, _ := cmd.Flags().GetString("update-years"); expr != "" {
		update, err = render.ParseRangeSet(expr)
		if err != nil {
			return nil, nil, fmt.Errorf("--update-years: %w", err)
		}
	}
	return publish, update, nil
}

// httpConfig resolves timeout and user agent from flags, the config
// file, and the built-in defaults, in that order.
func httpConfig(cmd *cobra.Command) types.HTTPConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("http.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ua := viper.GetString("http.user_agent")
	if ua == "" {
		ua = defaultUserAgent
	}
	return types.HTTPConfig{Timeout: timeout, UserAgent: ua}
}

func requestDelay(cmd *cobra.Command) time.Duration {
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = viper.GetDuration("request_interval")
	}
	if delay == 0 {
		delay = defaultDelay
	}
	return delay
}

func feedConfig(cmd *cobra.Command) types.FeedConfig {
	return types.FeedConfig{
		HTTPConfig:      httpConfig(cmd),
		BaseURL:         viper.GetString("base_url"),
		PageSize:        viper.GetInt("page_size"),
		RequestInterval: requestDelay(cmd),
	}
}

func downloadConfig(cmd *cobra.Command) types.DownloadConfig {
	outputDir, _ := cmd.Flags().GetString("output-dir")
	force, _ := cmd.Flags().GetBool("force")
	metadata, _ := cmd.Flags().GetBool("metadata")
	allLinks, _ := cmd.Flags().GetBool("all-links")
	removeNonPDF, _ := cmd.Flags().GetBool("remove-non-pdf")

	return types.DownloadConfig{
		HTTPConfig:    httpConfig(cmd),
		OutputDir:     outputDir,
		DownloadDelay: requestDelay(cmd),
		Force:         force,
		AllLinks:      allLinks,
		RemoveNonPDF:  removeNonPDF,
		WriteMetadata: metadata,
	}
}

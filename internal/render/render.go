// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render formats article records for display, derives output
// filenames from a template, and resolves download selections over the
// displayed numbering.
package render

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/arxiv-browser/pkg/types"
)

// DefaultTemplate is the default output filename template. Placeholders:
// {id} arXiv id, {auth} slugified author list, {title} slugified title,
// {pub} publish year, {updt} update year. ".pdf" is appended by the
// downloader.
const DefaultTemplate = "{pub}-{auth}-{title}-{id}"

// timeFormat renders timestamps as e.g. "Tue Jun 13 2017 12:00:00AM UTC".
const timeFormat = "Mon Jan 02 2006 03:04:05PM MST"

var nonAlnum = regexp.MustCompile(`[^0-9a-zA-Z]+`)

var dashRun = regexp.MustCompile(`-{2,}`)

// Slugify replaces every run of non-alphanumeric characters with a
// single underscore and strips leading and trailing underscores. It is
// idempotent: slugifying a slug returns it unchanged.
func Slugify(s string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(s, "_"), "_")
}

// Filename expands template for a record, without the ".pdf" extension.
// An empty author list leaves no empty segment behind: separator runs
// created by empty placeholder expansions collapse.
func Filename(a types.Article, template string) string {
	if template == "" {
		template = DefaultTemplate
	}

	segments := make([]string, 0, len(a.Authors))
	for _, name := range a.Authors {
		if slug := Slugify(name); slug != "" {
			segments = append(segments, slug)
		}
	}

	name := strings.NewReplacer(
		"{id}", a.ID,
		"{auth}", strings.Join(segments, "-"),
		"{title}", Slugify(a.Title),
		"{pub}", strconv.Itoa(a.Published.Year()),
		"{updt}", strconv.Itoa(a.Updated.Year()),
	).Replace(template)

	return strings.Trim(dashRun.ReplaceAllString(name, "-"), "-")
}

// Display writes one record block: the 1-based numbering with its
// divider, the metadata fields, the derived output filename, and both
// link lists, in result-set order.
func Display(w io.Writer, index int, a types.Article, template string) {
	numbering := strconv.Itoa(index)
	fmt.Fprintln(w, numbering)
	fmt.Fprintln(w, strings.Repeat("-", len(numbering)))

	fmt.Fprintf(w, "ID: %s\n", a.ID)
	fmt.Fprintf(w, "Authors: %s\n", strings.Join(a.Authors, ", "))
	fmt.Fprintf(w, "Title: %s\n", a.Title)
	fmt.Fprintf(w, "Published: %s\n", a.Published.UTC().Format(timeFormat))
	fmt.Fprintf(w, "Updated: %s\n", a.Updated.UTC().Format(timeFormat))
	fmt.Fprintf(w, "Output file name: %s.pdf\n", Filename(a, template))
	fmt.Fprintf(w, "PDF links: %s\n", formatLinks(a.PDFLinks))
	fmt.Fprintf(w, "Other links: %s\n\n", formatLinks(a.OtherLinks))
}

func formatLinks(links []string) string {
	if len(links) == 0 {
		return "(none)"
	}
	return strings.Join(links, " ")
}

// SelectionRangeError reports a selection index outside the displayed
// result set.
type SelectionRangeError struct {
	Index int // offending 1-based index
	Total int // number of displayed records
}

func (e *SelectionRangeError) Error() string {
	return fmt.Sprintf("selection index %d out of range: result set has %d record(s)", e.Index, e.Total)
}

// Select resolves a selection expression against records, returning the
// chosen subset in display order. The expression is the range-set
// grammar over 1-based display indices; "all" or an empty expression
// selects everything. Any index outside 1..len(records) fails with a
// SelectionRangeError before anything is returned.
func Select(records []types.Article, expr string) ([]types.Article, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || strings.EqualFold(expr, "all") {
		return records, nil
	}

	rs, err := ParseRangeSet(expr)
	if err != nil {
		return nil, err
	}

	_, hi := rs.Bounds()
	if hi > len(records) {
		return nil, &SelectionRangeError{Index: hi, Total: len(records)}
	}

	var selected []types.Article
	for i := range records {
		if rs.Contains(i + 1) {
			selected = append(selected, records[i])
		}
	}
	return selected, nil
}

// FilterByYears drops records whose publish or update year falls outside
// the given sets. A nil set admits every year. Filtering happens before
// display numbering, matching the listing the user selects from.
func FilterByYears(records []types.Article, publish, update *RangeSet) []types.Article {
	if publish == nil && update == nil {
		return records
	}
	var kept []types.Article
	for _, a := range records {
		if publish != nil && !publish.Contains(a.Published.Year()) {
			continue
		}
		if update != nil && !update.Contains(a.Updated.Year()) {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

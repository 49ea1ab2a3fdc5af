// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for arxiv-browser.
package types

import "time"

// Article holds the metadata of one arXiv article as parsed from a feed
// entry. Records are plain data: built once by the feed parser, read by
// the presenter and the downloader, never mutated afterwards.
type Article struct {
	// ID is the arXiv identifier including the version suffix
	// (e.g. "1706.03762v7").
	ID string `json:"id" yaml:"id"`

	// Title is the article title with embedded newlines and indentation
	// collapsed to single spaces.
	Title string `json:"title" yaml:"title"`

	// Authors lists the author names in feed order. Duplicates are kept.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the first-submission timestamp (UTC).
	Published time.Time `json:"published" yaml:"published"`

	// Updated is the last-update timestamp (UTC).
	Updated time.Time `json:"updated" yaml:"updated"`

	// PDFLinks lists the PDF URLs for this article in feed order. Empty
	// when the feed carries no PDF link (e.g. withdrawn articles).
	PDFLinks []string `json:"pdf_links" yaml:"pdf_links"`

	// OtherLinks lists the remaining entry links (abstract page, DOI).
	OtherLinks []string `json:"other_links" yaml:"other_links"`
}

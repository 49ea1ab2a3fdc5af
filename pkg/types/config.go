// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every request
	// (e.g. "arxiv-browser/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FeedConfig holds settings for the feed client.
type FeedConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the arXiv query endpoint. Tests point this at an
	// httptest server.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// PageSize is the number of entries requested per page. Values above
	// the arXiv maximum (2000) are clamped.
	PageSize int `json:"page_size" yaml:"page_size"`

	// RequestInterval is the minimum delay between consecutive page
	// requests, per arXiv's published fair-use interval (default 3s).
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval"`
}

// DownloadConfig holds settings for the PDF downloader.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// OutputDir is the directory downloaded PDFs are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// DownloadDelay is the delay between consecutive downloads.
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// Force overwrites an existing file instead of skipping it.
	Force bool `json:"force" yaml:"force"`

	// AllLinks downloads every PDF link of an entry, suffixing extras
	// with "--2", "--3", ... By default only the first link is fetched
	// and the rest serve as fallbacks.
	AllLinks bool `json:"all_links" yaml:"all_links"`

	// RemoveNonPDF deletes a downloaded file whose contents are not a
	// PDF (e.g. a withdrawal notice page). When false such files are
	// kept and a warning is printed.
	RemoveNonPDF bool `json:"remove_non_pdf" yaml:"remove_non_pdf"`

	// WriteMetadata writes a YAML sidecar with the article record next
	// to each downloaded PDF.
	WriteMetadata bool `json:"write_metadata" yaml:"write_metadata"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed lists articles from the arXiv query endpoint. The client
// paginates with sequential offset-based GET requests, enforcing the
// fair-use interval between pages, and yields parsed article records
// lazily so the caller can stop early without issuing further requests.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pdiddy/arxiv-browser/internal/httputil"
	"github.com/pdiddy/arxiv-browser/pkg/types"
)

const (
	// DefaultBaseURL is the arXiv query endpoint.
	DefaultBaseURL = "https://export.arxiv.org/api/query"

	// MaxPageSize is the largest max_results value the arXiv API accepts
	// per request. Larger page sizes are clamped locally.
	MaxPageSize = 2000

	// MaxStart is the largest offset the arXiv API accepts.
	MaxStart = 30000

	// DefaultPageSize bounds one page when the configuration does not.
	DefaultPageSize = 100

	// DefaultMaxResults is the listing size when the request does not
	// ask for a specific total.
	DefaultMaxResults = 50

	// DefaultRequestInterval is arXiv's published fair-use interval.
	DefaultRequestInterval = 3 * time.Second
)

// SortBy selects the result ordering criterion.
type SortBy string

const (
	SortByRelevance       SortBy = "relevance"
	SortByLastUpdatedDate SortBy = "lastUpdatedDate"
	SortBySubmittedDate   SortBy = "submittedDate"
)

// SortOrder selects the ordering direction.
type SortOrder string

const (
	SortOrderAscending  SortOrder = "ascending"
	SortOrderDescending SortOrder = "descending"
)

// Request describes one listing: the query pair produced by the query
// builder plus pagination and ordering parameters.
type Request struct {
	SearchQuery string
	IDList      string
	Start       int
	MaxResults  int
	SortBy      SortBy
	SortOrder   SortOrder
}

// StatusError reports a non-success HTTP status from the endpoint,
// carrying the offset of the failing page.
type StatusError struct {
	Offset     int
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("arXiv API returned HTTP %d at offset %d", e.StatusCode, e.Offset)
}

// Client lists articles from the arXiv API. Requests are strictly
// sequential; construct with NewClient and share freely, the only state
// is the pacer.
type Client struct {
	http    *http.Client
	cfg     types.FeedConfig
	baseURL string
	pacer   *httputil.Pacer
}

// NewClient builds a feed client from cfg, filling unset fields with the
// package defaults.
func NewClient(cfg types.FeedConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.PageSize > MaxPageSize {
		cfg.PageSize = MaxPageSize
	}
	return &Client{
		http:    httputil.NewClient(cfg.HTTPConfig),
		cfg:     cfg,
		baseURL: cfg.BaseURL,
		pacer:   httputil.NewPacer(cfg.RequestInterval),
	}
}

// Records returns a lazy sequence of parsed article records for req.
// Pages are fetched on demand: breaking out of the range issues no
// further requests. The sequence ends after req.MaxResults records, or
// earlier when a page comes back short (end of results). Any transport
// failure, non-success status, or malformed entry is yielded once as an
// error and terminates the sequence; no partial page is dropped
// silently.
func (c *Client) Records(ctx context.Context, req Request) iter.Seq2[types.Article, error] {
	return func(yield func(types.Article, error) bool) {
		offset := req.Start
		remaining := req.MaxResults
		if remaining <= 0 {
			remaining = DefaultMaxResults
		}
		index := 0

		for remaining > 0 {
			count := remaining
			if count > c.cfg.PageSize {
				count = c.cfg.PageSize
			}

			if err := c.pacer.Wait(ctx); err != nil {
				yield(types.Article{}, err)
				return
			}

			entries, err := c.fetchPage(ctx, req, offset, count)
			if err != nil {
				yield(types.Article{}, err)
				return
			}

			for _, e := range entries {
				article, perr := parseEntry(index, e)
				if perr != nil {
					yield(types.Article{}, perr)
					return
				}
				if !yield(article, nil) {
					return
				}
				index++
				remaining--
				if remaining == 0 {
					break
				}
			}

			// A short page means the result set is exhausted.
			if len(entries) < count {
				return
			}
			offset += len(entries)
		}
	}
}

// List collects the full listing for req into a slice.
func (c *Client) List(ctx context.Context, req Request) ([]types.Article, error) {
	var articles []types.Article
	for a, err := range c.Records(ctx, req) {
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// fetchPage issues one GET against the endpoint and decodes the page.
func (c *Client) fetchPage(ctx context.Context, req Request, offset, count int) ([]atomEntry, error) {
	if offset > MaxStart {
		return nil, fmt.Errorf("offset %d exceeds the arXiv maximum of %d", offset, MaxStart)
	}

	httpReq, err := httputil.NewGetRequest(ctx, c.cfg.HTTPConfig, c.baseURL+"?"+pageQuery(req, offset, count))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("requesting page at offset %d: %w", offset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Offset: offset, StatusCode: resp.StatusCode}
	}

	var page atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("parsing feed at offset %d: %w", offset, err)
	}
	return page.Entries, nil
}

// pageQuery encodes the request parameters for one page.
func pageQuery(req Request, offset, count int) string {
	v := url.Values{}
	if req.SearchQuery != "" {
		v.Set("search_query", req.SearchQuery)
	}
	if req.IDList != "" {
		v.Set("id_list", req.IDList)
	}
	v.Set("start", strconv.Itoa(offset))
	v.Set("max_results", strconv.Itoa(count))
	if req.SortBy != "" {
		v.Set("sortBy", string(req.SortBy))
	}
	if req.SortOrder != "" {
		v.Set("sortOrder", string(req.SortOrder))
	}
	return v.Encode()
}

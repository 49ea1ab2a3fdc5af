// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the feed client and
// the downloader: client construction, request shaping, and the pacer
// that enforces arXiv's fair-use interval between requests.
package httputil

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/arxiv-browser/pkg/types"
)

// DefaultUserAgent is sent when the configuration leaves UserAgent empty.
const DefaultUserAgent = "arxiv-browser/0.1"

// NewClient returns an HTTP client with the configured timeout. Redirect
// following is left at the default; arXiv serves PDFs behind redirects.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// NewGetRequest builds a GET request carrying the configured User-Agent.
func NewGetRequest(ctx context.Context, cfg types.HTTPConfig, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	return req, nil
}

// Pacer enforces a fixed minimum interval between requests. The first
// call passes immediately; each subsequent call waits out the remainder
// of the interval. A nil Pacer or a zero interval never waits, which is
// how tests run without real sleeps.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a pacer with the given interval, or a no-op pacer
// when the interval is zero or negative.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next request is allowed or ctx is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.limiter == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download fetches article PDFs and writes them under their
// derived filenames. Downloads are sequential with a politeness delay;
// a failed record never stops the rest of the batch.
package download

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-browser/internal/httputil"
	"github.com/pdiddy/arxiv-browser/internal/render"
	"github.com/pdiddy/arxiv-browser/pkg/types"
)

// pdfMagic is the signature a real PDF starts with. Withdrawn articles
// come back as an HTML notice with status 200, so the status alone does
// not prove we got a PDF.
var pdfMagic = []byte("%PDF")

// ExhaustedLinksError reports a record whose PDF links all failed.
type ExhaustedLinksError struct {
	ID       string
	Attempts int
	Last     error
}

func (e *ExhaustedLinksError) Error() string {
	return fmt.Sprintf("%s: all %d PDF link(s) failed, last error: %v", e.ID, e.Attempts, e.Last)
}

func (e *ExhaustedLinksError) Unwrap() error { return e.Last }

// BatchResult summarizes a download batch.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	Failures   []string
}

// Total returns the number of records processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any record failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Downloader writes article PDFs into the configured output directory.
type Downloader struct {
	http     *http.Client
	cfg      types.DownloadConfig
	pacer    *httputil.Pacer
	template string
}

// NewDownloader builds a downloader from cfg. template is the filename
// template passed to the presenter; empty means the default.
func NewDownloader(cfg types.DownloadConfig, template string) *Downloader {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return &Downloader{
		http:     httputil.NewClient(cfg.HTTPConfig),
		cfg:      cfg,
		pacer:    httputil.NewPacer(cfg.DownloadDelay),
		template: template,
	}
}

// Batch downloads every record in order, printing per-record status to
// w. Failures are collected and reported in a closing summary rather
// than aborting the remaining records.
func (d *Downloader) Batch(ctx context.Context, records []types.Article, w io.Writer) BatchResult {
	var result BatchResult
	for i, a := range records {
		if i > 0 {
			if err := d.pacer.Wait(ctx); err != nil {
				result.Failed++
				result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", a.ID, err))
				continue
			}
		}
		skipped, err := d.Fetch(ctx, a, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", a.ID, err)
			result.Failed++
			result.Failures = append(result.Failures, err.Error())
		case skipped:
			result.Skipped++
		default:
			result.Downloaded++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	for _, msg := range result.Failures {
		fmt.Fprintf(w, "  failure: %s\n", msg)
	}
	return result
}

// Fetch downloads one record. The first PDF link is tried first and the
// remaining links serve as fallbacks, in feed order; with AllLinks set,
// every link is fetched to its own file, extras suffixed "--2", "--3",
// and so on. An existing file is skipped with a notice unless Force is
// set. The skipped return value reports whether every target file
// already existed.
func (d *Downloader) Fetch(ctx context.Context, a types.Article, w io.Writer) (skipped bool, err error) {
	if len(a.PDFLinks) == 0 {
		return false, fmt.Errorf("%s: no PDF links in feed entry", a.ID)
	}

	if err := os.MkdirAll(d.cfg.OutputDir, 0o755); err != nil {
		return false, fmt.Errorf("creating output directory: %w", err)
	}

	name := render.Filename(a, d.template)
	if d.cfg.AllLinks {
		return d.fetchAll(ctx, a, name, w)
	}

	dest := filepath.Join(d.cfg.OutputDir, name+".pdf")
	if exists(dest) && !d.cfg.Force {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", dest)
		return true, nil
	}

	var last error
	for _, link := range a.PDFLinks {
		fmt.Fprintf(w, "downloading: %s\n", dest)
		if err := d.downloadFile(ctx, link, dest, w); err != nil {
			last = fmt.Errorf("%s: %w", link, err)
			fmt.Fprintf(os.Stderr, "warning: %s: link %s failed: %v\n", a.ID, link, err)
			continue
		}
		return false, d.writeMetadata(a, name)
	}
	return false, &ExhaustedLinksError{ID: a.ID, Attempts: len(a.PDFLinks), Last: last}
}

// fetchAll downloads every PDF link of a record. Duplicate links are
// passed through unchanged, each to its own suffixed file.
func (d *Downloader) fetchAll(ctx context.Context, a types.Article, name string, w io.Writer) (bool, error) {
	var last error
	failed, fetched, skippedCount := 0, 0, 0

	for i, link := range a.PDFLinks {
		stem := name
		if i > 0 {
			stem = fmt.Sprintf("%s--%d", name, i+1)
		}
		dest := filepath.Join(d.cfg.OutputDir, stem+".pdf")
		if exists(dest) && !d.cfg.Force {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", dest)
			skippedCount++
			continue
		}
		fmt.Fprintf(w, "downloading: %s\n", dest)
		if err := d.downloadFile(ctx, link, dest, w); err != nil {
			last = fmt.Errorf("%s: %w", link, err)
			fmt.Fprintf(os.Stderr, "warning: %s: link %s failed: %v\n", a.ID, link, err)
			failed++
			continue
		}
		fetched++
	}

	if fetched == 0 && failed > 0 {
		return false, &ExhaustedLinksError{ID: a.ID, Attempts: failed, Last: last}
	}
	if fetched == 0 && skippedCount == len(a.PDFLinks) {
		return true, nil
	}
	return false, d.writeMetadata(a, name)
}

// downloadFile streams url into destPath through a temp file in the same
// directory, renaming into place only after the write completed, so an
// interrupted download leaves nothing under the final name.
func (d *Downloader) downloadFile(ctx context.Context, url, destPath string, w io.Writer) error {
	req, err := httputil.NewGetRequest(ctx, d.cfg.HTTPConfig, url)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := d.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	head := make([]byte, len(pdfMagic))
	n, readErr := io.ReadFull(resp.Body, head)
	isPDF := n == len(pdfMagic) && bytes.Equal(head, pdfMagic)

	var copyErr error
	if _, err := tmpFile.Write(head[:n]); err != nil {
		copyErr = err
	} else if readErr == nil {
		_, copyErr = io.Copy(tmpFile, resp.Body)
	} else if readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
		copyErr = readErr
	}
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if !isPDF {
		if d.cfg.RemoveNonPDF {
			os.Remove(tmpPath)
			fmt.Fprintf(w, "removed: %s is not a PDF (article may have been withdrawn)\n", destPath)
			return nil
		}
		fmt.Fprintf(os.Stderr, "warning: %s is not a PDF (article may have been withdrawn)\n", destPath)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// writeMetadata writes the article record as a YAML sidecar when the
// configuration asks for one.
func (d *Downloader) writeMetadata(a types.Article, name string) error {
	if !d.cfg.WriteMetadata {
		return nil
	}
	data, err := yaml.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	path := filepath.Join(d.cfg.OutputDir, name+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FailureSummary joins failure messages for an error return at the CLI
// boundary.
func FailureSummary(r BatchResult) string {
	if !r.HasFailures() {
		return ""
	}
	return fmt.Sprintf("%d download(s) failed: %s", r.Failed, strings.Join(r.Failures, "; "))
}

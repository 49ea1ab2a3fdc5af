// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-browser/pkg/types"
)

// Atom feed XML structures.
type atomFeed struct {
	TotalResults int         `xml:"totalResults"`
	StartIndex   int         `xml:"startIndex"`
	Entries      []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Published string       `xml:"published"`
	Updated   string       `xml:"updated"`
	Authors   []atomAuthor `xml:"author"`
	Links     []atomLink   `xml:"link"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}

// MalformedEntryError reports a feed entry that could not be converted
// into an article record. It aborts the whole listing: silently skipping
// an entry would corrupt the result count the user asked for.
type MalformedEntryError struct {
	Index  int // position within the result set, 0-based
	Reason string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed feed entry %d: %s", e.Index+1, e.Reason)
}

// parseEntry converts one Atom entry into an Article. A missing id or an
// unparseable timestamp is a hard error; missing links or authors yield
// empty slices.
func parseEntry(index int, e atomEntry) (types.Article, error) {
	id := entryID(e.ID)
	if id == "" {
		return types.Article{}, &MalformedEntryError{Index: index, Reason: "missing id"}
	}

	published, err := parseTimestamp(e.Published)
	if err != nil {
		return types.Article{}, &MalformedEntryError{
			Index:  index,
			Reason: fmt.Sprintf("bad published timestamp %q", e.Published),
		}
	}
	updated, err := parseTimestamp(e.Updated)
	if err != nil {
		return types.Article{}, &MalformedEntryError{
			Index:  index,
			Reason: fmt.Sprintf("bad updated timestamp %q", e.Updated),
		}
	}

	a := types.Article{
		ID:        id,
		Title:     normalizeSpace(e.Title),
		Published: published,
		Updated:   updated,
	}

	for _, au := range e.Authors {
		name := normalizeSpace(au.Name)
		if name != "" {
			a.Authors = append(a.Authors, name)
		}
	}

	for _, l := range e.Links {
		if l.Href == "" {
			continue
		}
		if l.Title == "pdf" || l.Type == "application/pdf" {
			a.PDFLinks = append(a.PDFLinks, l.Href)
		} else {
			a.OtherLinks = append(a.OtherLinks, l.Href)
		}
	}

	return a, nil
}

// entryID extracts the versioned arXiv id from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/1706.03762v7" → "1706.03762v7"). The
// version suffix is kept: it identifies the exact revision listed.
func entryID(idURL string) string {
	idURL = strings.TrimSpace(idURL)
	if idURL == "" {
		return ""
	}
	if i := strings.LastIndexByte(idURL, '/'); i >= 0 {
		return idURL[i+1:]
	}
	return idURL
}

// parseTimestamp parses an Atom RFC 3339 timestamp into UTC.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// normalizeSpace collapses runs of whitespace, including the newline and
// indentation arXiv embeds in long titles, to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

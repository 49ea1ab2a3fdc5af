// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query assembles arXiv API search queries from field-scoped
// clauses, an optional publication-year range, and an optional explicit
// id-list. Construction is pure string work; the arXiv query grammar
// itself is not validated locally, malformed clauses are passed through
// for the remote service to reject.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Field is an arXiv search field prefix.
type Field string

const (
	FieldTitle        Field = "ti"
	FieldAuthor       Field = "au"
	FieldAbstract     Field = "abs"
	FieldComment      Field = "co"
	FieldJournal      Field = "jr"
	FieldCategory     Field = "cat"
	FieldReportNumber Field = "rn"
	FieldAll          Field = "all"
)

// fieldSubmittedDate is the range-filter field used for year bounds.
const fieldSubmittedDate = "submittedDate"

// ErrEmptyQuery is returned by Build when no clauses, no year range, and
// no id-list were supplied. Sending such a query would match the entire
// archive, so it is rejected before any request is made.
var ErrEmptyQuery = errors.New("empty query: provide a search expression or an id-list")

// RangeError reports an inverted year range.
type RangeError struct {
	From, To int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid year range: %d > %d", e.From, e.To)
}

// Spec holds the two query parameters the arXiv endpoint accepts. When
// IDList is non-empty it is the primary lookup key and SearchQuery acts
// as an additional filter over those ids.
type Spec struct {
	SearchQuery string
	IDList      string
}

// Builder accumulates query clauses. The zero value is usable.
type Builder struct {
	clauses  []string
	yearFrom int
	yearTo   int
	hasYears bool
	ids      []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Raw appends a clause already expressed in arXiv query syntax.
// Blank clauses are ignored.
func (b *Builder) Raw(clause string) *Builder {
	clause = strings.TrimSpace(clause)
	if clause != "" {
		b.clauses = append(b.clauses, clause)
	}
	return b
}

// Field appends one prefixed clause (e.g. Field(FieldTitle, "quantum")
// contributes "ti:quantum"). Blank values are ignored.
func (b *Builder) Field(f Field, value string) *Builder {
	value = strings.TrimSpace(value)
	if value != "" {
		b.clauses = append(b.clauses, string(f)+":"+value)
	}
	return b
}

// Years restricts results to articles submitted between from and to,
// inclusive, as calendar years.
func (b *Builder) Years(from, to int) *Builder {
	b.yearFrom = from
	b.yearTo = to
	b.hasYears = true
	return b
}

// IDList sets the explicit id-list from a comma-separated string.
// Whitespace around individual ids is trimmed; ids are otherwise passed
// through verbatim.
func (b *Builder) IDList(csv string) *Builder {
	b.ids = b.ids[:0]
	for _, id := range strings.Split(csv, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			b.ids = append(b.ids, id)
		}
	}
	return b
}

// Build produces the final query spec. It fails pre-flight on an
// inverted year range or on a query that is empty with no id-list.
func (b *Builder) Build() (Spec, error) {
	if b.hasYears && b.yearFrom > b.yearTo {
		return Spec{}, &RangeError{From: b.yearFrom, To: b.yearTo}
	}

	parts := make([]string, len(b.clauses))
	copy(parts, b.clauses)
	if b.hasYears {
		parts = append(parts, yearRangeClause(b.yearFrom, b.yearTo))
	}

	spec := Spec{
		SearchQuery: strings.Join(parts, " AND "),
		IDList:      strings.Join(b.ids, ","),
	}
	if spec.SearchQuery == "" && spec.IDList == "" {
		return Spec{}, ErrEmptyQuery
	}
	return spec, nil
}

// yearRangeClause encodes an inclusive year range as a submittedDate
// filter in the arXiv YYYYMMDDTTTT format, spanning the first minute of
// Jan 1 in from through the last minute of Dec 31 in to.
func yearRangeClause(from, to int) string {
	return fmt.Sprintf("%s:[%04d01010000 TO %04d12312359]", fieldSubmittedDate, from, to)
}

// ParseYearRange parses a year range flag value: either a single year
// ("2017") or an inclusive range ("2015-2018").
func ParseYearRange(s string) (from, to int, err error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '-'); i >= 0 {
		from, err = strconv.Atoi(strings.TrimSpace(s[:i]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year %q", s[:i])
		}
		to, err = strconv.Atoi(strings.TrimSpace(s[i+1:]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year %q", s[i+1:])
		}
		return from, to, nil
	}
	from, err = strconv.Atoi(s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", s)
	}
	return from, from, nil
}

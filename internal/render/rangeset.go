// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strconv"
	"strings"
)

// RangeSet is a parsed set of comma-separated terms of the form "k" or
// "n-m" over positive integers. It backs both the download-selection
// grammar and the publish/update year display filters.
type RangeSet struct {
	terms []rangeTerm
}

type rangeTerm struct {
	lo, hi int
}

// ParseRangeSet parses expressions like "3", "1-5", or "1,4-6,9".
func ParseRangeSet(s string) (*RangeSet, error) {
	rs := &RangeSet{}
	for _, term := range strings.Split(s, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if i := strings.IndexByte(term, '-'); i >= 0 {
			lo, err := parsePositive(term[:i])
			if err != nil {
				return nil, fmt.Errorf("invalid range term %q: %w", term, err)
			}
			hi, err := parsePositive(term[i+1:])
			if err != nil {
				return nil, fmt.Errorf("invalid range term %q: %w", term, err)
			}
			if lo > hi {
				return nil, fmt.Errorf("invalid range term %q: %d > %d", term, lo, hi)
			}
			rs.terms = append(rs.terms, rangeTerm{lo: lo, hi: hi})
			continue
		}
		k, err := parsePositive(term)
		if err != nil {
			return nil, fmt.Errorf("invalid range term %q: %w", term, err)
		}
		rs.terms = append(rs.terms, rangeTerm{lo: k, hi: k})
	}
	if len(rs.terms) == 0 {
		return nil, fmt.Errorf("empty range expression")
	}
	return rs, nil
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	if n < 1 {
		return 0, fmt.Errorf("must be >= 1")
	}
	return n, nil
}

// Contains reports whether n falls in any term.
func (rs *RangeSet) Contains(n int) bool {
	for _, t := range rs.terms {
		if n >= t.lo && n <= t.hi {
			return true
		}
	}
	return false
}

// Bounds returns the smallest and largest integers covered by the set.
func (rs *RangeSet) Bounds() (lo, hi int) {
	lo, hi = rs.terms[0].lo, rs.terms[0].hi
	for _, t := range rs.terms[1:] {
		if t.lo < lo {
			lo = t.lo
		}
		if t.hi > hi {
			hi = t.hi
		}
	}
	return lo, hi
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildJoinsClausesWithAnd(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Builder
		want    string
		wantIDs string
	}{
		{
			name:  "single raw clause",
			build: func() *Builder { return NewBuilder().Raw("au:ficial_a_i") },
			want:  "au:ficial_a_i",
		},
		{
			name: "multiple raw clauses",
			build: func() *Builder {
				return NewBuilder().Raw("au:ficial_a_i").Raw("ti:quantum")
			},
			want: "au:ficial_a_i AND ti:quantum",
		},
		{
			name: "field clauses",
			build: func() *Builder {
				return NewBuilder().Field(FieldTitle, "quantum").Field(FieldCategory, "math.NT")
			},
			want: "ti:quantum AND cat:math.NT",
		},
		{
			name:  "blank clauses ignored",
			build: func() *Builder { return NewBuilder().Raw("  ").Field(FieldAuthor, "").Raw("ti:x") },
			want:  "ti:x",
		},
		{
			name: "year range appended with AND",
			build: func() *Builder {
				return NewBuilder().Raw("ti:quantum").Years(2015, 2018)
			},
			want: "ti:quantum AND submittedDate:[201501010000 TO 201812312359]",
		},
		{
			name:  "year range alone",
			build: func() *Builder { return NewBuilder().Years(2017, 2017) },
			want:  "submittedDate:[201701010000 TO 201712312359]",
		},
		{
			name:    "id list trimmed and kept verbatim",
			build:   func() *Builder { return NewBuilder().IDList(" 2309.06314 , 1811.02452 ") },
			want:    "",
			wantIDs: "2309.06314,1811.02452",
		},
		{
			name: "id list with query filter",
			build: func() *Builder {
				return NewBuilder().Raw("ti:quantum").IDList("2309.06314")
			},
			want:    "ti:quantum",
			wantIDs: "2309.06314",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := tt.build().Build()
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if spec.SearchQuery != tt.want {
				t.Errorf("SearchQuery = %q, want %q", spec.SearchQuery, tt.want)
			}
			if spec.IDList != tt.wantIDs {
				t.Errorf("IDList = %q, want %q", spec.IDList, tt.wantIDs)
			}
		})
	}
}

// Splitting the output on top-level " AND " must recover exactly the
// supplied clauses plus the date clause iff a range was given.
func TestBuildRoundTrip(t *testing.T) {
	clauses := []string{"au:ficial_a_i", "ti:quantum", "cat:math.NT"}

	b := NewBuilder()
	for _, c := range clauses {
		b.Raw(c)
	}
	spec, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	got := strings.Split(spec.SearchQuery, " AND ")
	if len(got) != len(clauses) {
		t.Fatalf("split into %d parts, want %d", len(got), len(clauses))
	}
	for i, c := range clauses {
		if got[i] != c {
			t.Errorf("part %d = %q, want %q", i, got[i], c)
		}
	}

	b.Years(2010, 2020)
	spec, err = b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	got = strings.Split(spec.SearchQuery, " AND ")
	if len(got) != len(clauses)+1 {
		t.Fatalf("with years: split into %d parts, want %d", len(got), len(clauses)+1)
	}
	if !strings.HasPrefix(got[len(got)-1], "submittedDate:[") {
		t.Errorf("last part = %q, want a submittedDate clause", got[len(got)-1])
	}
}

func TestBuildInvalidRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		wantErr  bool
	}{
		{"inverted", 2020, 2015, true},
		{"equal", 2017, 2017, false},
		{"ascending", 2015, 2020, false},
		{"inverted by one", 2018, 2017, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder().Years(tt.from, tt.to).Build()
			var re *RangeError
			if tt.wantErr {
				if !errors.As(err, &re) {
					t.Fatalf("Build() error = %v, want RangeError", err)
				}
				if re.From != tt.from || re.To != tt.to {
					t.Errorf("RangeError = %d..%d, want %d..%d", re.From, re.To, tt.from, tt.to)
				}
			} else if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
		})
	}
}

func TestBuildEmptyQuery(t *testing.T) {
	_, err := NewBuilder().Build()
	if !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Build() error = %v, want ErrEmptyQuery", err)
	}

	// An id-list alone is a valid lookup.
	spec, err := NewBuilder().IDList("2309.06314").Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if spec.IDList != "2309.06314" {
		t.Errorf("IDList = %q, want %q", spec.IDList, "2309.06314")
	}
}

func TestParseYearRange(t *testing.T) {
	tests := []struct {
		input    string
		from, to int
		wantErr  bool
	}{
		{"2017", 2017, 2017, false},
		{"2015-2018", 2015, 2018, false},
		{" 2015 - 2018 ", 2015, 2018, false},
		{"abc", 0, 0, true},
		{"2015-", 0, 0, true},
		{"-2018", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			from, to, err := ParseYearRange(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseYearRange(%q) = %d, %d, want error", tt.input, from, to)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseYearRange(%q) error: %v", tt.input, err)
			}
			if from != tt.from || to != tt.to {
				t.Errorf("ParseYearRange(%q) = %d, %d, want %d, %d", tt.input, from, to, tt.from, tt.to)
			}
		})
	}
}

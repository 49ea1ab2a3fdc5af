// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/arxiv-browser/pkg/types"
)

func attentionRecord() types.Article {
	return types.Article{
		ID:        "1706.03762v7",
		Title:     "Attention Is All You Need",
		Authors:   []string{"Ashish Vaswani", "Noam Shazeer"},
		Published: time.Date(2017, 6, 12, 17, 57, 34, 0, time.UTC),
		Updated:   time.Date(2023, 8, 2, 0, 41, 18, 0, time.UTC),
		PDFLinks:  []string{"http://arxiv.org/pdf/1706.03762v7"},
		OtherLinks: []string{
			"http://arxiv.org/abs/1706.03762v7",
		},
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Attention Is All You Need", "Attention_Is_All_You_Need"},
		{"Ashish Vaswani", "Ashish_Vaswani"},
		{"Art I. Ficial", "Art_I_Ficial"},
		{"  spaces  and -- dashes  ", "spaces_and_dashes"},
		{"quantum: a survey?!", "quantum_a_survey"},
		{"", ""},
		{"___", ""},
		{"already_sane_slug", "already_sane_slug"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Sanitizing an already-sanitized string must yield the same string.
func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Attention Is All You Need",
		"Attention is all you need for Videos: Self-attention based Video\n  Summarization",
		"a  b\tc\nd",
		"100% (pure) chaos!!",
	}
	for _, in := range inputs {
		once := Slugify(in)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent on %q: %q != %q", in, once, twice)
		}
		if strings.Contains(once, "__") {
			t.Errorf("Slugify(%q) = %q contains a double-underscore run", in, once)
		}
	}
}

func TestFilename(t *testing.T) {
	a := attentionRecord()
	got := Filename(a, DefaultTemplate)
	want := "2017-Ashish_Vaswani-Noam_Shazeer-Attention_Is_All_You_Need-1706.03762v7"
	if got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}

func TestFilenameTemplates(t *testing.T) {
	a := attentionRecord()
	tests := []struct {
		name     string
		template string
		record   types.Article
		want     string
	}{
		{"default on empty template", "", a, "2017-Ashish_Vaswani-Noam_Shazeer-Attention_Is_All_You_Need-1706.03762v7"},
		{"id only", "{id}", a, "1706.03762v7"},
		{"update year", "{updt}-{id}", a, "2023-1706.03762v7"},
		{"title and pub", "{pub}-{title}", a, "2017-Attention_Is_All_You_Need"},
		{
			"zero authors omit the segment",
			DefaultTemplate,
			types.Article{
				ID:        "2301.00001v1",
				Title:     "Solo Work",
				Published: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
				Updated:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			"2023-Solo_Work-2301.00001v1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.record, tt.template); got != tt.want {
				t.Errorf("Filename = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	var buf bytes.Buffer
	Display(&buf, 3, attentionRecord(), DefaultTemplate)
	out := buf.String()

	wantLines := []string{
		"3\n-\n",
		"ID: 1706.03762v7",
		"Authors: Ashish Vaswani, Noam Shazeer",
		"Title: Attention Is All You Need",
		"Published: Mon Jun 12 2017 05:57:34PM UTC",
		"Updated: Wed Aug 02 2023 12:41:18AM UTC",
		"Output file name: 2017-Ashish_Vaswani-Noam_Shazeer-Attention_Is_All_You_Need-1706.03762v7.pdf",
		"PDF links: http://arxiv.org/pdf/1706.03762v7",
		"Other links: http://arxiv.org/abs/1706.03762v7",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Errorf("Display output missing %q:\n%s", want, out)
		}
	}
}

func TestParseRangeSet(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
		hits    []int
		misses  []int
	}{
		{"3", false, []int{3}, []int{1, 2, 4}},
		{"1-5", false, []int{1, 3, 5}, []int{6}},
		{"1,4-6,9", false, []int{1, 4, 5, 6, 9}, []int{2, 3, 7, 8, 10}},
		{"5-2", true, nil, nil},
		{"0", true, nil, nil},
		{"a-b", true, nil, nil},
		{"", true, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rs, err := ParseRangeSet(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRangeSet(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRangeSet(%q) error: %v", tt.input, err)
			}
			for _, n := range tt.hits {
				if !rs.Contains(n) {
					t.Errorf("Contains(%d) = false, want true", n)
				}
			}
			for _, n := range tt.misses {
				if rs.Contains(n) {
					t.Errorf("Contains(%d) = true, want false", n)
				}
			}
		})
	}
}

func threeRecords() []types.Article {
	var records []types.Article
	for _, id := range []string{"2301.00001v1", "2301.00002v1", "2301.00003v1"} {
		records = append(records, types.Article{ID: id})
	}
	return records
}

func TestSelect(t *testing.T) {
	records := threeRecords()

	tests := []struct {
		name    string
		expr    string
		wantIDs []string
	}{
		{"first of three", "1", []string{"2301.00001v1"}},
		{"range", "2-3", []string{"2301.00002v1", "2301.00003v1"}},
		{"all keyword", "all", []string{"2301.00001v1", "2301.00002v1", "2301.00003v1"}},
		{"empty selects all", "", []string{"2301.00001v1", "2301.00002v1", "2301.00003v1"}},
		{"order preserved over terms", "3,1", []string{"2301.00001v1", "2301.00003v1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(records, tt.expr)
			if err != nil {
				t.Fatalf("Select() error: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("selected %d records, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("selected[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestSelectOutOfRange(t *testing.T) {
	_, err := Select(threeRecords(), "2,5")
	var se *SelectionRangeError
	if !errors.As(err, &se) {
		t.Fatalf("Select() error = %v, want SelectionRangeError", err)
	}
	if se.Index != 5 || se.Total != 3 {
		t.Errorf("SelectionRangeError = %+v, want Index 5 Total 3", se)
	}
}

func TestFilterByYears(t *testing.T) {
	records := []types.Article{
		{ID: "a", Published: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), Updated: time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Published: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), Updated: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "c", Published: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), Updated: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	publish, err := ParseRangeSet("2016-2022")
	if err != nil {
		t.Fatal(err)
	}
	update, err := ParseRangeSet("2020-2021")
	if err != nil {
		t.Fatal(err)
	}

	got := FilterByYears(records, publish, update)
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "c" {
		t.Errorf("FilterByYears = %v, want records b and c", got)
	}

	if all := FilterByYears(records, nil, nil); len(all) != 3 {
		t.Errorf("nil filters must keep everything, got %d", len(all))
	}
}

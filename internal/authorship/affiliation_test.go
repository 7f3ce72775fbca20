package authorship

import (
	"reflect"
	"testing"
)

var sampleEntries = []AffiliationEntry{
	{Markers: []string{"a"}, Text: "Department of Physics, Massachusetts Institute of Technology, Cambridge, MA 02139; and "},
	{Markers: []string{"b"}, Text: ", Institut Pasteur, Paris, France"},
	{Markers: []string{"b", "c"}, Text: "Laboratoire Y, Lyon, France"},
}

func TestResolveAffiliations(t *testing.T) {
	tests := []struct {
		name    string
		refs    []string
		entries []AffiliationEntry
		want    []Affiliation
	}{
		{
			name:    "one entry per ref",
			refs:    []string{"a", "c"},
			entries: sampleEntries,
			want: []Affiliation{
				{Label: PrimaryAffiliationLabel, Text: "Department of Physics, Massachusetts Institute of Technology, Cambridge, MA 02139; and"},
				{Label: "Affiliation2", Text: "Laboratoire Y, Lyon, France"},
			},
		},
		{
			name:    "ref shared by two entries",
			refs:    []string{"a", "b"},
			entries: sampleEntries,
			want: []Affiliation{
				{Label: PrimaryAffiliationLabel, Text: "Department of Physics, Massachusetts Institute of Technology, Cambridge, MA 02139; and"},
				{Label: "Affiliation2", Text: "Institut Pasteur, Paris, France"},
				{Label: "Affiliation22", Text: "Laboratoire Y, Lyon, France"},
			},
		},
		{
			name:    "second match of first ref",
			refs:    []string{"b"},
			entries: sampleEntries,
			want: []Affiliation{
				{Label: PrimaryAffiliationLabel, Text: "Institut Pasteur, Paris, France"},
				{Label: "Affiliation12", Text: "Laboratoire Y, Lyon, France"},
			},
		},
		{
			name:    "unresolved first ref promotes next match",
			refs:    []string{"z", "c"},
			entries: sampleEntries,
			want: []Affiliation{
				{Label: PrimaryAffiliationLabel, Text: "Laboratoire Y, Lyon, France"},
			},
		},
		{
			name:    "no refs falls back to first entry",
			refs:    nil,
			entries: sampleEntries,
			want: []Affiliation{
				{Label: PrimaryAffiliationLabel, Text: "Department of Physics, Massachusetts Institute of Technology, Cambridge, MA 02139; and"},
			},
		},
		{
			name:    "no matching refs falls back to first entry",
			refs:    []string{"x", "y"},
			entries: sampleEntries,
			want: []Affiliation{
				{Label: PrimaryAffiliationLabel, Text: "Department of Physics, Massachusetts Institute of Technology, Cambridge, MA 02139; and"},
			},
		},
		{
			name:    "no entries at all",
			refs:    []string{"1"},
			entries: nil,
			want:    []Affiliation{{Label: PrimaryAffiliationLabel, Text: ""}},
		},
		{
			name: "numeric markers",
			refs: []string{"1", "2"},
			entries: []AffiliationEntry{
				{Markers: []string{"1"}, Text: "University A, Tokyo, Japan"},
				{Markers: []string{"2"}, Text: "University B, Seoul, Korea"},
			},
			want: []Affiliation{
				{Label: PrimaryAffiliationLabel, Text: "University A, Tokyo, Japan"},
				{Label: "Affiliation2", Text: "University B, Seoul, Korea"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAffiliations(tt.refs, tt.entries)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveAffiliations(%v) = %+v, want %+v", tt.refs, got, tt.want)
			}
		})
	}
}

func TestResolveAffiliations_AlwaysHasPrimary(t *testing.T) {
	refSets := [][]string{nil, {}, {"a"}, {"q"}, {"q", "b"}, {"c", "c"}}

	for _, refs := range refSets {
		got := ResolveAffiliations(refs, sampleEntries)
		if len(got) == 0 || got[0].Label != PrimaryAffiliationLabel {
			t.Errorf("ResolveAffiliations(%v) = %+v, want primary entry first", refs, got)
		}
	}
}

func TestNationality(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Department of X, University Y, Country Z.", want: "Country Z"},
		{input: "Dept of Biology, Harvard University, Cambridge, MA 02138; and Broad Institute, USA", want: "MA 02138"},
		{input: "Institut Pasteur, Paris, France", want: "France"},
		{input: "Harvard University", want: "Harvard University"},
		{input: "Lab, Kyoto,\\n Japan \\n", want: "Japan"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := Nationality(tt.input); got != tt.want {
			t.Errorf("Nationality(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
